package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, user_id, title, document_type, to_char(expiry_date, 'YYYY-MM-DD'),
		storage_path, content_type, size, calendar_event_id, created_at, updated_at`

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d       model.Document
		expiry  sql.NullString
		eventID sql.NullString
	)
	if err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&d.DocumentType,
		&expiry,
		&d.StoragePath,
		&d.ContentType,
		&d.Size,
		&eventID,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.ExpiryDate = stringPtr(expiry)
	d.CalendarEventID = stringPtr(eventID)
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, user_id, title, document_type, expiry_date, storage_path,
			content_type, size, calendar_event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.DocumentType,
		nullable(doc.ExpiryDate),
		doc.StoragePath,
		doc.ContentType,
		doc.Size,
		nullable(doc.CalendarEventID),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID, scoped to the owner.
func (r *DocumentPostgres) FindByID(ctx context.Context, userID, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND user_id = $2
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id, userID))
}

// List returns the owner's documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	items, err := r.query(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// ListWithExpiry returns every document of the owner that has an expiry date, soonest first.
func (r *DocumentPostgres) ListWithExpiry(ctx context.Context, userID string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE user_id = $1 AND expiry_date IS NOT NULL
		ORDER BY expiry_date ASC, title ASC
	`
	return r.query(ctx, q, userID)
}

func (r *DocumentPostgres) query(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes the mutable columns and returns the stored record.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $3, document_type = $4, expiry_date = $5::date, storage_path = $6,
			content_type = $7, size = $8, calendar_event_id = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.DocumentType,
		nullable(doc.ExpiryDate),
		doc.StoragePath,
		doc.ContentType,
		doc.Size,
		nullable(doc.CalendarEventID),
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// Delete removes the owner's document by ID.
func (r *DocumentPostgres) Delete(ctx context.Context, userID, id string) error {
	const q = `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}
