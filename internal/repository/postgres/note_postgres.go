package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

const noteColumns = `id, user_id, to_char(note_date, 'YYYY-MM-DD'), text, created_at`

func scanNote(row rowScanner) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Date, &n.Text, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a note and returns the stored row.
func (r *NotePostgres) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, user_id, note_date, text, created_at)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRowContext(ctx, q, n.ID, n.UserID, n.Date, n.Text, n.CreatedAt))
}

// ListBetween returns the owner's notes dated within [from, to].
func (r *NotePostgres) ListBetween(ctx context.Context, userID, from, to string) ([]model.Note, error) {
	const q = `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND note_date BETWEEN $2::date AND $3::date
		ORDER BY note_date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes the owner's note by ID.
func (r *NotePostgres) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}
