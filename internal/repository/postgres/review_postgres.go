package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

const reviewColumns = `id, user_id, author_name, destination, rating, comment, created_at`

func scanReview(row rowScanner) (*model.Review, error) {
	var rv model.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.AuthorName, &rv.Destination, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a review and returns the stored row.
func (r *ReviewPostgres) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO travel_reviews (id, user_id, author_name, destination, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reviewColumns
	row := r.db.QueryRowContext(ctx, q,
		rv.ID, rv.UserID, rv.AuthorName, rv.Destination, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	return scanReview(row)
}

// List returns a page of reviews, newest first, with the count and average rating of
// every review matching the filter.
func (r *ReviewPostgres) List(ctx context.Context, f repository.ReviewFilter) (*repository.ReviewPage, error) {
	const qStats = `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM travel_reviews
		WHERE ($1 = '' OR lower(destination) = lower($1))
	`
	var (
		total int
		avg   float64
	)
	if err := r.db.QueryRowContext(ctx, qStats, f.Destination).Scan(&total, &avg); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + reviewColumns + `
		FROM travel_reviews
		WHERE ($1 = '' OR lower(destination) = lower($1))
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, f.Destination, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.ReviewPage{
		PageResult:    repository.PageResult[model.Review]{Items: items, Total: total},
		AverageRating: avg,
	}, nil
}
