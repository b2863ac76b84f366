package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

var reviewCols = []string{"id", "user_id", "author_name", "destination", "rating", "comment", "created_at"}

func TestReviewPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rv := &model.Review{ID: "r1", UserID: "u1", AuthorName: "Ada", Destination: "Lisbon", Rating: 5, Comment: "Great", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO travel_reviews").
		WithArgs("r1", "u1", "Ada", "Lisbon", 5, "Great", now).
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow("r1", "u1", "Ada", "Lisbon", 5, "Great", now))

	out, err := NewReviewPostgres(db).Create(context.Background(), rv)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(AVG\\(rating\\), 0\\) FROM travel_reviews").
		WithArgs("lisbon").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(2, 4.5))
	mock.ExpectQuery("SELECT (.+) FROM travel_reviews WHERE (.+) ORDER BY created_at DESC").
		WithArgs("lisbon", 20, 0).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow("r2", "u2", "Bo", "Lisbon", 4, "", now).
			AddRow("r1", "u1", "Ada", "Lisbon", 5, "Great", now))

	page, err := repo.List(context.Background(), repository.ReviewFilter{
		Destination: "lisbon",
		PageQuery:   repository.PageQuery{Limit: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.InDelta(t, 4.5, page.AverageRating, 0.001)
	assert.Len(t, page.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
