package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
)

var visaCols = []string{"passport_country", "destination_country", "requirement", "max_stay_days", "notes"}

func TestVisaPostgres_Find(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewVisaPostgres(db)

	t.Run("with stay limit", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM visa_requirements").
			WithArgs("ID", "JP").
			WillReturnRows(sqlmock.NewRows(visaCols).AddRow("ID", "JP", "e_visa", 15, "Apply online"))

		v, err := repo.Find(context.Background(), "ID", "JP")
		require.NoError(t, err)
		assert.Equal(t, model.VisaElectronic, v.Requirement)
		require.NotNil(t, v.MaxStayDays)
		assert.Equal(t, 15, *v.MaxStayDays)
	})

	t.Run("no stay limit", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM visa_requirements").
			WithArgs("US", "RU").
			WillReturnRows(sqlmock.NewRows(visaCols).AddRow("US", "RU", "visa_required", nil, ""))

		v, err := repo.Find(context.Background(), "US", "RU")
		require.NoError(t, err)
		assert.Nil(t, v.MaxStayDays)
	})

	t.Run("unknown pair", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM visa_requirements").
			WithArgs("XX", "YY").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Find(context.Background(), "XX", "YY")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
