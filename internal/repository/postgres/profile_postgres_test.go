package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
)

var profileCols = []string{"id", "first_name", "last_name", "avatar_path", "phone", "birth_date", "updated_at"}

func TestProfilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("u1", "Ana", "", nil, "+62812", nil, now))

	p, err := NewProfilePostgres(db).FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FirstName)
	assert.Nil(t, p.AvatarPath)
	assert.Nil(t, p.BirthDate)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "+62812", *p.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilePostgres_FindByID_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM profiles").WithArgs("nobody").WillReturnError(sql.ErrNoRows)

	_, err = NewProfilePostgres(db).FindByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestProfilePostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	birth := "1990-01-01"
	avatar := "avatars/u1/a.png"
	p := &model.Profile{ID: "u1", FirstName: "Ana", LastName: "Lee", AvatarPath: &avatar, BirthDate: &birth, UpdatedAt: now}

	mock.ExpectQuery("UPDATE profiles SET (.+) WHERE id = \\$1 RETURNING").
		WithArgs("u1", "Ana", "Lee", avatar, nil, birth, now).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow("u1", "Ana", "Lee", avatar, nil, birth, now))

	out, err := NewProfilePostgres(db).Update(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "1990-01-01", *out.BirthDate)
	assert.Nil(t, out.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}
