package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, first_name, last_name, avatar_path, phone, to_char(birth_date, 'YYYY-MM-DD'), updated_at`

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p                        model.Profile
		avatar, phone, birthDate sql.NullString
	)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &avatar, &phone, &birthDate, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.AvatarPath = stringPtr(avatar)
	p.Phone = stringPtr(phone)
	p.BirthDate = stringPtr(birthDate)
	return &p, nil
}

// FindByID returns the profile belonging to the user ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites all editable columns.
func (r *ProfilePostgres) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		UPDATE profiles
		SET first_name = $2, last_name = $3, avatar_path = $4, phone = $5, birth_date = $6::date, updated_at = $7
		WHERE id = $1
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.FirstName,
		p.LastName,
		nullable(p.AvatarPath),
		nullable(p.Phone),
		nullable(p.BirthDate),
		p.UpdatedAt,
	)
	return scanProfile(row)
}
