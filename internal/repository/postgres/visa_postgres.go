package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// VisaPostgres reads the visa_requirements reference table.
type VisaPostgres struct {
	db *sql.DB
}

// NewVisaPostgres creates a new VisaPostgres repository.
func NewVisaPostgres(db *sql.DB) *VisaPostgres {
	return &VisaPostgres{db: db}
}

var _ repository.VisaRepository = (*VisaPostgres)(nil)

// Find returns the requirement for the passport/destination pair.
func (r *VisaPostgres) Find(ctx context.Context, passport, destination string) (*model.VisaRequirement, error) {
	const q = `
		SELECT passport_country, destination_country, requirement, max_stay_days, notes
		FROM visa_requirements
		WHERE passport_country = $1 AND destination_country = $2
	`
	var (
		v       model.VisaRequirement
		maxStay sql.NullInt32
	)
	if err := r.db.QueryRowContext(ctx, q, passport, destination).
		Scan(&v.PassportCountry, &v.DestinationCountry, &v.Requirement, &maxStay, &v.Notes); err != nil {
		return nil, err
	}
	v.MaxStayDays = intPtr(maxStay)
	return &v, nil
}
