package postgres

import (
	"context"
	"database/sql"

	"travelapi/internal/database"
	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// UserPostgres stores users and creates their profile row alongside.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts the user and an empty profile in a single transaction.
func (r *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const qUser = `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, created_at
	`
	const qProfile = `INSERT INTO profiles (id, updated_at) VALUES ($1, $2)`

	var out model.User
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, qUser, user.ID, user.Email, user.PasswordHash, user.CreatedAt).
			Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return err
		}
		_, err := tx.ExecContext(ctx, qProfile, out.ID, out.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByEmail looks a user up by normalized email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID looks a user up by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
