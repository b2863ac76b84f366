package repository

import (
	"context"

	"travelapi/internal/model"
)

// UserRepository persists authentication identities.
type UserRepository interface {
	// Create inserts the user together with an empty profile in one transaction.
	// It returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ProfileRepository reads and writes profiles keyed by user ID.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) (*model.Profile, error)
}
