package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelapi/internal/auth"
	"travelapi/internal/cache"
	"travelapi/internal/model"
	"travelapi/internal/repository"
	repoMocks "travelapi/internal/repository/mocks"
)

func newAuthService(t *testing.T, users *repoMocks.MockUserRepository) AuthService {
	t.Helper()
	tokens, err := auth.NewTokenManager("secret", time.Hour, "travelapi")
	require.NoError(t, err)
	return NewAuthService(users, tokens, cache.NewMemory(), SystemClock(time.UTC))
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        Credentials
		setup     func(m *repoMocks.MockUserRepository)
		wantErr   error
		wantEmail string
	}{
		{
			name: "happy path normalizes email",
			in:   Credentials{Email: "  Ana@Example.COM ", Password: "Str0ng!pass"},
			setup: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "ana@example.com" && u.PasswordHash != "Str0ng!pass" && u.ID != ""
				})).Return(func(u *model.User) *model.User { return u }, nil)
			},
			wantEmail: "ana@example.com",
		},
		{
			name:    "invalid email",
			in:      Credentials{Email: "not-an-email", Password: "Str0ng!pass"},
			wantErr: ErrValidation,
		},
		{
			name:    "weak password",
			in:      Credentials{Email: "a@b.co", Password: "password"},
			wantErr: ErrValidation,
		},
		{
			name: "duplicate email",
			in:   Credentials{Email: "a@b.co", Password: "Str0ng!pass"},
			setup: func(m *repoMocks.MockUserRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			if tt.setup != nil {
				tt.setup(users)
			}
			svc := newAuthService(t, users)

			sess, err := svc.SignUp(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, sess.Token)
				assert.Equal(t, tt.wantEmail, sess.User.Email)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	user := &model.User{ID: "u1", Email: "a@b.co", PasswordHash: hash}

	tests := []struct {
		name     string
		password string
		findErr  error
		wantErr  error
	}{
		{name: "ok", password: "Str0ng!pass"},
		{name: "wrong password", password: "Wr0ng!pass", wantErr: ErrUnauthorized},
		{name: "unknown email", password: "Str0ng!pass", findErr: sql.ErrNoRows, wantErr: ErrUnauthorized},
		{name: "db error", password: "Str0ng!pass", findErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			if tt.findErr != nil {
				users.On("FindByEmail", ctx, "a@b.co").Return(nil, tt.findErr)
			} else {
				users.On("FindByEmail", ctx, "a@b.co").Return(user, nil)
			}
			svc := newAuthService(t, users)

			sess, err := svc.SignIn(ctx, Credentials{Email: "A@B.co", Password: tt.password})
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.findErr != nil:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrUnauthorized)
			default:
				require.NoError(t, err)
				assert.Equal(t, "u1", sess.User.ID)
			}
		})
	}
}

func TestAuthService_SignOutRevokes(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)
	users := new(repoMocks.MockUserRepository)
	users.On("FindByEmail", ctx, "a@b.co").Return(&model.User{ID: "u1", Email: "a@b.co", PasswordHash: hash}, nil)
	svc := newAuthService(t, users)

	sess, err := svc.SignIn(ctx, Credentials{Email: "a@b.co", Password: "Str0ng!pass"})
	require.NoError(t, err)

	userID, err := svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, svc.SignOut(ctx, sess.Token))

	_, err = svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Authenticate_BadTokens(t *testing.T) {
	svc := newAuthService(t, new(repoMocks.MockUserRepository))
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, svc.SignOut(ctx, "garbage"), ErrUnauthorized)
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	users.On("FindByID", ctx, "u1").Return(&model.User{ID: "u1"}, nil)
	users.On("FindByID", ctx, "gone").Return(nil, sql.ErrNoRows)
	svc := newAuthService(t, users)

	u, err := svc.CurrentUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.CurrentUser(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
