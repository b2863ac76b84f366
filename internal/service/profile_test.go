package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
	repoMocks "travelapi/internal/repository/mocks"
	storeMocks "travelapi/internal/storage/mocks"
)

func echoProfile(p *model.Profile) *model.Profile {
	cp := *p
	return &cp
}

func TestProfileService_Get(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockProfileRepository)
	mRepo.On("FindByID", ctx, "u1").Return(&model.Profile{ID: "u1", AvatarPath: strPtr("avatars/u1/a.png")}, nil)
	mRepo.On("FindByID", ctx, "u2").Return(nil, sql.ErrNoRows)
	mStore.On("PresignGet", ctx, "avatars/u1/a.png", time.Hour).Return("https://signed/a.png", nil)

	svc := NewProfileService(mStore, mRepo, testClock(), time.Hour)

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://signed/a.png", p.AvatarURL)

	_, err = svc.Get(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      ProfileUpdate
		wantErr error
		check   func(t *testing.T, p *model.Profile)
	}{
		{
			name: "sets names and phone",
			in:   ProfileUpdate{FirstName: strPtr(" Ana "), LastName: strPtr("<i>Silva</i>"), Phone: strPtr("+351 912 345 678")},
			check: func(t *testing.T, p *model.Profile) {
				assert.Equal(t, "Ana", p.FirstName)
				assert.Equal(t, "Silva", p.LastName)
				require.NotNil(t, p.Phone)
				assert.Equal(t, "+351 912 345 678", *p.Phone)
				assert.Equal(t, "1990-01-01", *p.BirthDate)
			},
		},
		{
			name: "empty values clear optional fields",
			in:   ProfileUpdate{Phone: strPtr(""), BirthDate: strPtr("")},
			check: func(t *testing.T, p *model.Profile) {
				assert.Nil(t, p.Phone)
				assert.Nil(t, p.BirthDate)
				assert.Equal(t, "Old", p.FirstName)
			},
		},
		{
			name: "birth date today is accepted",
			in:   ProfileUpdate{BirthDate: strPtr("2024-06-15")},
			check: func(t *testing.T, p *model.Profile) {
				assert.Equal(t, "2024-06-15", *p.BirthDate)
			},
		},
		{name: "future birth date", in: ProfileUpdate{BirthDate: strPtr("2024-06-16")}, wantErr: ErrValidation},
		{name: "malformed birth date", in: ProfileUpdate{BirthDate: strPtr("15.06.1990")}, wantErr: ErrValidation},
		{name: "bad phone", in: ProfileUpdate{Phone: strPtr("call me")}, wantErr: ErrValidation},
		{name: "long name", in: ProfileUpdate{FirstName: strPtr(strings.Repeat("a", 101))}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockProfileRepository)
			mRepo.On("FindByID", ctx, "u1").Return(&model.Profile{
				ID: "u1", FirstName: "Old", Phone: strPtr("+1 555 0100"), BirthDate: strPtr("1990-01-01"),
			}, nil).Maybe()
			mRepo.On("Update", ctx, mock.Anything).Return(echoProfile, nil).Maybe()
			svc := NewProfileService(new(storeMocks.MockStorage), mRepo, testClock(), time.Hour)

			p, err := svc.Update(ctx, "u1", tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestProfileService_UploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces previous avatar", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("FindByID", ctx, "u1").Return(&model.Profile{ID: "u1", AvatarPath: strPtr("avatars/u1/old.jpg")}, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "avatars/u1/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, mock.Anything).Return(echoKey, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(echoProfile, nil)
		mStore.On("Delete", ctx, "avatars/u1/old.jpg").Return(nil)
		mStore.On("PresignGet", ctx, mock.Anything, time.Hour).Return("https://signed/new.png", nil)

		svc := NewProfileService(mStore, mRepo, testClock(), time.Hour)
		p, err := svc.UploadAvatar(ctx, "u1", FileUpload{
			Reader: strings.NewReader("img"), Filename: "me.PNG", ContentType: "image/png", Size: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://signed/new.png", p.AvatarURL)
		assert.NotEqual(t, "avatars/u1/old.jpg", *p.AvatarPath)
		mStore.AssertExpectations(t)
	})

	t.Run("rejects non-image", func(t *testing.T) {
		svc := NewProfileService(new(storeMocks.MockStorage), new(repoMocks.MockProfileRepository), testClock(), time.Hour)
		_, err := svc.UploadAvatar(ctx, "u1", FileUpload{Reader: strings.NewReader("x"), Filename: "a.pdf", ContentType: "application/pdf"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rolls back object when db fails", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockProfileRepository)
		mRepo.On("FindByID", ctx, "u1").Return(&model.Profile{ID: "u1"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(echoKey, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "avatars/u1/") })).Return(nil)

		svc := NewProfileService(mStore, mRepo, testClock(), time.Hour)
		_, err := svc.UploadAvatar(ctx, "u1", FileUpload{Reader: strings.NewReader("img"), Filename: "a.png", ContentType: "image/png"})
		assert.EqualError(t, err, "db save failed: db fail")
		mStore.AssertExpectations(t)
	})
}
