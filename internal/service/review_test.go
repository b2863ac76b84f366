package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
	"travelapi/internal/repository"
	repoMocks "travelapi/internal/repository/mocks"
)

func echoReview(r *model.Review) *model.Review {
	cp := *r
	return &cp
}

func TestReviewService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReviewRepository)
	mRepo.On("List", ctx, repository.ReviewFilter{
		Destination: "Lisbon",
		PageQuery:   repository.PageQuery{Limit: 20, Offset: 0},
	}).Return(&repository.ReviewPage{
		PageResult:    repository.PageResult[model.Review]{Items: []model.Review{{ID: "r1", Rating: 4}}, Total: 1},
		AverageRating: 4,
	}, nil)

	svc := NewReviewService(mRepo, new(repoMocks.MockProfileRepository), testClock())
	got, err := svc.List(ctx, " Lisbon ", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 4.0, got.AverageRating)
	assert.Len(t, got.Items, 1)
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         ReviewInput
		profile    *model.Profile
		profileErr error
		wantErr    error
		wantAuthor string
		wantText   string
	}{
		{
			name:       "author from profile, markup stripped",
			in:         ReviewInput{Destination: "Porto", Rating: 5, Comment: "<script>x()</script>Great <b>food</b>"},
			profile:    &model.Profile{FirstName: "Ana", LastName: "Silva"},
			wantAuthor: "Ana Silva",
			wantText:   "Great food",
		},
		{
			name:       "empty profile name falls back",
			in:         ReviewInput{Destination: "Porto", Rating: 3},
			profile:    &model.Profile{},
			wantAuthor: anonymousAuthor,
		},
		{
			name:       "missing profile falls back",
			in:         ReviewInput{Destination: "Porto", Rating: 1},
			profileErr: sql.ErrNoRows,
			wantAuthor: anonymousAuthor,
		},
		{name: "rating too high", in: ReviewInput{Destination: "Porto", Rating: 6}, wantErr: ErrValidation},
		{name: "rating missing", in: ReviewInput{Destination: "Porto"}, wantErr: ErrValidation},
		{name: "destination missing", in: ReviewInput{Destination: "<p></p>", Rating: 2}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReviewRepository)
			mProfiles := new(repoMocks.MockProfileRepository)
			if tt.wantErr == nil {
				if tt.profileErr != nil {
					mProfiles.On("FindByID", ctx, "u1").Return(nil, tt.profileErr)
				} else {
					mProfiles.On("FindByID", ctx, "u1").Return(tt.profile, nil)
				}
				mRepo.On("Create", ctx, mock.Anything).Return(echoReview, nil)
			}
			svc := NewReviewService(mRepo, mProfiles, testClock())

			got, err := svc.Create(ctx, "u1", tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuthor, got.AuthorName)
			assert.Equal(t, tt.wantText, got.Comment)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, fixedNow, got.CreatedAt)
		})
	}
}
