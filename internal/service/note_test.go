package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
	repoMocks "travelapi/internal/repository/mocks"
)

func TestNoteService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{name: "defaults to current month", wantFrom: "2024-06-01", wantTo: "2024-06-30"},
		{name: "explicit range", from: "2024-01-01", to: "2024-12-31", wantFrom: "2024-01-01", wantTo: "2024-12-31"},
		{name: "single day", from: "2024-06-15", to: "2024-06-15", wantFrom: "2024-06-15", wantTo: "2024-06-15"},
		{name: "reversed", from: "2024-06-10", to: "2024-06-01", wantErr: ErrValidation},
		{name: "malformed", from: "june", wantErr: ErrValidation},
		{name: "too wide", from: "2020-01-01", to: "2024-01-01", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockNoteRepository)
			if tt.wantErr == nil {
				mRepo.On("ListBetween", ctx, "u1", tt.wantFrom, tt.wantTo).Return([]model.Note{{ID: "n1"}}, nil)
			}
			svc := NewNoteService(mRepo, testClock())

			notes, err := svc.List(ctx, "u1", tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, notes, 1)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockNoteRepository)
	mRepo.On("Create", ctx, mock.MatchedBy(func(n *model.Note) bool {
		return n.UserID == "u1" && n.Date == "2024-07-01" && n.Text == "Pack adapters"
	})).Return(func(n *model.Note) *model.Note { return n }, nil)
	svc := NewNoteService(mRepo, testClock())

	n, err := svc.Create(ctx, "u1", NoteInput{Date: " 2024-07-01 ", Text: "<em>Pack</em> adapters"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)

	_, err = svc.Create(ctx, "u1", NoteInput{Date: "2024-13-01", Text: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "u1", NoteInput{Date: "2024-07-01"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	id := "2f1c3a4b-5d6e-4f70-8192-a3b4c5d6e7f8"
	mRepo := new(repoMocks.MockNoteRepository)
	mRepo.On("Delete", ctx, "u1", id).Return(nil).Once()
	mRepo.On("Delete", ctx, "u2", id).Return(sql.ErrNoRows)
	svc := NewNoteService(mRepo, testClock())

	assert.NoError(t, svc.Delete(ctx, "u1", id))
	assert.ErrorIs(t, svc.Delete(ctx, "u2", id), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", "bad-id"), ErrNotFound)
}
