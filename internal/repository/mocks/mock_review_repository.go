package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *model.Review) (*model.Review, error) {
	args := m.Called(ctx, r)
	if fn, ok := args.Get(0).(func(*model.Review) *model.Review); ok {
		return fn(r), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, f repository.ReviewFilter) (*repository.ReviewPage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReviewPage), args.Error(1)
}

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	args := m.Called(ctx, n)
	if fn, ok := args.Get(0).(func(*model.Note) *model.Note); ok {
		return fn(n), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteRepository) ListBetween(ctx context.Context, userID, from, to string) ([]model.Note, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockVisaRepository struct {
	mock.Mock
}

func (m *MockVisaRepository) Find(ctx context.Context, passport, destination string) (*model.VisaRequirement, error) {
	args := m.Called(ctx, passport, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VisaRequirement), args.Error(1)
}
