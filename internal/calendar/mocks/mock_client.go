package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"travelapi/internal/calendar"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockClient) UpsertAllDayEvent(ctx context.Context, ev calendar.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockClient) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
