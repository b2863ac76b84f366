package service

import (
	"context"
	"fmt"

	"travelapi/internal/expiry"
	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// NotificationList is the derived alert feed. UnreadCount equals len(Items).
type NotificationList struct {
	Items       []model.Notification `json:"items"`
	UnreadCount int                  `json:"unread_count"`
}

// NotificationService derives expiry alerts from the user's documents on every call.
type NotificationService interface {
	List(ctx context.Context, userID string) (*NotificationList, error)
}

type notificationService struct {
	docs  repository.DocumentRepository
	clock Clock
}

func NewNotificationService(docs repository.DocumentRepository, clock Clock) NotificationService {
	return &notificationService{docs: docs, clock: clock}
}

func (s *notificationService) List(ctx context.Context, userID string) (*NotificationList, error) {
	docs, err := s.docs.ListWithExpiry(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	items := expiry.Generate(s.clock.Today(), docs)
	return &NotificationList{Items: items, UnreadCount: len(items)}, nil
}
