// Package calendar mirrors document expiry dates into the user's calendar as all-day events.
package calendar

import (
	"context"
	"strings"
)

// Event is an all-day calendar entry. Date is YYYY-MM-DD.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        string
}

// Client creates, moves and removes expiry events.
type Client interface {
	// Enabled is false for the no-op client; callers skip sync entirely in that case.
	Enabled() bool
	UpsertAllDayEvent(ctx context.Context, ev Event) error
	// DeleteEvent treats an already-missing event as deleted.
	DeleteEvent(ctx context.Context, eventID string) error
}

// EventID derives a stable provider event id from a document id.
// Google requires base32hex characters (a-v, 0-9), which lowercase hex satisfies.
func EventID(documentID string) string {
	return "doc" + strings.ToLower(strings.ReplaceAll(documentID, "-", ""))
}

// Noop is used when no calendar credentials are configured.
type Noop struct{}

var _ Client = Noop{}

func (Noop) Enabled() bool                                  { return false }
func (Noop) UpsertAllDayEvent(context.Context, Event) error { return nil }
func (Noop) DeleteEvent(context.Context, string) error      { return nil }
