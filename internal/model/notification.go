package model

import "time"

// Severity ranks how urgently a notification needs attention.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
)

// Notification is computed from a document's expiry date on every fetch; it is not persisted.
// ID is the id of the document it refers to.
type Notification struct {
	ID            string    `json:"id"`
	DocumentTitle string    `json:"document_title"`
	Text          string    `json:"text"`
	Severity      Severity  `json:"severity"`
	DaysRemaining int       `json:"days_remaining"`
	CreatedAt     time.Time `json:"created_at"`
}
