package expiry

import (
	"fmt"
	"sort"
	"time"

	"travelapi/internal/model"
)

const (
	// DangerThresholdDays is the last day count that still raises a danger alert.
	DangerThresholdDays = 7
	// WarningThresholdDays is the last day count that raises any alert at all.
	WarningThresholdDays = 30
)

// Notify builds the notification for a single document, if any. now supplies both
// today's calendar date (in now's location) and the CreatedAt stamp.
func Notify(now time.Time, doc model.Document) (model.Notification, bool) {
	days, ok := DaysRemaining(now, doc.ExpiryDate)
	if !ok {
		return model.Notification{}, false
	}

	var (
		severity model.Severity
		text     string
	)
	switch {
	case days < 0:
		severity = model.SeverityDanger
		text = fmt.Sprintf("%s expired %d day(s) ago", doc.Title, -days)
	case days == 0:
		severity = model.SeverityDanger
		text = fmt.Sprintf("%s expires today", doc.Title)
	case days <= DangerThresholdDays:
		severity = model.SeverityDanger
		text = fmt.Sprintf("%s will expire in %d day(s)", doc.Title, days)
	case days <= WarningThresholdDays:
		severity = model.SeverityWarning
		text = fmt.Sprintf("%s will expire in %d day(s)", doc.Title, days)
	default:
		return model.Notification{}, false
	}

	return model.Notification{
		ID:            doc.ID,
		DocumentTitle: doc.Title,
		Text:          text,
		Severity:      severity,
		DaysRemaining: days,
		CreatedAt:     now,
	}, true
}

// Generate returns the notifications for docs, most urgent first. Ties keep title order.
func Generate(now time.Time, docs []model.Document) []model.Notification {
	out := make([]model.Notification, 0, len(docs))
	for _, d := range docs {
		if n, ok := Notify(now, d); ok {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysRemaining != out[j].DaysRemaining {
			return out[i].DaysRemaining < out[j].DaysRemaining
		}
		return out[i].DocumentTitle < out[j].DocumentTitle
	})
	return out
}
