// Package expiry derives document status and expiry notifications from calendar dates.
//
// Everything here is a pure function of (today, expiry date, document type). Dates are
// calendar dates interpreted in the location of the supplied "today" value, never UTC,
// so a document expiring "2024-06-29" expires on that local day regardless of server zone.
package expiry

import (
	"strings"
	"time"

	"travelapi/internal/model"
)

// DateLayout is the wire format of expiry and birth dates.
const DateLayout = "2006-01-02"

// DefaultGraceWindowDays applies to document types without a configured window.
const DefaultGraceWindowDays = 30

var graceWindows = map[model.DocumentType]int{
	model.DocumentTypePassport:        180,
	model.DocumentTypeVisa:            60,
	model.DocumentTypeIDCard:          90,
	model.DocumentTypeTravelInsurance: 14,
	model.DocumentTypeFlightTicket:    7,
	model.DocumentTypeHotelBooking:    7,
}

// GraceWindow returns the number of days before expiry during which a document of the
// given type is reported as expiring.
func GraceWindow(documentType string) int {
	if w, ok := graceWindows[model.DocumentType(documentType)]; ok {
		return w
	}
	return DefaultGraceWindowDays
}

// ParseDate parses a YYYY-MM-DD calendar date in loc. A trailing time component
// ("2024-01-05T00:00:00Z") is ignored. ok is false for empty or malformed input.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the number of whole calendar days from a to b, using each value's
// own calendar date. DST transitions do not affect the result.
func DaysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining returns expiryDate minus today in whole days. ok is false when
// expiryDate is nil or cannot be parsed.
func DaysRemaining(today time.Time, expiryDate *string) (int, bool) {
	if expiryDate == nil {
		return 0, false
	}
	exp, ok := ParseDate(*expiryDate, today.Location())
	if !ok {
		return 0, false
	}
	return DaysBetween(today, exp), true
}

// Classify maps an expiry date and document type to a status. Missing or malformed
// dates are valid. The grace window boundary is inclusive.
func Classify(today time.Time, expiryDate *string, documentType string) model.DocumentStatus {
	diff, ok := DaysRemaining(today, expiryDate)
	if !ok {
		return model.StatusValid
	}
	switch {
	case diff < 0:
		return model.StatusExpired
	case diff <= GraceWindow(documentType):
		return model.StatusExpiring
	default:
		return model.StatusValid
	}
}
