package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelapi/internal/model"
)

func TestNotify(t *testing.T) {
	now := day(t, "2024-01-01", time.Local).Add(9 * time.Hour)

	tests := []struct {
		name         string
		expiry       *string
		wantOK       bool
		wantSeverity model.Severity
		wantText     string
		wantDays     int
	}{
		{"no expiry", nil, false, "", "", 0},
		{"malformed", date("31.01.2024"), false, "", "", 0},
		{"expired", date("2023-12-29"), true, model.SeverityDanger, "Passport expired 3 day(s) ago", -3},
		{"today", date("2024-01-01"), true, model.SeverityDanger, "Passport expires today", 0},
		{"four days", date("2024-01-05"), true, model.SeverityDanger, "Passport will expire in 4 day(s)", 4},
		{"seven days", date("2024-01-08"), true, model.SeverityDanger, "Passport will expire in 7 day(s)", 7},
		{"eight days", date("2024-01-09"), true, model.SeverityWarning, "Passport will expire in 8 day(s)", 8},
		{"nineteen days", date("2024-01-20"), true, model.SeverityWarning, "Passport will expire in 19 day(s)", 19},
		{"thirty days", date("2024-01-31"), true, model.SeverityWarning, "Passport will expire in 30 day(s)", 30},
		{"thirty one days", date("2024-02-01"), false, "", "", 0},
		{"sixty days", date("2024-03-01"), false, "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.Document{ID: "doc-1", Title: "Passport", DocumentType: "Passport", ExpiryDate: tt.expiry}
			n, ok := Notify(now, doc)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, "doc-1", n.ID)
			assert.Equal(t, tt.wantSeverity, n.Severity)
			assert.Equal(t, tt.wantText, n.Text)
			assert.Equal(t, tt.wantDays, n.DaysRemaining)
			assert.Equal(t, now, n.CreatedAt)
		})
	}
}

func TestNotify_TextMentionsDayCount(t *testing.T) {
	now := day(t, "2024-01-01", time.Local)
	n, ok := Notify(now, model.Document{ID: "x", Title: "Visa", ExpiryDate: date("2024-01-05")})
	require.True(t, ok)
	assert.Equal(t, model.SeverityDanger, n.Severity)
	assert.Contains(t, n.Text, "4 day(s)")
}

func TestGenerate_OrdersByUrgency(t *testing.T) {
	now := day(t, "2024-01-01", time.Local)
	docs := []model.Document{
		{ID: "warn", Title: "Insurance", ExpiryDate: date("2024-01-20")},
		{ID: "none", Title: "No expiry"},
		{ID: "far", Title: "Passport", ExpiryDate: date("2024-03-01")},
		{ID: "expired", Title: "Old visa", ExpiryDate: date("2023-12-25")},
		{ID: "soon-b", Title: "Hotel", ExpiryDate: date("2024-01-03")},
		{ID: "soon-a", Title: "Flight", ExpiryDate: date("2024-01-03")},
	}

	got := Generate(now, docs)

	ids := make([]string, 0, len(got))
	for _, n := range got {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"expired", "soon-a", "soon-b", "warn"}, ids)
	assert.Equal(t, model.SeverityWarning, got[3].Severity)
}

func TestGenerate_Empty(t *testing.T) {
	got := Generate(time.Now(), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
