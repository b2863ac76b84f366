package model

import "time"

// DocumentType is one of the fixed travel document kinds a user can upload.
type DocumentType string

const (
	DocumentTypePassport        DocumentType = "Passport"
	DocumentTypeVisa            DocumentType = "Visa"
	DocumentTypeIDCard          DocumentType = "ID Card"
	DocumentTypeTravelInsurance DocumentType = "Travel Insurance"
	DocumentTypeFlightTicket    DocumentType = "Flight Ticket"
	DocumentTypeHotelBooking    DocumentType = "Hotel Booking"
	DocumentTypeOther           DocumentType = "Other"
)

// DocumentTypes lists every accepted document type in display order.
var DocumentTypes = []DocumentType{
	DocumentTypePassport,
	DocumentTypeVisa,
	DocumentTypeIDCard,
	DocumentTypeTravelInsurance,
	DocumentTypeFlightTicket,
	DocumentTypeHotelBooking,
	DocumentTypeOther,
}

// IsValidDocumentType reports whether s names one of DocumentTypes.
func IsValidDocumentType(s string) bool {
	for _, t := range DocumentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// DocumentStatus is derived from the expiry date and never stored.
type DocumentStatus string

const (
	StatusValid    DocumentStatus = "valid"
	StatusExpiring DocumentStatus = "expiring"
	StatusExpired  DocumentStatus = "expired"
)

// Document represents a travel document owned by a user.
// ExpiryDate is a calendar date in YYYY-MM-DD form, nil when the document does not expire.
type Document struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	DocumentType    string    `json:"document_type"`
	ExpiryDate      *string   `json:"expiry_date"`
	StoragePath     string    `json:"storage_path"`
	ContentType     string    `json:"content_type"`
	Size            int64     `json:"size"`
	CalendarEventID *string   `json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
