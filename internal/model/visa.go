package model

// VisaRequirementKind classifies entry rules for a passport/destination pair.
type VisaRequirementKind string

const (
	VisaFree       VisaRequirementKind = "visa_free"
	VisaOnArrival  VisaRequirementKind = "visa_on_arrival"
	VisaElectronic VisaRequirementKind = "e_visa"
	VisaRequired   VisaRequirementKind = "visa_required"
)

// VisaRequirement describes what a holder of PassportCountry needs to enter DestinationCountry.
// Country codes are ISO 3166-1 alpha-2, upper case.
type VisaRequirement struct {
	PassportCountry    string              `json:"passport_country"`
	DestinationCountry string              `json:"destination_country"`
	Requirement        VisaRequirementKind `json:"requirement"`
	MaxStayDays        *int                `json:"max_stay_days"`
	Notes              string              `json:"notes,omitempty"`
}
