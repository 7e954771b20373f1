package model

// CommonFields holds the data every booking category shares. Dates are
// YYYY-MM-DD and times HH:MM; GuestCount is nil while unset.
type CommonFields struct {
	ContactName     string   `json:"contact_name"`
	ContactPhone    string   `json:"contact_phone"`
	ContactEmail    string   `json:"contact_email"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	StartTime       string   `json:"start_time,omitempty"`
	EndTime         string   `json:"end_time,omitempty"`
	GuestCount      *float64 `json:"guest_count,omitempty"`
	SpecialRequests string   `json:"special_requests,omitempty"`
	Listing         string   `json:"listing,omitempty"`
}

const (
	FieldContactName     = "contact_name"
	FieldContactPhone    = "contact_phone"
	FieldContactEmail    = "contact_email"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldGuestCount      = "guest_count"
	FieldSpecialRequests = "special_requests"
	FieldListing         = "listing"
)
