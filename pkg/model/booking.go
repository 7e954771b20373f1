package model

import "encoding/json"

// BookingRequest is the single payload sent to the booking service when a
// wizard is submitted. Amounts are two-decimal strings.
type BookingRequest struct {
	BookingType        string         `json:"booking_type"`
	Listing            string         `json:"listing,omitempty"`
	StartDate          string         `json:"start_date,omitempty"`
	EndDate            string         `json:"end_date,omitempty"`
	StartTime          string         `json:"start_time,omitempty"`
	EndTime            string         `json:"end_time,omitempty"`
	BasePrice          string         `json:"base_price"`
	ServiceFees        string         `json:"service_fees"`
	Taxes              string         `json:"taxes"`
	Discount           string         `json:"discount"`
	TotalPrice         string         `json:"total_price"`
	Currency           string         `json:"currency"`
	ContactName        string         `json:"contact_name"`
	ContactPhone       string         `json:"contact_phone"`
	ContactEmail       string         `json:"contact_email"`
	GuestCount         *int           `json:"guest_count,omitempty"`
	SpecialRequests    string         `json:"special_requests,omitempty"`
	CancellationPolicy string         `json:"cancellation_policy"`
	BookingData        map[string]any `json:"booking_data"`
}

// BookingRecord is what the booking service answers with. The wizard shows
// it as received.
type BookingRecord struct {
	ID              string      `json:"id,omitempty"`
	ReferenceNumber string      `json:"reference_number"`
	Status          string      `json:"status"`
	TotalPrice      json.Number `json:"total_price,omitempty"`
	Currency        string      `json:"currency,omitempty"`
}

// BookingCreatedEvent is published once a wizard reaches confirmation.
type BookingCreatedEvent struct {
	WizardID        string `json:"wizard_id"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	BookingType     string `json:"booking_type"`
	TotalPrice      string `json:"total_price"`
	Currency        string `json:"currency"`
}
