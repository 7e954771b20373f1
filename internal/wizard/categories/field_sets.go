package categories

import (
	"fmt"
	"strings"

	"bookingwizard/internal/wizard/validator"
)

// FieldSet is the typed view of one category's values. Struct tags carry
// the static rules; Rules adds the conditional and cross-field ones.
type FieldSet interface {
	Slug() Slug
	Rules(errs validator.FieldErrors)
}

type ApartmentRental struct {
	Adults       *float64 `json:"adults" validate:"required,whole,min=1"`
	Children     *float64 `json:"children" validate:"omitempty,whole,min=0"`
	Infants      *float64 `json:"infants" validate:"omitempty,whole,min=0"`
	PetsAllowed  bool     `json:"pets_allowed"`
	PetDetails   string   `json:"pet_details" validate:"max=1000"`
	ArrivalNotes string   `json:"arrival_notes" validate:"max=2000"`
}

func (ApartmentRental) Slug() Slug { return ApartmentRentalSlug }

func (a ApartmentRental) Rules(errs validator.FieldErrors) {
	if a.PetsAllowed && strings.TrimSpace(a.PetDetails) == "" {
		errs.Add("pet_details", "pet_details is required when pets_allowed is set")
	}
}

type ApartmentViewing struct {
	ViewingDate     string   `json:"viewing_date" validate:"trimmed_required,iso_date"`
	ViewingTime     string   `json:"viewing_time" validate:"trimmed_required,clock"`
	DurationMinutes *float64 `json:"duration_minutes" validate:"omitempty,whole,min=15,max=240"`
	IsBuyer         bool     `json:"is_buyer"`
	IsRenter        bool     `json:"is_renter"`
	Notes           string   `json:"notes" validate:"max=2000"`
}

func (ApartmentViewing) Slug() Slug { return ApartmentViewingSlug }

// Buyer and renter intent are advisory and recorded as given.
func (ApartmentViewing) Rules(validator.FieldErrors) {}

type ServiceBooking struct {
	ServiceType       string   `json:"service_type" validate:"required,oneof=cleaning plumbing electrical moving repair gardening other"`
	Description       string   `json:"description" validate:"trimmed_required,max=2000"`
	LocationAddress   string   `json:"location_address" validate:"trimmed_required,max=500"`
	EstimatedDuration *float64 `json:"estimated_duration" validate:"omitempty,gt=0"`
}

func (ServiceBooking) Slug() Slug { return ServiceBookingSlug }

func (ServiceBooking) Rules(validator.FieldErrors) {}

type CarRental struct {
	PickupLocation  string   `json:"pickup_location" validate:"trimmed_required"`
	PickupDate      string   `json:"pickup_date" validate:"trimmed_required,iso_date"`
	PickupTime      string   `json:"pickup_time" validate:"trimmed_required,clock"`
	DropoffLocation string   `json:"dropoff_location" validate:"trimmed_required"`
	DropoffDate     string   `json:"dropoff_date" validate:"trimmed_required,iso_date"`
	DropoffTime     string   `json:"dropoff_time" validate:"trimmed_required,clock"`
	DriverName      string   `json:"driver_name" validate:"trimmed_required"`
	DriverAge       *float64 `json:"driver_age" validate:"required,whole,min=18,max=120"`
	LicenseNumber   string   `json:"license_number" validate:"trimmed_required"`
	LicenseCountry  string   `json:"license_country" validate:"trimmed_required"`
	InsuranceType   string   `json:"insurance_type" validate:"required,oneof=basic standard premium"`
	FuelPolicy      string   `json:"fuel_policy" validate:"required,oneof=full-to-full same-to-same prepaid"`
}

func (CarRental) Slug() Slug { return CarRentalSlug }

// Rules rejects a dropoff before the pickup. The error goes on the dropoff
// side of the pair.
func (c CarRental) Rules(errs validator.FieldErrors) {
	if errs.Has("pickup_date") || errs.Has("dropoff_date") {
		return
	}
	switch {
	case c.DropoffDate < c.PickupDate:
		errs.Add("dropoff_date", "dropoff_date must be on or after pickup_date")
	case c.DropoffDate == c.PickupDate && !errs.Has("pickup_time") && !errs.Has("dropoff_time") &&
		!validator.ClockBefore(c.PickupTime, c.DropoffTime):
		errs.Add("dropoff_time", "dropoff_time must be after pickup_time")
	}
}

type HotelBooking struct {
	RoomType       string   `json:"room_type" validate:"required,oneof=single double twin suite family"`
	MealPlan       string   `json:"meal_plan" validate:"required,oneof=room-only breakfast half-board full-board all-inclusive"`
	NumberOfRooms  *float64 `json:"number_of_rooms" validate:"required,whole,min=1,max=20"`
	NumberOfGuests *float64 `json:"number_of_guests" validate:"required,whole,min=1,max=100"`
	Amenities      []string `json:"amenities" validate:"dive,oneof=crib extra-bed late-checkout airport-transfer parking"`
}

func (HotelBooking) Slug() Slug { return HotelBookingSlug }

func (HotelBooking) Rules(validator.FieldErrors) {}

// AppointmentDurations are the bookable appointment lengths in minutes.
var AppointmentDurations = []float64{15, 30, 45, 60, 90, 120}

type Appointment struct {
	AppointmentType   string   `json:"appointment_type" validate:"required,oneof=consultation follow-up check-up treatment other"`
	DurationMinutes   *float64 `json:"duration_minutes" validate:"required"`
	IsRecurring       bool     `json:"is_recurring"`
	RecurrencePattern string   `json:"recurrence_pattern" validate:"omitempty,oneof=daily weekly biweekly monthly"`
	Notes             string   `json:"notes" validate:"max=2000"`
}

func (Appointment) Slug() Slug { return AppointmentSlug }

func (a Appointment) Rules(errs validator.FieldErrors) {
	if a.DurationMinutes != nil && !allowedDuration(*a.DurationMinutes) {
		errs.Add("duration_minutes", fmt.Sprintf("duration_minutes must be one of: %s", durationList()))
	}
	if a.IsRecurring && strings.TrimSpace(a.RecurrencePattern) == "" {
		errs.Add("recurrence_pattern", "recurrence_pattern is required when is_recurring is set")
	}
}

func allowedDuration(d float64) bool {
	for _, allowed := range AppointmentDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

func durationList() string {
	parts := make([]string, len(AppointmentDurations))
	for i, d := range AppointmentDurations {
		parts[i] = fmt.Sprintf("%g", d)
	}
	return strings.Join(parts, " ")
}
