package categories

import (
	"fmt"
)

// Slug identifies one of the fixed booking categories.
type Slug string

const (
	ApartmentRentalSlug  Slug = "apartment-rental"
	ApartmentViewingSlug Slug = "apartment-viewing"
	ServiceBookingSlug   Slug = "service-booking"
	CarRentalSlug        Slug = "car-rental"
	HotelBookingSlug     Slug = "hotel-booking"
	AppointmentSlug      Slug = "appointment"
)

// All lists every category in catalog order.
func All() []Slug {
	return []Slug{
		ApartmentRentalSlug,
		ApartmentViewingSlug,
		ServiceBookingSlug,
		CarRentalSlug,
		HotelBookingSlug,
		AppointmentSlug,
	}
}

// UnknownCategoryError means a category slug arrived that the wizard has no
// field set for. It is a configuration problem, not user input.
type UnknownCategoryError struct {
	Slug string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("no field set is defined for booking category %q", e.Slug)
}

// ParseSlug accepts only the fixed enumeration.
func ParseSlug(s string) (Slug, error) {
	for _, slug := range All() {
		if string(slug) == s {
			return slug, nil
		}
	}
	return "", &UnknownCategoryError{Slug: s}
}
