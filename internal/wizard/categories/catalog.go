package categories

import "bookingwizard/pkg/model"

func text(name, label string, required bool) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindText, Label: label, Required: required}
}

func textarea(name, label string, required bool) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindTextarea, Label: label, Required: required}
}

func number(name, label string, required bool, def any) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindNumber, Label: label, Required: required, Default: def}
}

func boolean(name, label string) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindBoolean, Label: label}
}

func date(name, label string) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindDate, Label: label, Required: true}
}

func clock(name, label string) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindTime, Label: label, Required: true}
}

func choice(name, label string, required bool, choices ...string) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindSelect, Label: label, Required: required, Choices: choices}
}

func multi(name, label string, choices ...string) model.FieldDescriptor {
	return model.FieldDescriptor{Name: name, Kind: model.KindMultiSelect, Label: label, Choices: choices}
}

// Catalog returns the built-in category list, used when no category
// metadata service is configured. Schemas match the field set structs.
func Catalog() []model.BookingCategory {
	return []model.BookingCategory{
		{
			ID:                "1",
			Slug:              string(ApartmentRentalSlug),
			Name:              "Apartment rental",
			Description:       "Stay in an apartment for one or more nights",
			RequiresDateRange: true,
			Schema: []model.FieldDescriptor{
				number("adults", "Adults", true, nil),
				number("children", "Children", false, 0),
				number("infants", "Infants", false, 0),
				boolean("pets_allowed", "Travelling with pets"),
				textarea("pet_details", "Pet details", false),
				textarea("arrival_notes", "Arrival notes", false),
			},
		},
		{
			ID:                 "2",
			Slug:               string(ApartmentViewingSlug),
			Name:               "Apartment viewing",
			Description:        "Visit a property before buying or renting",
			RequiresGuestCount: true,
			Schema: []model.FieldDescriptor{
				date("viewing_date", "Viewing date"),
				clock("viewing_time", "Viewing time"),
				number("duration_minutes", "Duration (minutes)", false, 30),
				boolean("is_buyer", "Interested in buying"),
				boolean("is_renter", "Interested in renting"),
				textarea("notes", "Notes", false),
			},
		},
		{
			ID:                "3",
			Slug:              string(ServiceBookingSlug),
			Name:              "Service",
			Description:       "Book a professional service at your address",
			RequiresDateRange: true,
			RequiresTimeSlot:  true,
			Schema: []model.FieldDescriptor{
				choice("service_type", "Service type", true, "cleaning", "plumbing", "electrical", "moving", "repair", "gardening", "other"),
				textarea("description", "Describe the job", true),
				text("location_address", "Address", true),
				number("estimated_duration", "Estimated duration (hours)", false, nil),
			},
		},
		{
			ID:          "4",
			Slug:        string(CarRentalSlug),
			Name:        "Car rental",
			Description: "Rent a car with pickup and dropoff",
			Schema: []model.FieldDescriptor{
				text("pickup_location", "Pickup location", true),
				date("pickup_date", "Pickup date"),
				clock("pickup_time", "Pickup time"),
				text("dropoff_location", "Dropoff location", true),
				date("dropoff_date", "Dropoff date"),
				clock("dropoff_time", "Dropoff time"),
				text("driver_name", "Driver name", true),
				number("driver_age", "Driver age", true, nil),
				text("license_number", "License number", true),
				text("license_country", "License issuing country", true),
				choice("insurance_type", "Insurance", true, "basic", "standard", "premium"),
				choice("fuel_policy", "Fuel policy", true, "full-to-full", "same-to-same", "prepaid"),
			},
		},
		{
			ID:                "5",
			Slug:              string(HotelBookingSlug),
			Name:              "Hotel",
			Description:       "Reserve hotel rooms",
			RequiresDateRange: true,
			Schema: []model.FieldDescriptor{
				choice("room_type", "Room type", true, "single", "double", "twin", "suite", "family"),
				choice("meal_plan", "Meal plan", true, "room-only", "breakfast", "half-board", "full-board", "all-inclusive"),
				number("number_of_rooms", "Rooms", true, nil),
				number("number_of_guests", "Guests", true, nil),
				multi("amenities", "Extras", "crib", "extra-bed", "late-checkout", "airport-transfer", "parking"),
			},
		},
		{
			ID:                "6",
			Slug:              string(AppointmentSlug),
			Name:              "Appointment",
			Description:       "Schedule an appointment",
			RequiresDateRange: true,
			RequiresTimeSlot:  true,
			Schema: []model.FieldDescriptor{
				choice("appointment_type", "Appointment type", true, "consultation", "follow-up", "check-up", "treatment", "other"),
				number("duration_minutes", "Duration (minutes)", true, nil),
				boolean("is_recurring", "Recurring appointment"),
				choice("recurrence_pattern", "Repeats", false, "daily", "weekly", "biweekly", "monthly"),
				textarea("notes", "Notes", false),
			},
		},
	}
}
