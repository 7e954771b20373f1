package categories

import (
	"encoding/json"
	"fmt"

	"bookingwizard/internal/wizard/schema"
	wizval "bookingwizard/internal/wizard/validator"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/go-playground/validator/v10"
)

// newFieldSet is the single dispatch point from slug to field set. Adding a
// category means adding a case here; ParseSlug guarantees nothing else
// reaches it.
func newFieldSet(slug Slug) (FieldSet, error) {
	switch slug {
	case ApartmentRentalSlug:
		return &ApartmentRental{}, nil
	case ApartmentViewingSlug:
		return &ApartmentViewing{}, nil
	case ServiceBookingSlug:
		return &ServiceBooking{}, nil
	case CarRentalSlug:
		return &CarRental{}, nil
	case HotelBookingSlug:
		return &HotelBooking{}, nil
	case AppointmentSlug:
		return &Appointment{}, nil
	}
	return nil, &UnknownCategoryError{Slug: string(slug)}
}

// Decode builds the typed field set of slug from generic values.
func Decode(slug Slug, values schema.Values) (FieldSet, error) {
	fs, err := newFieldSet(slug)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encode %s values: %w", slug, err)
	}
	if err := json.Unmarshal(data, fs); err != nil {
		return nil, fmt.Errorf("decode %s field set: %w", slug, err)
	}
	return fs, nil
}

type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewValidator(log *logger.Logger) *Validator {
	v, err := wizval.New()
	if err != nil {
		log.Fatal("Failed to build category validator", "error", err)
	}
	log.Debug("Category validator initialized", "categories", len(All()))
	return &Validator{
		validate: v,
		logger:   log,
	}
}

// Validate checks the category's own rules against its values. Only the
// given category's field set is decoded; values are first read through the
// schema so unrecognized select values count as unset.
func (v *Validator) Validate(category model.BookingCategory, values schema.Values) (wizval.FieldErrors, error) {
	slug, err := ParseSlug(category.Slug)
	if err != nil {
		return nil, err
	}

	normalized := values.Clone()
	for _, desc := range category.Schema {
		normalized[desc.Name] = schema.Read(desc, values[desc.Name])
	}

	fs, err := Decode(slug, normalized)
	if err != nil {
		v.logger.Error("Category values do not fit their field set",
			"category", slug,
			"error", err,
		)
		return nil, err
	}

	errs, err := wizval.Translate(v.validate.Struct(fs))
	if err != nil {
		return nil, err
	}
	fs.Rules(errs)
	return errs, nil
}
