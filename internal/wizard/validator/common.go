package validator

import (
	"fmt"
	"math"
	"strings"
	"time"

	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Requirements are the capability flags of the selected category that turn
// optional common fields into required ones.
type Requirements struct {
	DateRange  bool
	TimeSlot   bool
	GuestCount bool
}

func RequirementsOf(category model.BookingCategory) Requirements {
	return Requirements{
		DateRange:  category.RequiresDateRange,
		TimeSlot:   category.RequiresTimeSlot,
		GuestCount: category.RequiresGuestCount,
	}
}

type contact struct {
	ContactName  string `json:"contact_name" validate:"trimmed_required"`
	ContactPhone string `json:"contact_phone" validate:"trimmed_required,phone_shape"`
	ContactEmail string `json:"contact_email" validate:"trimmed_required,email"`
}

type CommonValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

func NewCommonValidator(log *logger.Logger) *CommonValidator {
	v, err := New()
	if err != nil {
		log.Fatal("Failed to build common fields validator", "error", err)
	}
	return &CommonValidator{
		validate: v,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for the "in the future" rule.
func (v *CommonValidator) WithClock(now func() time.Time) *CommonValidator {
	v.now = now
	return v
}

// Validate checks every rule independently and returns all failures.
func (v *CommonValidator) Validate(fields model.CommonFields, req Requirements) FieldErrors {
	errs := FieldErrors{}

	c := contact{
		ContactName:  fields.ContactName,
		ContactPhone: strings.TrimSpace(fields.ContactPhone),
		ContactEmail: strings.TrimSpace(fields.ContactEmail),
	}
	translated, err := Translate(v.validate.Struct(c))
	if err != nil {
		v.logger.Error("Unexpected contact validation failure", "error", err)
		errs.Add(model.FieldContactName, "contact details could not be validated")
	}
	errs.Merge(translated)

	v.validateDateRange(fields, req, errs)
	v.validateTimeSlot(fields, req, errs)
	validateGuestCount(fields, req, errs)

	return errs
}

func (v *CommonValidator) validateDateRange(fields model.CommonFields, req Requirements, errs FieldErrors) {
	start, startOK := checkDate(model.FieldStartDate, fields.StartDate, req.DateRange, errs)
	end, endOK := checkDate(model.FieldEndDate, fields.EndDate, req.DateRange, errs)

	if startOK && !start.After(Today(v.now())) {
		errs.Add(model.FieldStartDate, fmt.Sprintf("%s must be in the future", model.FieldStartDate))
	}
	if startOK && endOK && end.Before(start) {
		errs.Add(model.FieldEndDate, fmt.Sprintf("%s must be on or after %s", model.FieldEndDate, model.FieldStartDate))
	}
}

func checkDate(field, value string, required bool, errs FieldErrors) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			errs.Add(field, fmt.Sprintf("%s is required", field))
		}
		return time.Time{}, false
	}
	t, ok := ParseDate(value)
	if !ok {
		errs.Add(field, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		return time.Time{}, false
	}
	return t, true
}

func (v *CommonValidator) validateTimeSlot(fields model.CommonFields, req Requirements, errs FieldErrors) {
	startOK := checkClock(model.FieldStartTime, fields.StartTime, req.TimeSlot, errs)
	endOK := checkClock(model.FieldEndTime, fields.EndTime, false, errs)

	if startOK && endOK && !ClockBefore(fields.StartTime, fields.EndTime) {
		errs.Add(model.FieldEndTime, fmt.Sprintf("%s must be after %s", model.FieldEndTime, model.FieldStartTime))
	}
}

func checkClock(field, value string, required bool, errs FieldErrors) bool {
	if strings.TrimSpace(value) == "" {
		if required {
			errs.Add(field, fmt.Sprintf("%s is required", field))
		}
		return false
	}
	if !IsClock(value) {
		errs.Add(field, fmt.Sprintf("%s must be a time in HH:MM format", field))
		return false
	}
	return true
}

func validateGuestCount(fields model.CommonFields, req Requirements, errs FieldErrors) {
	if fields.GuestCount == nil {
		if req.GuestCount {
			errs.Add(model.FieldGuestCount, fmt.Sprintf("%s is required", model.FieldGuestCount))
		}
		return
	}
	n := *fields.GuestCount
	if n < 1 || n != math.Trunc(n) {
		errs.Add(model.FieldGuestCount, fmt.Sprintf("%s must be a positive integer", model.FieldGuestCount))
	}
}
