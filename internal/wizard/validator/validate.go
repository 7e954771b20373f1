package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phoneShapeRegex = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	digitRegex      = regexp.MustCompile(`[0-9]`)
)

// New builds a validator that reports JSON field names and knows the
// wizard's custom tags: phone_shape, whole, iso_date, clock, trimmed_required.
func New() (*validator.Validate, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	custom := map[string]validator.Func{
		"phone_shape":      validatePhoneShape,
		"whole":            validateWhole,
		"iso_date":         validateISODate,
		"clock":            validateClock,
		"trimmed_required": validateTrimmedRequired,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return v, nil
}

// IsPhoneShape accepts digits with an optional leading plus and common
// separators, and requires at least one digit.
func IsPhoneShape(s string) bool {
	s = strings.TrimSpace(s)
	return phoneShapeRegex.MatchString(s) && digitRegex.MatchString(s) && !strings.Contains(s[1:], "+")
}

func validatePhoneShape(fl validator.FieldLevel) bool {
	return IsPhoneShape(fl.Field().String())
}

func validateWhole(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		return f.Float() == math.Trunc(f.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func validateISODate(fl validator.FieldLevel) bool {
	return IsDate(fl.Field().String())
}

func validateClock(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

func validateTrimmedRequired(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Translate turns validator/v10 errors into field messages. Non-validation
// errors (invalid struct, nil pointer) are returned as they are.
func Translate(err error) (FieldErrors, error) {
	if err == nil {
		return FieldErrors{}, nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, err
	}

	out := FieldErrors{}
	for _, fe := range validationErrs {
		field := fe.Field()
		// Slice elements report as name[i]; the error belongs to the field.
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		out.Add(field, message(fe, field))
	}
	return out, nil
}

func message(fe validator.FieldError, field string) string {
	switch fe.Tag() {
	case "required", "trimmed_required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "phone_shape":
		return fmt.Sprintf("%s must be a valid phone number", field)
	case "whole":
		return fmt.Sprintf("%s must be a whole number", field)
	case "iso_date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	case "dive":
		return fmt.Sprintf("%s contains an invalid value", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
