package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bookingwizard/internal/wizard/validator"
	"bookingwizard/pkg/model"
)

// Values holds the active category's field values keyed by field name.
// Stored types per kind: string (text, textarea, select, date, time),
// float64 or nil (number), bool (boolean), []string (multi-select).
type Values map[string]any

// Clone copies v so the copy shares no slices with the original.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if set, ok := val.([]string); ok {
			val = append([]string{}, set...)
		}
		out[k] = val
	}
	return out
}

// DefaultValue is the empty value of a kind.
func DefaultValue(kind model.FieldKind) any {
	switch kind {
	case model.KindBoolean:
		return false
	case model.KindNumber:
		return nil
	case model.KindMultiSelect:
		return []string{}
	default:
		return ""
	}
}

// InitialValue is the descriptor's own default when it is valid for the
// kind, otherwise DefaultValue.
func InitialValue(desc model.FieldDescriptor) any {
	if desc.Default != nil {
		if v, err := Coerce(desc, desc.Default); err == nil && v != nil {
			return v
		}
	}
	return DefaultValue(desc.Kind)
}

// Defaults builds fresh values for every field of a schema.
func Defaults(fields []model.FieldDescriptor) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		out[f.Name] = InitialValue(f)
	}
	return out
}

// Coerce interprets raw input (typically decoded JSON) as the stored value
// for desc. It never trims text and never turns an empty number into zero.
func Coerce(desc model.FieldDescriptor, raw any) (any, error) {
	switch desc.Kind {
	case model.KindText, model.KindTextarea:
		return coerceString(desc, raw)
	case model.KindNumber:
		return coerceNumber(desc, raw)
	case model.KindBoolean:
		return coerceBool(desc, raw)
	case model.KindDate:
		return coerceFormatted(desc, raw, validator.IsDate, "a date in YYYY-MM-DD format")
	case model.KindTime:
		return coerceFormatted(desc, raw, validator.IsClock, "a time in HH:MM format")
	case model.KindSelect:
		s, err := coerceString(desc, raw)
		if err != nil {
			return nil, err
		}
		if s != "" && !desc.HasChoice(s.(string)) {
			return nil, fmt.Errorf("%s must be one of: %s", desc.Name, strings.Join(desc.Choices, ", "))
		}
		return s, nil
	case model.KindMultiSelect:
		return coerceSet(desc, raw)
	default:
		return nil, fmt.Errorf("%s has unsupported field type %q", desc.Name, desc.Kind)
	}
}

func coerceString(desc model.FieldDescriptor, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return nil, fmt.Errorf("%s must be text", desc.Name)
	}
}

func coerceFormatted(desc model.FieldDescriptor, raw any, valid func(string) bool, want string) (any, error) {
	s, err := coerceString(desc, raw)
	if err != nil {
		return nil, err
	}
	if str := s.(string); str != "" && !valid(str) {
		return nil, fmt.Errorf("%s must be %s", desc.Name, want)
	}
	return s, nil
}

func coerceNumber(desc model.FieldDescriptor, raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", desc.Name)
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", desc.Name)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("%s must be a number", desc.Name)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a number", desc.Name)
	}
	return f, nil
}

func coerceBool(desc model.FieldDescriptor, raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", desc.Name)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s must be true or false", desc.Name)
	}
}

func coerceSet(desc model.FieldDescriptor, raw any) (any, error) {
	var items []string
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		items = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s must be a list of choices", desc.Name)
			}
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("%s must be a list of choices", desc.Name)
	}

	out := []string{}
	for _, item := range items {
		if !desc.HasChoice(item) {
			return nil, fmt.Errorf("%s contains %q which is not one of: %s", desc.Name, item, strings.Join(desc.Choices, ", "))
		}
		out = addMember(out, item)
	}
	return out, nil
}

// Read returns the stored value as the interpreter understands it. A select
// value outside the choices reads as unset, and so does anything of the
// wrong type.
func Read(desc model.FieldDescriptor, stored any) any {
	v, err := Coerce(desc, stored)
	if err == nil {
		return v
	}
	if desc.Kind == model.KindMultiSelect {
		if set, ok := stored.([]string); ok {
			kept := []string{}
			for _, s := range set {
				if desc.HasChoice(s) {
					kept = addMember(kept, s)
				}
			}
			return kept
		}
	}
	return DefaultValue(desc.Kind)
}

// IsSet reports whether the value satisfies a required descriptor. Booleans
// always hold a defined value.
func IsSet(desc model.FieldDescriptor, stored any) bool {
	v := Read(desc, stored)
	switch desc.Kind {
	case model.KindBoolean:
		return true
	case model.KindNumber:
		return v != nil
	case model.KindMultiSelect:
		set, _ := v.([]string)
		return len(set) > 0
	default:
		s, _ := v.(string)
		return strings.TrimSpace(s) != ""
	}
}

// Toggle adds or removes choice from a multi-select value. Adding a member
// that is present, or removing one that is absent, changes nothing. The
// current slice is never modified.
func Toggle(desc model.FieldDescriptor, current any, choice string, selected bool) ([]string, error) {
	if desc.Kind != model.KindMultiSelect {
		return nil, fmt.Errorf("%s is not a multi-select field", desc.Name)
	}
	if !desc.HasChoice(choice) {
		return nil, fmt.Errorf("%s must be one of: %s", desc.Name, strings.Join(desc.Choices, ", "))
	}
	set, _ := Read(desc, current).([]string)
	out := append([]string{}, set...)
	if selected {
		return addMember(out, choice), nil
	}
	for i, s := range out {
		if s == choice {
			return append(out[:i], out[i+1:]...), nil
		}
	}
	return out, nil
}

func addMember(set []string, item string) []string {
	for _, s := range set {
		if s == item {
			return set
		}
	}
	return append(set, item)
}

// RequiredErrors checks every required descriptor of a schema against values.
func RequiredErrors(fields []model.FieldDescriptor, values Values) validator.FieldErrors {
	errs := validator.FieldErrors{}
	for _, f := range fields {
		if f.Required && !IsSet(f, values[f.Name]) {
			errs.Add(f.Name, fmt.Sprintf("%s is required", f.Name))
		}
	}
	return errs
}
