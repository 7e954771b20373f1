package core

import (
	"encoding/json"
	"fmt"
	"strconv"

	wizerrors "bookingwizard/internal/wizard/errors"
	"bookingwizard/internal/wizard/pricing"
	"bookingwizard/internal/wizard/schema"
	"bookingwizard/pkg/model"
)

var guestCountField = model.FieldDescriptor{
	Name: model.FieldGuestCount,
	Kind: model.KindNumber,
}

func commonString(c *model.CommonFields, name string) (*string, bool) {
	switch name {
	case model.FieldContactName:
		return &c.ContactName, true
	case model.FieldContactPhone:
		return &c.ContactPhone, true
	case model.FieldContactEmail:
		return &c.ContactEmail, true
	case model.FieldStartDate:
		return &c.StartDate, true
	case model.FieldEndDate:
		return &c.EndDate, true
	case model.FieldStartTime:
		return &c.StartTime, true
	case model.FieldEndTime:
		return &c.EndTime, true
	case model.FieldSpecialRequests:
		return &c.SpecialRequests, true
	case model.FieldListing:
		return &c.Listing, true
	}
	return nil, false
}

func isCommonField(name string) bool {
	var probe model.CommonFields
	_, ok := commonString(&probe, name)
	return ok || name == model.FieldGuestCount
}

func pricingString(in *pricing.Input, name string) (*string, bool) {
	switch name {
	case pricing.FieldBasePrice:
		return &in.BasePrice, true
	case pricing.FieldServiceFees:
		return &in.ServiceFees, true
	case pricing.FieldTaxes:
		return &in.Taxes, true
	case pricing.FieldDiscount:
		return &in.Discount, true
	case pricing.FieldCurrency:
		return &in.Currency, true
	}
	return nil, false
}

// editable resolves which part of the state owns name and whether it may be
// changed in the current step.
func (s *State) editable(name string) error {
	var probe pricing.Input
	_, isPricing := pricingString(&probe, name)

	isCategory := false
	if s.Category != nil {
		_, isCategory = s.Category.Field(name)
	}

	switch {
	case isCommonField(name) || isCategory:
		if s.Step != StepDetails {
			return fmt.Errorf("%w: %s", wizerrors.ErrFieldNotEditable, name)
		}
	case isPricing:
		if s.Step != StepPricing {
			return fmt.Errorf("%w: %s", wizerrors.ErrFieldNotEditable, name)
		}
	default:
		return fmt.Errorf("%w: %s", wizerrors.ErrUnknownField, name)
	}
	return nil
}

// apply stores raw under name. The caller has already checked editable.
// A value the field cannot hold is reported and nothing is stored.
func (s *State) apply(name string, raw any) error {
	if s.Category != nil {
		if desc, ok := s.Category.Field(name); ok {
			v, err := schema.Coerce(desc, raw)
			if err != nil {
				return err
			}
			s.Values[name] = v
			return nil
		}
	}

	if name == model.FieldGuestCount {
		v, err := schema.Coerce(guestCountField, raw)
		if err != nil {
			return err
		}
		if v == nil {
			s.Common.GuestCount = nil
		} else {
			n := v.(float64)
			s.Common.GuestCount = &n
		}
		return nil
	}

	if target, ok := commonString(&s.Common, name); ok {
		str, err := asText(name, raw)
		if err != nil {
			return err
		}
		*target = str
		return nil
	}

	if target, ok := pricingString(&s.Pricing, name); ok {
		str, err := asAmount(name, raw)
		if err != nil {
			return err
		}
		*target = str
		s.Breakdown = nil
		return nil
	}

	return fmt.Errorf("%w: %s", wizerrors.ErrUnknownField, name)
}

func asText(name string, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s must be text", name)
	}
}

// asAmount keeps pricing input as typed. Numbers sent by JSON clients are
// accepted in their shortest form.
func asAmount(name string, raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", fmt.Errorf("%s must be text or a number", name)
	}
}
