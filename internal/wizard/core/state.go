package core

import (
	"bookingwizard/internal/wizard/pricing"
	"bookingwizard/internal/wizard/schema"
	"bookingwizard/internal/wizard/validator"
	"bookingwizard/pkg/model"
)

// State is everything one wizard has accumulated. It is owned by a Wizard
// and only changed under its lock.
type State struct {
	ID             string
	Step           Step
	Categories     []model.BookingCategory
	Category       *model.BookingCategory
	Common         model.CommonFields
	Values         schema.Values
	Pricing        pricing.Input
	Breakdown      *pricing.Breakdown
	Errors         validator.FieldErrors
	FormError      string
	Submitting     bool
	IdempotencyKey string
	Record         *model.BookingRecord
	Cancelled      bool
}

func (s *State) clearErrors() {
	s.Errors = validator.FieldErrors{}
	s.FormError = ""
}

func (s *State) findCategory(slug string) (model.BookingCategory, bool) {
	for _, c := range s.Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return model.BookingCategory{}, false
}

// Snapshot is a read-only copy of a wizard's state, shaped for display.
type Snapshot struct {
	ID         string                  `json:"id"`
	Step       Step                    `json:"step"`
	Categories []model.BookingCategory `json:"categories,omitempty"`
	Category   *model.BookingCategory  `json:"category,omitempty"`
	Common     model.CommonFields      `json:"common"`
	Values     schema.Values           `json:"category_data"`
	Controls   []schema.Control        `json:"controls,omitempty"`
	Pricing    pricing.Input           `json:"pricing"`
	Summary    *pricing.Summary        `json:"summary,omitempty"`
	Errors     validator.FieldErrors   `json:"errors,omitempty"`
	FormError  string                  `json:"form_error,omitempty"`
	Submitting bool                    `json:"submitting"`
	Booking    *model.BookingRecord    `json:"booking,omitempty"`
	Cancelled  bool                    `json:"cancelled,omitempty"`
}

func (s *State) snapshot() Snapshot {
	snap := Snapshot{
		ID:         s.ID,
		Step:       s.Step,
		Categories: append([]model.BookingCategory(nil), s.Categories...),
		Common:     s.Common,
		Values:     s.Values.Clone(),
		Pricing:    s.Pricing,
		Errors:     validator.FieldErrors{},
		FormError:  s.FormError,
		Submitting: s.Submitting,
		Cancelled:  s.Cancelled,
	}
	if s.Common.GuestCount != nil {
		n := *s.Common.GuestCount
		snap.Common.GuestCount = &n
	}
	snap.Errors.Merge(s.Errors)
	if s.Category != nil {
		c := *s.Category
		snap.Category = &c
		snap.Controls = schema.RenderAll(c.Schema, s.Values, s.Errors)
	}
	if s.Breakdown != nil {
		summary := s.Breakdown.Summary()
		snap.Summary = &summary
	}
	if s.Record != nil {
		r := *s.Record
		snap.Booking = &r
	}
	return snap
}
