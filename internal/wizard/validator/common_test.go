package validator

import (
	"strings"
	"testing"
	"time"

	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"
)

var now = time.Date(2026, 10, 18, 23, 15, 0, 0, time.UTC)

func date(offset int) string {
	return now.AddDate(0, 0, offset).Format(DateLayout)
}

func floatPtr(f float64) *float64 {
	return &f
}

func validContact() model.CommonFields {
	return model.CommonFields{
		ContactName:  "Dana Levi",
		ContactPhone: "+1 202 456 1111",
		ContactEmail: "dana@example.com",
	}
}

func TestCommonValidator_Validate(t *testing.T) {
	v := NewCommonValidator(logger.Discard()).WithClock(func() time.Time { return now })

	tests := []struct {
		name       string
		mutate     func(f *model.CommonFields)
		req        Requirements
		wantFields []string
		wantText   map[string]string
	}{
		{
			name:   "contact only",
			mutate: func(f *model.CommonFields) {},
		},
		{
			name: "blank contact",
			mutate: func(f *model.CommonFields) {
				f.ContactName = "   "
				f.ContactPhone = ""
				f.ContactEmail = ""
			},
			wantFields: []string{model.FieldContactEmail, model.FieldContactName, model.FieldContactPhone},
		},
		{
			name:       "phone with letters",
			mutate:     func(f *model.CommonFields) { f.ContactPhone = "call 555" },
			wantFields: []string{model.FieldContactPhone},
		},
		{
			name:       "phone of separators only",
			mutate:     func(f *model.CommonFields) { f.ContactPhone = "+ ( ) -" },
			wantFields: []string{model.FieldContactPhone},
		},
		{
			name:   "phone with separators",
			mutate: func(f *model.CommonFields) { f.ContactPhone = "(202) 456-1111" },
		},
		{
			name:       "email without domain",
			mutate:     func(f *model.CommonFields) { f.ContactEmail = "dana@" },
			wantFields: []string{model.FieldContactEmail},
		},
		{
			name:       "start date yesterday",
			mutate:     func(f *model.CommonFields) { f.StartDate = date(-1); f.EndDate = date(1) },
			req:        Requirements{DateRange: true},
			wantFields: []string{model.FieldStartDate},
			wantText:   map[string]string{model.FieldStartDate: "must be in the future"},
		},
		{
			name:       "start date today",
			mutate:     func(f *model.CommonFields) { f.StartDate = date(0); f.EndDate = date(1) },
			req:        Requirements{DateRange: true},
			wantFields: []string{model.FieldStartDate},
		},
		{
			name:   "tomorrow to day after",
			mutate: func(f *model.CommonFields) { f.StartDate = date(1); f.EndDate = date(2) },
			req:    Requirements{DateRange: true},
		},
		{
			name:   "single day stay",
			mutate: func(f *model.CommonFields) { f.StartDate = date(1); f.EndDate = date(1) },
			req:    Requirements{DateRange: true},
		},
		{
			name:       "end before start",
			mutate:     func(f *model.CommonFields) { f.StartDate = date(3); f.EndDate = date(2) },
			req:        Requirements{DateRange: true},
			wantFields: []string{model.FieldEndDate},
		},
		{
			name:       "dates required",
			mutate:     func(f *model.CommonFields) {},
			req:        Requirements{DateRange: true},
			wantFields: []string{model.FieldEndDate, model.FieldStartDate},
		},
		{
			name:       "malformed date",
			mutate:     func(f *model.CommonFields) { f.StartDate = "2026-13-01"; f.EndDate = date(2) },
			req:        Requirements{DateRange: true},
			wantFields: []string{model.FieldStartDate},
		},
		{
			name:       "start time required",
			mutate:     func(f *model.CommonFields) {},
			req:        Requirements{TimeSlot: true},
			wantFields: []string{model.FieldStartTime},
		},
		{
			name:   "start time without end",
			mutate: func(f *model.CommonFields) { f.StartTime = "09:00" },
			req:    Requirements{TimeSlot: true},
		},
		{
			name:       "end time not after start",
			mutate:     func(f *model.CommonFields) { f.StartTime = "09:00"; f.EndTime = "09:00" },
			req:        Requirements{TimeSlot: true},
			wantFields: []string{model.FieldEndTime},
		},
		{
			name:       "malformed time",
			mutate:     func(f *model.CommonFields) { f.StartTime = "9am" },
			req:        Requirements{TimeSlot: true},
			wantFields: []string{model.FieldStartTime},
		},
		{
			name:       "guest count required",
			mutate:     func(f *model.CommonFields) {},
			req:        Requirements{GuestCount: true},
			wantFields: []string{model.FieldGuestCount},
		},
		{
			name:       "guest count zero",
			mutate:     func(f *model.CommonFields) { f.GuestCount = floatPtr(0) },
			req:        Requirements{GuestCount: true},
			wantFields: []string{model.FieldGuestCount},
		},
		{
			name:       "guest count fractional",
			mutate:     func(f *model.CommonFields) { f.GuestCount = floatPtr(1.5) },
			wantFields: []string{model.FieldGuestCount},
		},
		{
			name:   "guest count set",
			mutate: func(f *model.CommonFields) { f.GuestCount = floatPtr(3) },
			req:    Requirements{GuestCount: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validContact()
			tt.mutate(&fields)

			errs := v.Validate(fields, tt.req)

			got := errs.Fields()
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Fatalf("Validate() fields = %v, want %v (%v)", got, tt.wantFields, errs)
			}
			for field, text := range tt.wantText {
				if !strings.Contains(errs[field], text) {
					t.Errorf("error on %s = %q, want it to contain %q", field, errs[field], text)
				}
			}
		})
	}
}

func TestToday_UsesCalendarDayOfClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	late := time.Date(2026, 10, 18, 23, 30, 0, 0, loc)

	got := Today(late)
	want := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Today() = %v, want %v", got, want)
	}
}
