package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"bookingwizard/pkg/model"
)

var (
	roomType  = model.FieldDescriptor{Name: "room_type", Kind: model.KindSelect, Required: true, Choices: []string{"single", "double"}}
	amenities = model.FieldDescriptor{Name: "amenities", Kind: model.KindMultiSelect, Choices: []string{"crib", "parking", "pool"}}
	adults    = model.FieldDescriptor{Name: "adults", Kind: model.KindNumber, Required: true}
	pets      = model.FieldDescriptor{Name: "pets", Kind: model.KindBoolean, Required: true}
	notes     = model.FieldDescriptor{Name: "notes", Kind: model.KindTextarea}
	arrival   = model.FieldDescriptor{Name: "arrival", Kind: model.KindDate, Required: true}
	slot      = model.FieldDescriptor{Name: "slot", Kind: model.KindTime}
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		kind model.FieldKind
		want any
	}{
		{model.KindBoolean, false},
		{model.KindNumber, nil},
		{model.KindMultiSelect, []string{}},
		{model.KindText, ""},
		{model.KindTextarea, ""},
		{model.KindSelect, ""},
		{model.KindDate, ""},
		{model.KindTime, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := DefaultValue(tt.kind); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultValue(%s) = %#v, want %#v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestInitialValue(t *testing.T) {
	withDefault := roomType
	withDefault.Default = "double"
	badDefault := roomType
	badDefault.Default = "penthouse"
	numberDefault := adults
	numberDefault.Default = 2

	tests := []struct {
		name string
		desc model.FieldDescriptor
		want any
	}{
		{"valid default wins", withDefault, "double"},
		{"invalid default ignored", badDefault, ""},
		{"number default", numberDefault, 2.0},
		{"no default", adults, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialValue(tt.desc); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InitialValue() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		desc    model.FieldDescriptor
		raw     any
		want    any
		wantErr bool
	}{
		{name: "number from float", desc: adults, raw: 2.0, want: 2.0},
		{name: "number from int", desc: adults, raw: 3, want: 3.0},
		{name: "number from json number", desc: adults, raw: json.Number("4"), want: 4.0},
		{name: "number from string", desc: adults, raw: " 5 ", want: 5.0},
		{name: "empty number stays unset", desc: adults, raw: "", want: nil},
		{name: "null number", desc: adults, raw: nil, want: nil},
		{name: "number from word", desc: adults, raw: "two", wantErr: true},
		{name: "boolean", desc: pets, raw: true, want: true},
		{name: "boolean from string", desc: pets, raw: "false", want: false},
		{name: "boolean from number", desc: pets, raw: 1.0, wantErr: true},
		{name: "select in choices", desc: roomType, raw: "single", want: "single"},
		{name: "select cleared", desc: roomType, raw: "", want: ""},
		{name: "select outside choices", desc: roomType, raw: "suite", wantErr: true},
		{name: "multi from any slice", desc: amenities, raw: []any{"pool", "crib", "pool"}, want: []string{"pool", "crib"}},
		{name: "multi unknown member", desc: amenities, raw: []string{"spa"}, wantErr: true},
		{name: "multi null", desc: amenities, raw: nil, want: []string{}},
		{name: "text kept as typed", desc: notes, raw: "  late  ", want: "  late  "},
		{name: "text from number", desc: notes, raw: 1.0, wantErr: true},
		{name: "date", desc: arrival, raw: "2026-11-01", want: "2026-11-01"},
		{name: "malformed date", desc: arrival, raw: "01/11/2026", wantErr: true},
		{name: "time", desc: slot, raw: "14:30", want: "14:30"},
		{name: "malformed time", desc: slot, raw: "2pm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.desc, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Coerce() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRead_InvalidStoredValues(t *testing.T) {
	if got := Read(roomType, "suite"); got != "" {
		t.Errorf("Read(select outside choices) = %#v, want empty", got)
	}
	if got := Read(adults, "many"); got != nil {
		t.Errorf("Read(bad number) = %#v, want nil", got)
	}
	got := Read(amenities, []string{"crib", "spa", "crib"})
	if !reflect.DeepEqual(got, []string{"crib"}) {
		t.Errorf("Read(multi with unknown) = %#v, want [crib]", got)
	}
}

// Every value the interpreter produces reads back unchanged.
func TestReadRoundTrip(t *testing.T) {
	fields := []model.FieldDescriptor{roomType, amenities, adults, pets, notes, arrival, slot}
	inputs := map[string][]any{
		"room_type": {"", "single", "double"},
		"amenities": {[]string{}, []string{"crib"}, []any{"parking", "pool"}},
		"adults":    {nil, 1.0, "3"},
		"pets":      {true, false},
		"notes":     {"", "ground floor please"},
		"arrival":   {"", "2026-11-01"},
		"slot":      {"", "07:45"},
	}

	for _, desc := range fields {
		for _, raw := range inputs[desc.Name] {
			stored, err := Coerce(desc, raw)
			if err != nil {
				t.Fatalf("Coerce(%s, %#v) error = %v", desc.Name, raw, err)
			}
			if got := Read(desc, stored); !reflect.DeepEqual(got, stored) {
				t.Errorf("Read(%s, %#v) = %#v, want %#v", desc.Name, stored, got, stored)
			}
		}
	}
}

func TestToggle(t *testing.T) {
	set, err := Toggle(amenities, []string{}, "crib", true)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	again, _ := Toggle(amenities, set, "crib", true)
	if !reflect.DeepEqual(again, []string{"crib"}) {
		t.Errorf("adding twice = %v, want [crib]", again)
	}

	removed, _ := Toggle(amenities, again, "crib", false)
	removedTwice, _ := Toggle(amenities, removed, "crib", false)
	if len(removed) != 0 || len(removedTwice) != 0 {
		t.Errorf("removing = %v then %v, want empty", removed, removedTwice)
	}

	original := []string{"crib", "pool"}
	_, _ = Toggle(amenities, original, "crib", false)
	if !reflect.DeepEqual(original, []string{"crib", "pool"}) {
		t.Errorf("Toggle modified its input: %v", original)
	}

	if _, err := Toggle(amenities, nil, "spa", true); err == nil {
		t.Error("expected error for choice outside the list")
	}
	if _, err := Toggle(roomType, nil, "single", true); err == nil {
		t.Error("expected error for non multi-select field")
	}
}

func TestIsSetAndRequiredErrors(t *testing.T) {
	fields := []model.FieldDescriptor{roomType, amenities, adults, pets, notes, arrival}
	values := Defaults(fields)

	errs := RequiredErrors(fields, values)
	want := []string{"adults", "arrival", "room_type"}
	if !reflect.DeepEqual(errs.Fields(), want) {
		t.Errorf("RequiredErrors() = %v, want %v", errs.Fields(), want)
	}

	values["adults"] = 0.0
	values["room_type"] = "single"
	values["arrival"] = "   "
	errs = RequiredErrors(fields, values)
	if !reflect.DeepEqual(errs.Fields(), []string{"arrival"}) {
		t.Errorf("RequiredErrors() = %v, want [arrival]", errs.Fields())
	}
}

func TestRenderAll(t *testing.T) {
	fields := []model.FieldDescriptor{roomType, amenities}
	values := Values{"room_type": "suite", "amenities": []string{"pool"}}

	controls := RenderAll(fields, values, map[string]string{"room_type": "room_type is required"})

	if len(controls) != 2 {
		t.Fatalf("RenderAll() returned %d controls", len(controls))
	}
	if controls[0].Value != "" || controls[0].Error != "room_type is required" {
		t.Errorf("room_type control = %+v", controls[0])
	}
	if !reflect.DeepEqual(controls[1].Value, []string{"pool"}) || controls[1].Error != "" {
		t.Errorf("amenities control = %+v", controls[1])
	}
	if !reflect.DeepEqual(controls[1].Choices, amenities.Choices) {
		t.Errorf("amenities choices = %v", controls[1].Choices)
	}
}
