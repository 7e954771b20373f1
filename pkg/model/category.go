package model

type FieldKind string

const (
	KindText        FieldKind = "text"
	KindNumber      FieldKind = "number"
	KindBoolean     FieldKind = "boolean"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multi-select"
	KindDate        FieldKind = "date"
	KindTime        FieldKind = "time"
	KindTextarea    FieldKind = "textarea"
)

// FieldDescriptor declares one editable field of a category schema.
// Choices is only meaningful for select and multi-select kinds.
type FieldDescriptor struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Choices  []string  `json:"choices,omitempty"`
	Default  any       `json:"default,omitempty"`
}

func (d FieldDescriptor) HasChoice(value string) bool {
	for _, c := range d.Choices {
		if c == value {
			return true
		}
	}
	return false
}

type BookingCategory struct {
	ID                 string            `json:"id"`
	Slug               string            `json:"slug"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	RequiresDateRange  bool              `json:"requires_date_range"`
	RequiresTimeSlot   bool              `json:"requires_time_slot"`
	RequiresGuestCount bool              `json:"requires_guest_count"`
	Schema             []FieldDescriptor `json:"schema"`
}

func (c BookingCategory) Field(name string) (FieldDescriptor, bool) {
	for _, d := range c.Schema {
		if d.Name == name {
			return d, true
		}
	}
	return FieldDescriptor{}, false
}
