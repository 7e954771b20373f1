package schema

import "bookingwizard/pkg/model"

// Control is one rendered field: the descriptor's presentation data, the
// value the interpreter reads for it and the current error, if any.
type Control struct {
	Name     string          `json:"name"`
	Kind     model.FieldKind `json:"type"`
	Label    string          `json:"label"`
	Required bool            `json:"required"`
	Choices  []string        `json:"choices,omitempty"`
	Value    any             `json:"value"`
	Error    string          `json:"error,omitempty"`
}

func Render(desc model.FieldDescriptor, stored any, errMsg string) Control {
	var choices []string
	if desc.Kind == model.KindSelect || desc.Kind == model.KindMultiSelect {
		choices = append([]string{}, desc.Choices...)
	}
	return Control{
		Name:     desc.Name,
		Kind:     desc.Kind,
		Label:    desc.Label,
		Required: desc.Required,
		Choices:  choices,
		Value:    Read(desc, stored),
		Error:    errMsg,
	}
}

func RenderAll(fields []model.FieldDescriptor, values Values, errs map[string]string) []Control {
	controls := make([]Control, 0, len(fields))
	for _, f := range fields {
		controls = append(controls, Render(f, values[f.Name], errs[f.Name]))
	}
	return controls
}
