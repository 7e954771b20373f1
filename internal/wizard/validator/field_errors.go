package validator

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to the single message shown next to it. A
// missing key means the field is currently valid.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return ""
	}
	var messages []string
	for _, field := range f.Fields() {
		messages = append(messages, fmt.Sprintf("%s: %s", field, f[field]))
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(f), strings.Join(messages, "; "))
}

// Add records message for field unless the field already has one. The
// first failing rule is the one reported.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = message
}

func (f FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		f.Add(field, message)
	}
}

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Fields returns the failing field names in a stable order.
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (f FieldErrors) Details() map[string]any {
	details := make(map[string]any, len(f))
	for field, message := range f {
		details[field] = message
	}
	return details
}

// OrNil returns nil for an empty set so callers can return it as an error.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}
