package core

import (
	"encoding/json"
	"fmt"
)

// Step is a stage of the wizard. Steps are ordered; the zero value is the
// first one.
type Step int

const (
	StepTypeSelection Step = iota
	StepDetails
	StepPricing
	StepReview
	StepConfirmation
)

var stepNames = map[Step]string{
	StepTypeSelection: "type-selection",
	StepDetails:       "details",
	StepPricing:       "pricing",
	StepReview:        "review",
	StepConfirmation:  "confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for step, n := range stepNames {
		if n == name {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", name)
}
