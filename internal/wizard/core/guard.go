package core

import (
	"fmt"

	"bookingwizard/internal/wizard/pricing"
	"bookingwizard/internal/wizard/schema"
	"bookingwizard/internal/wizard/validator"
	"bookingwizard/pkg/logger"
)

// Guard is one named check of a transition. Field errors block the
// transition; a returned error means the check itself could not run.
type Guard struct {
	Name  string
	Check func(s *State) (validator.FieldErrors, error)
}

func NewGuard(name string, check func(s *State) (validator.FieldErrors, error)) Guard {
	return Guard{Name: name, Check: check}
}

// Transition is a forward move between two adjacent steps.
type Transition struct {
	From   Step
	To     Step
	Guards []Guard
}

// Run evaluates every guard and merges their errors. Guards never
// short-circuit on field errors so the user sees all problems at once.
func (t Transition) Run(s *State, log *logger.Logger) (validator.FieldErrors, error) {
	errs := validator.FieldErrors{}
	for _, g := range t.Guards {
		result, err := g.Check(s)
		if err != nil {
			return errs, fmt.Errorf("%s guard failed: %w", g.Name, err)
		}
		if len(result) > 0 {
			log.Debug("Guard blocked transition",
				"from", t.From.String(),
				"to", t.To.String(),
				"guard", g.Name,
				"fields", result.Fields(),
			)
		}
		errs.Merge(result)
	}
	return errs, nil
}

func forwardTransitions(deps Dependencies) map[Step]Transition {
	return map[Step]Transition{
		StepDetails: {
			From: StepDetails,
			To:   StepPricing,
			Guards: []Guard{
				NewGuard("common-fields", func(s *State) (validator.FieldErrors, error) {
					return deps.Common.Validate(s.Common, validator.RequirementsOf(*s.Category)), nil
				}),
				NewGuard("schema-required", func(s *State) (validator.FieldErrors, error) {
					return schema.RequiredErrors(s.Category.Schema, s.Values), nil
				}),
				NewGuard("category-rules", func(s *State) (validator.FieldErrors, error) {
					return deps.Fields.Validate(*s.Category, s.Values)
				}),
			},
		},
		StepPricing: {
			From: StepPricing,
			To:   StepReview,
			Guards: []Guard{
				NewGuard("pricing", func(s *State) (validator.FieldErrors, error) {
					_, errs := pricing.Parse(s.Pricing)
					return errs, nil
				}),
			},
		},
	}
}
