package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"bookingwizard/internal/wizard/categories"
	wizerrors "bookingwizard/internal/wizard/errors"
	"bookingwizard/internal/wizard/pricing"
	"bookingwizard/internal/wizard/schema"
	"bookingwizard/internal/wizard/submission"
	"bookingwizard/internal/wizard/validator"
	apperrors "bookingwizard/pkg/errors"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/google/uuid"
)

const (
	msgSelectCategory   = "Please select a booking type to continue."
	msgSubmissionFailed = "We could not create your booking. Please try again."
)

type CommonRules interface {
	Validate(fields model.CommonFields, req validator.Requirements) validator.FieldErrors
}

type CategoryRules interface {
	Validate(category model.BookingCategory, values schema.Values) (validator.FieldErrors, error)
}

var (
	_ CommonRules   = (*validator.CommonValidator)(nil)
	_ CategoryRules = (*categories.Validator)(nil)
)

type Dependencies struct {
	Common             CommonRules
	Fields             CategoryRules
	Submitter          submission.Submitter
	Publisher          submission.Publisher
	Logger             *logger.Logger
	CancellationPolicy string
	DefaultCurrency    string
}

// Wizard drives one booking from category selection to confirmation. All
// methods are safe for concurrent use; the submission call runs without
// holding the lock.
type Wizard struct {
	mu           sync.Mutex
	state        State
	deps         Dependencies
	transitions  map[Step]Transition
	cancelSubmit context.CancelFunc
	logger       *logger.Logger
}

// New opens a wizard in type-selection offering the given categories.
func New(offered []model.BookingCategory, deps Dependencies) *Wizard {
	if deps.Publisher == nil {
		deps.Publisher = submission.NopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	id := uuid.NewString()
	w := &Wizard{
		state: State{
			ID:         id,
			Step:       StepTypeSelection,
			Categories: append([]model.BookingCategory(nil), offered...),
			Values:     schema.Values{},
			Pricing:    pricing.Input{Currency: deps.DefaultCurrency},
			Errors:     validator.FieldErrors{},
		},
		deps:        deps,
		transitions: forwardTransitions(deps),
		logger:      deps.Logger.With("wizard_id", id),
	}
	w.logger.Info("Wizard opened", "categories", len(offered))
	return w
}

func (w *Wizard) ID() string {
	return w.state.ID
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.snapshot()
}

// Controls renders the active category's schema with current values and
// errors. It is empty until a category is selected.
func (w *Wizard) Controls() []schema.Control {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Category == nil {
		return nil
	}
	return schema.RenderAll(w.state.Category.Schema, w.state.Values, w.state.Errors)
}

// checkOpen rejects every operation on a finished wizard. Must hold mu.
func (w *Wizard) checkOpen() error {
	switch {
	case w.state.Cancelled:
		return wizerrors.ErrWizardCancelled
	case w.state.Step == StepConfirmation:
		return wizerrors.ErrWizardCompleted
	case w.state.Submitting:
		return wizerrors.ErrSubmissionInFlight
	}
	return nil
}

// SelectCategory picks the booking type and moves to details. Selecting a
// different category starts its values from the schema defaults; selecting
// the active one again keeps what was entered.
func (w *Wizard) SelectCategory(slug string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state.Step != StepTypeSelection {
		return fmt.Errorf("%w: cannot select a category in %s", wizerrors.ErrWrongStep, w.state.Step)
	}

	category, ok := w.state.findCategory(slug)
	if !ok {
		w.state.FormError = fmt.Sprintf("Booking type %q is not available.", slug)
		return fmt.Errorf("%w: %s", wizerrors.ErrCategoryNotOffered, slug)
	}
	if _, err := categories.ParseSlug(category.Slug); err != nil {
		w.logger.Error("Selected category has no field set", "category", slug, "error", err)
		w.state.FormError = fmt.Sprintf("Booking type %q is not supported yet.", category.Name)
		return apperrors.Configuration(w.state.FormError, err)
	}

	if w.state.Category == nil || w.state.Category.Slug != category.Slug {
		w.state.Values = schema.Defaults(category.Schema)
	}
	w.state.Category = &category
	w.state.clearErrors()
	w.state.Step = StepDetails

	w.logger.Info("Category selected", "category", category.Slug)
	return nil
}

// SetField changes one value. A successful change clears that field's error.
// Values the field cannot hold come back as FieldErrors and are also shown
// next to the field.
func (w *Wizard) SetField(name string, value any) error {
	return w.SetFields(map[string]any{name: value})
}

// SetFields applies several changes at once. If any name is unknown or not
// editable in the current step nothing is applied.
func (w *Wizard) SetFields(values map[string]any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.state.editable(name); err != nil {
			return err
		}
	}

	rejected := validator.FieldErrors{}
	for _, name := range names {
		if err := w.state.apply(name, values[name]); err != nil {
			rejected.Add(name, err.Error())
			continue
		}
		delete(w.state.Errors, name)
	}

	for field, message := range rejected {
		w.state.Errors[field] = message
	}
	return rejected.OrNil()
}

// ToggleChoice adds or removes one member of a multi-select field.
func (w *Wizard) ToggleChoice(name, choice string, selected bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}
	if err := w.state.editable(name); err != nil {
		return err
	}

	desc, ok := w.state.Category.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", wizerrors.ErrUnknownField, name)
	}
	set, err := schema.Toggle(desc, w.state.Values[name], choice, selected)
	if err != nil {
		w.state.Errors[name] = err.Error()
		return validator.FieldErrors{name: err.Error()}
	}
	w.state.Values[name] = set
	delete(w.state.Errors, name)
	return nil
}

// Advance requests the next step. Guards are evaluated on every call. In
// review, advancing submits the booking.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()

	if err := w.checkOpen(); err != nil {
		w.mu.Unlock()
		return err
	}

	switch w.state.Step {
	case StepTypeSelection:
		defer w.mu.Unlock()
		if w.state.Category == nil {
			w.state.FormError = msgSelectCategory
			return wizerrors.ErrNoCategorySelected
		}
		w.state.clearErrors()
		w.state.Step = StepDetails
		return nil
	case StepReview:
		w.mu.Unlock()
		return w.Submit(ctx)
	}

	defer w.mu.Unlock()
	return w.advanceGuarded()
}

// advanceGuarded runs the current step's forward transition. Must hold mu.
func (w *Wizard) advanceGuarded() error {
	t, ok := w.transitions[w.state.Step]
	if !ok {
		return fmt.Errorf("%w: cannot advance from %s", wizerrors.ErrWrongStep, w.state.Step)
	}

	errs, err := t.Run(&w.state, w.logger)
	if err != nil {
		w.logger.Error("Transition could not be evaluated",
			"from", t.From.String(),
			"to", t.To.String(),
			"error", err,
		)
		w.state.FormError = "This booking type cannot be validated right now."
		return apperrors.Configuration(w.state.FormError, err)
	}
	if len(errs) > 0 {
		w.state.Errors = errs
		w.state.FormError = ""
		return errs
	}

	if t.To == StepReview {
		breakdown, _ := pricing.Parse(w.state.Pricing)
		w.state.Breakdown = &breakdown
		w.state.Pricing.Currency = breakdown.Currency
		w.state.IdempotencyKey = uuid.NewString()
	}

	w.state.clearErrors()
	w.state.Step = t.To
	w.logger.Info("Wizard advanced", "from", t.From.String(), "to", t.To.String())
	return nil
}

// Back returns to the previous step, clearing only the errors.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state.Step == StepTypeSelection {
		return fmt.Errorf("%w: already at the first step", wizerrors.ErrWrongStep)
	}

	from := w.state.Step
	w.state.Step--
	w.state.clearErrors()
	w.logger.Info("Wizard went back", "from", from.String(), "to", w.state.Step.String())
	return nil
}

// Submit sends the booking. The wizard stays in review with a top-level
// error when the booking service fails, and moves to confirmation when it
// answers with a record.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()

	if err := w.checkOpen(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.state.Step != StepReview || w.state.Breakdown == nil {
		w.mu.Unlock()
		return fmt.Errorf("%w: cannot submit in %s", wizerrors.ErrWrongStep, w.state.Step)
	}

	req := submission.BuildRequest(submission.Draft{
		Category: *w.state.Category,
		Common:   w.state.Common,
		Values:   w.state.Values,
		Pricing:  *w.state.Breakdown,
	}, w.deps.CancellationPolicy)
	key := w.state.IdempotencyKey

	submitCtx, cancel := context.WithCancel(ctx)
	w.cancelSubmit = cancel
	w.state.Submitting = true
	w.state.FormError = ""
	w.mu.Unlock()

	w.logger.Info("Submitting booking", "category", req.BookingType, "idempotency_key", key)
	record, err := w.deps.Submitter.Submit(submitCtx, key, req)
	cancel()

	w.mu.Lock()
	w.state.Submitting = false
	w.cancelSubmit = nil

	if w.state.Cancelled {
		w.mu.Unlock()
		w.logger.Info("Submission finished after cancel", "error", err)
		return wizerrors.ErrWizardCancelled
	}

	if err == nil && (record == nil || strings.TrimSpace(record.ReferenceNumber) == "") {
		err = fmt.Errorf("booking service answered without a reference number")
	}
	if err != nil {
		w.state.FormError = submissionMessage(err)
		w.mu.Unlock()
		w.logger.Warn("Booking submission failed", "error", err)
		return fmt.Errorf("%w: %w", wizerrors.ErrSubmissionFailed, err)
	}

	w.state.Record = record
	w.state.Step = StepConfirmation
	event := model.BookingCreatedEvent{
		WizardID:        w.state.ID,
		ReferenceNumber: record.ReferenceNumber,
		Status:          record.Status,
		BookingType:     req.BookingType,
		TotalPrice:      req.TotalPrice,
		Currency:        req.Currency,
	}
	w.mu.Unlock()

	w.logger.Info("Booking confirmed", "reference_number", record.ReferenceNumber, "status", record.Status)
	if err := w.deps.Publisher.PublishBookingCreated(context.WithoutCancel(ctx), event); err != nil {
		w.logger.Error("Failed to publish booking event",
			"reference_number", record.ReferenceNumber,
			"error", err,
		)
	}
	return nil
}

func submissionMessage(err error) string {
	if apperrors.IsAppError(err) {
		if msg := apperrors.AsAppError(err).Message; msg != "" {
			return msg
		}
	}
	return msgSubmissionFailed
}

// Cancel abandons the wizard and aborts an in-flight submission. It has no
// effect once the booking is confirmed.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Step == StepConfirmation || w.state.Cancelled {
		return
	}
	w.state.Cancelled = true
	if w.cancelSubmit != nil {
		w.cancelSubmit()
	}
	w.logger.Info("Wizard cancelled", "step", w.state.Step.String())
}

// Step reports the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step
}
