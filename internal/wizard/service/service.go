package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"bookingwizard/internal/wizard/categories"
	"bookingwizard/internal/wizard/core"
	wizerrors "bookingwizard/internal/wizard/errors"
	"bookingwizard/internal/wizard/validator"
	apperrors "bookingwizard/pkg/errors"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"
)

const (
	msgFixFields    = "Please correct the highlighted fields."
	minSweepPeriod  = time.Second
	resourceWizard  = "Wizard"
	serviceCategory = "Category service"
)

type WizardService interface {
	Open(ctx context.Context) (core.Snapshot, error)
	Get(ctx context.Context, id string) (core.Snapshot, error)
	SelectCategory(ctx context.Context, id, slug string) (core.Snapshot, error)
	SetFields(ctx context.Context, id string, values map[string]any) (core.Snapshot, error)
	Toggle(ctx context.Context, id, field, choice string, selected bool) (core.Snapshot, error)
	Advance(ctx context.Context, id string) (core.Snapshot, error)
	Back(ctx context.Context, id string) (core.Snapshot, error)
	Submit(ctx context.Context, id string) (core.Snapshot, error)
	Cancel(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]model.BookingCategory, error)
	Stop()
}

type session struct {
	wizard   *core.Wizard
	lastSeen time.Time
}

type wizardService struct {
	source categories.Source
	deps   core.Dependencies
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWizardService keeps open wizards in memory. A wizard nobody touched for
// ttl is cancelled and forgotten by a background sweep.
func NewWizardService(source categories.Source, deps core.Dependencies, ttl time.Duration, log *logger.Logger) WizardService {
	s := newWizardService(source, deps, ttl, log, time.Now)
	go s.sweepLoop()
	return s
}

func newWizardService(source categories.Source, deps core.Dependencies, ttl time.Duration, log *logger.Logger, now func() time.Time) *wizardService {
	if deps.Logger == nil {
		deps.Logger = log
	}
	return &wizardService{
		source:   source,
		deps:     deps,
		ttl:      ttl,
		log:      log,
		now:      now,
		sessions: make(map[string]*session),
		stopCh:   make(chan struct{}),
	}
}

func (s *wizardService) Open(ctx context.Context) (core.Snapshot, error) {
	offered, err := s.source.List(ctx)
	if err != nil {
		s.log.Error("Failed to load booking categories", "error", err)
		return core.Snapshot{}, wrap(apperrors.Unavailable(serviceCategory), err)
	}

	w := core.New(offered, s.deps)

	s.mu.Lock()
	s.sessions[w.ID()] = &session{wizard: w, lastSeen: s.now()}
	open := len(s.sessions)
	s.mu.Unlock()

	s.log.Info("Wizard session opened", "wizard_id", w.ID(), "open_sessions", open)
	return w.Snapshot(), nil
}

func (s *wizardService) Get(_ context.Context, id string) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return s.finish(id, w, nil)
}

func (s *wizardService) SelectCategory(_ context.Context, id, slug string) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	if slug == "" {
		return w.Snapshot(), apperrors.InvalidInput("category is required")
	}
	return s.finish(id, w, w.SelectCategory(slug))
}

func (s *wizardService) SetFields(_ context.Context, id string, values map[string]any) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	if len(values) == 0 {
		return w.Snapshot(), apperrors.InvalidInput("at least one field is required")
	}
	return s.finish(id, w, w.SetFields(values))
}

func (s *wizardService) Toggle(_ context.Context, id, field, choice string, selected bool) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return s.finish(id, w, w.ToggleChoice(field, choice, selected))
}

func (s *wizardService) Advance(ctx context.Context, id string) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return s.finish(id, w, w.Advance(ctx))
}

func (s *wizardService) Back(_ context.Context, id string) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return s.finish(id, w, w.Back())
}

func (s *wizardService) Submit(ctx context.Context, id string) (core.Snapshot, error) {
	w, err := s.lookup(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	return s.finish(id, w, w.Submit(ctx))
}

// Cancel abandons the wizard. A confirmed wizard is only forgotten.
func (s *wizardService) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return apperrors.NotFoundWithID(resourceWizard, id)
	}
	sess.wizard.Cancel()
	s.log.Info("Wizard session closed", "wizard_id", id)
	return nil
}

func (s *wizardService) Categories(ctx context.Context) ([]model.BookingCategory, error) {
	list, err := s.source.List(ctx)
	if err != nil {
		s.log.Error("Failed to load booking categories", "error", err)
		return nil, wrap(apperrors.Unavailable(serviceCategory), err)
	}
	return list, nil
}

func (s *wizardService) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

func (s *wizardService) lookup(id string) (*core.Wizard, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Wizard ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFoundWithID(resourceWizard, id)
	}
	sess.lastSeen = s.now()
	return sess.wizard, nil
}

// finish takes the snapshot the caller gets back and drops the session once
// that snapshot shows a confirmed booking.
func (s *wizardService) finish(id string, w *core.Wizard, opErr error) (core.Snapshot, error) {
	snap := w.Snapshot()
	if snap.Step == core.StepConfirmation {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		s.log.Info("Wizard session completed", "wizard_id", id, "reference_number", referenceOf(snap))
	}
	return snap, translate(opErr)
}

func referenceOf(snap core.Snapshot) string {
	if snap.Booking == nil {
		return ""
	}
	return snap.Booking.ReferenceNumber
}

// translate maps wizard errors onto AppErrors. The original error stays
// reachable through Unwrap.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.FieldErrors
	if errors.As(err, &fieldErrs) {
		return wrap(apperrors.Validation(msgFixFields, fieldErrs.Details()), err)
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, wizerrors.ErrSubmissionFailed):
		if errors.As(err, &appErr) {
			out := *appErr
			out.Err = err
			return &out
		}
		return apperrors.SubmissionFailed("We could not create your booking. Please try again.", err)
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, wizerrors.ErrNoCategorySelected):
		return wrap(apperrors.Validation("Please select a booking type to continue.", nil), err)
	case errors.Is(err, wizerrors.ErrCategoryNotOffered):
		return wrap(apperrors.Validation(err.Error(), map[string]any{"category": "Booking type is not available"}), err)
	case errors.Is(err, wizerrors.ErrUnknownField):
		return wrap(apperrors.InvalidInput(err.Error()), err)
	case errors.Is(err, wizerrors.ErrWrongStep),
		errors.Is(err, wizerrors.ErrFieldNotEditable),
		errors.Is(err, wizerrors.ErrSubmissionInFlight):
		return wrap(apperrors.Conflict(err.Error()), err)
	case errors.Is(err, wizerrors.ErrWizardCancelled),
		errors.Is(err, wizerrors.ErrWizardCompleted):
		return wrap(apperrors.Gone(err.Error()), err)
	}
	return apperrors.Internal("An unexpected error occurred", err)
}

func wrap(appErr *apperrors.AppError, cause error) *apperrors.AppError {
	appErr.Err = cause
	return appErr
}
