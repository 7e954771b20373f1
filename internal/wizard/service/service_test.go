package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"bookingwizard/internal/wizard/categories"
	"bookingwizard/internal/wizard/core"
	wizerrors "bookingwizard/internal/wizard/errors"
	"bookingwizard/internal/wizard/validator"
	apperrors "bookingwizard/pkg/errors"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type fakeSource struct {
	list []model.BookingCategory
	err  error
}

func (f *fakeSource) List(context.Context) ([]model.BookingCategory, error) {
	return f.list, f.err
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSubmitter) Submit(context.Context, string, *model.BookingRequest) (*model.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.BookingRecord{ReferenceNumber: "BK-2001", Status: "confirmed"}, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T, source categories.Source, sub *fakeSubmitter) (*wizardService, *clock) {
	t.Helper()
	log := logger.Discard()
	clk := &clock{now: fixedNow}
	deps := core.Dependencies{
		Common:             validator.NewCommonValidator(log).WithClock(func() time.Time { return fixedNow }),
		Fields:             categories.NewValidator(log),
		Submitter:          sub,
		CancellationPolicy: "moderate",
		DefaultCurrency:    "USD",
	}
	return newWizardService(source, deps, time.Minute, log, clk.Now), clk
}

func day(offset int) string {
	return fixedNow.AddDate(0, 0, offset).Format(validator.DateLayout)
}

func hotelDetails() map[string]any {
	return map[string]any{
		model.FieldContactName:  "Noa Cohen",
		model.FieldContactPhone: "+1 202 456 1111",
		model.FieldContactEmail: "noa@example.com",
		model.FieldStartDate:    day(2),
		model.FieldEndDate:      day(4),
		"room_type":             "suite",
		"meal_plan":             "half-board",
		"number_of_rooms":       1.0,
		"number_of_guests":      2.0,
	}
}

func openAtReview(t *testing.T, s *wizardService) string {
	t.Helper()
	ctx := context.Background()

	snap, err := s.Open(ctx)
	require.NoError(t, err)
	id := snap.ID

	_, err = s.SelectCategory(ctx, id, string(categories.HotelBookingSlug))
	require.NoError(t, err)
	_, err = s.SetFields(ctx, id, hotelDetails())
	require.NoError(t, err)
	_, err = s.Advance(ctx, id)
	require.NoError(t, err)
	_, err = s.SetFields(ctx, id, map[string]any{"base_price": "200"})
	require.NoError(t, err)
	snap, err = s.Advance(ctx, id)
	require.NoError(t, err)
	require.Equal(t, core.StepReview, snap.Step)
	return id
}

func TestWizardService_OpenOffersSourceCategories(t *testing.T) {
	s, _ := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})

	snap, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, core.StepTypeSelection, snap.Step)
	assert.Len(t, snap.Categories, len(categories.All()))

	got, err := s.Get(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}

func TestWizardService_OpenSourceFailure(t *testing.T) {
	s, _ := newTestService(t, &fakeSource{err: errors.New("connection refused")}, &fakeSubmitter{})

	_, err := s.Open(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.AsAppError(err).HTTPStatus)
	assert.Empty(t, s.sessions)
}

func TestWizardService_UnknownWizard(t *testing.T) {
	s, _ := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})

	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)

	_, err = s.Get(context.Background(), "")
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)

	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(s.Cancel(context.Background(), "missing")).Code)
}

func TestWizardService_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})
	snap, err := s.Open(ctx)
	require.NoError(t, err)
	id := snap.ID

	_, err = s.Advance(ctx, id)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.AsAppError(err).HTTPStatus)
	assert.ErrorIs(t, err, wizerrors.ErrNoCategorySelected)

	_, err = s.SelectCategory(ctx, id, "spaceship")
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)

	_, err = s.SetFields(ctx, id, map[string]any{model.FieldContactName: "Noa"})
	assert.Equal(t, http.StatusConflict, apperrors.AsAppError(err).HTTPStatus)
	assert.ErrorIs(t, err, wizerrors.ErrFieldNotEditable)

	_, err = s.SelectCategory(ctx, id, string(categories.HotelBookingSlug))
	require.NoError(t, err)

	_, err = s.SetFields(ctx, id, map[string]any{"warp_speed": 9})
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	_, err = s.SetFields(ctx, id, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	snap, err = s.Advance(ctx, id)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPStatus)
	assert.Contains(t, appErr.Details, model.FieldContactName)
	assert.Contains(t, snap.Errors, "room_type")
	assert.Equal(t, core.StepDetails, snap.Step)
}

func TestWizardService_SubmitRemovesSessionAfterConfirmation(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{}
	s, _ := newTestService(t, categories.StaticSource{}, sub)
	id := openAtReview(t, s)

	snap, err := s.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.StepConfirmation, snap.Step)
	require.NotNil(t, snap.Booking)
	assert.Equal(t, "BK-2001", snap.Booking.ReferenceNumber)
	assert.Equal(t, 1, sub.calls)

	_, err = s.Get(ctx, id)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestWizardService_SubmitFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubmitter{err: apperrors.SubmissionFailed("The selected dates are no longer available.", nil)}
	s, _ := newTestService(t, categories.StaticSource{}, sub)
	id := openAtReview(t, s)

	snap, err := s.Advance(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, wizerrors.ErrSubmissionFailed)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.Equal(t, "The selected dates are no longer available.", appErr.Message)
	assert.Equal(t, core.StepReview, snap.Step)
	assert.Equal(t, "The selected dates are no longer available.", snap.FormError)

	sub.err = errors.New("connection reset")
	_, err = s.Submit(ctx, id)
	assert.Equal(t, apperrors.CodeSubmissionFailed, apperrors.AsAppError(err).Code)

	sub.err = nil
	snap, err = s.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.StepConfirmation, snap.Step)
	assert.Equal(t, 3, sub.calls)
}

func TestWizardService_BackAndToggle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})
	snap, err := s.Open(ctx)
	require.NoError(t, err)
	id := snap.ID

	_, err = s.SelectCategory(ctx, id, string(categories.HotelBookingSlug))
	require.NoError(t, err)

	snap, err = s.Toggle(ctx, id, "amenities", "parking", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"parking"}, snap.Values["amenities"])

	_, err = s.Toggle(ctx, id, "amenities", "helipad", true)
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.AsAppError(err).HTTPStatus)

	snap, err = s.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.StepTypeSelection, snap.Step)

	_, err = s.Back(ctx, id)
	assert.Equal(t, http.StatusConflict, apperrors.AsAppError(err).HTTPStatus)
}

func TestWizardService_Cancel(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})
	snap, err := s.Open(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Cancel(ctx, snap.ID))
	_, err = s.Get(ctx, snap.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestWizardService_SweepExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	s, clk := newTestService(t, categories.StaticSource{}, &fakeSubmitter{})

	idle, err := s.Open(ctx)
	require.NoError(t, err)
	active, err := s.Open(ctx)
	require.NoError(t, err)

	clk.Advance(45 * time.Second)
	_, err = s.Get(ctx, active.ID)
	require.NoError(t, err)

	clk.Advance(30 * time.Second)
	assert.Equal(t, 1, s.sweep())

	_, err = s.Get(ctx, idle.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
	_, err = s.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestWizardService_Categories(t *testing.T) {
	source := &fakeSource{list: []model.BookingCategory{{Slug: "hotel-booking", Name: "Hotel"}}}
	s, _ := newTestService(t, source, &fakeSubmitter{})

	list, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	source.err = errors.New("timeout")
	_, err = s.Categories(context.Background())
	assert.Equal(t, apperrors.CodeUnavailable, apperrors.AsAppError(err).Code)
}

func TestNewWizardService_Stop(t *testing.T) {
	s := NewWizardService(categories.StaticSource{}, core.Dependencies{}, time.Minute, logger.Discard())
	s.Stop()
	s.Stop()
}
