package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookingwizard/pkg/client"
	apperrors "bookingwizard/pkg/errors"
	"bookingwizard/pkg/logger"
	"bookingwizard/pkg/model"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker in front of the booking service.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// Rejection is a 4xx answer from the booking service. It carries the
// server's message and does not count against the breaker.
type Rejection struct {
	StatusCode int
	Message    string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("booking service rejected the request (%d): %s", r.StatusCode, r.Message)
}

type HTTPSubmitter struct {
	bookings *client.BookingClient
	cb       *gobreaker.CircuitBreaker
	logger   *logger.Logger
}

func NewHTTPSubmitter(bookings *client.BookingClient, settings BreakerSettings, log *logger.Logger) *HTTPSubmitter {
	return &HTTPSubmitter{
		bookings: bookings,
		cb:       CircuitBreaker("booking-service", settings, log),
		logger:   log,
	}
}

func CircuitBreaker(name string, settings BreakerSettings, log *logger.Logger) *gobreaker.CircuitBreaker {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 3
	}
	if settings.OpenTimeout == 0 {
		settings.OpenTimeout = 10 * time.Second
	}
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn("Circuit breaker changed state",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var rejection *Rejection
				return errors.As(err, &rejection) || errors.Is(err, context.Canceled)
			},
		},
	)
}

func (s *HTTPSubmitter) Submit(ctx context.Context, idempotencyKey string, req *model.BookingRequest) (*model.BookingRecord, error) {
	result, err := s.cb.Execute(func() (any, error) {
		resp, err := s.bookings.Create(ctx, req, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &Rejection{StatusCode: resp.StatusCode, Message: client.GetErrorMessage(resp)}
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("booking service returned %s", client.GetErrorMessage(resp))
		}
		return s.bookings.DecodeBookingRecord(resp)
	})
	if err != nil {
		return nil, s.translate(err, idempotencyKey)
	}
	return result.(*model.BookingRecord), nil
}

func (s *HTTPSubmitter) translate(err error, idempotencyKey string) error {
	var rejection *Rejection
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.As(err, &rejection):
		s.logger.Info("Booking rejected by booking service",
			"idempotency_key", idempotencyKey,
			"status", rejection.StatusCode,
			"message", rejection.Message,
		)
		return apperrors.SubmissionFailed(rejection.Message, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		s.logger.Warn("Booking service circuit open", "idempotency_key", idempotencyKey)
		return apperrors.Unavailable("Booking service")
	default:
		s.logger.Error("Booking submission failed",
			"idempotency_key", idempotencyKey,
			"error", err,
		)
		return apperrors.SubmissionFailed("We could not create your booking. Please try again.", err)
	}
}
