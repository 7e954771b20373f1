package submission

import (
	"context"
	"fmt"

	"bookingwizard/pkg/kafka"
	"bookingwizard/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	eventSchemaVersion  = "1"
	eventSource         = "booking-wizard"
)

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(producer MessagePublisher) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishBookingCreated emits one booking.created event keyed by the
// reference number, so events for one booking share a partition.
func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, event model.BookingCreatedEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.ReferenceNumber).
		WithValue(event).
		WithEventType(EventBookingCreated).
		WithCorrelationID(event.WizardID).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(eventSource).
		Build()
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", EventBookingCreated, err)
	}
	return p.producer.Publish(ctx, msg)
}
