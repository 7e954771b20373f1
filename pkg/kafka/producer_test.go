package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProducer_Publish(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{
			name: "valid message",
			msg:  Message{Key: "BK-1", Value: []byte(`{}`), Headers: map[string]string{HeaderEventType: "booking.created"}},
		},
		{
			name:    "empty key",
			msg:     Message{Value: []byte(`{}`)},
			wantErr: ErrEmptyKey,
		},
		{
			name:    "empty value",
			msg:     Message{Key: "BK-1"},
			wantErr: ErrEmptyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWriter{}
			p := NewProducerWithWriter("booking-events", w, nil)

			err := p.Publish(context.Background(), tt.msg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Publish() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(w.messages) != 0 {
					t.Errorf("expected nothing written, got %d messages", len(w.messages))
				}
				return
			}
			if len(w.messages) != 1 {
				t.Fatalf("expected 1 message, got %d", len(w.messages))
			}
			if got := string(w.messages[0].Key); got != tt.msg.Key {
				t.Errorf("key = %q, want %q", got, tt.msg.Key)
			}
			if got := headerValue(w.messages[0], HeaderEventType); got != "booking.created" {
				t.Errorf("event-type header = %q", got)
			}
		})
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter("booking-events", w, nil)

	var order []string
	record := func(name string) ProducerMiddleware {
		return func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			if msg.Topic != "booking-events" {
				t.Errorf("middleware %s saw topic %q", name, msg.Topic)
			}
			return next(ctx, msg)
		}
	}
	p.Use(record("first"))
	p.Use(record("second"))

	if err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("broker unreachable")
	w := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := NewProducerWithWriter("booking-events", w, dlq)

	err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v"), Headers: map[string]string{}})
	if !errors.Is(err, writeErr) {
		t.Fatalf("Publish() error = %v, want %v", err, writeErr)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("expected 1 DLQ message, got %d", len(dlq.messages))
	}
	if got := headerValue(dlq.messages[0], HeaderOriginalTopic); got != "booking-events" {
		t.Errorf("original-topic header = %q", got)
	}
	if got := headerValue(dlq.messages[0], HeaderDLQError); got != writeErr.Error() {
		t.Errorf("dlq-error header = %q", got)
	}
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter("booking-events", w, nil)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
	if err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")}); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("Publish() after Close error = %v, want %v", err, ErrProducerClosed)
	}
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	if _, err := NewProducer(Config{Topic: "booking-events"}); !errors.Is(err, ErrNoBrokers) {
		t.Errorf("NewProducer() error = %v, want %v", err, ErrNoBrokers)
	}
}

func TestParseBrokers(t *testing.T) {
	got := ParseBrokers(" a:9092, ,b:9092 ")
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Errorf("ParseBrokers() = %v", got)
	}
	if got := ParseBrokers(""); len(got) != 0 {
		t.Errorf("ParseBrokers(\"\") = %v, want empty", got)
	}
}
