package client

import (
	"context"
	"fmt"

	"bookingwizard/pkg/model"
)

const IdempotencyHeader = "Idempotency-Key"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{
		httpClient: httpClient,
	}
}

func (c *BookingClient) Create(ctx context.Context, body *model.BookingRequest, idempotencyKey string) (*Response, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyHeader] = idempotencyKey
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/bookings", body, headers)
}

func (c *BookingClient) DecodeBookingRecord(resp *Response) (*model.BookingRecord, error) {
	var record model.BookingRecord
	if err := decodeData(resp, &record); err != nil {
		return nil, fmt.Errorf("failed to decode booking record: %w", err)
	}
	if record.ReferenceNumber == "" {
		return nil, fmt.Errorf("booking record has no reference_number")
	}
	return &record, nil
}
