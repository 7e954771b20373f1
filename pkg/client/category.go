package client

import (
	"context"
	"fmt"

	"bookingwizard/pkg/model"
)

type CategoryClient struct {
	httpClient *HttpClient
}

func NewCategoryClient(httpClient *HttpClient) *CategoryClient {
	return &CategoryClient{
		httpClient: httpClient,
	}
}

func (c *CategoryClient) List(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/booking-categories")
}

func (c *CategoryClient) DecodeCategories(resp *Response) ([]model.BookingCategory, error) {
	var categories []model.BookingCategory
	if err := decodeData(resp, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode booking categories: %w", err)
	}
	return categories, nil
}
