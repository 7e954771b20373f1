package client

import "time"

// Client bundles the clients of the backend services the wizard talks to.
type Client struct {
	Bookings   *BookingClient
	Categories *CategoryClient
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := NewHttpClient(baseURL, timeout)
	return &Client{
		Bookings:   NewBookingClient(httpClient),
		Categories: NewCategoryClient(httpClient),
	}
}
