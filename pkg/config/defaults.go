package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 35 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingServiceURL = "http://localhost:8081"
	DefaultClientTimeout     = 10 * time.Second

	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second

	DefaultCurrency           = "USD"
	DefaultCancellationPolicy = "moderate"
	DefaultSessionTTL         = 30 * time.Minute

	DefaultKafkaTopic = "booking-events"
)
