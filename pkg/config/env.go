package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingServiceURL  = "BOOKING_SERVICE_URL"
	EnvCategoryServiceURL = "CATEGORY_SERVICE_URL"
	EnvClientTimeout      = "CLIENT_TIMEOUT"

	EnvBreakerFailures = "BREAKER_FAILURES"
	EnvBreakerTimeout  = "BREAKER_TIMEOUT"

	EnvDefaultCurrency    = "DEFAULT_CURRENCY"
	EnvCancellationPolicy = "CANCELLATION_POLICY"
	EnvSessionTTL         = "SESSION_TTL"

	EnvKafkaBrokers  = "KAFKA_BROKERS"
	EnvKafkaTopic    = "KAFKA_TOPIC"
	EnvKafkaDLQTopic = "KAFKA_DLQ_TOPIC"
)
