package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bookingwizard/pkg/logger"
)

type Config struct {
	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	BookingServiceURL  string
	CategoryServiceURL string
	ClientTimeout      time.Duration

	BreakerFailures int
	BreakerTimeout  time.Duration

	DefaultCurrency    string
	CancellationPolicy string
	SessionTTL         time.Duration

	KafkaBrokers  string
	KafkaTopic    string
	KafkaDLQTopic string

	Log *logger.Logger
}

// Load reads the environment, with a .env file in the working directory
// taking effect for variables that are not already set. Invalid settings
// are fatal.
func Load(serviceName string) *Config {
	envErr := godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		cfg.Log.Warn("Could not read .env file", "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from environment variables and defaults. It does
// not validate and leaves Log unset.
func FromEnv() *Config {
	kafkaTopic := getEnvStr(EnvKafkaTopic, DefaultKafkaTopic)
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		BookingServiceURL:  getEnvStr(EnvBookingServiceURL, DefaultBookingServiceURL),
		CategoryServiceURL: getEnvStr(EnvCategoryServiceURL, ""),
		ClientTimeout:      getEnvDuration(EnvClientTimeout, DefaultClientTimeout),

		BreakerFailures: getEnvNum(EnvBreakerFailures, DefaultBreakerFailures),
		BreakerTimeout:  getEnvDuration(EnvBreakerTimeout, DefaultBreakerTimeout),

		DefaultCurrency:    strings.ToUpper(getEnvStr(EnvDefaultCurrency, DefaultCurrency)),
		CancellationPolicy: getEnvStr(EnvCancellationPolicy, DefaultCancellationPolicy),
		SessionTTL:         getEnvDuration(EnvSessionTTL, DefaultSessionTTL),

		KafkaBrokers:  getEnvStr(EnvKafkaBrokers, ""),
		KafkaTopic:    kafkaTopic,
		KafkaDLQTopic: getEnvStr(EnvKafkaDLQTopic, kafkaTopic+".dlq"),
	}
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if !isHTTPURL(cfg.BookingServiceURL) {
		problems = append(problems, fmt.Sprintf("BookingServiceURL must be an http(s) URL, got: %q", cfg.BookingServiceURL))
	}
	if cfg.CategoryServiceURL != "" && !isHTTPURL(cfg.CategoryServiceURL) {
		problems = append(problems, fmt.Sprintf("CategoryServiceURL must be an http(s) URL when set, got: %q", cfg.CategoryServiceURL))
	}

	if len(cfg.DefaultCurrency) != 3 {
		problems = append(problems, fmt.Sprintf("DefaultCurrency must be a three letter code, got: %q", cfg.DefaultCurrency))
	}
	if strings.TrimSpace(cfg.CancellationPolicy) == "" {
		problems = append(problems, "CancellationPolicy cannot be empty")
	}
	if cfg.KafkaBrokers != "" && strings.TrimSpace(cfg.KafkaTopic) == "" {
		problems = append(problems, "KafkaTopic cannot be empty when KafkaBrokers is set")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"ClientTimeout", cfg.ClientTimeout},
		{"BreakerTimeout", cfg.BreakerTimeout},
		{"SessionTTL", cfg.SessionTTL},
	}
	for _, d := range durations {
		if d.value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.BreakerFailures <= 0 {
		problems = append(problems, fmt.Sprintf("BreakerFailures must be positive, got: %d", cfg.BreakerFailures))
	}

	if len(problems) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range problems {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"booking_service_url", cfg.BookingServiceURL,
		"category_service_url", cfg.CategoryServiceURL,
		"client_timeout", cfg.ClientTimeout,
		"breaker_failures", cfg.BreakerFailures,
		"breaker_timeout", cfg.BreakerTimeout,
		"default_currency", cfg.DefaultCurrency,
		"cancellation_policy", cfg.CancellationPolicy,
		"session_ttl", cfg.SessionTTL,
		"kafka_enabled", cfg.KafkaBrokers != "",
		"kafka_topic", cfg.KafkaTopic,
	)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
