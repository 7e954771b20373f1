package kafka

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultMaxAttempts  = 3
	DefaultBatchTimeout = 10 * time.Millisecond
	DefaultRequireAcks  = -1
	DefaultCompression  = "snappy"
)

// Config holds the producer settings. An empty broker list disables
// publishing altogether.
type Config struct {
	Brokers      []string
	Topic        string
	DLQTopic     string
	MaxAttempts  int
	BatchTimeout time.Duration
	RequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	Compression  string // "none", "gzip", "snappy", "lz4", "zstd"
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func (cfg *Config) Enabled() bool {
	return len(cfg.Brokers) > 0
}

func (cfg *Config) applyDefaults() {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.Compression == "" {
		cfg.Compression = DefaultCompression
	}
}

func (cfg *Config) Validate() error {
	var errs []string

	if cfg.Topic == "" {
		errs = append(errs, "topic cannot be empty")
	}

	if cfg.MaxAttempts <= 0 {
		errs = append(errs, fmt.Sprintf("MaxAttempts must be positive, got: %d", cfg.MaxAttempts))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.Compression] {
		errs = append(errs, fmt.Sprintf("Compression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.Compression))
	}

	validAcks := map[int]bool{-1: true, 0: true, 1: true}
	if !validAcks[cfg.RequireAcks] {
		errs = append(errs, fmt.Sprintf("RequireAcks must be -1, 0, or 1, got: %d", cfg.RequireAcks))
	}

	if len(errs) > 0 {
		return fmt.Errorf("kafka configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
