package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Parse error policies.
const (
	OnParseErrorAbort = "abort"
	OnParseErrorSkip  = "skip"
)

// Numeric parsing modes.
const (
	NumericStrict  = "strict"
	NumericLenient = "lenient"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	// Dialect is empty when unset; each command then applies its own default.
	Dialect      string
	Numeric      string
	OnParseError string
	StateFilter  []string

	LogLevel        string
	LogFormat       string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Kafka export is enabled when brokers are configured.
	KafkaBrokers     []string
	KafkaExportTopic string
	BatchSize        int
}

// KafkaEnabled reports whether exported records are also published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dialect:      strings.ToLower(sharedcfg.EnvOrDefault("ZIPCODE_DIALECT", "")),
		Numeric:      strings.ToLower(sharedcfg.EnvOrDefault("ZIPCODE_NUMERIC", NumericStrict)),
		OnParseError: strings.ToLower(sharedcfg.EnvOrDefault("ZIPCODE_ON_PARSE_ERROR", OnParseErrorAbort)),
		StateFilter:  parseStates(sharedcfg.EnvOrDefault("ZIPCODE_STATE_FILTER", "")),

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ""),
		ShutdownTimeout: shutdownTimeout,

		KafkaExportTopic: sharedcfg.EnvOrDefault("KAFKA_EXPORT_TOPIC", "zipcode-records"),
		BatchSize:        batchSize,
	}
	if brokers := sharedcfg.EnvOrDefault("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	switch cfg.Dialect {
	case "", "federal", "simplified":
	default:
		return nil, fmt.Errorf("invalid ZIPCODE_DIALECT %q: want federal or simplified", cfg.Dialect)
	}
	switch cfg.Numeric {
	case NumericStrict, NumericLenient:
	default:
		return nil, fmt.Errorf("invalid ZIPCODE_NUMERIC %q: want strict or lenient", cfg.Numeric)
	}
	switch cfg.OnParseError {
	case OnParseErrorAbort, OnParseErrorSkip:
	default:
		return nil, fmt.Errorf("invalid ZIPCODE_ON_PARSE_ERROR %q: want abort or skip", cfg.OnParseError)
	}
	if cfg.KafkaEnabled() && cfg.KafkaExportTopic == "" {
		return nil, errors.New("KAFKA_EXPORT_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// parseStates splits a comma list of state codes, upper-casing each.
func parseStates(s string) []string {
	var states []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			states = append(states, part)
		}
	}
	return states
}
