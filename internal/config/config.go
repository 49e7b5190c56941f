// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the admin/stats HTTP server listens on (e.g. :8083).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// WorkerHTTPAddr is the address the worker's HTTP app (WebSocket stream, health, metrics) listens on.
	WorkerHTTPAddr string `mapstructure:"WORKER_HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN for the denylist and activity log.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RedisURL is the Redis URL for the user profile store (e.g. redis://localhost:6379/0).
	RedisURL string `mapstructure:"REDIS_URL"`

	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// ActivityKafkaTopic is the topic the worker consumes raw activity samples from.
	ActivityKafkaTopic string `mapstructure:"ACTIVITY_KAFKA_TOPIC"`
	// CommandKafkaTopic is the topic qualifying state transitions are published to.
	CommandKafkaTopic string `mapstructure:"COMMAND_KAFKA_TOPIC"`
	// KafkaGroupID is the consumer group ID for the ingestion worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// JWTSecret is the shared HMAC secret of the upstream auth service. Secrets shorter than
	// 64 bytes are padded with 'x' to match the auth service's key derivation.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTIssuer is the expected iss claim; empty disables issuer validation.
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	// ClassifierURL is the base URL of the remote content-classification service used to
	// verify gaming classifications. Empty disables verification (every GAMING verdict stands).
	ClassifierURL string `mapstructure:"CLASSIFIER_URL"`
	// ClassifierAPIKey is the bearer credential for the classifier endpoint.
	ClassifierAPIKey string `mapstructure:"CLASSIFIER_API_KEY"`
	// ClassifierTimeout is the per-call timeout for verification requests (e.g. "3s").
	ClassifierTimeout string `mapstructure:"CLASSIFIER_TIMEOUT"`

	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8083")
	v.SetDefault("WORKER_HTTP_ADDR", ":8084")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("ACTIVITY_KAFKA_TOPIC", "sensor-data")
	v.SetDefault("COMMAND_KAFKA_TOPIC", "attention-commands")
	v.SetDefault("KAFKA_GROUP_ID", "jiaa-data-group")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CLASSIFIER_URL", "")
	v.SetDefault("CLASSIFIER_API_KEY", "")
	v.SetDefault("CLASSIFIER_TIMEOUT", "3s")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.Env == "production" && cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
	}

	return &cfg, nil
}

// KafkaBrokersList splits KafkaBrokers on commas, trimming whitespace and dropping empties.
func (c *Config) KafkaBrokersList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// VerifyTimeout parses ClassifierTimeout as a time.Duration. Returns 3s if unset or invalid.
func (c *Config) VerifyTimeout() time.Duration {
	d, err := time.ParseDuration(c.ClassifierTimeout)
	if err != nil || d <= 0 {
		return 3 * time.Second
	}
	return d
}
