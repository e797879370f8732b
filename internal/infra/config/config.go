package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendElasticsearch = "elasticsearch"
	BackendMeilisearch   = "meilisearch"
)

// Config holds all configuration for code-assist.
type Config struct {
	// Server
	Port     int    `env:"PORT" validate:"min=1,max=65535"`
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	Search    SearchConfig
	RateLimit RateLimitConfig
	OTel      OTelConfig
}

type SearchConfig struct {
	Backend               string        `env:"SEARCH_BACKEND" validate:"oneof=elasticsearch meilisearch"`
	Index                 string        `env:"SEARCH_INDEX" validate:"required"`
	Timeout               time.Duration `env:"SEARCH_TIMEOUT" validate:"gte=0"`
	MaxAttempts           uint          `env:"SEARCH_MAX_ATTEMPTS" validate:"min=1,max=10"`
	RetryInitialInterval  time.Duration `env:"SEARCH_RETRY_INITIAL_INTERVAL" validate:"gt=0"`
	RetryMaxInterval      time.Duration `env:"SEARCH_RETRY_MAX_INTERVAL" validate:"gtefield=RetryInitialInterval"`
	ElasticsearchURL      string        `env:"ELASTICSEARCH_URL" validate:"required,url"`
	ElasticsearchUsername string        `env:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPassword string        `env:"ELASTICSEARCH_PASSWORD"`
	MeilisearchHost       string        `env:"MEILISEARCH_HOST" validate:"required,url"`
	MeilisearchAPIKey     string        `env:"MEILISEARCH_API_KEY"`
}

// RateLimitConfig applies to /ask. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `env:"ASK_RATE_LIMIT_RPS" validate:"gte=0"`
	Burst int     `env:"ASK_RATE_LIMIT_BURST" validate:"min=1"`
}

type OTelConfig struct {
	Enabled          bool    `env:"OTEL_ENABLED"`
	ServiceName      string  `env:"OTEL_SERVICE_NAME" validate:"required"`
	ServiceVersion   string  `env:"SERVICE_VERSION"`
	Environment      string  `env:"DEPLOYMENT_ENV"`
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"required,url"`
	TraceSampleRatio float64 `env:"OTEL_TRACE_SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Search: SearchConfig{
			Backend:               strings.ToLower(getEnv("SEARCH_BACKEND", BackendElasticsearch)),
			Index:                 getEnv("SEARCH_INDEX", "codebase"),
			ElasticsearchURL:      getEnv("ELASTICSEARCH_URL", "http://elasticsearch:9200"),
			ElasticsearchUsername: getEnv("ELASTICSEARCH_USERNAME", ""),
			ElasticsearchPassword: getSecret("ELASTICSEARCH_PASSWORD", "ELASTICSEARCH_PASSWORD_FILE", ""),
			MeilisearchHost:       getEnv("MEILISEARCH_HOST", "http://meilisearch:7700"),
			MeilisearchAPIKey:     getSecret("MEILISEARCH_API_KEY", "MEILISEARCH_API_KEY_FILE", ""),
		},
		OTel: OTelConfig{
			Enabled:          getEnvBool("OTEL_ENABLED", false),
			ServiceName:      getEnv("OTEL_SERVICE_NAME", "code-assist"),
			ServiceVersion:   getEnv("SERVICE_VERSION", "1.0.0"),
			Environment:      getEnv("DEPLOYMENT_ENV", "development"),
			ExporterEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		},
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 5000); err != nil {
		errs = append(errs, err)
	}
	if cfg.Search.Timeout, err = getEnvDuration("SEARCH_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	attempts, err := getEnvInt("SEARCH_MAX_ATTEMPTS", 1)
	if err != nil {
		errs = append(errs, err)
	} else if attempts < 0 {
		errs = append(errs, fmt.Errorf("invalid SEARCH_MAX_ATTEMPTS: %d", attempts))
	} else {
		cfg.Search.MaxAttempts = uint(attempts)
	}
	if cfg.Search.RetryInitialInterval, err = getEnvDuration("SEARCH_RETRY_INITIAL_INTERVAL", 200*time.Millisecond); err != nil {
		errs = append(errs, err)
	}
	if cfg.Search.RetryMaxInterval, err = getEnvDuration("SEARCH_RETRY_MAX_INTERVAL", 2*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit.RPS, err = getEnvFloat64("ASK_RATE_LIMIT_RPS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit.Burst, err = getEnvInt("ASK_RATE_LIMIT_BURST", 20); err != nil {
		errs = append(errs, err)
	}
	if cfg.OTel.TraceSampleRatio, err = getEnvFloat64("OTEL_TRACE_SAMPLE_RATIO", 0.1); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and reports them by environment variable name.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.Tag(), redact(fe)))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

// ListenAddr is the address handed to the HTTP server.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func redact(fe validator.FieldError) any {
	if strings.Contains(fe.Field(), "PASSWORD") || strings.Contains(fe.Field(), "API_KEY") {
		return "[REDACTED]"
	}
	return fe.Value()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret prefers the direct variable, then the file named by fileEnvKey.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat64(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
