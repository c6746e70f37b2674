package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-presignup-gate/internal/pkg/validate"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string `validate:"required"`
	AppName  string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`
	// AllowedEmailSuffixes are lower-cased and include the leading '@'.
	AllowedEmailSuffixes []string `validate:"required,min=1,dive,startswith=@,min=2"`
	AWSRegion            string   `validate:"required"`
	AWSEndpointURL       string   // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID       string
	AWSSecretKey         string
	SignupEventsTopicARN string // empty disables decision publishing
	AllowedOrigins       []string // CORS allowed origins
	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP pick the rate-limit
	// key. Only enable behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:              getEnv("APP_PORT", "3000"),
		AppEnv:               getEnv("APP_ENV", "development"),
		AppName:              getEnv("APP_NAME", "ArchPal"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedEmailSuffixes: splitSuffixes(getEnv("ALLOWED_EMAIL_SUFFIXES", "@uga.edu")),
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:       getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:       getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:         getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SignupEventsTopicARN: getEnv("SIGNUP_EVENTS_TOPIC_ARN", ""),
		AllowedOrigins:       strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		TrustProxyHeaders:    getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

// Validate reports the first set of invalid fields, if any.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// splitSuffixes parses a comma-separated suffix list, dropping blanks.
func splitSuffixes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		s := strings.ToLower(strings.TrimSpace(part))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
