package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	API API `validate:"required"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

// API configures the order gateway. The sync delays are deliberately
// configuration, not literals: they are tuned against the backing
// store's observed replication lag and do not generalize.
type API struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`

	RetryMaxAttempts  int           `validate:"gte=1"`
	RetryInitialDelay time.Duration `validate:"gt=0"`
	RetryMaxDelay     time.Duration `validate:"gt=0"`
	RetryMultiplier   float64       `validate:"gt=1"`

	CreateSyncDelay time.Duration `validate:"gte=0"`
	ReconcileDelay  time.Duration `validate:"gte=0"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:8080"), ","),
		},

		API: API{
			BaseURL: env("API_BASE_URL", "http://localhost:5000/api"),
			Timeout: envDuration("API_TIMEOUT", 15*time.Second),

			RetryMaxAttempts:  envInt("API_RETRY_MAX_ATTEMPTS", 10),
			RetryInitialDelay: envDuration("API_RETRY_INITIAL_DELAY", 500*time.Millisecond),
			RetryMaxDelay:     envDuration("API_RETRY_MAX_DELAY", 3*time.Second),
			RetryMultiplier:   envFloat("API_RETRY_MULTIPLIER", 1.5),

			CreateSyncDelay: envDuration("API_CREATE_SYNC_DELAY", time.Second),
			ReconcileDelay:  envDuration("API_RECONCILE_DELAY", 1500*time.Millisecond),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
