// Package config loads and validates application configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional TOML file
// named by CONFIG_FILE, a .env file in the working directory, and the process
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// JWTSecret verifies bearer tokens issued by the auth provider. Required.
	JWTSecret string

	// Location is where leaderboard weeks and months start. From TIMEZONE,
	// defaults to Europe/Paris.
	Location *time.Location

	StripeSecretKey      string
	StripeWebhookSecret  string
	StripePremiumPriceID string

	// AppBaseURL is the web app origin used in checkout and portal redirects.
	AppBaseURL string

	// AutoMigrate runs pending migrations at startup.
	AutoMigrate bool

	// RollRatePerMinute is each client's budget on POST /api/roll.
	RollRatePerMinute int

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
}

// fileConfig mirrors the TOML layout of CONFIG_FILE.
type fileConfig struct {
	Port              string   `toml:"port"`
	DatabaseURL       string   `toml:"database_url"`
	LogLevel          string   `toml:"log_level"`
	CORSOrigins       []string `toml:"cors_origins"`
	JWTSecret         string   `toml:"jwt_secret"`
	Timezone          string   `toml:"timezone"`
	AppBaseURL        string   `toml:"app_base_url"`
	AutoMigrate       *bool    `toml:"auto_migrate"`
	RollRatePerMinute int      `toml:"roll_rate_per_minute"`
	MaxBodyBytes      int64    `toml:"max_body_bytes"`
	Stripe            struct {
		SecretKey      string `toml:"secret_key"`
		WebhookSecret  string `toml:"webhook_secret"`
		PremiumPriceID string `toml:"premium_price_id"`
	} `toml:"stripe"`
}

// Load reads configuration and returns a Config. The returned error lists
// every required variable that is not set and every value that does not parse.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		file = f
	}

	var errs []error
	cfg := Config{
		Port:                 getEnv("PORT", or(file.Port, "8080")),
		DatabaseURL:          getEnv("DATABASE_URL", file.DatabaseURL),
		LogLevel:             getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		JWTSecret:            getEnv("JWT_SECRET", file.JWTSecret),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", file.Stripe.SecretKey),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", file.Stripe.WebhookSecret),
		StripePremiumPriceID: getEnv("STRIPE_PREMIUM_PRICE_ID", file.Stripe.PremiumPriceID),
		AppBaseURL:           getEnv("APP_BASE_URL", or(file.AppBaseURL, "http://localhost:3000")),
	}

	cfg.CORSOrigins = file.CORSOrigins
	if v := os.Getenv("CORS_ORIGINS"); v != "" || len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	}

	tz := getEnv("TIMEZONE", or(file.Timezone, "Europe/Paris"))
	loc, err := time.LoadLocation(tz)
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	autoMigrate := false
	if file.AutoMigrate != nil {
		autoMigrate = *file.AutoMigrate
	}
	if cfg.AutoMigrate, err = getEnvBool("AUTO_MIGRATE", autoMigrate); err != nil {
		errs = append(errs, err)
	}
	if cfg.RollRatePerMinute, err = getEnvInt("ROLL_RATE_PER_MINUTE", orInt(file.RollRatePerMinute, 30)); err != nil {
		errs = append(errs, err)
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", int(orInt64(file.MaxBodyBytes, 1<<20)))
	if err != nil {
		errs = append(errs, err)
	}
	cfg.MaxBodyBytes = int64(maxBody)

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(&fc); err != nil {
		return fileConfig{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return fc, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: want a boolean, got %q", key, v)
	}
	return b, nil
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orInt64(v, fallback int64) int64 {
	if v > 0 {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
