package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// StoreKeys names the snapshot documents in the key-value store.
type StoreKeys struct {
	Products       string
	Cart           string
	Coupons        string
	SelectedCoupon string
}

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv          string
	RedisURL        string
	LogLevel        string
	LogFormat       string
	NotificationTTL time.Duration
	Keys            StoreKeys
}

// Load reads configuration from environment variables and optional .env files.
// REDIS_URL is optional; an empty value selects the in-memory store.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:          valueOrDefault(k.String("APP_ENV"), "development"),
		RedisURL:        strings.TrimSpace(k.String("REDIS_URL")),
		LogLevel:        valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:       valueOrDefault(k.String("LOG_FORMAT"), "console"),
		NotificationTTL: parseDuration(k.String("NOTIFICATION_TTL"), "3s"),
		Keys: StoreKeys{
			Products:       valueOrDefault(k.String("STORE_KEY_PRODUCTS"), "products"),
			Cart:           valueOrDefault(k.String("STORE_KEY_CART"), "cart"),
			Coupons:        valueOrDefault(k.String("STORE_KEY_COUPONS"), "coupons"),
			SelectedCoupon: valueOrDefault(k.String("STORE_KEY_SELECTED_COUPON"), "selected_coupon"),
		},
	}

	return cfg, nil
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
