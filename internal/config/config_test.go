package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/keranjang/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"APP_ENV":          "",
		"REDIS_URL":        "",
		"LOG_LEVEL":        "",
		"NOTIFICATION_TTL": "",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Empty(t, cfg.RedisURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 3*time.Second, cfg.NotificationTTL)
	require.Equal(t, "products", cfg.Keys.Products)
	require.Equal(t, "cart", cfg.Keys.Cart)
	require.Equal(t, "coupons", cfg.Keys.Coupons)
	require.Equal(t, "selected_coupon", cfg.Keys.SelectedCoupon)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"APP_ENV":          "production",
		"REDIS_URL":        "redis://localhost:6379/0",
		"NOTIFICATION_TTL": "500ms",
		"STORE_KEY_CART":   "cart_v2",
	})
	require.NoError(t, err)

	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, 500*time.Millisecond, cfg.NotificationTTL)
	require.Equal(t, "cart_v2", cfg.Keys.Cart)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{"NOTIFICATION_TTL": "not-a-duration"})
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.NotificationTTL)
}
