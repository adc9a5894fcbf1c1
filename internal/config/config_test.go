package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "shop", cfg.PostgresDB)
	assert.Equal(t, 168, cfg.CartTTLHours)
	assert.True(t, cfg.DiscountsEnabled)
	assert.False(t, cfg.CheckoutReviewsEnabled)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidCartTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CART_TTL_HOURS")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "1.5")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
}

func TestLoad_FeatureFlags(t *testing.T) {
	t.Setenv("DISCOUNTS_ENABLED", "false")
	t.Setenv("CHECKOUT_REVIEWS_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.DiscountsEnabled)
	assert.True(t, cfg.CheckoutReviewsEnabled)
}

func TestCartTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "24")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL())
}

func TestPostgresConfig(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "5433")

	cfg, err := Load()

	require.NoError(t, err)
	pg := cfg.PostgresConfig()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, 5433, pg.Port)
	assert.Equal(t, 60*time.Minute, pg.MaxConnLifetime)
}
