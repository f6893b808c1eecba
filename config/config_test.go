package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/staynest_test")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, int32(50), cfg.DBMaxConns)
	assert.Equal(t, 5*time.Minute, cfg.CacheCatalogTTL)
	assert.Equal(t, 10*time.Second, cfg.CheckoutTimeout)
	assert.Equal(t, int64(10), cfg.MaxUploadSizeMB)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/staynest_test")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_CATALOG_TTL", "30s")
	t.Setenv("CHECKOUT_API_URL", "https://pay.example.com")
	t.Setenv("DB_MAX_CONNS", "5")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheCatalogTTL)
	assert.Equal(t, "https://pay.example.com", cfg.CheckoutAPIURL)
	assert.Equal(t, int32(5), cfg.DBMaxConns)
}

func TestLoadConfigBadDurationFallsBack(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost:5432/staynest_test")
	t.Setenv("CHECKOUT_TIMEOUT", "not-a-duration")

	cfg := LoadConfig()
	assert.Equal(t, 10*time.Second, cfg.CheckoutTimeout)
}
