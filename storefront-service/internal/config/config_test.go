package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Equal(t, "543704091739", cfg.ShopWhatsApp)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ORDERS_API_URL: http://orders:8081\nREQUEST_TIMEOUT: 3s\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://orders:8081", cfg.OrdersAPIURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")
	t.Setenv("ORDERS_API_URL", " ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
	assert.Contains(t, err.Error(), "ORDERS_API_URL")
}

func TestValidate_UpstreamTimeout(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "0s")

	_, err := Load()
	assert.ErrorContains(t, err, "UPSTREAM_TIMEOUT must be positive")
}
