package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "buildaide/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
cache:
  enabled: true
  redis_addr: "redis:6379"
  ttl_seconds: 60
pricing:
  rates_file: "rates.hcl"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.ReadTimeoutSeconds, "untouched keys keep defaults")
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, int64(60), int64(cfg.Cache.TTL().Seconds()))
	assert.Equal(t, "rates.hcl", cfg.Pricing.RatesFile)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("BUILDAIDE_SERVER_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeConfig))
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: sqlite\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage.driver")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "pricing:\n  default_currency: EUR\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeConfig))
	assert.Contains(t, err.Error(), "default_currency")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "postgres requires host",
			mutate:  func(c *Config) { c.Storage.Driver = "postgres"; c.Storage.Postgres.Host = "" },
			wantErr: "storage.postgres.host is required",
		},
		{
			name:    "cache requires ttl",
			mutate:  func(c *Config) { c.Cache.Enabled = true; c.Cache.TTLSeconds = 0 },
			wantErr: "cache.ttl_seconds must be positive",
		},
		{
			name:    "server addr required",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: "server.addr is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	dsn := Default().Storage.Postgres.DSN()
	assert.Equal(t, "host=localhost port=5432 user=buildaide password= dbname=buildaide sslmode=disable", dsn)
}
