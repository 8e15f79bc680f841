package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "buildaide/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. BUILDAIDE_SERVER_ADDR
const EnvPrefix = "BUILDAIDE"

// Load reads configuration from path (YAML) layered over Default().
// An empty path searches ./config.yaml and ./configs/config.yaml; a missing
// file is not an error. Environment variables override file values.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		// An explicit path must exist; the search locations are optional.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, apperrors.Config("error reading config", err)
		}
	}

	// unknown keys are rejected so stale settings fail loudly
	cfg := Default()
	if err := v.UnmarshalExact(cfg); err != nil {
		return nil, apperrors.Config("failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Config("invalid configuration", err)
	}
	return cfg, nil
}

// loadEnvFile loads .env from the working directory when present
func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout_seconds", d.Server.ReadTimeoutSeconds)
	v.SetDefault("server.write_timeout_seconds", d.Server.WriteTimeoutSeconds)
	v.SetDefault("server.shutdown_timeout_seconds", d.Server.ShutdownTimeoutSeconds)

	v.SetDefault("pricing.rates_file", d.Pricing.RatesFile)

	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.postgres.host", d.Storage.Postgres.Host)
	v.SetDefault("storage.postgres.port", d.Storage.Postgres.Port)
	v.SetDefault("storage.postgres.database", d.Storage.Postgres.Database)
	v.SetDefault("storage.postgres.user", d.Storage.Postgres.User)
	v.SetDefault("storage.postgres.password", d.Storage.Postgres.Password)
	v.SetDefault("storage.postgres.sslmode", d.Storage.Postgres.SSLMode)
	v.SetDefault("storage.postgres.max_connections", d.Storage.Postgres.MaxConnections)
	v.SetDefault("storage.postgres.max_idle", d.Storage.Postgres.MaxIdle)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.password", d.Cache.Password)
	v.SetDefault("cache.db", d.Cache.DB)
	v.SetDefault("cache.ttl_seconds", d.Cache.TTLSeconds)

	v.SetDefault("output.default_format", d.Output.DefaultFormat)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
}
