// Package config provides configuration management.
package config

import (
	"fmt"
	"time"

	"buildaide/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `mapstructure:"version" json:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server" json:"server"`

	// Pricing contains rate table configuration
	Pricing PricingConfig `mapstructure:"pricing" json:"pricing"`

	// Storage contains expense ledger storage configuration
	Storage StorageConfig `mapstructure:"storage" json:"storage"`

	// Cache contains estimate cache configuration
	Cache CacheConfig `mapstructure:"cache" json:"cache"`

	// Output contains CLI output configuration
	Output OutputConfig `mapstructure:"output" json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `mapstructure:"logging" json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `mapstructure:"addr" json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" json:"write_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// RatesFile is an optional HCL file overriding the compiled-in tables
	RatesFile string `mapstructure:"rates_file" json:"rates_file"`
}

// StorageConfig selects and configures the expense repository
type StorageConfig struct {
	// Driver is "memory" or "postgres"
	Driver string `mapstructure:"driver" json:"driver"`

	// Postgres is used when Driver is "postgres"
	Postgres PostgresConfig `mapstructure:"postgres" json:"postgres"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host           string `mapstructure:"host" json:"host"`
	Port           int    `mapstructure:"port" json:"port"`
	Database       string `mapstructure:"database" json:"database"`
	User           string `mapstructure:"user" json:"user"`
	Password       string `mapstructure:"password" json:"-"`
	SSLMode        string `mapstructure:"sslmode" json:"sslmode"`
	MaxConnections int    `mapstructure:"max_connections" json:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle" json:"max_idle"`
}

// DSN returns the PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// CacheConfig contains estimate cache settings
type CacheConfig struct {
	// Enabled turns the Redis estimate cache on
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	// RedisAddr is the Redis host:port
	RedisAddr string `mapstructure:"redis_addr" json:"redis_addr"`

	// Password is the Redis password
	Password string `mapstructure:"password" json:"-"`

	// DB is the Redis database index
	DB int `mapstructure:"db" json:"db"`

	// TTLSeconds is how long to cache estimates
	TTLSeconds int `mapstructure:"ttl_seconds" json:"ttl_seconds"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `mapstructure:"default_format" json:"default_format"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     10,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 15,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Postgres: PostgresConfig{
				Host:           "localhost",
				Port:           5432,
				Database:       "buildaide",
				User:           "buildaide",
				SSLMode:        "disable",
				MaxConnections: 25,
				MaxIdle:        5,
			},
		},
		Cache: CacheConfig{
			Enabled:    false,
			RedisAddr:  "localhost:6379",
			TTLSeconds: 3600,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks the fields other components rely on
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.Postgres.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if c.Storage.Postgres.Database == "" {
			return fmt.Errorf("storage.postgres.database is required")
		}
		if c.Storage.Postgres.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Cache.Enabled {
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required when the cache is enabled")
		}
		if c.Cache.TTLSeconds <= 0 {
			return fmt.Errorf("cache.ttl_seconds must be positive")
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
