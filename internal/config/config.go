// Package config loads the service configuration from a YAML or TOML file
// or from environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the companystats services.
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Source SourceConfig `yaml:"source" toml:"source"`
	Cache  CacheConfig  `yaml:"cache" toml:"cache"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ServerConfig holds transport settings.
type ServerConfig struct {
	HTTPAddr        string   `yaml:"http_addr" toml:"http_addr"`
	GRPCAddr        string   `yaml:"grpc_addr" toml:"grpc_addr"`
	BasePath        string   `yaml:"base_path" toml:"base_path"`
	APIToken        string   `yaml:"api_token" toml:"api_token"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// Record source drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	Driver      string         `yaml:"driver" toml:"driver"`
	Postgres    PostgresConfig `yaml:"postgres" toml:"postgres"`
	SQLitePath  string         `yaml:"sqlite_path" toml:"sqlite_path"`
	DatasetPath string         `yaml:"dataset_path" toml:"dataset_path"`
}

// PostgresConfig holds PostgreSQL connection settings.
// DSN takes precedence over the individual fields when set.
type PostgresConfig struct {
	DSN             string   `yaml:"dsn" toml:"dsn"`
	Host            string   `yaml:"host" toml:"host"`
	Port            int      `yaml:"port" toml:"port"`
	User            string   `yaml:"user" toml:"user"`
	Password        string   `yaml:"password" toml:"password"`
	Name            string   `yaml:"name" toml:"name"`
	SSLMode         string   `yaml:"sslmode" toml:"sslmode"`
	MaxOpenConns    int      `yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
}

// CacheConfig configures the Redis statistics cache.
// The cache is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr     string   `yaml:"redis_addr" toml:"redis_addr"`
	RedisPassword string   `yaml:"redis_password" toml:"redis_password"`
	RedisDB       int      `yaml:"redis_db" toml:"redis_db"`
	TTL           Duration `yaml:"ttl" toml:"ttl"`
	Prefix        string   `yaml:"prefix" toml:"prefix"`
}

// Enabled reports whether a Redis address is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Duration is a time.Duration written as a string such as "10m" or "1h30m".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
