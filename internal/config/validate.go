package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return errors.New("server.http_addr is required")
	}
	if c.Server.GRPCAddr == "" {
		return errors.New("server.grpc_addr is required")
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with /, got %q", c.Server.BasePath)
	}

	switch c.Source.Driver {
	case DriverPostgres:
		if err := c.Source.Postgres.validate("source.postgres"); err != nil {
			return err
		}
	case DriverSQLite:
		if c.Source.SQLitePath == "" {
			return errors.New("source.sqlite_path is required for the sqlite driver")
		}
	case DriverMemory:
		if c.Source.DatasetPath == "" {
			return errors.New("source.dataset_path is required for the memory driver")
		}
	default:
		return fmt.Errorf("source.driver must be one of postgres, sqlite, memory, got %q", c.Source.Driver)
	}

	if c.Cache.TTL.Duration < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if c.Cache.RedisDB < 0 {
		return errors.New("cache.redis_db must be >= 0")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func (db *PostgresConfig) validate(prefix string) error {
	if db.DSN != "" {
		return nil
	}
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	return nil
}
