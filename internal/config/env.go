package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// FromEnv builds a config from environment variables.
// Unset variables are left empty so applyDefaults can fill them; malformed
// numeric or duration values are reported together.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var errs []error

	cfg.Server.HTTPAddr = os.Getenv("HTTP_ADDR")
	cfg.Server.GRPCAddr = os.Getenv("GRPC_ADDR")
	cfg.Server.BasePath = os.Getenv("BASE_PATH")
	cfg.Server.APIToken = os.Getenv("API_TOKEN")

	cfg.Source.Driver = os.Getenv("SOURCE_DRIVER")
	cfg.Source.SQLitePath = os.Getenv("SQLITE_PATH")
	cfg.Source.DatasetPath = os.Getenv("DATASET_PATH")

	// DB_CONN_STR wins over the individual variables
	pg := &cfg.Source.Postgres
	pg.DSN = os.Getenv("DB_CONN_STR")
	pg.Host = os.Getenv("DB_HOST")
	pg.Port = envInt("DB_PORT", &errs)
	pg.User = os.Getenv("DB_USER")
	pg.Password = os.Getenv("DB_PASSWORD")
	pg.Name = os.Getenv("DB_NAME")
	pg.SSLMode = os.Getenv("DB_SSLMODE")

	cfg.Cache.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Cache.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.Cache.RedisDB = envInt("REDIS_DB", &errs)
	cfg.Cache.TTL.Duration = envDuration("CACHE_TTL", &errs)

	cfg.Log.Level = os.Getenv("LOG_LEVEL")
	cfg.Log.Format = os.Getenv("LOG_FORMAT")

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envInt returns 0 for an unset variable; Validate reports out-of-range results
func envInt(key string, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return 0
	}
	return v
}

func envDuration(key string, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a duration such as 5m, got %q", key, raw))
		return 0
	}
	return v
}
