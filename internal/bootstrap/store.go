// Package bootstrap opens the record source and cache selected by configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rediscache "github.com/simaogato/companystats-backend/internal/adapter/cache/redis"
	"github.com/simaogato/companystats-backend/internal/adapter/repository/memory"
	"github.com/simaogato/companystats-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/companystats-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/companystats-backend/internal/config"
	"github.com/simaogato/companystats-backend/internal/domain"
	"github.com/simaogato/companystats-backend/internal/usecase/statistics"
)

// Store is a record source that the seeder can also write
type Store interface {
	domain.CompanyRepository
	domain.CompanyWriter
}

// CloseFunc releases a resource opened by this package
type CloseFunc func() error

func noopClose() error { return nil }

// connectAttempts bounds the wait for a database that is still starting
const connectAttempts = 5

// OpenStore opens the record source for cfg.Driver
func OpenStore(ctx context.Context, cfg config.SourceConfig, logger *slog.Logger) (Store, CloseFunc, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres, logger)
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using sqlite record source", "path", cfg.SQLitePath)
		return store, store.Close, nil
	case config.DriverMemory:
		logger.Info("using in-memory record source")
		return memory.NewCompanyRepository(), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (Store, CloseFunc, error) {
	connStr := cfg.DSN
	if connStr == "" {
		connStr = postgres.BuildConnString(postgres.ConnParams{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			Name:     cfg.Name,
			SSLMode:  cfg.SSLMode,
		})
	}

	opts := postgres.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime.Duration,
	}

	// Retry while Postgres finishes starting (docker compose brings both up together)
	var db *postgres.DB
	var err error
	delay := 500 * time.Millisecond
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = postgres.NewDB(ctx, connStr, opts)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			return nil, nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt, err)
		}

		logger.Warn("database not ready, retrying", "attempt", attempt, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("using postgres record source", "host", cfg.Host, "database", cfg.Name)
	return postgres.NewCompanyRepository(db), db.Close, nil
}

// OpenCache connects the Redis statistics cache when one is configured
// The cache is optional: a nil cache is returned when it is disabled or unreachable
func OpenCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (statistics.Cache, CloseFunc) {
	if !cfg.Enabled() {
		return nil, noopClose
	}

	client, err := rediscache.NewClient(ctx, rediscache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Warn("statistics cache disabled", "error", err)
		return nil, noopClose
	}

	logger.Info("statistics cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.TTL.Duration)
	return rediscache.NewCache(client, cfg.TTL.Duration, cfg.Prefix), client.Close
}
