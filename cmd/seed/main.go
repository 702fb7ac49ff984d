// Command seed loads a company dataset (xlsx or csv) into the configured record source.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/simaogato/companystats-backend/internal/adapter/dataset"
	"github.com/simaogato/companystats-backend/internal/bootstrap"
	"github.com/simaogato/companystats-backend/internal/config"
	"github.com/simaogato/companystats-backend/internal/logging"
	"github.com/simaogato/companystats-backend/internal/usecase/seeder"
	"github.com/simaogato/companystats-backend/internal/usecase/statistics"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML or TOML config file (environment variables are used when empty)")
	datasetPath := flag.String("dataset", "", "dataset file to load; defaults to source.dataset_path")
	ifEmpty := flag.Bool("if-empty", false, "only seed when the record source holds no companies")
	flag.Parse()

	if err := run(*configPath, *datasetPath, *ifEmpty); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, datasetPath string, ifEmpty bool) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	if datasetPath == "" {
		datasetPath = cfg.Source.DatasetPath
	}
	if datasetPath == "" {
		return errors.New("no dataset given: pass -dataset or set source.dataset_path")
	}
	if cfg.Source.Driver == config.DriverMemory {
		return errors.New("the memory driver loads its dataset at server startup; seed a postgres or sqlite source instead")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("failed to open record source: %w", err)
	}
	defer closeStore()

	// Statistics cached by running servers describe the previous dataset
	cache, closeCache := bootstrap.OpenCache(ctx, cfg.Cache, logger)
	defer closeCache()

	datasetSeeder := seeder.NewDatasetSeeder(dataset.FileLoader{}, store, logger).
		WithCacheInvalidator(statistics.NewStatisticsService(store, cache, logger))

	var n int
	if ifEmpty {
		n, err = datasetSeeder.SeedIfEmpty(ctx, store, datasetPath)
	} else {
		n, err = datasetSeeder.Seed(ctx, datasetPath)
	}
	if err != nil {
		return err
	}

	logger.Info("seed complete", "companies", n, "driver", cfg.Source.Driver)
	return nil
}
