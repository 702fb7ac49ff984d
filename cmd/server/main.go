package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/simaogato/companystats-backend/internal/adapter/dataset"
	grpcadapter "github.com/simaogato/companystats-backend/internal/adapter/grpc"
	"github.com/simaogato/companystats-backend/internal/adapter/httpapi"
	"github.com/simaogato/companystats-backend/internal/bootstrap"
	"github.com/simaogato/companystats-backend/internal/config"
	"github.com/simaogato/companystats-backend/internal/logging"
	"github.com/simaogato/companystats-backend/internal/usecase/query"
	"github.com/simaogato/companystats-backend/internal/usecase/seeder"
	"github.com/simaogato/companystats-backend/internal/usecase/statistics"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML or TOML config file (environment variables are used when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 1. Setup record source
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("failed to open record source: %w", err)
	}
	defer closeStore()

	cache, closeCache := bootstrap.OpenCache(ctx, cfg.Cache, logger)
	defer closeCache()

	// 2. Initialize Services (Use Cases)
	queryService := query.NewQueryService(store, logger)
	statisticsService := statistics.NewStatisticsService(store, cache, logger)

	// Load the dataset into an empty source (always for the memory driver)
	if cfg.Source.DatasetPath != "" {
		datasetSeeder := seeder.NewDatasetSeeder(dataset.FileLoader{}, store, logger).WithCacheInvalidator(statisticsService)
		if _, err := datasetSeeder.SeedIfEmpty(ctx, store, cfg.Source.DatasetPath); err != nil {
			return fmt.Errorf("failed to seed dataset: %w", err)
		}
	}

	// 3. HTTP API
	gin.SetMode(gin.ReleaseMode)
	handler := httpapi.NewHandler(queryService, statisticsService, store, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, cfg.Server.BasePath, logger),
		ReadHeaderTimeout: cfg.Server.ReadTimeout.Duration,
		ReadTimeout:       cfg.Server.ReadTimeout.Duration,
	}

	// 4. gRPC API
	if cfg.Server.APIToken == "" {
		logger.Warn("API_TOKEN not set, gRPC authentication disabled")
	}
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(grpcadapter.ServerInterceptors(cfg.Server.APIToken, logger)...),
	)
	grpcadapter.RegisterCompanyStatsServer(grpcServer, grpcadapter.NewServer(queryService, statisticsService))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddr, err)
	}

	// Start servers in goroutines
	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr, "base_path", cfg.Server.BasePath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, shutting down gracefully")
	case err := <-errCh:
		logger.Error("server stopped unexpectedly", "error", err)
		shutdown(httpServer, grpcServer, healthServer, cfg.Server.ShutdownTimeout.Duration, logger)
		return err
	}

	shutdown(httpServer, grpcServer, healthServer, cfg.Server.ShutdownTimeout.Duration, logger)
	return nil
}

// shutdown drains both servers, forcing the gRPC server down after timeout
func shutdown(httpServer *http.Server, grpcServer *grpclib.Server, healthServer *health.Server, timeout time.Duration, logger *slog.Logger) {
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped")

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		grpcServer.Stop()
	}
	logger.Info("gRPC server stopped")
}
