package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// DatasetLoader reads company records from a dataset file
type DatasetLoader interface {
	Load(path string) ([]domain.CompanyRecord, error)
}

// CacheInvalidator drops values derived from the stored dataset
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// DatasetSeeder populates the record source from a dataset file
type DatasetSeeder struct {
	loader      DatasetLoader
	writer      domain.CompanyWriter
	invalidator CacheInvalidator // optional
	logger      *slog.Logger
}

// NewDatasetSeeder creates a new DatasetSeeder instance
func NewDatasetSeeder(loader DatasetLoader, writer domain.CompanyWriter, logger *slog.Logger) *DatasetSeeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetSeeder{
		loader: loader,
		writer: writer,
		logger: logger,
	}
}

// WithCacheInvalidator makes every successful seed invalidate inv
func (s *DatasetSeeder) WithCacheInvalidator(inv CacheInvalidator) *DatasetSeeder {
	s.invalidator = inv
	return s
}

// Seed replaces the stored dataset with the records of the file at path
// Every record is validated before anything is written; returns the number of records stored
// A failed cache invalidation is reported after the records were written
func (s *DatasetSeeder) Seed(ctx context.Context, path string) (int, error) {
	records, err := s.loader.Load(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}

	if len(records) == 0 {
		return 0, errors.New("dataset contains no companies")
	}

	// Validate before writing
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return 0, fmt.Errorf("record %d (%s): %w", i+1, records[i].OrganizationName, err)
		}
	}

	if err := s.writer.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store companies: %w", err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateCache(ctx); err != nil {
			return len(records), fmt.Errorf("companies stored but cache not invalidated: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "dataset seeded", "path", path, "companies", len(records))
	return len(records), nil
}

// SeedIfEmpty seeds only when source holds no records
// Returns the number of records stored, zero when the source was already populated
func (s *DatasetSeeder) SeedIfEmpty(ctx context.Context, source domain.CompanyRepository, path string) (int, error) {
	existing, err := source.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing companies: %w", err)
	}

	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "dataset already present, skipping seed", "companies", len(existing))
		return 0, nil
	}

	return s.Seed(ctx, path)
}
