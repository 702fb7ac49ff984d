package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/companystats-backend/internal/domain"
)

// CacheKeyPrefix starts every statistics cache key
const CacheKeyPrefix = "statistics:"

// Kind identifies a statistic
type Kind string

const (
	KindMean              Kind = "mean"
	KindStandardDeviation Kind = "stddev"
)

// Cache defines a read-through store for computed statistics
// Values are decimal strings. Invalidate drops every cached statistic and must be
// called whenever the stored dataset is replaced
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Invalidate(ctx context.Context) error
}

// StatisticsService handles per-country aggregate statistics
type StatisticsService struct {
	Repo   domain.CompanyRepository
	Cache  Cache // optional
	Logger *slog.Logger
}

// NewStatisticsService creates a new StatisticsService instance
// cache may be nil
func NewStatisticsService(repo domain.CompanyRepository, cache Cache, logger *slog.Logger) *StatisticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatisticsService{
		Repo:   repo,
		Cache:  cache,
		Logger: logger,
	}
}

// CountryMean returns the mean of field over the companies of country
func (s *StatisticsService) CountryMean(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error) {
	return s.compute(ctx, KindMean, country, field, CountryMean)
}

// CountryStandardDeviation returns the population standard deviation of field over the companies of country
func (s *StatisticsService) CountryStandardDeviation(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error) {
	return s.compute(ctx, KindStandardDeviation, country, field, CountryStandardDeviation)
}

type statFunc func(records []domain.CompanyRecord, country string, field domain.Field) (decimal.Decimal, error)

func (s *StatisticsService) compute(ctx context.Context, kind Kind, country string, field domain.Field, fn statFunc) (decimal.Decimal, error) {
	key := CacheKey(kind, country, field)

	if value, ok := s.cached(ctx, key); ok {
		return value, nil
	}

	records, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to fetch companies: %w", domain.ErrSourceUnavailable, err)
	}

	value, err := fn(records, country, field)
	if err != nil {
		return decimal.Zero, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, value.String()); err != nil {
			s.Logger.WarnContext(ctx, "failed to cache statistic", "key", key, "error", err)
		}
	}

	return value, nil
}

// cached looks up key, treating cache errors and corrupt entries as misses
func (s *StatisticsService) cached(ctx context.Context, key string) (decimal.Decimal, bool) {
	if s.Cache == nil {
		return decimal.Zero, false
	}

	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.Logger.WarnContext(ctx, "statistics cache unavailable", "key", key, "error", err)
		return decimal.Zero, false
	}
	if !ok {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		s.Logger.WarnContext(ctx, "discarding corrupt cache entry", "key", key, "error", err)
		return decimal.Zero, false
	}

	return value, true
}

// InvalidateCache drops every cached statistic so the next request reads the source again
func (s *StatisticsService) InvalidateCache(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate statistics cache: %w", err)
	}
	return nil
}

// CacheKey builds the cache key of a statistic
// The country is normalized the same way MatchCountry compares it
func CacheKey(kind Kind, country string, field domain.Field) string {
	return fmt.Sprintf(CacheKeyPrefix+"%s:%s:%s", kind, field, strings.ToLower(strings.TrimSpace(country)))
}
