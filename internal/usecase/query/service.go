package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// QueryService handles company list queries
type QueryService struct {
	Repo   domain.CompanyRepository
	Logger *slog.Logger
}

// NewQueryService creates a new QueryService instance
func NewQueryService(repo domain.CompanyRepository, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryService{
		Repo:   repo,
		Logger: logger,
	}
}

// List fetches a snapshot of the record source and runs the query over it
func (s *QueryService) List(ctx context.Context, params Params) ([]domain.CompanyRecord, error) {
	records, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch companies: %w", domain.ErrSourceUnavailable, err)
	}

	result := Run(records, params)

	s.Logger.DebugContext(ctx, "company query",
		"fetched", len(records),
		"returned", len(result),
		"order", params.Order,
		"order_by", params.OrderBy,
		"limit", params.Limit,
	)

	return result, nil
}
