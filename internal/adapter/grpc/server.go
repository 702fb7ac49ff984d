package grpc

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/companystats-backend/internal/adapter/params"
	"github.com/simaogato/companystats-backend/internal/domain"
	"github.com/simaogato/companystats-backend/internal/usecase/query"
)

// CompanyLister runs company queries
type CompanyLister interface {
	List(ctx context.Context, p query.Params) ([]domain.CompanyRecord, error)
}

// StatisticsCalculator computes per-country statistics
type StatisticsCalculator interface {
	CountryMean(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error)
	CountryStandardDeviation(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error)
}

// Server implements the CompanyStatsService gRPC server
type Server struct {
	QueryService      CompanyLister
	StatisticsService StatisticsCalculator
}

// NewServer creates a new gRPC server instance
func NewServer(queryService CompanyLister, statisticsService StatisticsCalculator) *Server {
	return &Server{
		QueryService:      queryService,
		StatisticsService: statisticsService,
	}
}

// ListCompanies handles the ListCompanies RPC
func (s *Server) ListCompanies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	values, err := structToValues(req)
	if err != nil {
		return nil, err
	}

	// Parse filters, ordering and limit the same way the HTTP API does
	p, err := params.ParseCompanyQuery(values)
	if err != nil {
		return nil, mapError(err)
	}

	records, err := s.QueryService.List(ctx, p)
	if err != nil {
		return nil, mapError(err)
	}

	companies := make([]any, 0, len(records))
	for _, r := range records {
		companies = append(companies, companyToMap(r))
	}

	// Build response
	resp, err := structpb.NewStruct(map[string]any{"companies": companies})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// CountryMean handles the CountryMean RPC
func (s *Server) CountryMean(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.statistic(ctx, req, s.StatisticsService.CountryMean)
}

// CountryStandardDeviation handles the CountryStandardDeviation RPC
func (s *Server) CountryStandardDeviation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.statistic(ctx, req, s.StatisticsService.CountryStandardDeviation)
}

type statisticFunc func(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error)

func (s *Server) statistic(ctx context.Context, req *structpb.Struct, fn statisticFunc) (*structpb.Struct, error) {
	values, err := structToValues(req)
	if err != nil {
		return nil, err
	}

	statReq, err := params.ParseStatisticsRequest(values)
	if err != nil {
		return nil, mapError(err)
	}

	value, err := fn(ctx, statReq.Country, statReq.Field)
	if err != nil {
		return nil, mapError(err)
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"value": structpb.NewStringValue(formatMoney(value)),
		},
	}, nil
}

// structToValues flattens a request struct into query values
// Strings pass through, numbers use their shortest decimal form and nulls are absent
func structToValues(req *structpb.Struct) (url.Values, error) {
	values := url.Values{}
	for key, v := range req.GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NullValue:
			continue
		case *structpb.Value_StringValue:
			values.Set(key, kind.StringValue)
		case *structpb.Value_NumberValue:
			values.Set(key, strconv.FormatFloat(kind.NumberValue, 'f', -1, 64))
		case *structpb.Value_BoolValue:
			values.Set(key, strconv.FormatBool(kind.BoolValue))
		default:
			return nil, status.Errorf(codes.InvalidArgument, "invalid parameter: %s must be a scalar", key)
		}
	}
	return values, nil
}

// companyToMap converts a domain record to the response shape shared with the HTTP API
func companyToMap(r domain.CompanyRecord) map[string]any {
	return map[string]any{
		"id":               r.ID,
		"rank":             r.Rank,
		"organizationName": r.OrganizationName,
		"country":          r.Country,
		"revenue":          formatMoney(r.Revenue),
		"profits":          formatMoney(r.Profits),
		"assets":           formatMoney(r.Assets),
		"marketValue":      formatMoney(r.MarketValue),
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(domain.MoneyScale)
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrEmptyPopulation):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		// Source errors carry connection details; only the sentinel goes to the client
		return status.Error(codes.Unavailable, domain.ErrSourceUnavailable.Error())
	default:
		// Default to Internal error for unknown errors
		return status.Errorf(codes.Internal, "%s", err.Error())
	}
}
