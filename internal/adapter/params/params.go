// Package params converts raw request parameters into typed engine inputs.
// Both the HTTP and gRPC transports parse through it so the two surfaces
// accept and reject exactly the same requests.
package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/companystats-backend/internal/domain"
	"github.com/simaogato/companystats-backend/internal/usecase/query"
)

// Company query parameter names
const (
	Rank        = "rank"
	MinRank     = "min_rank"
	MaxRank     = "max_rank"
	Name        = "name"
	Country     = "country"
	Revenue     = "revenue"
	Profits     = "profits"
	Assets      = "assets"
	MarketValue = "marketValue"
	Order       = "order"
	OrderBy     = "order_by"
	Limit       = "limit"
	Field       = "field"
)

// StatisticsRequest is a validated statistics query
type StatisticsRequest struct {
	Country string
	Field   domain.Field
}

// ParseCompanyQuery builds query params from request values
// Empty values count as absent. Malformed numbers and unknown order values
// return an error wrapping domain.ErrValidation
func ParseCompanyQuery(values url.Values) (query.Params, error) {
	var p query.Params
	var err error

	if p.Rank, err = optionalInt(values, Rank); err != nil {
		return query.Params{}, err
	}
	if p.MinRank, err = optionalInt(values, MinRank); err != nil {
		return query.Params{}, err
	}
	if p.MaxRank, err = optionalInt(values, MaxRank); err != nil {
		return query.Params{}, err
	}

	p.Name = optionalString(values, Name)
	p.Country = optionalString(values, Country)

	if p.Revenue, err = optionalDecimal(values, Revenue); err != nil {
		return query.Params{}, err
	}
	if p.Profits, err = optionalDecimal(values, Profits); err != nil {
		return query.Params{}, err
	}
	if p.Assets, err = optionalDecimal(values, Assets); err != nil {
		return query.Params{}, err
	}
	if p.MarketValue, err = optionalDecimal(values, MarketValue); err != nil {
		return query.Params{}, err
	}

	if p.Order, err = domain.ParseOrder(values.Get(Order)); err != nil {
		return query.Params{}, err
	}

	// Unknown order_by values are passed through; the engine ignores them
	p.OrderBy = strings.TrimSpace(values.Get(OrderBy))

	limit, err := optionalInt(values, Limit)
	if err != nil {
		return query.Params{}, err
	}
	if limit != nil {
		p.Limit = *limit
	}

	return p, nil
}

// ParseStatisticsRequest validates the country and field of a statistics query
func ParseStatisticsRequest(values url.Values) (StatisticsRequest, error) {
	country := strings.TrimSpace(values.Get(Country))
	if country == "" {
		return StatisticsRequest{}, fmt.Errorf("%w: country is required", domain.ErrValidation)
	}

	raw := strings.TrimSpace(values.Get(Field))
	if raw == "" {
		return StatisticsRequest{}, fmt.Errorf("%w: field is required", domain.ErrValidation)
	}

	field, err := domain.ParseField(raw)
	if err != nil {
		return StatisticsRequest{}, err
	}

	return StatisticsRequest{Country: country, Field: field}, nil
}

// optionalString treats only a missing or empty value as absent; whitespace is a filter value
func optionalString(values url.Values, key string) *string {
	v := values.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func optionalInt(values url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrValidation, key, raw)
	}
	return &v, nil
}

func optionalDecimal(values url.Values, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a decimal number, got %q", domain.ErrValidation, key, raw)
	}
	return &v, nil
}
