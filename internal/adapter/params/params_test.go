package params

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/companystats-backend/internal/domain"
)

func TestParseCompanyQuery(t *testing.T) {
	values := url.Values{
		"rank":        {"3"},
		"min_rank":    {" 2 "},
		"max_rank":    {"10"},
		"name":        {"bank"},
		"country":     {"United"},
		"revenue":     {"100.5"},
		"marketValue": {"-1"},
		"order":       {"desc"},
		"order_by":    {"profits"},
		"limit":       {"5"},
	}

	p, err := ParseCompanyQuery(values)
	require.NoError(t, err)

	require.NotNil(t, p.Rank)
	assert.Equal(t, 3, *p.Rank)
	assert.Equal(t, 2, *p.MinRank)
	assert.Equal(t, 10, *p.MaxRank)
	assert.Equal(t, "bank", *p.Name)
	assert.Equal(t, "United", *p.Country)
	assert.True(t, p.Revenue.Equal(decimal.RequireFromString("100.5")))
	assert.Nil(t, p.Profits)
	assert.Nil(t, p.Assets)
	assert.True(t, p.MarketValue.Equal(decimal.NewFromInt(-1)))
	assert.Equal(t, domain.OrderDesc, p.Order)
	assert.Equal(t, "profits", p.OrderBy)
	assert.Equal(t, 5, p.Limit)
}

func TestParseCompanyQuery_EmptyValuesAreAbsent(t *testing.T) {
	p, err := ParseCompanyQuery(url.Values{
		"rank":    {""},
		"name":    {""},
		"revenue": {""},
		"order":   {""},
		"limit":   {""},
	})
	require.NoError(t, err)

	assert.Nil(t, p.Rank)
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Revenue)
	assert.Equal(t, domain.OrderAsc, p.Order)
	assert.Zero(t, p.Limit)
}

func TestParseCompanyQuery_WhitespaceStringsAreFilters(t *testing.T) {
	p, err := ParseCompanyQuery(url.Values{"name": {"  "}, "country": {" "}})
	require.NoError(t, err)

	require.NotNil(t, p.Name)
	assert.Equal(t, "  ", *p.Name)
	require.NotNil(t, p.Country)
	assert.Equal(t, " ", *p.Country)
}

func TestParseCompanyQuery_Leniency(t *testing.T) {
	p, err := ParseCompanyQuery(url.Values{"order_by": {"bogus"}, "limit": {"-4"}})
	require.NoError(t, err)

	assert.Equal(t, "bogus", p.OrderBy, "unknown order_by is left for the engine to ignore")
	assert.Equal(t, -4, p.Limit, "non-positive limit is accepted and ignored by the engine")
}

func TestParseCompanyQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		errMsg string
	}{
		{name: "rank not integer", values: url.Values{"rank": {"one"}}, errMsg: `rank must be an integer, got "one"`},
		{name: "min_rank float", values: url.Values{"min_rank": {"1.5"}}, errMsg: "min_rank must be an integer"},
		{name: "revenue not decimal", values: url.Values{"revenue": {"lots"}}, errMsg: "revenue must be a decimal number"},
		{name: "assets not decimal", values: url.Values{"assets": {"1e"}}, errMsg: "assets must be a decimal number"},
		{name: "bad order", values: url.Values{"order": {"up"}}, errMsg: "order must be asc or desc"},
		{name: "limit not integer", values: url.Values{"limit": {"ten"}}, errMsg: "limit must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompanyQuery(tt.values)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseStatisticsRequest(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		want    StatisticsRequest
		wantErr string
	}{
		{
			name:   "valid",
			values: url.Values{"country": {" France "}, "field": {"marketValue"}},
			want:   StatisticsRequest{Country: "France", Field: domain.FieldMarketValue},
		},
		{name: "missing country", values: url.Values{"field": {"revenue"}}, wantErr: "country is required"},
		{name: "blank country", values: url.Values{"country": {"   "}, "field": {"revenue"}}, wantErr: "country is required"},
		{name: "missing field", values: url.Values{"country": {"France"}}, wantErr: "field is required"},
		{name: "unknown field", values: url.Values{"country": {"France"}, "field": {"rank"}}, wantErr: "field must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatisticsRequest(tt.values)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
