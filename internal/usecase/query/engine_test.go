package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/companystats-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func company(id int64, rank int, name, country, revenue string) domain.CompanyRecord {
	return domain.CompanyRecord{
		ID:               id,
		Rank:             rank,
		OrganizationName: name,
		Country:          country,
		Revenue:          decimal.RequireFromString(revenue),
		Profits:          decimal.NewFromInt(int64(rank)),
		Assets:           decimal.NewFromInt(100),
		MarketValue:      decimal.NewFromInt(1000 - int64(rank)),
	}
}

// fixture returns five records stored out of rank order
func fixture() []domain.CompanyRecord {
	return []domain.CompanyRecord{
		company(1, 3, "Toyota Motor", "Japan", "275.3"),
		company(2, 1, "JPMorgan Chase", "United States", "252.9"),
		company(3, 5, "Shell", "United Kingdom", "381.3"),
		company(4, 2, "Berkshire Hathaway", "United States", "276.1"),
		company(5, 4, "HSBC Holdings", "United Kingdom", "100.5"),
	}
}

func ranks(records []domain.CompanyRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Rank
	}
	return out
}

func TestRun_NoCriteria_ReturnsAllAscending(t *testing.T) {
	result := Run(fixture(), Params{})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks(result))
}

func TestRun_Descending(t *testing.T) {
	result := Run(fixture(), Params{Order: domain.OrderDesc})
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ranks(result))
}

func TestRun_Filters(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{name: "rank equals", criteria: Criteria{Rank: ptr(3)}, want: []int{3}},
		{name: "min rank inclusive", criteria: Criteria{MinRank: ptr(4)}, want: []int{4, 5}},
		{name: "max rank inclusive", criteria: Criteria{MaxRank: ptr(2)}, want: []int{1, 2}},
		{name: "rank window", criteria: Criteria{MinRank: ptr(2), MaxRank: ptr(4)}, want: []int{2, 3, 4}},
		{name: "name is case-insensitive substring", criteria: Criteria{Name: ptr("hsbc")}, want: []int{4}},
		{name: "name matches in the middle", criteria: Criteria{Name: ptr("HATH")}, want: []int{2}},
		{name: "country partial match", criteria: Criteria{Country: ptr("united")}, want: []int{1, 2, 4, 5}},
		{name: "revenue inclusive lower bound", criteria: Criteria{Revenue: ptr(decimal.RequireFromString("276.1"))}, want: []int{2, 5}},
		{name: "profits lower bound", criteria: Criteria{Profits: ptr(decimal.NewFromInt(4))}, want: []int{4, 5}},
		{name: "market value lower bound", criteria: Criteria{MarketValue: ptr(decimal.NewFromInt(998))}, want: []int{1, 2}},
		{name: "combined with AND", criteria: Criteria{Country: ptr("united states"), Revenue: ptr(decimal.NewFromInt(260))}, want: []int{2}},
		{name: "no match", criteria: Criteria{Country: ptr("France")}, want: []int{}},
		{name: "contradictory bounds", criteria: Criteria{MinRank: ptr(4), MaxRank: ptr(2)}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Run(fixture(), Params{Criteria: tt.criteria})
			assert.Equal(t, tt.want, ranks(result))
		})
	}
}

func TestRun_FilterSoundAndComplete(t *testing.T) {
	records := fixture()
	criteria := Criteria{Country: ptr("united"), MinRank: ptr(2)}
	preds := criteria.Predicates()

	result := Run(records, Params{Criteria: criteria})

	inResult := make(map[int64]bool)
	for _, r := range result {
		inResult[r.ID] = true
		assert.True(t, matchesAll(r, preds), "record %d should satisfy every predicate", r.ID)
	}
	for _, r := range records {
		if !inResult[r.ID] {
			assert.False(t, matchesAll(r, preds), "record %d satisfies every predicate but was dropped", r.ID)
		}
	}
}

func TestRun_PredicateOrderDoesNotMatter(t *testing.T) {
	records := fixture()
	preds := Criteria{Country: ptr("united"), MaxRank: ptr(4), Revenue: ptr(decimal.NewFromInt(200))}.Predicates()
	require.Len(t, preds, 3)

	reversed := []Predicate{preds[2], preds[1], preds[0]}
	assert.Equal(t, Filter(records, preds), Filter(records, reversed))
}

func TestRun_Idempotent(t *testing.T) {
	params := Params{Criteria: Criteria{Country: ptr("united")}}

	once := Run(fixture(), params)
	twice := Run(once, params)

	assert.Equal(t, once, twice)
}

func TestRun_OrderByIsStableOverRankOrder(t *testing.T) {
	// All assets are equal, so order_by=assets must keep the rank order
	result := Run(fixture(), Params{OrderBy: "assets"})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks(result))

	result = Run(fixture(), Params{Order: domain.OrderDesc, OrderBy: "assets"})
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ranks(result))
}

func TestRun_OrderByRevenueAscendingOnly(t *testing.T) {
	result := Run(fixture(), Params{Order: domain.OrderDesc, OrderBy: "revenue"})
	// revenue ascending: 100.5(4), 252.9(1), 275.3(3), 276.1(2), 381.3(5)
	assert.Equal(t, []int{4, 1, 3, 2, 5}, ranks(result))
}

func TestRun_OrderByTiesKeepRankDirection(t *testing.T) {
	records := []domain.CompanyRecord{
		company(1, 1, "A", "France", "10"),
		company(2, 2, "B", "France", "20"),
		company(3, 3, "C", "France", "10"),
		company(4, 4, "D", "France", "20"),
	}

	asc := Run(records, Params{OrderBy: "revenue"})
	assert.Equal(t, []int{1, 3, 2, 4}, ranks(asc))

	desc := Run(records, Params{Order: domain.OrderDesc, OrderBy: "revenue"})
	assert.Equal(t, []int{3, 1, 4, 2}, ranks(desc))
}

func TestRun_OrderByOrganizationName(t *testing.T) {
	result := Run(fixture(), Params{OrderBy: "organizationName"})
	names := make([]string, len(result))
	for i, r := range result {
		names[i] = r.OrganizationName
	}
	assert.Equal(t, []string{"Berkshire Hathaway", "HSBC Holdings", "JPMorgan Chase", "Shell", "Toyota Motor"}, names)
}

func TestRun_UnknownOrderByIgnored(t *testing.T) {
	result := Run(fixture(), Params{Order: domain.OrderDesc, OrderBy: "country"})
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ranks(result))
}

func TestRun_EqualRanksKeepStorageOrder(t *testing.T) {
	records := []domain.CompanyRecord{
		company(1, 2, "First", "France", "1"),
		company(2, 1, "Top", "France", "1"),
		company(3, 2, "Second", "France", "1"),
	}

	result := Run(records, Params{})
	require.Len(t, result, 3)
	assert.Equal(t, int64(2), result[0].ID)
	assert.Equal(t, int64(1), result[1].ID)
	assert.Equal(t, int64(3), result[2].ID)
}

func TestRun_Limit(t *testing.T) {
	full := Run(fixture(), Params{})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "positive limit truncates", limit: 2, want: 2},
		{name: "limit equal to length", limit: 5, want: 5},
		{name: "limit larger than result", limit: 50, want: 5},
		{name: "zero limit ignored", limit: 0, want: 5},
		{name: "negative limit ignored", limit: -3, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Run(fixture(), Params{Limit: tt.limit})
			assert.Len(t, result, tt.want)
			assert.Equal(t, full[:tt.want], result, "result should be a prefix of the unlimited result")
		})
	}
}

func TestRun_CountryDescLimit(t *testing.T) {
	result := Run(fixture(), Params{
		Criteria: Criteria{MinRank: ptr(2), Country: ptr("united")},
		Order:    domain.OrderDesc,
		Limit:    1,
	})

	require.Len(t, result, 1)
	assert.Equal(t, 5, result[0].Rank)
	assert.Equal(t, "Shell", result[0].OrganizationName)
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	before := make([]domain.CompanyRecord, len(records))
	copy(before, records)

	Run(records, Params{Order: domain.OrderDesc, OrderBy: "revenue", Limit: 2})

	assert.Equal(t, before, records)
}
