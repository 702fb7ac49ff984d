package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/companystats-backend/internal/domain"
)

// Predicate is a single filter condition over one record
type Predicate func(domain.CompanyRecord) bool

// Criteria holds the optional, independent filters of a company query
// A nil field imposes no constraint
type Criteria struct {
	Rank    *int
	MinRank *int
	MaxRank *int

	// Name and Country match case-insensitively anywhere in the value
	Name    *string
	Country *string

	// Money thresholds are inclusive lower bounds
	Revenue     *decimal.Decimal
	Profits     *decimal.Decimal
	Assets      *decimal.Decimal
	MarketValue *decimal.Decimal
}

// Params describes a full company query: filters, ordering and limit
type Params struct {
	Criteria

	// Order is the primary direction on rank; anything other than desc sorts ascending
	Order domain.Order

	// OrderBy is an optional secondary ascending sort; unknown values are ignored
	OrderBy string

	// Limit truncates the result when positive
	Limit int
}

// Predicates returns one predicate per present criterion
// Predicates are independent, so their order does not affect the result
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate

	if c.Rank != nil {
		rank := *c.Rank
		preds = append(preds, func(r domain.CompanyRecord) bool { return r.Rank == rank })
	}
	if c.MinRank != nil {
		minRank := *c.MinRank
		preds = append(preds, func(r domain.CompanyRecord) bool { return r.Rank >= minRank })
	}
	if c.MaxRank != nil {
		maxRank := *c.MaxRank
		preds = append(preds, func(r domain.CompanyRecord) bool { return r.Rank <= maxRank })
	}
	if c.Name != nil {
		preds = append(preds, containsFold(*c.Name, func(r domain.CompanyRecord) string { return r.OrganizationName }))
	}
	if c.Country != nil {
		preds = append(preds, containsFold(*c.Country, func(r domain.CompanyRecord) string { return r.Country }))
	}

	thresholds := []struct {
		field domain.Field
		lower *decimal.Decimal
	}{
		{domain.FieldRevenue, c.Revenue},
		{domain.FieldProfits, c.Profits},
		{domain.FieldAssets, c.Assets},
		{domain.FieldMarketValue, c.MarketValue},
	}
	for _, th := range thresholds {
		if th.lower == nil {
			continue
		}
		field, lower := th.field, *th.lower
		preds = append(preds, func(r domain.CompanyRecord) bool {
			return field.Value(r).GreaterThanOrEqual(lower)
		})
	}

	return preds
}

// containsFold builds a case-insensitive substring predicate over one string attribute
func containsFold(needle string, attr func(domain.CompanyRecord) string) Predicate {
	needle = strings.ToLower(needle)
	return func(r domain.CompanyRecord) bool {
		return strings.Contains(strings.ToLower(attr(r)), needle)
	}
}

// Filter returns the records satisfying every predicate, in input order
// The input slice is not modified
func Filter(records []domain.CompanyRecord, preds []Predicate) []domain.CompanyRecord {
	result := make([]domain.CompanyRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, preds) {
			result = append(result, r)
		}
	}
	return result
}

func matchesAll(r domain.CompanyRecord, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// Run executes a company query over records
// Logic:
//  1. Keep records matching every present criterion
//  2. Stable sort by rank in the requested direction (ties keep storage order)
//  3. If OrderBy is an allowed field, stable re-sort ascending by it, so equal values keep rank order
//  4. Truncate to Limit when Limit is positive
func Run(records []domain.CompanyRecord, params Params) []domain.CompanyRecord {
	result := Filter(records, params.Criteria.Predicates())

	desc := params.Order == domain.OrderDesc
	sort.SliceStable(result, func(i, j int) bool {
		if desc {
			return result[i].Rank > result[j].Rank
		}
		return result[i].Rank < result[j].Rank
	})

	if sortField, ok := domain.LookupSortField(params.OrderBy); ok {
		sort.SliceStable(result, func(i, j int) bool {
			return sortField.Less(result[i], result[j])
		})
	}

	if params.Limit > 0 && params.Limit < len(result) {
		result = result[:params.Limit]
	}

	return result
}
