package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Field represents a numeric money field of a company record
type Field string

const (
	FieldRevenue     Field = "revenue"
	FieldProfits     Field = "profits"
	FieldAssets      Field = "assets"
	FieldMarketValue Field = "marketValue"
)

// Fields lists every numeric field in storage column order
var Fields = []Field{FieldRevenue, FieldProfits, FieldAssets, FieldMarketValue}

// ParseField converts a request value to a Field
// Field names are matched exactly, mirroring the stored attribute names
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: field must be one of revenue, profits, assets, marketValue, got %q", ErrValidation, s)
}

// Value extracts the field value from a record
func (f Field) Value(c CompanyRecord) decimal.Decimal {
	switch f {
	case FieldRevenue:
		return c.Revenue
	case FieldProfits:
		return c.Profits
	case FieldAssets:
		return c.Assets
	case FieldMarketValue:
		return c.MarketValue
	default:
		return decimal.Zero
	}
}

// SortField represents a field accepted by order_by
type SortField string

const (
	SortByOrganizationName SortField = "organizationName"
	SortByRevenue          SortField = SortField(FieldRevenue)
	SortByProfits          SortField = SortField(FieldProfits)
	SortByAssets           SortField = SortField(FieldAssets)
	SortByMarketValue      SortField = SortField(FieldMarketValue)
)

// LookupSortField returns the SortField for s and whether s is an allowed order_by value
// Unknown values are not an error: callers ignore them
func LookupSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByOrganizationName, SortByRevenue, SortByProfits, SortByAssets, SortByMarketValue:
		return SortField(s), true
	default:
		return "", false
	}
}

// Less reports whether a sorts before b on this field, ascending
func (f SortField) Less(a, b CompanyRecord) bool {
	if f == SortByOrganizationName {
		return a.OrganizationName < b.OrganizationName
	}
	field := Field(f)
	return field.Value(a).LessThan(field.Value(b))
}

// Order represents the primary rank ordering direction
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder converts a request value to an Order
// An empty value means ascending
func ParseOrder(s string) (Order, error) {
	switch strings.TrimSpace(s) {
	case "", string(OrderAsc):
		return OrderAsc, nil
	case string(OrderDesc):
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("%w: order must be asc or desc, got %q", ErrValidation, s)
	}
}
