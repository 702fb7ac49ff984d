package httpapi

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/companystats-backend/internal/domain"
)

type companyResponse struct {
	ID               int64  `json:"id"`
	Rank             int    `json:"rank"`
	OrganizationName string `json:"organizationName"`
	Country          string `json:"country"`
	Revenue          string `json:"revenue"`
	Profits          string `json:"profits"`
	Assets           string `json:"assets"`
	MarketValue      string `json:"marketValue"`
}

type valueResponse struct {
	Value string `json:"value"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toCompanyResponse(r domain.CompanyRecord) companyResponse {
	return companyResponse{
		ID:               r.ID,
		Rank:             r.Rank,
		OrganizationName: r.OrganizationName,
		Country:          r.Country,
		Revenue:          FormatDecimal(r.Revenue),
		Profits:          FormatDecimal(r.Profits),
		Assets:           FormatDecimal(r.Assets),
		MarketValue:      FormatDecimal(r.MarketValue),
	}
}

// FormatDecimal renders a value with the stored money scale, rounding half away from zero
func FormatDecimal(v decimal.Decimal) string {
	return v.StringFixed(domain.MoneyScale)
}
