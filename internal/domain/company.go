package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits stored for every money field (decimal(20,2))
const MoneyScale = 2

// maxMoneyIntegerDigits is the integer part allowed by decimal(20,2)
const maxMoneyIntegerDigits = 18

// CompanyRecord represents one company's ranked financial data
// Records are loaded by the seeder and are read-only for the API
type CompanyRecord struct {
	ID               int64
	Rank             int
	OrganizationName string
	Country          string
	Revenue          decimal.Decimal
	Profits          decimal.Decimal
	Assets           decimal.Decimal
	MarketValue      decimal.Decimal
}

// Validate ensures the record has every field populated within the stored precision
// Returns an error wrapping ErrValidation if validation fails
func (c *CompanyRecord) Validate() error {
	if c.Rank <= 0 {
		return fmt.Errorf("%w: rank must be positive, got %d", ErrValidation, c.Rank)
	}

	if c.OrganizationName == "" {
		return fmt.Errorf("%w: organization name cannot be empty", ErrValidation)
	}

	if c.Country == "" {
		return fmt.Errorf("%w: country cannot be empty", ErrValidation)
	}

	for _, field := range Fields {
		if err := validateMoney(field.Value(*c)); err != nil {
			return fmt.Errorf("%w: %s %v", ErrValidation, field, err)
		}
	}

	return nil
}

// validateMoney checks that a value fits decimal(20,2)
func validateMoney(v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MoneyScale)) {
		return errors.New("has more than 2 fractional digits")
	}

	integerDigits := len(v.Abs().Truncate(0).String())
	if integerDigits > maxMoneyIntegerDigits {
		return errors.New("exceeds 18 integer digits")
	}

	return nil
}
