package statistics

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/companystats-backend/internal/domain"
)

// Precision is the number of fractional digits kept by divisions and square roots
const Precision int32 = 16

// maxSqrtIterations bounds Newton's method; convergence normally takes a handful of steps
const maxSqrtIterations = 100

// MatchCountry reports whether a record's country matches the requested country
// Matching is exact after trimming, ignoring case; both statistics use this policy
func MatchCountry(recordCountry, requested string) bool {
	return strings.EqualFold(strings.TrimSpace(recordCountry), strings.TrimSpace(requested))
}

// population extracts the field values of every record in the requested country
func population(records []domain.CompanyRecord, country string, field domain.Field) ([]decimal.Decimal, error) {
	values := make([]decimal.Decimal, 0)
	for _, r := range records {
		if MatchCountry(r.Country, country) {
			values = append(values, field.Value(r))
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: country %q has no %s data", domain.ErrEmptyPopulation, country, field)
	}

	return values, nil
}

// CountryMean returns the arithmetic mean of field over the records of country
// Returns ErrEmptyPopulation if no record matches
func CountryMean(records []domain.CompanyRecord, country string, field domain.Field) (decimal.Decimal, error) {
	values, err := population(records, country, field)
	if err != nil {
		return decimal.Zero, err
	}

	return Mean(values), nil
}

// CountryStandardDeviation returns the population standard deviation (divisor N)
// of field over the records of country
// Returns ErrEmptyPopulation if no record matches
func CountryStandardDeviation(records []domain.CompanyRecord, country string, field domain.Field) (decimal.Decimal, error) {
	values, err := population(records, country, field)
	if err != nil {
		return decimal.Zero, err
	}

	return StandardDeviation(values), nil
}

// Mean returns sum(values) / N to Precision fractional digits
// values must not be empty
func Mean(values []decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(len(values)))
	return decimal.Sum(decimal.Zero, values...).DivRound(n, Precision)
}

// Variance returns the population variance of values
// Logic: (N * sum(x^2) - sum(x)^2) / N^2
// The numerator is exact, so the result is never negative and is zero iff all values are equal
// values must not be empty
func Variance(values []decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(len(values)))

	sum := decimal.Zero
	sumSq := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
		sumSq = sumSq.Add(v.Mul(v))
	}

	numerator := n.Mul(sumSq).Sub(sum.Mul(sum))
	return numerator.DivRound(n.Mul(n), 2*Precision)
}

// StandardDeviation returns the population standard deviation of values
// values must not be empty
func StandardDeviation(values []decimal.Decimal) decimal.Decimal {
	return Sqrt(Variance(values))
}

// Sqrt returns the square root of a non-negative decimal to Precision fractional digits
// Newton's method is seeded from the float64 estimate and refined in decimal arithmetic
func Sqrt(v decimal.Decimal) decimal.Decimal {
	if v.Sign() <= 0 {
		return decimal.Zero
	}

	two := decimal.NewFromInt(2)
	x := decimal.NewFromFloat(math.Sqrt(v.InexactFloat64()))
	if x.Sign() <= 0 {
		x = v
	}

	for i := 0; i < maxSqrtIterations; i++ {
		next := x.Add(v.DivRound(x, 2*Precision)).DivRound(two, 2*Precision)
		if next.Sub(x).Abs().LessThan(decimal.New(1, -(Precision + 2))) {
			x = next
			break
		}
		x = next
	}

	return x.Round(Precision)
}
