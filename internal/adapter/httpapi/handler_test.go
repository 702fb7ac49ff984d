package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/companystats-backend/internal/adapter/repository/memory"
	"github.com/simaogato/companystats-backend/internal/domain"
	"github.com/simaogato/companystats-backend/internal/usecase/query"
	"github.com/simaogato/companystats-backend/internal/usecase/statistics"
)

func company(rank int, name, country, revenue string) domain.CompanyRecord {
	return domain.CompanyRecord{
		Rank:             rank,
		OrganizationName: name,
		Country:          country,
		Revenue:          decimal.RequireFromString(revenue),
		Profits:          decimal.NewFromInt(int64(10 * rank)),
		Assets:           decimal.NewFromInt(int64(100 * rank)),
		MarketValue:      decimal.NewFromInt(int64(1000 - rank)),
	}
}

// failingSource is a record source that cannot be reached
type failingSource struct{}

func (failingSource) FetchAll(context.Context) ([]domain.CompanyRecord, error) {
	return nil, errors.New("connection refused")
}

func (failingSource) Ping(context.Context) error {
	return errors.New("connection refused")
}

func newTestRouter(t *testing.T, repo domain.CompanyRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(
		query.NewQueryService(repo, nil),
		statistics.NewStatisticsService(repo, nil, nil),
		repo,
		nil,
	)
	return NewRouter(h, "/api", nil)
}

func seededRouter(t *testing.T) *gin.Engine {
	t.Helper()

	repo := memory.NewCompanyRepository()
	require.NoError(t, repo.ReplaceAll(context.Background(), []domain.CompanyRecord{
		company(3, "Credit Agricole", "France", "200"),
		company(1, "JPMorgan Chase", "United States", "252.9"),
		company(2, "BNP Paribas", "France", "100"),
		company(5, "HSBC Holdings", "United Kingdom", "88.2"),
		company(4, "Bank of America", "United States", "183.3"),
	}))

	return newTestRouter(t, repo)
}

func get(t *testing.T, router *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCompanies(t *testing.T, w *httptest.ResponseRecorder) []companyResponse {
	t.Helper()
	var resp []companyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestListCompanies_Default(t *testing.T) {
	w := get(t, seededRouter(t), "/api/companies")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCompanies(t, w)
	require.Len(t, resp, 5)

	for i, c := range resp {
		assert.Equal(t, i+1, c.Rank)
	}
	assert.Equal(t, "JPMorgan Chase", resp[0].OrganizationName)
	assert.Equal(t, "252.90", resp[0].Revenue)
	assert.Equal(t, "999.00", resp[0].MarketValue)
	assert.Equal(t, int64(2), resp[0].ID)
}

func TestListCompanies_FiltersOrderAndLimit(t *testing.T) {
	w := get(t, seededRouter(t), "/api/companies?min_rank=2&country=united&order=desc&limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCompanies(t, w)
	require.Len(t, resp, 1)
	assert.Equal(t, 5, resp[0].Rank)
	assert.Equal(t, "HSBC Holdings", resp[0].OrganizationName)
}

func TestListCompanies_OrderBy(t *testing.T) {
	w := get(t, seededRouter(t), "/api/companies?country=FRANCE&order_by=revenue")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCompanies(t, w)
	require.Len(t, resp, 2)
	assert.Equal(t, "BNP Paribas", resp[0].OrganizationName)
	assert.Equal(t, "Credit Agricole", resp[1].OrganizationName)
}

func TestListCompanies_Leniency(t *testing.T) {
	router := seededRouter(t)

	for _, target := range []string{
		"/api/companies?order_by=rank",
		"/api/companies?limit=0",
		"/api/companies?limit=-3",
	} {
		w := get(t, router, target)
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Len(t, decodeCompanies(t, w), 5, target)
	}
}

func TestListCompanies_NoMatches(t *testing.T) {
	w := get(t, seededRouter(t), "/api/companies?name=nonexistent")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListCompanies_ValidationErrors(t *testing.T) {
	router := seededRouter(t)

	for _, target := range []string{
		"/api/companies?rank=abc",
		"/api/companies?revenue=much",
		"/api/companies?order=sideways",
		"/api/companies?limit=all",
	} {
		w := get(t, router, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var body errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Detail, "invalid parameter", target)
	}
}

func TestStatistics_FranceExample(t *testing.T) {
	router := seededRouter(t)

	w := get(t, router, "/api/statistics/country_mean?country=France&field=revenue")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":"150.00"}`, w.Body.String())

	w = get(t, router, "/api/statistics/country_standard_deviation?country=france&field=revenue")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"value":"50.00"}`, w.Body.String())
}

func TestStatistics_Errors(t *testing.T) {
	router := seededRouter(t)

	tests := []struct {
		name   string
		target string
		status int
		detail string
	}{
		{name: "missing country", target: "/api/statistics/country_mean?field=revenue", status: http.StatusBadRequest, detail: "country is required"},
		{name: "missing field", target: "/api/statistics/country_mean?country=France", status: http.StatusBadRequest, detail: "field is required"},
		{name: "unknown field", target: "/api/statistics/country_standard_deviation?country=France&field=rank", status: http.StatusBadRequest, detail: "field must be one of"},
		{name: "partial country is not a match", target: "/api/statistics/country_mean?country=Fran&field=revenue", status: http.StatusNotFound, detail: "Fran"},
		{name: "unknown country", target: "/api/statistics/country_standard_deviation?country=Atlantis&field=assets", status: http.StatusNotFound, detail: "Atlantis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.target)
			assert.Equal(t, tt.status, w.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body.Detail, tt.detail)
		})
	}
}

func TestSourceUnavailable(t *testing.T) {
	router := newTestRouter(t, failingSource{})

	for _, target := range []string{
		"/api/companies",
		"/api/statistics/country_mean?country=France&field=revenue",
	} {
		w := get(t, router, target)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
		assert.NotContains(t, w.Body.String(), "connection refused", "internal errors are not leaked")
	}

	w := get(t, router, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	w := get(t, seededRouter(t), "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	router := seededRouter(t)

	w := get(t, router, "/api/health")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestNoRoute(t *testing.T) {
	w := get(t, seededRouter(t), "/companies")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrValidation))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrEmptyPopulation))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(domain.ErrSourceUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "150.00", FormatDecimal(decimal.NewFromInt(150)))
	assert.Equal(t, "1.33", FormatDecimal(decimal.RequireFromString("1.3333333333333333")))
	assert.Equal(t, "9.27", FormatDecimal(decimal.RequireFromString("9.2668764964253193")))
	assert.Equal(t, "-0.01", FormatDecimal(decimal.RequireFromString("-0.005")))
}
