// Package httpapi exposes the query and statistics services over HTTP with gin.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

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

// Pinger reports whether the record source is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the companies and statistics endpoints
type Handler struct {
	companies CompanyLister
	stats     StatisticsCalculator
	source    Pinger
	logger    *slog.Logger
}

// NewHandler creates a Handler
func NewHandler(companies CompanyLister, stats StatisticsCalculator, source Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		companies: companies,
		stats:     stats,
		source:    source,
		logger:    logger,
	}
}

// RegisterRoutes mounts the API on router
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	router.GET("/companies", h.ListCompanies)

	stats := router.Group("/statistics")
	stats.GET("/country_mean", h.CountryMean)
	stats.GET("/country_standard_deviation", h.CountryStandardDeviation)
}

// ListCompanies handles GET /companies
func (h *Handler) ListCompanies(c *gin.Context) {
	p, err := params.ParseCompanyQuery(c.Request.URL.Query())
	if err != nil {
		h.writeError(c, err)
		return
	}

	records, err := h.companies.List(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]companyResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, toCompanyResponse(r))
	}

	c.JSON(http.StatusOK, resp)
}

// CountryMean handles GET /statistics/country_mean
func (h *Handler) CountryMean(c *gin.Context) {
	h.statistic(c, h.stats.CountryMean)
}

// CountryStandardDeviation handles GET /statistics/country_standard_deviation
func (h *Handler) CountryStandardDeviation(c *gin.Context) {
	h.statistic(c, h.stats.CountryStandardDeviation)
}

type statisticFunc func(ctx context.Context, country string, field domain.Field) (decimal.Decimal, error)

func (h *Handler) statistic(c *gin.Context, fn statisticFunc) {
	req, err := params.ParseStatisticsRequest(c.Request.URL.Query())
	if err != nil {
		h.writeError(c, err)
		return
	}

	value, err := fn(c.Request.Context(), req.Country, req.Field)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, valueResponse{Value: FormatDecimal(value)})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	if err := h.source.Ping(c.Request.Context()); err != nil {
		h.logger.WarnContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
