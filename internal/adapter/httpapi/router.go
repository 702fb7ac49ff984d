package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds a gin engine with the middleware chain and the API mounted at basePath
func NewRouter(h *Handler, basePath string, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		CORSMiddleware(),
	)

	api := router.Group(basePath)
	h.RegisterRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "not found"})
	})

	return router
}
