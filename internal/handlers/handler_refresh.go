package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/dto"
	"countryexchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

// refreshCountries godoc
// @Summary Refresh all countries from external sources
// @Description Fetches countries and exchange rates concurrently, recomputes estimated GDP, and atomically upserts every record
// @Tags countries
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 503 {object} map[string]string "External data source unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /countries/refresh [post]
func (h *countryHandler) refreshCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refreshedAt, err := h.refreshSvc.RefreshCountries(c.Request.Context())
	if err != nil {
		var srcErr *apperrors.SourceError
		if errors.As(err, &srcErr) {
			logger.Warn("Refresh failed, source unavailable", slog.String("source", srcErr.Source))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "External data source unavailable",
				"details": fmt.Sprintf("Could not fetch data from %s", srcErr.Source),
			})
			return
		}
		logger.Error("Refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Message:         "Refresh completed",
		LastRefreshedAt: refreshedAt.Format(time.RFC3339),
	})
}
