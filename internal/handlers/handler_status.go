package handlers

import (
	"log/slog"
	"net/http"

	"countryexchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

// getStatus godoc
// @Summary Dataset status
// @Description Reports the total country count and the last refresh timestamp
// @Tags countries
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /countries/status [get]
func (h *countryHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, err := h.countrySvc.GetStatus(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get status from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, status)
}
