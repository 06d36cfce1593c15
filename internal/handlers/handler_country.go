package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"reflect"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portssvc "countryexchange/internal/core/ports/services"
	"countryexchange/internal/dto"
	"countryexchange/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// countryHandler handles HTTP requests related to countries.
type countryHandler struct {
	countrySvc portssvc.CountrySvcFacade
	refreshSvc portssvc.RefreshSvcFacade
	imageSvc   portssvc.ImageSvcFacade
}

// newCountryHandler creates a new countryHandler.
func newCountryHandler(cs portssvc.CountrySvcFacade, rs portssvc.RefreshSvcFacade, is portssvc.ImageSvcFacade) *countryHandler {
	return &countryHandler{
		countrySvc: cs,
		refreshSvc: rs,
		imageSvc:   is,
	}
}

// registerCountryRoutes registers routes related to countries. The static
// /countries/image and /countries/status segments must coexist with the
// :name parameter, which gin's router supports.
func registerCountryRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newCountryHandler(services.Country, services.Refresh, services.Image)

	countries := r.Group("/countries")
	{
		countries.POST("/refresh", h.refreshCountries)
		countries.GET("", h.listCountries)
		countries.GET("/image", h.getImage)
		countries.GET("/status", h.getStatus)
		countries.GET("/:name", h.getCountry)
		countries.DELETE("/:name", h.deleteCountry)
		countries.POST("", h.createCountry)
	}

	// Root-level alias of the status endpoint
	r.GET("/status", h.getStatus)
}

// listCountries godoc
// @Summary List countries
// @Description Lists countries with optional case-insensitive substring filters and sorting
// @Tags countries
// @Produce json
// @Param region query string false "Region substring filter"
// @Param currency query string false "Currency code substring filter"
// @Param sort query string false "Sort order" Enums(gdp_desc, gdp_asc)
// @Success 200 {array} dto.CountryResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /countries [get]
func (h *countryHandler) listCountries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := domain.CountryFilter{
		Region:   c.Query("region"),
		Currency: c.Query("currency"),
		Sort:     c.Query("sort"),
	}

	countries, err := h.countrySvc.ListCountries(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list countries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCountryResponse(countries))
}

// getCountry godoc
// @Summary Get a country by name
// @Description Retrieves one country by case-insensitive exact name match
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} dto.CountryResponse
// @Failure 404 {object} map[string]string "Country not found"
// @Router /countries/{name} [get]
func (h *countryHandler) getCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	country, err := h.countrySvc.GetCountryByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		} else {
			logger.Error("Failed to get country from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCountryResponse(country))
}

// deleteCountry godoc
// @Summary Delete a country by name
// @Tags countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Country not found"
// @Router /countries/{name} [delete]
func (h *countryHandler) deleteCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	storedName, err := h.countrySvc.DeleteCountryByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
		} else {
			logger.Error("Failed to delete country from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info("Country deleted", slog.String("name", storedName))
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Country '%s' deleted successfully", storedName)})
}

// createCountry godoc
// @Summary Manually create a country
// @Description Inserts a caller-supplied country; no GDP derivation is applied
// @Tags countries
// @Accept json
// @Produce json
// @Param country body dto.CreateCountryRequest true "Country fields"
// @Success 201 {object} dto.CountryResponse
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Router /countries [post]
func (h *countryHandler) createCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCountry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": bindingErrorDetails(err),
		})
		return
	}

	created, err := h.countrySvc.CreateCountry(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate country", slog.String("name", req.Name))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": gin.H{"name": "already exists"},
			})
		} else {
			logger.Error("Failed to create country in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info("Country created", slog.String("name", created.Name))
	c.JSON(http.StatusCreated, dto.ToCountryResponse(created))
}

// getImage godoc
// @Summary Serve the cached summary image
// @Tags countries
// @Produce png
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Summary image not found"
// @Router /countries/image [get]
func (h *countryHandler) getImage(c *gin.Context) {
	path := h.imageSvc.ImagePath()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Summary image not found"})
		return
	}
	c.File(path)
}

// createFieldNames maps struct field names of CreateCountryRequest to their
// JSON names for per-field validation messages.
var createFieldNames = map[string]string{
	"Name":         "name",
	"Capital":      "capital",
	"Region":       "region",
	"Population":   "population",
	"CurrencyCode": "currency_code",
	"ExchangeRate": "exchange_rate",
	"EstimatedGDP": "estimated_gdp",
	"FlagURL":      "flag_url",
}

// bindingErrorDetails translates binding failures into a field->message map.
func bindingErrorDetails(err error) map[string]string {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field, ok := createFieldNames[fe.Field()]
			if !ok {
				field = fe.Field()
			}
			switch fe.Tag() {
			case "required":
				details[field] = "is required"
			default:
				details[field] = "is invalid"
			}
		}
		return details
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		switch ute.Type.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64:
			details[ute.Field] = "must be a number"
		case reflect.String:
			details[ute.Field] = "must be a string"
		default:
			details[ute.Field] = "is invalid"
		}
		return details
	}

	details["body"] = "must be valid JSON"
	return details
}
