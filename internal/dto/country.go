package dto

import (
	"time"

	"countryexchange/internal/core/domain"
)

// CreateCountryRequest defines the data needed to manually create a country.
// Pointers keep "field absent" distinguishable from zero values so required
// checks match the validation contract.
type CreateCountryRequest struct {
	Name         string   `json:"name" binding:"required"`
	Capital      *string  `json:"capital"`
	Region       *string  `json:"region"`
	Population   *int64   `json:"population" binding:"required"`
	CurrencyCode *string  `json:"currency_code" binding:"required"`
	ExchangeRate *float64 `json:"exchange_rate"`
	EstimatedGDP *float64 `json:"estimated_gdp"`
	FlagURL      *string  `json:"flag_url"`
}

// CountryResponse defines the data returned for a country.
type CountryResponse struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Capital         *string    `json:"capital"`
	Region          *string    `json:"region"`
	Population      int64      `json:"population"`
	CurrencyCode    *string    `json:"currency_code"`
	ExchangeRate    *float64   `json:"exchange_rate"`
	EstimatedGDP    *float64   `json:"estimated_gdp"`
	FlagURL         *string    `json:"flag_url"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// ToCountryResponse converts a domain.Country to CountryResponse DTO
func ToCountryResponse(c *domain.Country) CountryResponse {
	return CountryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

// ToListCountryResponse converts a slice of domain.Country to response DTOs
func ToListCountryResponse(countries []domain.Country) []CountryResponse {
	res := make([]CountryResponse, len(countries))
	for i, c := range countries {
		res[i] = ToCountryResponse(&c)
	}
	return res
}
