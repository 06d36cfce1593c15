package services

import (
	"context"

	"countryexchange/internal/core/domain"
	"countryexchange/internal/dto"
)

// CountrySvcFacade exposes the read/query operations plus the manual create
// path over persisted countries.
type CountrySvcFacade interface {
	// ListCountries returns countries matching the filter. Unknown sort
	// values fall back to name ascending.
	ListCountries(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)

	// GetCountryByName retrieves one country by case-insensitive exact match.
	GetCountryByName(ctx context.Context, name string) (*domain.Country, error)

	// DeleteCountryByName removes the matching row and returns the name as
	// stored (original casing).
	DeleteCountryByName(ctx context.Context, name string) (string, error)

	// CreateCountry inserts a caller-supplied country. No GDP derivation is
	// applied. Returns apperrors.ErrDuplicate on a case-insensitive name
	// conflict.
	CreateCountry(ctx context.Context, req dto.CreateCountryRequest) (*domain.Country, error)

	// GetStatus reports the total row count and the last refresh timestamp,
	// nil before the first refresh.
	GetStatus(ctx context.Context) (*dto.StatusResponse, error)
}
