package repositories

import (
	"context"
	"time"

	"countryexchange/internal/core/domain"
)

// CountryReader defines read operations over persisted countries.
type CountryReader interface {
	// ListCountries retrieves countries matching the filter, sorted per
	// filter.Sort (name ascending by default).
	ListCountries(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)

	// FindCountryByName retrieves a country by case-insensitive exact name
	// match. Returns apperrors.ErrNotFound when no row matches.
	FindCountryByName(ctx context.Context, name string) (*domain.Country, error)

	// CountCountries returns the total number of persisted countries.
	CountCountries(ctx context.Context) (int64, error)

	// TopCountriesByGDP returns up to limit countries with a non-null
	// estimated GDP, highest first.
	TopCountriesByGDP(ctx context.Context, limit int) ([]domain.Country, error)
}

// CountryWriter defines write operations for country data.
type CountryWriter interface {
	// SaveCountry inserts a single country (the manual create path). Returns
	// apperrors.ErrDuplicate when a case-insensitive name match exists.
	SaveCountry(ctx context.Context, country domain.Country) (*domain.Country, error)

	// DeleteCountryByName removes the row matching the name
	// case-insensitively. Returns apperrors.ErrNotFound when nothing matched.
	DeleteCountryByName(ctx context.Context, name string) error

	// ApplyRefresh upserts every country (matched by case-insensitive name)
	// and the last-refreshed metadata key inside one transaction. Either all
	// writes persist or none do.
	ApplyRefresh(ctx context.Context, countries []domain.Country, refreshedAt time.Time) error
}

// CountryRepositoryFacade combines all country repository interfaces.
type CountryRepositoryFacade interface {
	CountryReader
	CountryWriter
}
