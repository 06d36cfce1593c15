package gateways

import (
	"context"

	"countryexchange/internal/core/domain"
)

// CountryDataGateway fetches raw data from the two external sources. A single
// implementation is injected at construction time; failures surface as
// apperrors.SourceError naming the upstream.
type CountryDataGateway interface {
	// FetchCountries retrieves the raw country list.
	FetchCountries(ctx context.Context) ([]domain.RawCountry, error)

	// FetchExchangeRates retrieves the USD-relative rate per currency code.
	// The mapping may be empty.
	FetchExchangeRates(ctx context.Context) (map[string]float64, error)
}
