package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portsgw "countryexchange/internal/core/ports/gateways"
)

// Upstream identifiers surfaced in SourceError and in 503 responses.
const (
	SourceCountries     = "restcountries"
	SourceExchangeRates = "exchangerates"
)

// Gateway fetches country and exchange-rate data over HTTP. Each call is
// bounded by the configured timeout.
type Gateway struct {
	client       *http.Client
	countriesURL string
	ratesURL     string
	timeout      time.Duration
}

// NewGateway creates an HTTP gateway for the two external sources.
func NewGateway(countriesURL, ratesURL string, timeout time.Duration) portsgw.CountryDataGateway {
	return &Gateway{
		client:       &http.Client{},
		countriesURL: countriesURL,
		ratesURL:     ratesURL,
		timeout:      timeout,
	}
}

// FetchCountries retrieves the raw country list. Any transport error,
// timeout, non-200 status, or payload that is not a JSON array is reported as
// a SourceError for the countries upstream.
func (g *Gateway) FetchCountries(ctx context.Context) ([]domain.RawCountry, error) {
	body, err := g.get(ctx, g.countriesURL)
	if err != nil {
		return nil, apperrors.NewSourceError(SourceCountries, err)
	}

	var countries []domain.RawCountry
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, apperrors.NewSourceError(SourceCountries, fmt.Errorf("invalid countries payload: %w", err))
	}
	if countries == nil {
		return nil, apperrors.NewSourceError(SourceCountries, fmt.Errorf("countries payload is not a list"))
	}
	return countries, nil
}

// FetchExchangeRates retrieves the USD-relative rate table. A payload without
// a rates mapping is treated as source unavailability; an empty mapping is
// valid.
func (g *Gateway) FetchExchangeRates(ctx context.Context) (map[string]float64, error) {
	body, err := g.get(ctx, g.ratesURL)
	if err != nil {
		return nil, apperrors.NewSourceError(SourceExchangeRates, err)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewSourceError(SourceExchangeRates, fmt.Errorf("invalid rates payload: %w", err))
	}
	if payload.Rates == nil {
		return nil, apperrors.NewSourceError(SourceExchangeRates, fmt.Errorf("rates payload missing rates mapping"))
	}
	return payload.Rates, nil
}

func (g *Gateway) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
