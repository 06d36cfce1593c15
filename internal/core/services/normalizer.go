package services

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"countryexchange/internal/core/domain"
)

// Multiplier bounds for the estimated GDP derivation.
const (
	gdpMultiplierMin = 1000
	gdpMultiplierMax = 2000
)

// Normalizer turns one raw upstream record plus the rate table into a
// storage-ready country, applying the GDP estimation policy. The multiplier
// draw is injectable so tests can pin it; the production default is a uniform
// integer in [1000, 2000], which makes estimated GDP intentionally
// non-deterministic across refreshes.
type Normalizer struct {
	randInt func(min, max int) int
	logger  *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil randInt selects the default
// uniform draw.
func NewNormalizer(randInt func(min, max int) int, logger *slog.Logger) *Normalizer {
	if randInt == nil {
		randInt = func(min, max int) int {
			return min + rand.IntN(max-min+1)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{randInt: randInt, logger: logger}
}

// Normalize validates and transforms raw. The second return value is false
// when the record must be skipped (missing name or missing/null population);
// skips are logged, never treated as errors. A population explicitly set to
// zero is valid.
func (n *Normalizer) Normalize(raw domain.RawCountry, rates map[string]float64, refreshedAt time.Time) (*domain.Country, bool) {
	if raw.Name == "" || raw.Population == nil {
		name := raw.Name
		if name == "" {
			name = "Unnamed"
		}
		n.logger.Warn("Skipping invalid country record", slog.String("name", name))
		return nil, false
	}

	population := int64(*raw.Population)

	var currency *string
	if len(raw.Currencies) > 0 && raw.Currencies[0].Code != "" {
		code := raw.Currencies[0].Code
		currency = &code
	}

	var exchangeRate *float64
	var estimatedGDP *float64
	switch {
	case currency == nil:
		// No currency at all: GDP is explicitly zero.
		zero := 0.0
		estimatedGDP = &zero
	default:
		rate, ok := rates[*currency]
		if !ok || rate == 0 {
			// Unknown currency or unusable rate: GDP is not computable.
			break
		}
		exchangeRate = &rate
		multiplier := n.randInt(gdpMultiplierMin, gdpMultiplierMax)
		gdp := float64(population) * float64(multiplier) / rate
		estimatedGDP = &gdp
	}

	country := &domain.Country{
		Name:            raw.Name,
		Capital:         optionalString(raw.Capital),
		Region:          optionalString(raw.Region),
		Population:      population,
		CurrencyCode:    currency,
		ExchangeRate:    exchangeRate,
		EstimatedGDP:    estimatedGDP,
		FlagURL:         optionalString(raw.Flag),
		LastRefreshedAt: &refreshedAt,
	}
	return country, true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
