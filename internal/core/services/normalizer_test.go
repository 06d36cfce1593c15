package services_test

import (
	"log/slog"
	"testing"
	"time"

	"countryexchange/internal/core/domain"
	"countryexchange/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinnedMultiplier(value int) func(min, max int) int {
	return func(min, max int) int { return value }
}

func rawPopulation(v float64) *domain.FlexFloat {
	f := domain.FlexFloat(v)
	return &f
}

func TestNormalize_NoCurrencyMeansZeroGDP(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	raw := domain.RawCountry{Name: "Atlantis", Population: rawPopulation(500)}

	country, ok := n.Normalize(raw, map[string]float64{"USD": 1}, now)
	require.True(t, ok)
	assert.Nil(t, country.CurrencyCode)
	assert.Nil(t, country.ExchangeRate)
	require.NotNil(t, country.EstimatedGDP)
	assert.Equal(t, 0.0, *country.EstimatedGDP)
}

func TestNormalize_CurrencyMissingFromRates(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	raw := domain.RawCountry{
		Name:       "Kenya",
		Population: rawPopulation(1000000),
		Currencies: []domain.RawCurrency{{Code: "USD"}},
	}

	country, ok := n.Normalize(raw, map[string]float64{}, now)
	require.True(t, ok)
	require.NotNil(t, country.CurrencyCode)
	assert.Equal(t, "USD", *country.CurrencyCode)
	assert.Nil(t, country.ExchangeRate)
	assert.Nil(t, country.EstimatedGDP)
}

func TestNormalize_ZeroRateIsNotComputable(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	raw := domain.RawCountry{
		Name:       "Kenya",
		Population: rawPopulation(1000000),
		Currencies: []domain.RawCurrency{{Code: "KES"}},
	}

	country, ok := n.Normalize(raw, map[string]float64{"KES": 0}, now)
	require.True(t, ok)
	assert.Nil(t, country.ExchangeRate)
	assert.Nil(t, country.EstimatedGDP)
}

func TestNormalize_ValidRateComputesGDP(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	raw := domain.RawCountry{
		Name:       "Kenya",
		Capital:    "Nairobi",
		Region:     "Africa",
		Population: rawPopulation(1000000),
		Flag:       "https://example.com/ke.png",
		Currencies: []domain.RawCurrency{{Code: "KES"}},
	}

	country, ok := n.Normalize(raw, map[string]float64{"KES": 2.0}, now)
	require.True(t, ok)
	require.NotNil(t, country.ExchangeRate)
	assert.Equal(t, 2.0, *country.ExchangeRate)
	require.NotNil(t, country.EstimatedGDP)
	// population * multiplier / rate = 1_000_000 * 1500 / 2
	assert.Equal(t, 750000000.0, *country.EstimatedGDP)

	require.NotNil(t, country.Capital)
	assert.Equal(t, "Nairobi", *country.Capital)
	require.NotNil(t, country.Region)
	assert.Equal(t, "Africa", *country.Region)
	require.NotNil(t, country.FlagURL)
	assert.Equal(t, "https://example.com/ke.png", *country.FlagURL)
	require.NotNil(t, country.LastRefreshedAt)
	assert.Equal(t, now, *country.LastRefreshedAt)
}

func TestNormalize_GDPMonotonicInPopulation(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1200), slog.Default())
	now := time.Now().UTC()
	rates := map[string]float64{"KES": 3.5}

	var prev float64
	for _, pop := range []float64{0, 100, 10000, 5000000} {
		raw := domain.RawCountry{
			Name:       "Kenya",
			Population: rawPopulation(pop),
			Currencies: []domain.RawCurrency{{Code: "KES"}},
		}
		country, ok := n.Normalize(raw, rates, now)
		require.True(t, ok)
		require.NotNil(t, country.EstimatedGDP)
		assert.GreaterOrEqual(t, *country.EstimatedGDP, prev)
		prev = *country.EstimatedGDP
	}
}

func TestNormalize_SkipsMissingNameOrPopulation(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	_, ok := n.Normalize(domain.RawCountry{Population: rawPopulation(10)}, nil, now)
	assert.False(t, ok, "record without a name must be skipped")

	_, ok = n.Normalize(domain.RawCountry{Name: "Kenya"}, nil, now)
	assert.False(t, ok, "record without a population must be skipped")
}

func TestNormalize_PopulationZeroIsValid(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	country, ok := n.Normalize(domain.RawCountry{Name: "Nowhere", Population: rawPopulation(0)}, nil, now)
	require.True(t, ok, "an explicit zero population is present, not missing")
	assert.Equal(t, int64(0), country.Population)
}

func TestNormalize_EmptyCurrencyCodeTreatedAsNone(t *testing.T) {
	n := services.NewNormalizer(pinnedMultiplier(1500), slog.Default())
	now := time.Now().UTC()

	raw := domain.RawCountry{
		Name:       "Kenya",
		Population: rawPopulation(100),
		Currencies: []domain.RawCurrency{{Code: ""}},
	}

	country, ok := n.Normalize(raw, map[string]float64{"KES": 2}, now)
	require.True(t, ok)
	assert.Nil(t, country.CurrencyCode)
	require.NotNil(t, country.EstimatedGDP)
	assert.Equal(t, 0.0, *country.EstimatedGDP)
}

func TestNormalize_DefaultMultiplierStaysInRange(t *testing.T) {
	n := services.NewNormalizer(nil, slog.Default())
	now := time.Now().UTC()
	rates := map[string]float64{"KES": 1.0}

	raw := domain.RawCountry{
		Name:       "Kenya",
		Population: rawPopulation(1),
		Currencies: []domain.RawCurrency{{Code: "KES"}},
	}

	for i := 0; i < 200; i++ {
		country, ok := n.Normalize(raw, rates, now)
		require.True(t, ok)
		require.NotNil(t, country.EstimatedGDP)
		// population 1 and rate 1 expose the multiplier directly
		assert.GreaterOrEqual(t, *country.EstimatedGDP, 1000.0)
		assert.LessOrEqual(t, *country.EstimatedGDP, 2000.0)
	}
}
