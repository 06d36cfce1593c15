package domain

import "time"

// Sort orders accepted by the country listing. Anything else falls back to
// SortNameAsc.
const (
	SortNameAsc = "name_asc"
	SortGDPAsc  = "gdp_asc"
	SortGDPDesc = "gdp_desc"
)

// Country is a persisted country row. The case-insensitive name is the
// logical unique key; nullable columns are pointers so "unknown" survives the
// round trip to storage.
//
// EstimatedGDP distinguishes two states: nil means the value was not
// computable (currency missing from the rates table), while a pointer to 0
// means the country has no currency at all.
type Country struct {
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

// CountryFilter carries the listing query parameters. Region and Currency are
// case-insensitive substring matches when non-empty.
type CountryFilter struct {
	Region   string
	Currency string
	Sort     string
}
