package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultCountriesAPIURL     = "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"
	defaultExchangeRatesAPIURL = "https://open.er-api.com/v6/latest/USD"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL         string
	Port                string
	IsProduction        bool
	CacheDir            string
	ExternalTimeout     time.Duration
	CountriesAPIURL     string
	ExchangeRatesAPIURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CACHE_DIR", "./cache")
	viper.SetDefault("EXTERNAL_TIMEOUT_MS", 10000)
	viper.SetDefault("COUNTRIES_API_URL", defaultCountriesAPIURL)
	viper.SetDefault("EXCHANGE_RATES_API_URL", defaultExchangeRatesAPIURL)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.CacheDir = viper.GetString("CACHE_DIR")
	if cfg.CacheDir == "" {
		cfg.CacheDir = "./cache"
		log.Printf("Warning: CACHE_DIR environment variable not set. Defaulting to %s\n", cfg.CacheDir)
	}

	timeoutMS := viper.GetInt("EXTERNAL_TIMEOUT_MS")
	if timeoutMS <= 0 {
		timeoutMS = 10000
		log.Printf("Warning: Invalid value for EXTERNAL_TIMEOUT_MS. Defaulting to %dms.\n", timeoutMS)
	}
	cfg.ExternalTimeout = time.Duration(timeoutMS) * time.Millisecond

	cfg.CountriesAPIURL = viper.GetString("COUNTRIES_API_URL")
	if cfg.CountriesAPIURL == "" {
		cfg.CountriesAPIURL = defaultCountriesAPIURL
	}

	cfg.ExchangeRatesAPIURL = viper.GetString("EXCHANGE_RATES_API_URL")
	if cfg.ExchangeRatesAPIURL == "" {
		cfg.ExchangeRatesAPIURL = defaultExchangeRatesAPIURL
	}

	return cfg, nil
}
