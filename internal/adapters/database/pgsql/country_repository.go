package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portsrepo "countryexchange/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const countryColumns = "id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at"

// uniqueViolation is the Postgres error code raised by the unique index on
// LOWER(name).
const uniqueViolation = "23505"

type PgxCountryRepository struct {
	BaseRepository
}

// NewPgxCountryRepository creates a new repository for country data.
func NewPgxCountryRepository(pool PGXPool) portsrepo.CountryRepositoryFacade {
	return &PgxCountryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCountryRepository implements the facade
var _ portsrepo.CountryRepositoryFacade = (*PgxCountryRepository)(nil)

func scanCountry(row pgx.Row) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefreshedAt,
	)
	return c, err
}

// ListCountries retrieves countries matching the filter. Region and currency
// filters are case-insensitive substring matches; GDP sorts push null GDP
// rows to the end.
func (r *PgxCountryRepository) ListCountries(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries"

	var conds []string
	var args []any
	if filter.Region != "" {
		args = append(args, "%"+filter.Region+"%")
		conds = append(conds, fmt.Sprintf("region ILIKE $%d", len(args)))
	}
	if filter.Currency != "" {
		args = append(args, "%"+filter.Currency+"%")
		conds = append(conds, fmt.Sprintf("currency_code ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch filter.Sort {
	case domain.SortGDPDesc:
		query += " ORDER BY estimated_gdp DESC NULLS LAST"
	case domain.SortGDPAsc:
		query += " ORDER BY estimated_gdp ASC NULLS LAST"
	default:
		query += " ORDER BY name ASC"
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Country, error) {
		return scanCountry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan countries: %w", err)
	}
	if countries == nil {
		return []domain.Country{}, nil
	}
	return countries, nil
}

// FindCountryByName retrieves a country by case-insensitive exact name match.
func (r *PgxCountryRepository) FindCountryByName(ctx context.Context, name string) (*domain.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries WHERE LOWER(name) = LOWER($1)"

	country, err := scanCountry(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find country %q: %w", name, err)
	}
	return &country, nil
}

// CountCountries returns the total number of persisted countries.
func (r *PgxCountryRepository) CountCountries(ctx context.Context) (int64, error) {
	var total int64
	err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM countries").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return total, nil
}

// TopCountriesByGDP returns up to limit countries with a non-null estimated
// GDP, highest first.
func (r *PgxCountryRepository) TopCountriesByGDP(ctx context.Context, limit int) ([]domain.Country, error) {
	query := "SELECT " + countryColumns + " FROM countries WHERE estimated_gdp IS NOT NULL ORDER BY estimated_gdp DESC LIMIT $1"

	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top countries: %w", err)
	}
	defer rows.Close()

	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Country, error) {
		return scanCountry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan top countries: %w", err)
	}
	return countries, nil
}

// SaveCountry inserts a single country for the manual create path. A
// case-insensitive name collision maps to ErrDuplicate.
func (r *PgxCountryRepository) SaveCountry(ctx context.Context, country domain.Country) (*domain.Country, error) {
	query := `
		INSERT INTO countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`

	err := r.Pool.QueryRow(ctx, query,
		country.Name,
		country.Capital,
		country.Region,
		country.Population,
		country.CurrencyCode,
		country.ExchangeRate,
		country.EstimatedGDP,
		country.FlagURL,
		country.LastRefreshedAt,
	).Scan(&country.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to save country %q: %w", country.Name, err)
	}
	return &country, nil
}

// DeleteCountryByName removes the row matching the name case-insensitively.
func (r *PgxCountryRepository) DeleteCountryByName(ctx context.Context, name string) error {
	tag, err := r.Pool.Exec(ctx, "DELETE FROM countries WHERE LOWER(name) = LOWER($1)", name)
	if err != nil {
		return fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyRefresh upserts every country and the last-refreshed metadata key
// inside one transaction. Rows are matched by the unique index on
// LOWER(name), so a refresh never duplicates a country whose casing changed
// upstream. Any failure rolls the whole batch back.
func (r *PgxCountryRepository) ApplyRefresh(ctx context.Context, countries []domain.Country, refreshedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	upsertQuery := `
		INSERT INTO countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ((LOWER(name))) DO UPDATE SET
			name = EXCLUDED.name,
			capital = EXCLUDED.capital,
			region = EXCLUDED.region,
			population = EXCLUDED.population,
			currency_code = EXCLUDED.currency_code,
			exchange_rate = EXCLUDED.exchange_rate,
			estimated_gdp = EXCLUDED.estimated_gdp,
			flag_url = EXCLUDED.flag_url,
			last_refreshed_at = EXCLUDED.last_refreshed_at;
	`

	for _, c := range countries {
		_, err = tx.Exec(ctx, upsertQuery,
			c.Name,
			c.Capital,
			c.Region,
			c.Population,
			c.CurrencyCode,
			c.ExchangeRate,
			c.EstimatedGDP,
			c.FlagURL,
			c.LastRefreshedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert country %q: %w", c.Name, err)
		}
	}

	metadataQuery := `
		INSERT INTO metadata (meta_key, meta_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (meta_key) DO UPDATE SET
			meta_value = EXCLUDED.meta_value,
			updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, metadataQuery,
		domain.MetaKeyLastRefreshedAt,
		refreshedAt.UTC().Format(time.RFC3339),
		refreshedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert refresh metadata: %w", err)
	}

	return r.Commit(ctx, tx)
}
