package pgsql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"countryexchange/internal/adapters/database/pgsql"
	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
)

type CountryRepositoryTestSuite struct {
	suite.Suite
	mockPool pgxmock.PgxPoolIface
	repo     *pgsql.PgxCountryRepository
}

func (suite *CountryRepositoryTestSuite) SetupTest() {
	var err error
	suite.mockPool, err = pgxmock.NewPool()
	suite.Require().NoError(err)

	repo := pgsql.NewPgxCountryRepository(suite.mockPool)
	suite.repo = repo.(*pgsql.PgxCountryRepository)
}

func (suite *CountryRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mockPool.ExpectationsWereMet())
	suite.mockPool.Close()
}

func countryRow(name string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "capital", "region", "population",
		"currency_code", "exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at",
	}).AddRow(int64(1), name, nil, nil, int64(100), nil, nil, nil, nil, nil)
}

func (suite *CountryRepositoryTestSuite) TestFindCountryByName_CaseInsensitive() {
	ctx := context.Background()

	suite.mockPool.ExpectQuery(`SELECT (.+) FROM countries WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("KENYA").
		WillReturnRows(countryRow("Kenya"))

	country, err := suite.repo.FindCountryByName(ctx, "KENYA")

	suite.Require().NoError(err)
	suite.Equal("Kenya", country.Name)
}

func (suite *CountryRepositoryTestSuite) TestFindCountryByName_NotFound() {
	ctx := context.Background()

	suite.mockPool.ExpectQuery(`SELECT (.+) FROM countries WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("Atlantis").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	country, err := suite.repo.FindCountryByName(ctx, "Atlantis")

	suite.Require().Error(err)
	suite.Nil(country)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CountryRepositoryTestSuite) TestListCountries_FiltersAndGDPSort() {
	ctx := context.Background()
	filter := domain.CountryFilter{Region: "afr", Currency: "kes", Sort: domain.SortGDPDesc}

	suite.mockPool.ExpectQuery(`SELECT (.+) FROM countries WHERE region ILIKE \$1 AND currency_code ILIKE \$2 ORDER BY estimated_gdp DESC NULLS LAST`).
		WithArgs("%afr%", "%kes%").
		WillReturnRows(countryRow("Kenya"))

	countries, err := suite.repo.ListCountries(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(countries, 1)
	suite.Equal("Kenya", countries[0].Name)
}

func (suite *CountryRepositoryTestSuite) TestListCountries_EmptyResultIsNotNil() {
	ctx := context.Background()

	suite.mockPool.ExpectQuery(`SELECT (.+) FROM countries ORDER BY name ASC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "capital", "region", "population",
			"currency_code", "exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at",
		}))

	countries, err := suite.repo.ListCountries(ctx, domain.CountryFilter{})

	suite.Require().NoError(err)
	suite.NotNil(countries)
	suite.Empty(countries)
}

func (suite *CountryRepositoryTestSuite) TestSaveCountry_DuplicateName() {
	ctx := context.Background()
	pgErr := &pgconn.PgError{Code: "23505"}

	suite.mockPool.ExpectQuery(`INSERT INTO countries`).
		WithArgs(
			"Kenya", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(100),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(pgErr)

	created, err := suite.repo.SaveCountry(ctx, domain.Country{Name: "Kenya", Population: 100})

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CountryRepositoryTestSuite) TestDeleteCountryByName_NotFound() {
	ctx := context.Background()

	suite.mockPool.ExpectExec(`DELETE FROM countries WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("Atlantis").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.DeleteCountryByName(ctx, "Atlantis")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CountryRepositoryTestSuite) TestDeleteCountryByName_Success() {
	ctx := context.Background()

	suite.mockPool.ExpectExec(`DELETE FROM countries WHERE LOWER\(name\) = LOWER\(\$1\)`).
		WithArgs("kenya").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	suite.NoError(suite.repo.DeleteCountryByName(ctx, "kenya"))
}

func (suite *CountryRepositoryTestSuite) TestApplyRefresh_CommitsBatchAndMetadata() {
	ctx := context.Background()
	refreshedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	countries := []domain.Country{
		{Name: "Kenya", Population: 100, LastRefreshedAt: &refreshedAt},
		{Name: "Ghana", Population: 50, LastRefreshedAt: &refreshedAt},
	}

	suite.mockPool.ExpectBegin()
	for range countries {
		suite.mockPool.ExpectExec(`INSERT INTO countries`).
			WithArgs(
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	suite.mockPool.ExpectExec(`INSERT INTO metadata`).
		WithArgs(domain.MetaKeyLastRefreshedAt, "2024-05-01T10:00:00Z", refreshedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectCommit()
	suite.mockPool.ExpectRollback().Maybe()

	err := suite.repo.ApplyRefresh(ctx, countries, refreshedAt)

	suite.NoError(err)
}

func (suite *CountryRepositoryTestSuite) TestApplyRefresh_MidBatchFailureRollsBack() {
	ctx := context.Background()
	refreshedAt := time.Now().UTC()
	countries := []domain.Country{
		{Name: "Kenya", Population: 100, LastRefreshedAt: &refreshedAt},
		{Name: "Ghana", Population: 50, LastRefreshedAt: &refreshedAt},
	}

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(`INSERT INTO countries`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectExec(`INSERT INTO countries`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("disk full"))
	suite.mockPool.ExpectRollback()

	err := suite.repo.ApplyRefresh(ctx, countries, refreshedAt)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "Ghana")
}

func (suite *CountryRepositoryTestSuite) TestApplyRefresh_MetadataFailureRollsBack() {
	ctx := context.Background()
	refreshedAt := time.Now().UTC()

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(`INSERT INTO metadata`).
		WithArgs(domain.MetaKeyLastRefreshedAt, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("metadata write failed"))
	suite.mockPool.ExpectRollback()

	err := suite.repo.ApplyRefresh(ctx, nil, refreshedAt)

	suite.Require().Error(err)
}

func (suite *CountryRepositoryTestSuite) TestCountCountries() {
	ctx := context.Background()

	suite.mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM countries`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := suite.repo.CountCountries(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(42), total)
}

func (suite *CountryRepositoryTestSuite) TestTopCountriesByGDP_ExcludesNullGDP() {
	ctx := context.Background()

	suite.mockPool.ExpectQuery(`SELECT (.+) FROM countries WHERE estimated_gdp IS NOT NULL ORDER BY estimated_gdp DESC LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(countryRow("Kenya"))

	countries, err := suite.repo.TopCountriesByGDP(ctx, 5)

	suite.Require().NoError(err)
	suite.Len(countries, 1)
}

func TestCountryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CountryRepositoryTestSuite))
}
