package services

import (
	"context"
	"errors"
	"fmt"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portsrepo "countryexchange/internal/core/ports/repositories"
	portssvc "countryexchange/internal/core/ports/services"
	"countryexchange/internal/dto"
)

type countryService struct {
	countryRepo  portsrepo.CountryRepositoryFacade
	metadataRepo portsrepo.MetadataReader
}

// NewCountryService creates the query service over persisted countries.
func NewCountryService(countryRepo portsrepo.CountryRepositoryFacade, metadataRepo portsrepo.MetadataReader) portssvc.CountrySvcFacade {
	return &countryService{countryRepo: countryRepo, metadataRepo: metadataRepo}
}

func (s *countryService) ListCountries(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	// Unrecognized sort values fall back to name ascending.
	switch filter.Sort {
	case domain.SortGDPAsc, domain.SortGDPDesc:
	default:
		filter.Sort = domain.SortNameAsc
	}

	countries, err := s.countryRepo.ListCountries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries in service: %w", err)
	}
	if countries == nil {
		return []domain.Country{}, nil
	}
	return countries, nil
}

func (s *countryService) GetCountryByName(ctx context.Context, name string) (*domain.Country, error) {
	country, err := s.countryRepo.FindCountryByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get country in service: %w", err)
	}
	return country, nil
}

// DeleteCountryByName removes the matching row and returns the stored name so
// callers can echo the original casing.
func (s *countryService) DeleteCountryByName(ctx context.Context, name string) (string, error) {
	country, err := s.countryRepo.FindCountryByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find country for delete in service: %w", err)
	}

	if err := s.countryRepo.DeleteCountryByName(ctx, name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to delete country in service: %w", err)
	}
	return country.Name, nil
}

// CreateCountry inserts a caller-supplied country. The GDP estimation policy
// does not apply here; fields persist as given.
func (s *countryService) CreateCountry(ctx context.Context, req dto.CreateCountryRequest) (*domain.Country, error) {
	_, err := s.countryRepo.FindCountryByName(ctx, req.Name)
	if err == nil {
		return nil, apperrors.ErrDuplicate
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing country in service: %w", err)
	}

	country := domain.Country{
		Name:         req.Name,
		Capital:      req.Capital,
		Region:       req.Region,
		Population:   *req.Population,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: req.ExchangeRate,
		EstimatedGDP: req.EstimatedGDP,
		FlagURL:      req.FlagURL,
	}

	created, err := s.countryRepo.SaveCountry(ctx, country)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create country in service: %w", err)
	}
	return created, nil
}

func (s *countryService) GetStatus(ctx context.Context) (*dto.StatusResponse, error) {
	total, err := s.countryRepo.CountCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count countries in service: %w", err)
	}

	status := &dto.StatusResponse{TotalCountries: total}

	value, err := s.metadataRepo.GetMetadataValue(ctx, domain.MetaKeyLastRefreshedAt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to read refresh metadata in service: %w", err)
		}
		// No refresh has run yet; last_refreshed_at stays null.
		return status, nil
	}
	status.LastRefreshedAt = &value
	return status, nil
}
