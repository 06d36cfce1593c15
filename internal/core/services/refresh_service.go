package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portsgw "countryexchange/internal/core/ports/gateways"
	portsrepo "countryexchange/internal/core/ports/repositories"
	portssvc "countryexchange/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type refreshService struct {
	gateway     portsgw.CountryDataGateway
	countryRepo portsrepo.CountryRepositoryFacade
	imageSvc    portssvc.ImageSvcFacade
	normalizer  *Normalizer
	logger      *slog.Logger

	// Serializes whole refresh invocations. Two quick POSTs to the refresh
	// endpoint run back to back instead of interleaving their transactional
	// phases.
	mu sync.Mutex
}

// NewRefreshService creates the refresh orchestrator.
func NewRefreshService(
	gateway portsgw.CountryDataGateway,
	countryRepo portsrepo.CountryRepositoryFacade,
	imageSvc portssvc.ImageSvcFacade,
	normalizer *Normalizer,
	logger *slog.Logger,
) portssvc.RefreshSvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &refreshService{
		gateway:     gateway,
		countryRepo: countryRepo,
		imageSvc:    imageSvc,
		normalizer:  normalizer,
		logger:      logger,
	}
}

// RefreshCountries runs one end-to-end refresh. Both external fetches run
// concurrently; the first failure cancels the other and aborts before any
// write. All upserts plus the metadata timestamp commit in one transaction,
// every row carrying the same timestamp. Image regeneration afterwards is
// best-effort.
func (s *refreshService) RefreshCountries(ctx context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []domain.RawCountry
	var rates map[string]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.gateway.FetchCountries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rates, err = s.gateway.FetchExchangeRates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Refresh aborted, external fetch failed", slog.String("error", err.Error()))
		return time.Time{}, err
	}

	now := time.Now().UTC()

	countries := make([]domain.Country, 0, len(raw))
	for _, rc := range raw {
		country, ok := s.normalizer.Normalize(rc, rates, now)
		if !ok {
			continue
		}
		countries = append(countries, *country)
	}

	if err := s.countryRepo.ApplyRefresh(ctx, countries, now); err != nil {
		s.logger.Error("Refresh failed to persist", slog.String("error", err.Error()))
		return time.Time{}, fmt.Errorf("%w: refresh persistence failed", apperrors.ErrInternal)
	}

	// Best-effort side effect; the refresh already committed.
	if _, err := s.imageSvc.GenerateSummaryImage(ctx); err != nil {
		s.logger.Warn("Summary image generation failed", slog.String("error", err.Error()))
	}

	s.logger.Info("Refresh completed",
		slog.Int("countries", len(countries)),
		slog.Time("last_refreshed_at", now),
	)
	return now, nil
}
