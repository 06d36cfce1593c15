package services

import (
	"log/slog"

	portsgw "countryexchange/internal/core/ports/gateways"
	portsrepo "countryexchange/internal/core/ports/repositories"
	portssvc "countryexchange/internal/core/ports/services"
	"countryexchange/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	gateway portsgw.CountryDataGateway,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Country = NewCountryService(repos.CountryRepo, repos.MetadataRepo)

	// Image service first since the refresh orchestrator depends on it
	container.Image = NewImageService(repos.CountryRepo, repos.MetadataRepo, cfg.CacheDir, logger)

	container.Refresh = NewRefreshService(
		gateway,
		repos.CountryRepo,
		container.Image,
		NewNormalizer(nil, logger),
		logger,
	)

	return container
}
