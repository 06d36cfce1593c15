package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"countryexchange/internal/apperrors"
	"countryexchange/internal/core/domain"
	portsrepo "countryexchange/internal/core/ports/repositories"
	portssvc "countryexchange/internal/core/ports/services"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	summaryImageName   = "summary.png"
	summaryImageWidth  = 1200
	summaryImageHeight = 630
)

type imageService struct {
	countryRepo  portsrepo.CountryReader
	metadataRepo portsrepo.MetadataReader
	cacheDir     string
	logger       *slog.Logger
}

// NewImageService creates the summary image renderer writing into cacheDir.
func NewImageService(countryRepo portsrepo.CountryReader, metadataRepo portsrepo.MetadataReader, cacheDir string, logger *slog.Logger) portssvc.ImageSvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &imageService{
		countryRepo:  countryRepo,
		metadataRepo: metadataRepo,
		cacheDir:     cacheDir,
		logger:       logger,
	}
}

// ImagePath returns where the summary image lives once generated.
func (s *imageService) ImagePath() string {
	return filepath.Join(s.cacheDir, summaryImageName)
}

// GenerateSummaryImage renders the total country count, the last refresh
// timestamp, and the top 5 countries by estimated GDP into a PNG under the
// cache directory.
func (s *imageService) GenerateSummaryImage(ctx context.Context) (string, error) {
	total, err := s.countryRepo.CountCountries(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count countries for summary image: %w", err)
	}

	top, err := s.countryRepo.TopCountriesByGDP(ctx, 5)
	if err != nil {
		return "", fmt.Errorf("failed to load top countries for summary image: %w", err)
	}

	timestamp, err := s.metadataRepo.GetMetadataValue(ctx, domain.MetaKeyLastRefreshedAt)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("failed to read refresh metadata for summary image: %w", err)
		}
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	outPath := s.ImagePath()

	dc := gg.NewContext(summaryImageWidth, summaryImageHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(basicfont.Face7x13)

	dc.DrawString("Countries Summary", 40, 60)
	dc.DrawString(fmt.Sprintf("Total countries: %d", total), 40, 110)
	dc.DrawString(fmt.Sprintf("Last refresh: %s", timestamp), 40, 150)
	dc.DrawString("Top 5 by estimated GDP:", 40, 200)

	for i, c := range top {
		gdp := 0.0
		if c.EstimatedGDP != nil {
			gdp = *c.EstimatedGDP
		}
		line := fmt.Sprintf("%d. %s - %.2f", i+1, c.Name, gdp)
		dc.DrawString(line, 60, float64(240+i*32))
	}

	if err := dc.SavePNG(outPath); err != nil {
		return "", fmt.Errorf("failed to write summary image: %w", err)
	}

	s.logger.Info("Summary image regenerated", slog.String("path", outPath))
	return outPath, nil
}
