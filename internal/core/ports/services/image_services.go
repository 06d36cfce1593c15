package services

import "context"

// ImageSvcFacade renders and locates the cached summary image.
type ImageSvcFacade interface {
	// GenerateSummaryImage renders the summary PNG into the cache directory
	// and returns its path.
	GenerateSummaryImage(ctx context.Context) (string, error)

	// ImagePath returns where the summary image lives once generated.
	ImagePath() string
}
