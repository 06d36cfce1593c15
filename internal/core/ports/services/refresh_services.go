package services

import (
	"context"
	"time"
)

// RefreshSvcFacade runs the end-to-end refresh pipeline.
type RefreshSvcFacade interface {
	// RefreshCountries fetches both external sources concurrently, upserts
	// every valid record plus the refresh timestamp atomically, then
	// regenerates the summary image best-effort. Returns the shared
	// timestamp written to every row.
	RefreshCountries(ctx context.Context) (time.Time, error)
}
