package repositories

import "context"

// MetadataReader defines read access to the key/value metadata store.
// Metadata writes happen inside the refresh transaction, so no standalone
// writer interface exists.
type MetadataReader interface {
	// GetMetadataValue retrieves the value stored under key. Returns
	// apperrors.ErrNotFound when the key has never been written.
	GetMetadataValue(ctx context.Context, key string) (string, error)
}

// RepositoryProvider bundles the repositories the service layer needs.
type RepositoryProvider struct {
	CountryRepo  CountryRepositoryFacade
	MetadataRepo MetadataReader
}
