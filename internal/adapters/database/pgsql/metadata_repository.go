package pgsql

import (
	"context"
	"errors"
	"fmt"

	"countryexchange/internal/apperrors"
	portsrepo "countryexchange/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxMetadataRepository struct {
	BaseRepository
}

// NewPgxMetadataRepository creates a new read-only repository over the
// metadata key/value store. Writes happen inside the refresh transaction.
func NewPgxMetadataRepository(pool PGXPool) portsrepo.MetadataReader {
	return &PgxMetadataRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// GetMetadataValue retrieves the value stored under key.
func (r *PgxMetadataRepository) GetMetadataValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx, "SELECT meta_value FROM metadata WHERE meta_key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read metadata key %q: %w", key, err)
	}
	return value, nil
}
