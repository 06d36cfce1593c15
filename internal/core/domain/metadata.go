package domain

import "time"

// MetaKeyLastRefreshedAt is the metadata key holding the timestamp of the
// most recent successful refresh, stored as an RFC 3339 string.
const MetaKeyLastRefreshedAt = "last_refreshed_at"

// Metadata is a single key/value row with upsert semantics per key.
type Metadata struct {
	Key       string    `json:"meta_key"`
	Value     string    `json:"meta_value"`
	UpdatedAt time.Time `json:"updated_at"`
}
