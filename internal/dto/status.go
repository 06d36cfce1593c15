package dto

// StatusResponse reports the aggregate state of the dataset.
// LastRefreshedAt is nil before the first successful refresh.
type StatusResponse struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}

// RefreshResponse is returned after a successful refresh run.
type RefreshResponse struct {
	Message         string `json:"message"`
	LastRefreshedAt string `json:"last_refreshed_at"`
}
