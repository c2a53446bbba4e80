package request_models

// TripRequest is the single user action that drives the whole pipeline:
// one AI call, one normalization pass, one geocoding pass, one reconciliation.
type TripRequest struct {
	Destination  string   `json:"destination" binding:"required"`
	Interests    []string `json:"interests"`
	Budget       float64  `json:"budget"`
	DurationDays int      `json:"duration_days"`
}
