package usage

import "codeberg.org/inkwell/billing/internal/meter"

// UsageResponse is the quota snapshot. Known is false when the store could
// not be read and the server is configured to fail open.
type UsageResponse struct {
	Email     string     `json:"email"`
	Total     int64      `json:"total"`
	Ceiling   int64      `json:"ceiling"`
	Remaining int64      `json:"remaining"`
	Available bool       `json:"available"`
	Band      meter.Band `json:"band,omitempty"`
	Plan      string     `json:"plan,omitempty"`
	Known     bool       `json:"known"`
}

// RecordRequest is the body of POST /api/v1/usage/records
type RecordRequest struct {
	Email        string  `json:"email"`
	TemplateSlug string  `json:"templateSlug"`
	Response     *string `json:"response"`
}

// RecordResponse echoes the stored record with the consumed length
type RecordResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Length    int64  `json:"length"`
	CreatedAt string `json:"createdAt"`
}
