package errors

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "validation_error", "invalid_signature")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// error body of the billing endpoints; checkout clients branch on success
// and retry only when retryable is set
type BillingErrorResponse struct {
	Success bool `json:"success"`
	ErrorResponse
	Retryable bool `json:"retryable"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
