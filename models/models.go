// Package models defines the request/response DTOs and API-level
// sentinel errors for the extraction HTTP service.
package models

import "errors"

// Predefined errors for extraction requests.
var (
	ErrNoCarriers        = errors.New("at least one carrier file is required")
	ErrMissingPasswordA  = errors.New("password A is required")
	ErrPasswordCWithoutB = errors.New("password C requires password B")
	ErrInvalidBitLevel   = errors.New("bit_selection must be one of minimum, very_low, low, medium, high, very_high, maximum")
	ErrExtractionFailed  = errors.New("could not extract a data or decoy file using the given passwords")
)

// ExtractResponse is returned on a successful extraction.
type ExtractResponse struct {
	Success   bool   `json:"success"`
	Filename  string `json:"filename"`
	SizeBytes int    `json:"size_bytes"`
	FromDecoy bool   `json:"from_decoy"`
}

// ErrorResponse is returned on any request or processing failure.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries a human-readable message and an optional machine
// code for programmatic handling.
type ErrorDetail struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
