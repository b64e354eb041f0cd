package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeStateInvalid is used when an install state nonce is unknown or reused
	ErrCodeStateInvalid = "ERR_STATE_INVALID"
	// ErrCodeStateExpired is used when an install state nonce outlived its TTL
	ErrCodeStateExpired = "ERR_STATE_EXPIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Ingestion error codes
const (
	// ErrCodeRunInProgress is used when an instance already has a run in flight
	ErrCodeRunInProgress = "ERR_RUN_IN_PROGRESS"
	// ErrCodeNoCredential is used when an instance has no stored token pair
	ErrCodeNoCredential = "ERR_NO_CREDENTIAL"
	// ErrCodeProviderRejected is used when the storefront provider refused a request
	ErrCodeProviderRejected = "ERR_PROVIDER_REJECTED"
	// ErrCodeProviderUnreachable is used for transport failures talking to the provider
	ErrCodeProviderUnreachable = "ERR_PROVIDER_UNREACHABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeStateInvalid: http.StatusUnauthorized,
	ErrCodeStateExpired: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeRunInProgress:       http.StatusConflict,
	ErrCodeNoCredential:        http.StatusUnprocessableEntity,
	ErrCodeProviderRejected:    http.StatusBadGateway,
	ErrCodeProviderUnreachable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
