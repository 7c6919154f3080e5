// Package domainerrors defines the error taxonomy shared by services and the
// HTTP layer. Services return typed errors with a code; the transport maps
// each code to exactly one HTTP status so handlers stay free of status logic.
package domainerrors

import "net/http"

type Code string

const (
	// Client input errors, recoverable by correcting the request.
	CodeMissingFields Code = "missing_fields"
	CodeInvalidInput  Code = "invalid_input"

	// Conflict errors, recoverable by using different identity data.
	CodeEINAlreadyRegistered   Code = "ein_already_registered"
	CodeEmailAlreadyRegistered Code = "email_already_registered"

	// The charity registry answered and declined the attestation.
	CodeEINNotVerified Code = "ein_not_verified"

	// The charity registry could not be reached; the caller may retry.
	CodeRegistryUnavailable Code = "registry_unavailable"

	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal_error"
)

// Error carries a code plus a human-readable message. The message is shown to
// callers for 4xx codes only; 5xx responses never echo internal detail.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

var statusByCode = map[Code]int{
	CodeMissingFields:          http.StatusBadRequest,
	CodeInvalidInput:           http.StatusBadRequest,
	CodeEINNotVerified:         http.StatusBadRequest,
	CodeEINAlreadyRegistered:   http.StatusConflict,
	CodeEmailAlreadyRegistered: http.StatusConflict,
	CodeRegistryUnavailable:    http.StatusServiceUnavailable,
	CodeNotFound:               http.StatusNotFound,
	CodeUnauthorized:           http.StatusUnauthorized,
	CodeRateLimited:            http.StatusTooManyRequests,
	CodeInternal:               http.StatusInternalServerError,
}

// ToHTTPStatus maps an error code to its HTTP status. Unknown codes are
// treated as internal errors.
func ToHTTPStatus(code Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
