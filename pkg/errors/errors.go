package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeAuth         ErrorType = "auth"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeParsing      ErrorType = "parsing"
	ErrorTypeMissingField ErrorType = "missing_field"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	// Reason is the HTTP reason phrase, when the error came from a response
	Reason string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (%d %s): %s", e.Type, e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// FromStatus maps a non-2xx HTTP status to a typed error
func FromStatus(code int) *Error {
	e := &Error{Code: code, Reason: http.StatusText(code)}

	switch code {
	case http.StatusUnauthorized:
		e.Type = ErrorTypeAuth
		e.Message = "invalid API key, please verify your key"
	case http.StatusForbidden:
		e.Type = ErrorTypeForbidden
		e.Message = "forbidden: the API key is invalid or expired, is not being sent correctly, or your IP address might be blocked"
	default:
		e.Type = ErrorTypeUnknown
		e.Message = "API request failed, check your connection or API key"
	}

	return e
}

// New creates an error of the given type without an HTTP status
func New(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// IsType reports whether err is, or wraps, an *Error of type t
func IsType(err error, t ErrorType) bool {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
