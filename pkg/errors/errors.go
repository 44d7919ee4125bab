package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies failures raised while fetching pages
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeClient      ErrorType = "client"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error is a typed fetch or configuration error
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	URL     string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	msg += ": " + e.Message
	if e.URL != "" {
		msg += " [" + e.URL + "]"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given type
func New(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Network wraps a transport failure for url
func Network(url string, err error) *Error {
	return &Error{
		Type:    ErrorTypeNetwork,
		Message: err.Error(),
		URL:     url,
		Err:     err,
	}
}

// FromStatus maps an HTTP status code to a typed error. Codes below 400 yield nil.
func FromStatus(url string, code int) *Error {
	if code < http.StatusBadRequest {
		return nil
	}

	e := &Error{Code: code, URL: url, Message: http.StatusText(code)}
	switch {
	case code == http.StatusTooManyRequests:
		e.Type = ErrorTypeRateLimit
		e.Message = "rate limited"
	case code == http.StatusNotFound || code == http.StatusGone:
		e.Type = ErrorTypeNotFound
		e.Message = "page not found"
	case code >= http.StatusInternalServerError:
		e.Type = ErrorTypeServerError
	default:
		e.Type = ErrorTypeClient
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("unexpected status %d", code)
	}
	return e
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}
