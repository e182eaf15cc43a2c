package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrorType represents the category of a client or broker error.
type ErrorType int

// Error type constants categorize errors for programmatic handling.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfiguration indicates invalid or incomplete client configuration.
	ErrorTypeConfiguration
	// ErrorTypeValidation indicates a request failed validation before dispatch.
	ErrorTypeValidation
	// ErrorTypeNetwork indicates a network connectivity issue.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeDecode indicates the response body was not valid JSON.
	ErrorTypeDecode
	// ErrorTypeAuthentication indicates invalid or expired credentials.
	ErrorTypeAuthentication
	// ErrorTypeBadRequest indicates the broker rejected the request parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound indicates the requested resource does not exist.
	ErrorTypeNotFound
	// ErrorTypeServerError indicates a broker-side error.
	ErrorTypeServerError
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIGURATION",
		"VALIDATION",
		"NETWORK",
		"TIMEOUT",
		"DECODE",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"NOT_FOUND",
		"SERVER_ERROR",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoInstruments is returned when a price request names no instruments.
	ErrNoInstruments = errors.New("no instruments requested")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
)

// APIError is the structured error surfaced by the client. It covers both
// local failures (configuration, validation, transport, decode) and
// broker-reported errors, where the decoded error body is carried through
// untouched in Code, Message, MoreInfo and Raw.
type APIError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code, zero for local failures.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the broker-assigned numeric error code.
	Code int `json:"code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// MoreInfo is the broker's documentation pointer, when present.
	MoreInfo string `json:"more_info,omitempty"`
	// Raw preserves the undecoded response body for debugging.
	Raw []byte `json:"-"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`

	err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("%s (%d/%d): %s", e.Type, e.StatusCode, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (%d): %s", e.Type, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying error for local failures, nil otherwise.
func (e *APIError) Unwrap() error {
	return e.err
}

// NewConfigurationError wraps a config validation failure.
func NewConfigurationError(err error) *APIError {
	return &APIError{
		Type:      ErrorTypeConfiguration,
		Message:   err.Error(),
		Timestamp: time.Now(),
		err:       err,
	}
}

// NewValidationError wraps a request validation failure.
func NewValidationError(err error) *APIError {
	return &APIError{
		Type:      ErrorTypeValidation,
		Message:   err.Error(),
		Timestamp: time.Now(),
		err:       err,
	}
}

// NewDecodeError wraps a response body that could not be parsed as JSON.
func NewDecodeError(err error) *APIError {
	return &APIError{
		Type:      ErrorTypeDecode,
		Message:   err.Error(),
		Timestamp: time.Now(),
		err:       err,
	}
}

// NewTransportError wraps a failed HTTP round trip, classifying deadline and
// net timeouts separately from other connectivity failures.
func NewTransportError(err error) *APIError {
	errType := ErrorTypeNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		errType = ErrorTypeTimeout
	}
	return &APIError{
		Type:      errType,
		Message:   err.Error(),
		Timestamp: time.Now(),
		err:       err,
	}
}

// NewBrokerError builds an error from a broker-reported failure response.
func NewBrokerError(status, code int, message, moreInfo string, raw []byte) *APIError {
	return &APIError{
		Type:       ClassifyStatus(status),
		StatusCode: status,
		Code:       code,
		Message:    message,
		MoreInfo:   moreInfo,
		Raw:        raw,
		Timestamp:  time.Now(),
	}
}

// ClassifyStatus maps an HTTP status code to an error type.
func ClassifyStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status >= 400 && status < 500:
		return ErrorTypeBadRequest
	case status >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

// AsAPIError extracts the *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func hasType(err error, t ErrorType) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}

// IsConfigurationError returns true if the error is a configuration failure.
func IsConfigurationError(err error) bool {
	return hasType(err, ErrorTypeConfiguration)
}

// IsValidationError returns true if the error is a pre-dispatch validation failure.
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNetworkError returns true if the error is a network connectivity issue.
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsTimeoutError returns true if the error is a timeout.
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// IsDecodeError returns true if the error is a JSON decode failure.
func IsDecodeError(err error) bool {
	return hasType(err, ErrorTypeDecode)
}

// IsAuthenticationError returns true if the broker rejected the credentials.
func IsAuthenticationError(err error) bool {
	return hasType(err, ErrorTypeAuthentication)
}

// IsNotFoundError returns true if the requested resource does not exist.
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}
