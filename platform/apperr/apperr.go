// Package apperr provides standardized domain error types for the portal.
// Core components return these typed errors, and the HTTP layer maps them
// to appropriate status codes. Nothing here is ever fatal to the process:
// every failure is surfaced to the caller and retryable by the user.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindValidation indicates input data violating the offer contract.
	KindValidation
	// KindInvalidTransition indicates a lifecycle action that is not legal
	// for the offer's current status. Rejected before any network call.
	KindInvalidTransition
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindUpstream indicates the rescue backend or a geocoding provider was
	// unreachable or answered non-2xx. The cached state is left untouched.
	KindUpstream
	// KindLocationUnavailable indicates device geolocation was denied,
	// timed out, stale, or unsupported.
	KindLocationUnavailable
	// KindCapabilityUnavailable indicates address search was attempted
	// without a configured geocoding credential.
	KindCapabilityUnavailable
	// KindBadRequest indicates a malformed request.
	KindBadRequest
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
	Details interface{} // Additional details for response (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	case KindLocationUnavailable:
		return http.StatusServiceUnavailable
	case KindCapabilityUnavailable:
		return http.StatusNotImplemented
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithDetails returns the error with additional details.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// Convenience constructors for the portal's failure taxonomy.

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// InvalidTransition creates an invalid lifecycle transition error.
func InvalidTransition(message string) *Error {
	return New(KindInvalidTransition, message)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Upstream creates an error for a failed backend or provider call.
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// LocationUnavailable creates a device geolocation failure error.
func LocationUnavailable(message string) *Error {
	return New(KindLocationUnavailable, message)
}

// CapabilityUnavailable creates an error for a missing geocoding credential.
func CapabilityUnavailable(message string) *Error {
	return New(KindCapabilityUnavailable, message)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// GetKind extracts the error kind from an error, unwrapping as needed.
// Returns KindUnknown if no *Error is found in the chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err carries an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
