// Package errors defines the API error vocabulary. Every failure that
// reaches a handler is an *Error carrying the HTTP status it maps to.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed API error. Code is the stable machine-readable
// identifier clients switch on; Status is the HTTP code the error maps
// to, duplicated in the response body.
type Error struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors,omitempty"`
	Err     error    `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by Code, so clones and detail-enriched copies still
// compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return e.Code == t.Code
}

// New builds an Error from a code, HTTP status and client-facing message.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap builds an Error around a cause. The cause is kept for logs and
// unwrapping but never serialised to clients.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// FromError normalises err into an *Error. Unknown error types surface
// as internal errors with their cause attached.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies err, overriding its message when one is given.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails copies err and attaches structured detail lines, e.g.
// per-field validation failures or clashing slot numbers.
func WithDetails(err *Error, details ...string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Errors = append([]string(nil), details...)
	return &clone
}

// Generic failures shared across the API surface.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrBadRequest         = New("BAD_REQUEST", http.StatusBadRequest, "bad request")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Business-rule failures of the slot-assignment workflow. All map to 400:
// the request was well-formed but the parking state refuses it.
var (
	ErrNoCompatibleSlot = New("NO_COMPATIBLE_SLOT", http.StatusBadRequest, "no available slot for the requested vehicle type and size")
	ErrAlreadyProcessed = New("ALREADY_PROCESSED", http.StatusBadRequest, "request has already been processed")
	ErrSlotUnavailable  = New("SLOT_UNAVAILABLE", http.StatusBadRequest, "parking slot is not available")
	ErrSlotIncompatible = New("SLOT_INCOMPATIBLE", http.StatusBadRequest, "parking slot is not compatible with the vehicle")
	ErrSlotOccupied     = New("SLOT_OCCUPIED", http.StatusBadRequest, "parking slot is currently assigned")
	ErrActiveRequest    = New("ACTIVE_REQUEST", http.StatusBadRequest, "a pending slot request exists")
)
