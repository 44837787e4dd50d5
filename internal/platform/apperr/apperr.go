// Package apperr defines the error kinds the core services return. Every
// operation surfaces exactly one of these kinds so callers can map errors to
// HTTP statuses and render partial dashboards without string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no caller identity was presented.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotApproved means the caregiver has no approved relationship for the
	// senior. It is distinct from "data empty" and must never be conflated
	// with it.
	ErrNotApproved = errors.New("access not approved")
	// ErrConflict means a non-rejected relationship already exists for the pair.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input was rejected before reaching the store.
	ErrValidation = errors.New("validation error")
	// ErrStoreUnavailable means a transient I/O failure reaching the store.
	// Callers retry at the UI layer, never inside the core.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Kind returns the wire name for the error's kind, or "internal" when the
// error does not wrap any known kind.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, ErrNotApproved):
		return "not_approved"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
