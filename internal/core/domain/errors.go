package domain

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("forbidden")
var ErrNotFound = errors.New("not found")
var ErrValidation = errors.New("validation failed")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("no authenticated user")

// APIError carries the HTTP status and server-supplied message of a failed
// backend call. It wraps one of the sentinel errors above so callers can
// branch with errors.Is without inspecting status codes themselves.
type APIError struct {
	Status  int
	Message string
	Path    string
	wrapped error
}

// NewAPIError builds an APIError for the given status, mapping the status to
// the matching sentinel.
func NewAPIError(status int, message, path string) *APIError {
	var wrapped error
	switch {
	case status == 401:
		wrapped = ErrUnauthorized
	case status == 403:
		wrapped = ErrForbidden
	case status == 404:
		wrapped = ErrNotFound
	case status >= 400 && status < 500:
		wrapped = ErrValidation
	}
	return &APIError{Status: status, Message: message, Path: path, wrapped: wrapped}
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %d %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: status %d", e.Path, e.Status)
}

func (e *APIError) Unwrap() error { return e.wrapped }
