package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain-level error carrying the HTTP status it maps to.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates an error for invalid client input (400).
func NewValidationError(message string) *Error {
	return &Error{Code: "VALIDATION_ERROR", Message: message, Status: http.StatusBadRequest}
}

// NewUnauthorizedError creates an error for failed authentication or
// ownership checks (401).
func NewUnauthorizedError(message string) *Error {
	return &Error{Code: "UNAUTHORIZED", Message: message, Status: http.StatusUnauthorized}
}

// NewNotFoundError creates an error for a missing resource (404).
func NewNotFoundError(resource, id string) *Error {
	return &Error{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewConflictError creates an error for a business-rule conflict (409).
func NewConflictError(message string) *Error {
	return &Error{Code: "CONFLICT", Message: message, Status: http.StatusConflict}
}

// NewInternalError creates an error for infrastructure failures (500).
func NewInternalError(message string) *Error {
	return &Error{Code: "INTERNAL_ERROR", Message: message, Status: http.StatusInternalServerError}
}

// StatusOf returns the HTTP status for err, defaulting to 500 for
// errors that are not domain errors.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}
