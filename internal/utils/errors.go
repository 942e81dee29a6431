package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors used across services.
var (
	ErrNotFound           = errors.New("not found")
	ErrNoFilter           = errors.New("no search query provided")
	ErrInvalidColumn      = errors.New("invalid column")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPage        = errors.New("invalid limit or offset")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// AppError is an error that already knows which HTTP status and message it renders as.
type AppError struct {
	Status  int
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation builds a 400 error.
func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// NotFound builds a 404 error wrapping ErrNotFound.
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// Conflict builds a 409 error.
func Conflict(message, details string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message, Details: details}
}

// Internal builds a 500 error that passes the underlying store message through as details.
func Internal(err error) *AppError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &AppError{Status: http.StatusInternalServerError, Message: "Internal server error", Details: details, Err: err}
}
