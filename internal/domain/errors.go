package domain

import (
	"errors"
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
	// Message replaces the default text when set
	Message string
}

func (e *ErrNotFound) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// Code verification errors, worded for the end user
var (
	ErrInvalidCode = errors.New("Invalid or expired reset code.")
	ErrCodeExpired = errors.New("Reset code has expired. Please request a new one.")
)

// ErrRateLimited is returned when a caller exceeds the per-address email quota
type ErrRateLimited struct {
	RetryAfterSeconds int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("Too many requests. Please try again in %d seconds.", e.RetryAfterSeconds)
}

// ErrEmailDelivery wraps a provider failure the caller asked to surface
type ErrEmailDelivery struct {
	Err error
}

func (e *ErrEmailDelivery) Error() string {
	if e.Err == nil {
		return "Failed to send email"
	}
	return e.Err.Error()
}

func (e *ErrEmailDelivery) Unwrap() error {
	return e.Err
}
