// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Gateway errors.
	ErrAuthRequired  = errors.New("bearer authentication required")
	ErrSheetNotFound = errors.New("sheet not found")
	ErrNoSpreadsheet = errors.New("no spreadsheet configured")

	// Account errors.
	ErrInvalidLogin   = errors.New("invalid member id or password")
	ErrNotApproved    = errors.New("account not approved yet")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrForbidden      = errors.New("insufficient role")

	// Quota errors.
	ErrQuotaExhausted = errors.New("monthly quota exhausted")
	ErrItemLimit      = errors.New("item purchase limit reached")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError wraps a sentinel in a user-friendly message.
func NewUserError(err error, userMessage string) error {
	return &UserError{
		Err:         err,
		UserMessage: userMessage,
	}
}
