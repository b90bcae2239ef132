package model

import "errors"

// Common errors used across the application
var (
	// Entity lookups
	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrPoolNotFound    = errors.New("pool not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrSessionNotFound = errors.New("session not found")

	// User management
	ErrUsernameExists     = errors.New("username already exists")
	ErrMainAdminProtected = errors.New("the main admin cannot be modified this way")

	// Authorization
	ErrPermissionDenied = errors.New("permission denied")

	// Match state machine
	ErrMatchAlreadyCompleted = errors.New("match is already completed")
	ErrMatchNotCompleted     = errors.New("match is not completed")
	ErrInvalidTransition     = errors.New("invalid match status transition")
	ErrInvalidWinner         = errors.New("winner must be one of the match's two teams")
	ErrSameTeam              = errors.New("a match needs two different teams")
	ErrTeamNotInPool         = errors.New("team is not part of this pool")
)

// ValidationError is a rejected form field, caught before any storage call
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}
