package services

import (
	"errors"
	"fmt"
)

// Error variables
var (
	ErrDuplicateEmail     = errors.New("that email address has already been taken")
	ErrDuplicateUsername  = errors.New("that username has already been taken")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrSessionExpired     = errors.New("session expired or unknown")
	ErrUserNotFound       = errors.New("user not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrNotGameOwner       = errors.New("only the game owner can change the game")
	ErrUnsupportedSport   = errors.New("unsupported sport")
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidUpdate      = errors.New("invalid update")
	ErrAccountNotDeleted  = errors.New("account was not deleted")
)

// MissingFieldError is returned when a mandatory request field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field: %s", e.Field)
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
