package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateEnrollment = errors.New("already registered for this session")
	ErrSessionClosed       = errors.New("session is already completed")
	ErrStorage             = errors.New("storage failure")

	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrDuplicateSequence  = errors.New("sequence number already used in this room")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// notFoundOr maps a missing row to ErrNotFound with context and any other
// failure to a storage error.
func notFoundOr(op, what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return storageError(op, err)
}
