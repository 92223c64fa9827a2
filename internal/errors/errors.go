package errors

import (
	"errors"
	"fmt"
)

// Common error types shared by the portal packages
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoProfile          = errors.New("no user profile found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Navigation errors
	ErrRejected = errors.New("view rejected for role")

	// Backend errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrBackend      = errors.New("backend request failed")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
