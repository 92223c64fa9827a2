package auth

import (
	"errors"

	apperrors "github.com/jrsteele09/college-portal/internal/errors"
)

var (
	// ErrTokenInvalid covers expired or forged tokens and any probe transport failure
	ErrTokenInvalid = apperrors.ErrInvalidToken
	// ErrNoProfileFound means the token is valid but owns neither a faculty nor a student profile
	ErrNoProfileFound = apperrors.ErrNoProfile
	// ErrInvalidCredentials is returned when the token endpoint rejects the username/password
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	// ErrNoStoredSession is returned by Restore when nothing was persisted
	ErrNoStoredSession = errors.New("no stored session")
)

// IsTerminal reports whether err ends the session and requires new credentials
func IsTerminal(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrNoProfileFound)
}
