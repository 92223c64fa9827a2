package portal

import (
	"errors"

	apperrors "github.com/jrsteele09/college-portal/internal/errors"
)

var (
	// ErrInvalidForm wraps a human readable list of failed fields
	ErrInvalidForm   = apperrors.ErrInvalidRequest
	ErrUsernameTaken = errors.New("username is already taken")
)
