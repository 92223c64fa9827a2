package sessions

import (
	"context"
	"time"

	apperrors "github.com/jrsteele09/college-portal/internal/errors"
	"github.com/jrsteele09/college-portal/users"
)

// ErrNotFound is returned by Store.Load when nothing is persisted
var ErrNotFound = apperrors.ErrSessionNotFound

// Stored is the persisted part of a session. The principal id is not kept;
// it is recovered by resolving the token again.
type Stored struct {
	Token   string         `json:"access_token"`
	Role    users.RoleType `json:"user_type"`
	SavedAt time.Time      `json:"saved_at"`
}

// Store persists the session across process restarts
type Store interface {
	// Save replaces any stored session
	Save(ctx context.Context, token string, role users.RoleType) error

	// Clear removes the stored session; clearing an empty store is not an error
	Clear(ctx context.Context) error

	// Load returns the stored session or ErrNotFound
	Load(ctx context.Context) (Stored, error)
}
