package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/users"
)

var _ sessions.Store = (*FakeStore)(nil)

// FakeStore is an in-memory sessions.Store that counts operations
type FakeStore struct {
	stored *sessions.Stored
	lock   sync.RWMutex

	Saves   int
	Clears  int
	SaveErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed stores a session without counting it as a Save
func (fs *FakeStore) Seed(token string, role users.RoleType) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.stored = &sessions.Stored{Token: token, Role: role, SavedAt: time.Now()}
}

func (fs *FakeStore) Save(_ context.Context, token string, role users.RoleType) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.Saves++
	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	fs.stored = &sessions.Stored{Token: token, Role: role, SavedAt: time.Now()}
	return nil
}

func (fs *FakeStore) Clear(_ context.Context) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.Clears++
	fs.stored = nil
	return nil
}

func (fs *FakeStore) Load(_ context.Context) (sessions.Stored, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.stored == nil {
		return sessions.Stored{}, sessions.ErrNotFound
	}
	return *fs.stored, nil
}

// Current returns the stored session, if any, without going through Load
func (fs *FakeStore) Current() (sessions.Stored, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.stored == nil {
		return sessions.Stored{}, false
	}
	return *fs.stored, true
}
