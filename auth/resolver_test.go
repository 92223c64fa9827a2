package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/college/fakeclient"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/sessions/repofake"
	"github.com/jrsteele09/college-portal/users"
	"github.com/stretchr/testify/require"
)

type resolverFixture struct {
	backend  *fakeclient.FakeClient
	store    *repofake.FakeStore
	resolver *auth.Resolver
}

func newResolverFixture(t *testing.T) resolverFixture {
	t.Helper()

	backend := fakeclient.NewFakeClient()
	backend.AddAccount("T1", fakeclient.Account{Faculty: []college.Faculty{{ID: 7}}})
	backend.AddAccount("T2", fakeclient.Account{Students: []college.Student{{ID: 3, User: users.User{Username: "sam"}}}})
	backend.AddAccount("T3", fakeclient.Account{})
	backend.AddAccount("T4", fakeclient.Account{
		Faculty:  []college.Faculty{{ID: 11}, {ID: 12}},
		Students: []college.Student{{ID: 21, User: users.User{Username: "both"}}},
	})
	backend.AddUser("prof", "secret", college.TokenPair{Access: "T1", Refresh: "R1"})
	backend.AddUser("nobody", "secret", college.TokenPair{Access: "T3", Refresh: "R3"})

	store := repofake.NewFakeStore()
	resolver, err := auth.NewResolver(backend, store)
	require.NoError(t, err)

	return resolverFixture{backend: backend, store: store, resolver: resolver}
}

func TestNewResolverRequiresDependencies(t *testing.T) {
	_, err := auth.NewResolver(nil, repofake.NewFakeStore())
	require.Error(t, err)

	_, err = auth.NewResolver(fakeclient.NewFakeClient(), nil)
	require.Error(t, err)
}

func TestResolveFaculty(t *testing.T) {
	f := newResolverFixture(t)

	session, err := f.resolver.Resolve(context.Background(), "T1")
	require.NoError(t, err)
	require.Equal(t, users.RoleFaculty, session.Role)
	require.Equal(t, int64(7), session.Principal())
	require.Equal(t, "T1", session.Token)

	stored, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, "T1", stored.Token)
	require.Equal(t, users.RoleFaculty, stored.Role)

	// A non-empty faculty collection settles it; students is never asked
	require.Equal(t, []string{"faculty"}, f.backend.Calls())
}

func TestResolveStudent(t *testing.T) {
	f := newResolverFixture(t)

	session, err := f.resolver.Resolve(context.Background(), "T2")
	require.NoError(t, err)
	require.Equal(t, users.RoleStudent, session.Role)
	require.Equal(t, int64(3), session.Principal())
	require.Equal(t, []string{"faculty", "students"}, f.backend.Calls())

	stored, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, users.RoleStudent, stored.Role)
}

func TestResolveNoProfile(t *testing.T) {
	f := newResolverFixture(t)
	f.store.Seed("old", users.RoleStudent)

	session, err := f.resolver.Resolve(context.Background(), "T3")
	require.ErrorIs(t, err, auth.ErrNoProfileFound)
	require.False(t, session.Authenticated())
	require.True(t, auth.IsTerminal(err))

	_, ok := f.store.Current()
	require.False(t, ok)
}

func TestResolveFacultyWinsTie(t *testing.T) {
	f := newResolverFixture(t)

	session, err := f.resolver.Resolve(context.Background(), "T4")
	require.NoError(t, err)
	require.Equal(t, users.RoleFaculty, session.Role)
	require.Equal(t, int64(11), session.Principal())
}

func TestResolveInvalidToken(t *testing.T) {
	f := newResolverFixture(t)
	f.store.Seed("T1", users.RoleFaculty)

	session, err := f.resolver.Resolve(context.Background(), "forged")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.ErrorIs(t, err, college.ErrUnauthorized)
	require.False(t, session.Authenticated())
	require.Equal(t, 1, f.store.Clears)

	_, ok := f.store.Current()
	require.False(t, ok)
}

func TestResolveProbeTransportFailure(t *testing.T) {
	testCases := map[string]struct {
		collection string
		token      string
		calls      []string
	}{
		"faculty probe": {collection: "faculty", token: "T2", calls: []string{"faculty"}},
		"student probe": {collection: "students", token: "T2", calls: []string{"faculty", "students"}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newResolverFixture(t)
			f.backend.ProbeErrors[tc.collection] = errors.New("connection refused")

			_, err := f.resolver.Resolve(context.Background(), tc.token)
			require.ErrorIs(t, err, auth.ErrTokenInvalid)
			require.ErrorContains(t, err, "connection refused")
			require.Equal(t, tc.calls, f.backend.Calls())
		})
	}
}

func TestResolveEmptyTokenSkipsProbes(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.Resolve(context.Background(), "  ")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	require.Empty(t, f.backend.Calls())
}

func TestResolveCancelledContextKeepsStore(t *testing.T) {
	f := newResolverFixture(t)
	f.store.Seed("T1", users.RoleFaculty)
	f.backend.ProbeErrors["faculty"] = context.Canceled

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.resolver.Resolve(ctx, "T1")
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, f.store.Clears)
}

func TestResolveSaveFailureStillAuthenticates(t *testing.T) {
	f := newResolverFixture(t)
	f.store.SaveErr = errors.New("disk full")

	session, err := f.resolver.Resolve(context.Background(), "T1")
	require.NoError(t, err)
	require.True(t, session.Authenticated())
	require.Equal(t, 1, f.store.Saves)
}

func TestLogin(t *testing.T) {
	f := newResolverFixture(t)

	session, pair, err := f.resolver.Login(context.Background(), college.Credentials{Username: "prof", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, users.RoleFaculty, session.Role)
	require.Equal(t, "R1", pair.Refresh)
	require.Equal(t, []string{"login", "faculty"}, f.backend.Calls())
}

func TestLoginFailures(t *testing.T) {
	testCases := map[string]struct {
		creds college.Credentials
		want  error
	}{
		"wrong password":   {creds: college.Credentials{Username: "prof", Password: "nope"}, want: auth.ErrInvalidCredentials},
		"unknown user":     {creds: college.Credentials{Username: "ghost", Password: "x"}, want: auth.ErrInvalidCredentials},
		"missing password": {creds: college.Credentials{Username: "prof"}, want: auth.ErrInvalidCredentials},
		"no profile":       {creds: college.Credentials{Username: "nobody", Password: "secret"}, want: auth.ErrNoProfileFound},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			f := newResolverFixture(t)
			session, _, err := f.resolver.Login(context.Background(), tc.creds)
			require.ErrorIs(t, err, tc.want)
			require.False(t, session.Authenticated())
		})
	}
}

func TestLoginMissingFieldsSkipsBackend(t *testing.T) {
	f := newResolverFixture(t)
	_, _, err := f.resolver.Login(context.Background(), college.Credentials{})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	require.Empty(t, f.backend.Calls())
}

func TestRenew(t *testing.T) {
	f := newResolverFixture(t)

	session, err := f.resolver.Renew(context.Background(), "R1")
	require.NoError(t, err)
	require.Equal(t, users.RoleFaculty, session.Role)
	require.Equal(t, "T1", session.Token)

	_, err = f.resolver.Renew(context.Background(), "expired")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	_, ok := f.store.Current()
	require.False(t, ok)

	_, err = f.resolver.Renew(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestRestore(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.Restore(context.Background())
	require.ErrorIs(t, err, auth.ErrNoStoredSession)

	// The stored role is stale; the probes decide
	f.store.Seed("T2", users.RoleFaculty)
	session, err := f.resolver.Restore(context.Background())
	require.NoError(t, err)
	require.Equal(t, users.RoleStudent, session.Role)
	require.Equal(t, int64(3), session.Principal())

	stored, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, users.RoleStudent, stored.Role)
}

func TestRestoreRevokedToken(t *testing.T) {
	f := newResolverFixture(t)
	f.store.Seed("T1", users.RoleFaculty)
	f.backend.RevokeToken("T1")

	_, err := f.resolver.Restore(context.Background())
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
	_, ok := f.store.Current()
	require.False(t, ok)
}

func TestLogout(t *testing.T) {
	f := newResolverFixture(t)
	_, err := f.resolver.Resolve(context.Background(), "T1")
	require.NoError(t, err)

	require.NoError(t, f.resolver.Logout(context.Background()))
	_, err = f.store.Load(context.Background())
	require.ErrorIs(t, err, sessions.ErrNotFound)
}
