package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/college/fakeclient"
	"github.com/jrsteele09/college-portal/internal/bootstrap"
	"github.com/jrsteele09/college-portal/portal"
	"github.com/jrsteele09/college-portal/sessions/repofake"
	"github.com/jrsteele09/college-portal/users"
	"github.com/jrsteele09/college-portal/views"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func useFakePortal(t *testing.T) (*fakeclient.FakeClient, *repofake.FakeStore) {
	t.Helper()

	backend := fakeclient.NewFakeClient()
	backend.AddAccount("FAC", fakeclient.Account{Faculty: []college.Faculty{{ID: 7, User: users.User{FirstName: "Ada", LastName: "Byron"}, Department: "Physics"}}})
	backend.AddAccount("STU", fakeclient.Account{Students: []college.Student{{ID: 3, User: users.User{Username: "sam", FirstName: "Sam", LastName: "Lee"}}}})
	backend.AddSubject(college.Subject{ID: 1, Name: "Mechanics", Code: "PHY101"})

	store := repofake.NewFakeStore()
	resolver, err := auth.NewResolver(backend, store)
	require.NoError(t, err)
	controller, err := portal.NewController(resolver, backend)
	require.NoError(t, err)

	previous := app
	app = &bootstrap.Portal{Controller: controller, Resolver: resolver}
	t.Cleanup(func() { app = previous })
	return backend, store
}

func runView(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	err := viewCmd.RunE(cmd, args)
	return out.String(), err
}

func TestRestoreSessionNotLoggedIn(t *testing.T) {
	useFakePortal(t)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := restoreSession(cmd)
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestRestoreSessionExpired(t *testing.T) {
	_, store := useFakePortal(t)
	store.Seed("GONE", users.RoleFaculty)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	_, err := restoreSession(cmd)
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestViewHomeForFaculty(t *testing.T) {
	_, store := useFakePortal(t)
	store.Seed("FAC", users.RoleFaculty)

	out, err := runView(t)
	require.NoError(t, err)
	require.Contains(t, out, "Home")
	require.Contains(t, out, "Ada Byron, Physics")
}

func TestViewSubjectsForStudent(t *testing.T) {
	_, store := useFakePortal(t)
	store.Seed("STU", users.RoleStudent)

	out, err := runView(t, "subjects")
	require.NoError(t, err)
	require.Contains(t, out, "My Subjects")
}

func TestViewRejected(t *testing.T) {
	_, store := useFakePortal(t)
	store.Seed("STU", users.RoleStudent)

	out, err := runView(t, "create-student")
	require.ErrorIs(t, err, views.ErrRejected)
	require.Empty(t, out)
}

func TestViewUnknown(t *testing.T) {
	_, store := useFakePortal(t)
	store.Seed("FAC", users.RoleFaculty)

	_, err := runView(t, "nope")
	require.Error(t, err)
}

func TestTerminalRendererEnrollData(t *testing.T) {
	var out bytes.Buffer
	err := newTerminalRenderer(&out).Render(context.Background(), portal.Page{
		View:  views.AddStudentToSubject,
		Title: "Add Student to Subject",
		Data:  portal.EnrollData{Subjects: []college.Subject{{ID: 1, Name: "Mechanics", Code: "PHY101"}}},
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Mechanics")
	require.Contains(t, out.String(), "PHY101")
	require.Contains(t, out.String(), "collegectl enroll")
}
