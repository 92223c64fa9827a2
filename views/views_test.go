package views_test

import (
	"testing"

	"github.com/jrsteele09/college-portal/users"
	"github.com/jrsteele09/college-portal/views"
	"github.com/stretchr/testify/require"
)

func TestPermissionTable(t *testing.T) {
	tests := []struct {
		view    views.View
		faculty bool
		student bool
	}{
		{views.Home, true, true},
		{views.CreateStudent, true, false},
		{views.AddStudentToSubject, true, false},
		{views.SubjectList, true, true},
		{views.EditProfile, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			require.Equal(t, tt.faculty, views.IsAllowed(tt.view, users.RoleFaculty))
			require.Equal(t, tt.student, views.IsAllowed(tt.view, users.RoleStudent))
			require.False(t, views.IsAllowed(tt.view, users.RoleUnauthenticated))
		})
	}
}

func TestSelect(t *testing.T) {
	v, err := views.Select(views.Home, users.RoleFaculty)
	require.NoError(t, err)
	require.Equal(t, views.Home, v)

	// idempotent
	v, err = views.Select(views.Home, users.RoleFaculty)
	require.NoError(t, err)
	require.Equal(t, views.Home, v)

	_, err = views.Select(views.CreateStudent, users.RoleStudent)
	require.ErrorIs(t, err, views.ErrRejected)

	_, err = views.Select(views.Home, users.RoleUnauthenticated)
	require.ErrorIs(t, err, views.ErrRejected)

	_, err = views.Select(views.View("admin"), users.RoleFaculty)
	require.ErrorIs(t, err, views.ErrRejected)
}

func TestRouterKeepsViewOnRejection(t *testing.T) {
	r := views.NewRouter()
	require.Equal(t, views.Home, r.Current())

	v, err := r.Request(views.SubjectList, users.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, views.SubjectList, v)

	v, err = r.Request(views.CreateStudent, users.RoleStudent)
	require.ErrorIs(t, err, views.ErrRejected)
	require.Equal(t, views.SubjectList, v)
	require.Equal(t, views.SubjectList, r.Current())

	r.Reset()
	require.Equal(t, views.Home, r.Current())
}

func TestMenuLabels(t *testing.T) {
	faculty := views.Menu(users.RoleFaculty)
	require.Equal(t, []views.MenuItem{
		{View: views.Home, Label: "Home"},
		{View: views.CreateStudent, Label: "Create Student"},
		{View: views.AddStudentToSubject, Label: "Add Student to Subject"},
		{View: views.SubjectList, Label: "Subject Management"},
	}, faculty)

	student := views.Menu(users.RoleStudent)
	require.Equal(t, []views.MenuItem{
		{View: views.Home, Label: "Home"},
		{View: views.SubjectList, Label: "My Subjects"},
		{View: views.EditProfile, Label: "Edit Profile"},
	}, student)

	require.Empty(t, views.Menu(users.RoleUnauthenticated))
}

func TestParseView(t *testing.T) {
	for _, v := range views.All {
		parsed, err := views.ParseView(v.String())
		require.NoError(t, err)
		require.Equal(t, v, parsed)
	}

	v, err := views.ParseView("default")
	require.NoError(t, err)
	require.Equal(t, views.Home, v)

	_, err = views.ParseView("settings")
	require.Error(t, err)
}
