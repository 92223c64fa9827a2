package users_test

import (
	"testing"

	"github.com/jrsteele09/college-portal/users"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	require.Equal(t, users.RoleFaculty, users.ParseRole("faculty"))
	require.Equal(t, users.RoleStudent, users.ParseRole(" Student "))
	require.Equal(t, users.RoleUnauthenticated, users.ParseRole("admin"))
	require.Equal(t, users.RoleUnauthenticated, users.ParseRole(""))
}

func TestRoleAuthenticated(t *testing.T) {
	require.True(t, users.RoleFaculty.Authenticated())
	require.True(t, users.RoleStudent.Authenticated())
	require.False(t, users.RoleUnauthenticated.Authenticated())
	require.Equal(t, "unauthenticated", users.RoleUnauthenticated.String())
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", users.User{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	require.Equal(t, "Ada", users.User{FirstName: "Ada"}.FullName())
}
