package views

import (
	"fmt"

	apperrors "github.com/jrsteele09/college-portal/internal/errors"
	"github.com/jrsteele09/college-portal/users"
)

// View is one selectable screen of the portal
type View string

const (
	Home                View = "home"
	CreateStudent       View = "create-student"
	AddStudentToSubject View = "add-student-subject"
	SubjectList         View = "subjects"
	EditProfile         View = "edit-profile"
)

// All lists the views in menu order
var All = []View{Home, CreateStudent, AddStudentToSubject, SubjectList, EditProfile}

// ErrRejected is returned when a role requests a view it may not see
var ErrRejected = apperrors.ErrRejected

// permissions is the static view/role table. Unauthenticated is allowed nothing.
var permissions = map[View]map[users.RoleType]bool{
	Home:                {users.RoleFaculty: true, users.RoleStudent: true},
	CreateStudent:       {users.RoleFaculty: true},
	AddStudentToSubject: {users.RoleFaculty: true},
	SubjectList:         {users.RoleFaculty: true, users.RoleStudent: true},
	EditProfile:         {users.RoleStudent: true},
}

var labels = map[View]string{
	Home:                "Home",
	CreateStudent:       "Create Student",
	AddStudentToSubject: "Add Student to Subject",
	SubjectList:         "My Subjects",
	EditProfile:         "Edit Profile",
}

// IsAllowed reports whether role may see v
func IsAllowed(v View, role users.RoleType) bool {
	return permissions[v][role]
}

// Select returns v unchanged when role may see it, otherwise ErrRejected.
// It has no side effects.
func Select(v View, role users.RoleType) (View, error) {
	if !IsAllowed(v, role) {
		return "", fmt.Errorf("%w: %q is not available to %s", ErrRejected, string(v), role)
	}
	return v, nil
}

// ParseView maps a slug to a View. "default" is accepted for Home.
func ParseView(s string) (View, error) {
	if s == "" || s == "default" {
		return Home, nil
	}
	for _, v := range All {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown view %q", apperrors.ErrInvalidRequest, s)
}

// Label is the menu text of v for role
func Label(v View, role users.RoleType) string {
	if v == SubjectList && role == users.RoleFaculty {
		return "Subject Management"
	}
	return labels[v]
}

type MenuItem struct {
	View  View
	Label string
}

// Menu lists the views role may select, in menu order
func Menu(role users.RoleType) []MenuItem {
	items := make([]MenuItem, 0, len(All))
	for _, v := range All {
		if IsAllowed(v, role) {
			items = append(items, MenuItem{View: v, Label: Label(v, role)})
		}
	}
	return items
}

func (v View) String() string {
	return string(v)
}
