package users

import "strings"

// RoleType represents the role of the authenticated principal. The backend
// never returns it; it is inferred from which profile collection is non-empty.
type RoleType string

const (
	RoleUnauthenticated RoleType = ""
	RoleFaculty         RoleType = "faculty"
	RoleStudent         RoleType = "student"
)

// ParseRole maps a stored role string back to a RoleType. Unknown values are
// treated as unauthenticated.
func ParseRole(s string) RoleType {
	switch RoleType(strings.ToLower(strings.TrimSpace(s))) {
	case RoleFaculty:
		return RoleFaculty
	case RoleStudent:
		return RoleStudent
	default:
		return RoleUnauthenticated
	}
}

func (r RoleType) String() string {
	if r == RoleUnauthenticated {
		return "unauthenticated"
	}
	return string(r)
}

// Authenticated reports whether r is one of the signed-in roles
func (r RoleType) Authenticated() bool {
	return r == RoleFaculty || r == RoleStudent
}

// User is the account record nested in faculty and student profiles
type User struct {
	ID            int64  `json:"id,omitempty"`             // Backend account id
	Username      string `json:"username,omitempty"`       // Unique username
	Email         string `json:"email,omitempty"`          // User's email address
	FirstName     string `json:"first_name,omitempty"`     // First name of the user
	LastName      string `json:"last_name,omitempty"`      // Last name of the user
	ContactNumber string `json:"contact_number,omitempty"` // Phone number
}

// FullName joins first and last name, skipping empty parts
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
