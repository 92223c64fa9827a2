package sessions

import (
	"fmt"

	"github.com/jrsteele09/college-portal/internal/utils"
	"github.com/jrsteele09/college-portal/users"
)

// Session is the resolved identity of the bearer token. It is owned by the
// application controller; everything else receives copies.
//
// Invariants:
//   - RoleFaculty => PrincipalID is the id of a faculty record
//   - RoleStudent => PrincipalID is the id of a student record
//   - RoleUnauthenticated => PrincipalID is nil and Token is empty
type Session struct {
	Token       string         // Bearer access token
	Role        users.RoleType // Inferred role
	PrincipalID *int64         // Faculty or student record id
}

// Unauthenticated is the zero session shown at the credential entry point
func Unauthenticated() Session {
	return Session{}
}

func NewFaculty(token string, facultyID int64) Session {
	return Session{Token: token, Role: users.RoleFaculty, PrincipalID: &facultyID}
}

func NewStudent(token string, studentID int64) Session {
	return Session{Token: token, Role: users.RoleStudent, PrincipalID: &studentID}
}

// Authenticated reports whether the session carries a signed-in role
func (s Session) Authenticated() bool {
	return s.Role.Authenticated()
}

// Principal returns the principal id, or 0 when there is none
func (s Session) Principal() int64 {
	return utils.Value(s.PrincipalID)
}

// Clone returns a copy that shares no memory with s
func (s Session) Clone() Session {
	if s.PrincipalID != nil {
		s.PrincipalID = utils.Ptr(*s.PrincipalID)
	}
	return s
}

// Valid checks the role / principal invariants
func (s Session) Valid() error {
	switch s.Role {
	case users.RoleUnauthenticated:
		if s.PrincipalID != nil || s.Token != "" {
			return fmt.Errorf("unauthenticated session must not carry a token or principal")
		}
	case users.RoleFaculty, users.RoleStudent:
		if s.Token == "" {
			return fmt.Errorf("%s session has no token", s.Role)
		}
		if s.PrincipalID == nil {
			return fmt.Errorf("%s session has no principal id", s.Role)
		}
	default:
		return fmt.Errorf("unknown role %q", string(s.Role))
	}
	return nil
}

func (s Session) String() string {
	if !s.Authenticated() {
		return "unauthenticated"
	}
	return fmt.Sprintf("%s:%d", s.Role, s.Principal())
}
