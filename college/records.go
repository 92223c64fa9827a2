package college

import "github.com/jrsteele09/college-portal/users"

// Credentials are only held for the duration of the login request
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the token endpoint response. Only Access is used to resolve the session.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Subject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	FacultyName string `json:"faculty_name,omitempty"`
}

type Faculty struct {
	ID             int64      `json:"id"`
	User           users.User `json:"user"`
	Department     string     `json:"department,omitempty"`
	Qualification  string     `json:"qualification,omitempty"`
	DateJoined     string     `json:"date_joined,omitempty"`
	SubjectsTaught []Subject  `json:"subjects_taught,omitempty"`
	Students       []Student  `json:"students,omitempty"` // Filled from my_students, not part of the faculty payload
}

type Student struct {
	ID             int64      `json:"id"`
	User           users.User `json:"user"`
	ProfilePic     string     `json:"profile_pic,omitempty"`
	DateOfBirth    string     `json:"date_of_birth,omitempty"`
	Gender         string     `json:"gender,omitempty"` // M, F or O
	BloodGroup     string     `json:"blood_group,omitempty"`
	Address        string     `json:"address,omitempty"`
	EnrollmentDate string     `json:"enrollment_date,omitempty"`
	Subjects       []Subject  `json:"-"` // Filled from my_subjects
}
