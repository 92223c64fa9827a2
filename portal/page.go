package portal

import (
	"context"

	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/views"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a one-off message shown above the view
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Page is everything a renderer needs to draw the current view.
// Session is a copy; renderers cannot change the controller's session.
type Page struct {
	View    views.View
	Title   string
	Session sessions.Session
	Menu    []views.MenuItem
	Data    any
	Notices []Notice
}

// Renderer draws a page. The controller only hands it allowed view/role pairs.
type Renderer interface {
	Render(ctx context.Context, page Page) error
}

// HomeData backs the Home view. Faculty see their students, students their subjects.
type HomeData struct {
	Faculty  *college.Faculty
	Student  *college.Student
	Students []college.Student
	Subjects []college.Subject
}

// SubjectsData backs the SubjectList view
type SubjectsData struct {
	Subjects []college.Subject
	Managed  bool // true for the faculty "Subject Management" listing
}

// EnrollData backs the AddStudentToSubject view
type EnrollData struct {
	Subjects []college.Subject
}

// ProfileData backs the EditProfile view
type ProfileData struct {
	Student *college.Student
	Form    ProfileForm
}
