package portal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	"github.com/jrsteele09/college-portal/sessions"
	"github.com/jrsteele09/college-portal/users"
	"github.com/jrsteele09/college-portal/views"
	"github.com/rs/zerolog/log"
)

// Authenticator produces and clears sessions; *auth.Resolver implements it
type Authenticator interface {
	Login(ctx context.Context, creds college.Credentials) (sessions.Session, college.TokenPair, error)
	Renew(ctx context.Context, refreshToken string) (sessions.Session, error)
	Restore(ctx context.Context) (sessions.Session, error)
	Logout(ctx context.Context) error
}

var _ Authenticator = (*auth.Resolver)(nil)

// Controller is the single owner of the portal session and the selected view.
// Every backend call made on behalf of a view is gated by that view's
// permissions. Operations are serialised.
type Controller struct {
	lock sync.Mutex

	auth    Authenticator
	client  college.ResourceClient
	session sessions.Session
	router  *views.Router
	refresh string
}

func NewController(authenticator Authenticator, client college.ResourceClient) (*Controller, error) {
	if authenticator == nil {
		return nil, errors.New("[NewController] authenticator is required")
	}
	if client == nil {
		return nil, errors.New("[NewController] resource client is required")
	}
	return &Controller{
		auth:    authenticator,
		client:  client,
		session: sessions.Unauthenticated(),
		router:  views.NewRouter(),
	}, nil
}

// Session returns a copy of the current session
func (c *Controller) Session() sessions.Session {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.session.Clone()
}

func (c *Controller) CurrentView() views.View {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.router.Current()
}

// RefreshToken returns the refresh token of the last Login or Renew
func (c *Controller) RefreshToken() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.refresh
}

// Menu lists the views the current role may select
func (c *Controller) Menu() []views.MenuItem {
	c.lock.Lock()
	defer c.lock.Unlock()
	return views.Menu(c.session.Role)
}

// Login replaces the session with the one resolved from creds
func (c *Controller) Login(ctx context.Context, creds college.Credentials) (sessions.Session, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	session, pair, err := c.auth.Login(ctx, creds)
	if err != nil {
		if auth.IsTerminal(err) {
			c.resetLocked()
		}
		return sessions.Unauthenticated(), err
	}
	c.adoptLocked(session)
	c.refresh = pair.Refresh
	return session.Clone(), nil
}

// Restore adopts the persisted session, if it still resolves
func (c *Controller) Restore(ctx context.Context) (sessions.Session, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	session, err := c.auth.Restore(ctx)
	if err != nil {
		if auth.IsTerminal(err) {
			c.resetLocked()
		}
		return sessions.Unauthenticated(), err
	}
	c.adoptLocked(session)
	return session.Clone(), nil
}

// Renew exchanges a refresh token for a new session. An empty refreshToken
// uses the one returned by the last Login.
func (c *Controller) Renew(ctx context.Context, refreshToken string) (sessions.Session, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if refreshToken == "" {
		refreshToken = c.refresh
	}
	session, err := c.auth.Renew(ctx, refreshToken)
	if err != nil {
		if auth.IsTerminal(err) {
			c.resetLocked()
		}
		return sessions.Unauthenticated(), err
	}
	c.adoptLocked(session)
	c.refresh = refreshToken
	return session.Clone(), nil
}

// Logout clears the session, the stored token and the selected view.
// The in-memory session is cleared even when the store fails.
func (c *Controller) Logout(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.logoutLocked(ctx)
}

// Navigate selects v when the current role may see it
func (c *Controller) Navigate(v views.View) (views.View, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	selected, err := c.router.Request(v, c.session.Role)
	if err != nil {
		log.Warn().Str("view", v.String()).Str("role", c.session.Role.String()).Msg("Navigate: view rejected")
	}
	return selected, err
}

// Render loads the data of the current view and hands the page to r.
// Nothing is rendered for an unauthenticated session.
func (c *Controller) Render(ctx context.Context, r Renderer, notices ...Notice) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	role := c.session.Role
	current, err := views.Select(c.router.Current(), role)
	if err != nil {
		return err
	}

	var data any
	switch current {
	case views.Home:
		data, err = c.homeLocked(ctx)
	case views.SubjectList:
		data, err = c.subjectsLocked(ctx)
	case views.AddStudentToSubject:
		data, err = c.enrollOptionsLocked(ctx)
	case views.EditProfile:
		var student *college.Student
		if student, err = c.profileLocked(ctx); err == nil {
			data = ProfileData{Student: student, Form: ProfileFormFrom(*student)}
		}
	case views.CreateStudent:
		data = StudentForm{}
	}
	if err != nil {
		return err
	}

	return r.Render(ctx, Page{
		View:    current,
		Title:   views.Label(current, role),
		Session: c.session.Clone(),
		Menu:    views.Menu(role),
		Data:    data,
		Notices: notices,
	})
}

// Home loads the landing data of the current principal
func (c *Controller) Home(ctx context.Context) (HomeData, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.homeLocked(ctx)
}

// Subjects lists every subject for faculty and the enrolled subjects for students
func (c *Controller) Subjects(ctx context.Context) (SubjectsData, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.subjectsLocked(ctx)
}

// EnrollOptions lists the subjects a faculty member can enroll students into
func (c *Controller) EnrollOptions(ctx context.Context) (EnrollData, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.enrollOptionsLocked(ctx)
}

// CreateStudent validates form and creates the student account
func (c *Controller) CreateStudent(ctx context.Context, form StudentForm) (*college.Student, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.gateLocked(views.CreateStudent); err != nil {
		return nil, err
	}
	req := form.request()
	if err := validateForm(req); err != nil {
		return nil, err
	}

	student, err := c.client.CreateStudent(ctx, c.session.Token, req)
	if err != nil {
		return nil, c.backendFailureLocked(ctx, err)
	}
	log.Info().Int64("student_id", student.ID).Str("username", student.User.Username).Msg("Student created")
	return student, nil
}

// AddStudentToSubject enrolls a student into a subject on behalf of the signed-in faculty
func (c *Controller) AddStudentToSubject(ctx context.Context, subjectID, studentID int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if err := c.gateLocked(views.AddStudentToSubject); err != nil {
		return err
	}
	req := college.AddStudentRequest{SubjectID: subjectID, StudentID: studentID}
	if err := validateForm(req); err != nil {
		return err
	}

	if err := c.client.AddStudentToSubject(ctx, c.session.Token, c.session.Principal(), req); err != nil {
		return c.backendFailureLocked(ctx, err)
	}
	log.Info().Int64("subject_id", subjectID).Int64("student_id", studentID).Msg("Student added to subject")
	return nil
}

// Profile fetches the signed-in student's record
func (c *Controller) Profile(ctx context.Context) (*college.Student, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.profileLocked(ctx)
}

// UpdateProfile saves the signed-in student's profile. A changed username is
// checked for availability first and only then sent.
func (c *Controller) UpdateProfile(ctx context.Context, form ProfileForm) (*college.Student, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	current, err := c.profileLocked(ctx)
	if err != nil {
		return nil, err
	}

	form = form.trimmed()
	if err := validateForm(form); err != nil {
		return nil, err
	}

	if form.Username != current.User.Username {
		available, err := c.client.CheckUsername(ctx, c.session.Token, form.Username)
		if err != nil {
			return nil, c.backendFailureLocked(ctx, err)
		}
		if !available {
			return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, form.Username)
		}
	}

	updated, err := c.client.UpdateStudent(ctx, c.session.Token, c.session.Principal(), form.request(current.User.Username))
	if err != nil {
		return nil, c.backendFailureLocked(ctx, err)
	}
	log.Info().Int64("student_id", updated.ID).Msg("Profile updated")
	return updated, nil
}

func (c *Controller) homeLocked(ctx context.Context) (HomeData, error) {
	if err := c.gateLocked(views.Home); err != nil {
		return HomeData{}, err
	}

	var data HomeData
	switch c.session.Role {
	case users.RoleFaculty:
		faculty, err := c.client.ListFaculty(ctx, c.session.Token)
		if err != nil {
			return HomeData{}, c.backendFailureLocked(ctx, err)
		}
		for i := range faculty {
			if faculty[i].ID == c.session.Principal() {
				data.Faculty = &faculty[i]
				break
			}
		}
		if data.Students, err = c.client.FacultyStudents(ctx, c.session.Token, c.session.Principal()); err != nil {
			return HomeData{}, c.backendFailureLocked(ctx, err)
		}
	case users.RoleStudent:
		student, err := c.client.GetStudent(ctx, c.session.Token, c.session.Principal())
		if err != nil {
			return HomeData{}, c.backendFailureLocked(ctx, err)
		}
		data.Student = student
		if data.Subjects, err = c.client.StudentSubjects(ctx, c.session.Token, c.session.Principal()); err != nil {
			return HomeData{}, c.backendFailureLocked(ctx, err)
		}
	}
	return data, nil
}

func (c *Controller) subjectsLocked(ctx context.Context) (SubjectsData, error) {
	if err := c.gateLocked(views.SubjectList); err != nil {
		return SubjectsData{}, err
	}

	var (
		subjects []college.Subject
		err      error
	)
	if c.session.Role == users.RoleFaculty {
		subjects, err = c.client.ListSubjects(ctx, c.session.Token)
	} else {
		subjects, err = c.client.StudentSubjects(ctx, c.session.Token, c.session.Principal())
	}
	if err != nil {
		return SubjectsData{}, c.backendFailureLocked(ctx, err)
	}
	return SubjectsData{Subjects: subjects, Managed: c.session.Role == users.RoleFaculty}, nil
}

func (c *Controller) enrollOptionsLocked(ctx context.Context) (EnrollData, error) {
	if err := c.gateLocked(views.AddStudentToSubject); err != nil {
		return EnrollData{}, err
	}
	subjects, err := c.client.ListSubjects(ctx, c.session.Token)
	if err != nil {
		return EnrollData{}, c.backendFailureLocked(ctx, err)
	}
	return EnrollData{Subjects: subjects}, nil
}

func (c *Controller) profileLocked(ctx context.Context) (*college.Student, error) {
	if err := c.gateLocked(views.EditProfile); err != nil {
		return nil, err
	}
	student, err := c.client.GetStudent(ctx, c.session.Token, c.session.Principal())
	if err != nil {
		return nil, c.backendFailureLocked(ctx, err)
	}
	return student, nil
}

func (c *Controller) gateLocked(v views.View) error {
	_, err := views.Select(v, c.session.Role)
	return err
}

// backendFailureLocked turns an authorization failure into a forced logout
func (c *Controller) backendFailureLocked(ctx context.Context, err error) error {
	if !errors.Is(err, college.ErrUnauthorized) {
		return err
	}
	log.Warn().Err(err).Str("session", c.session.String()).Msg("Backend rejected the token, signing out")
	if logoutErr := c.logoutLocked(ctx); logoutErr != nil {
		log.Err(logoutErr).Msg("Forced logout failed to clear the stored session")
	}
	return fmt.Errorf("%w: %w", auth.ErrTokenInvalid, err)
}

func (c *Controller) logoutLocked(ctx context.Context) error {
	c.resetLocked()
	return c.auth.Logout(ctx)
}

func (c *Controller) adoptLocked(session sessions.Session) {
	if c.session.Role != session.Role {
		c.router.Reset()
	}
	c.session = session.Clone()
}

func (c *Controller) resetLocked() {
	c.session = sessions.Unauthenticated()
	c.router.Reset()
	c.refresh = ""
}
