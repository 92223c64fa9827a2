package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	apperrors "github.com/jrsteele09/college-portal/internal/errors"
	"github.com/jrsteele09/college-portal/portal"
	"github.com/jrsteele09/college-portal/views"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 8 << 20

// IndexHandler renders the currently selected view (GET /)
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notices := s.takeNotices(w, r)

		err := s.portal.Render(r.Context(), s.pageRenderer(w), notices...)
		if err == nil {
			return
		}
		if auth.IsTerminal(err) {
			redirectToLogin(w, r, loginFailureMessage(err), "")
			return
		}
		if errors.Is(err, views.ErrRejected) {
			// Signed out by a concurrent request
			redirectSuccess(w, r, RouteLogin)
			return
		}
		log.Err(err).Str("view", s.portal.CurrentView().String()).Msg("IndexHandler: failed to render view")
		http.Error(w, "The college service is unavailable. Please try again later.", http.StatusBadGateway)
	}
}

// ViewHandler selects a view and shows it (GET /view/{view})
func (s *Server) ViewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requested, err := views.ParseView(r.PathValue("view"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if _, err := s.portal.Navigate(requested); err != nil {
			s.handleActionError(w, r, err)
			return
		}
		redirectSuccess(w, r, RouteIndex)
	}
}

// CreateStudentHandler creates a student from the multipart form (POST /students)
func (s *Server) CreateStudentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			s.handleActionError(w, r, apperrors.Wrapf(apperrors.ErrInvalidRequest, "unreadable form: %v", err))
			return
		}

		form := portal.StudentForm{
			Username:      r.FormValue("username"),
			Email:         r.FormValue("email"),
			Password:      r.FormValue("password"),
			FirstName:     r.FormValue("first_name"),
			LastName:      r.FormValue("last_name"),
			ContactNumber: r.FormValue("contact_number"),
			DateOfBirth:   r.FormValue("date_of_birth"),
			Gender:        r.FormValue("gender"),
			BloodGroup:    r.FormValue("blood_group"),
			Address:       r.FormValue("address"),
		}

		if file, header, err := r.FormFile("profile_pic"); err == nil {
			defer file.Close()
			form.ProfilePic = file
			form.ProfilePicName = header.Filename
		}

		student, err := s.portal.CreateStudent(r.Context(), form)
		if err != nil {
			s.handleActionError(w, r, err)
			return
		}
		s.addNotice(w, r, portal.NoticeSuccess, fmt.Sprintf("Student %s created successfully", student.User.Username))
		redirectSuccess(w, r, RouteIndex)
	}
}

// EnrollmentHandler adds a student to a subject (POST /enrollments)
func (s *Server) EnrollmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		// Unparseable ids become 0 and fail validation
		subjectID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("subject_id")), 10, 64)
		studentID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("student_id")), 10, 64)

		if err := s.portal.AddStudentToSubject(r.Context(), subjectID, studentID); err != nil {
			s.handleActionError(w, r, err)
			return
		}
		s.addNotice(w, r, portal.NoticeSuccess, "Student added to subject successfully")
		redirectSuccess(w, r, RouteIndex)
	}
}

// ProfileHandler saves the signed-in student's profile (POST /profile)
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := portal.ProfileForm{
			Username:      r.FormValue("username"),
			Email:         r.FormValue("email"),
			FirstName:     r.FormValue("first_name"),
			LastName:      r.FormValue("last_name"),
			ContactNumber: r.FormValue("contact_number"),
			DateOfBirth:   r.FormValue("date_of_birth"),
			Gender:        r.FormValue("gender"),
			BloodGroup:    r.FormValue("blood_group"),
			Address:       r.FormValue("address"),
		}

		if _, err := s.portal.UpdateProfile(r.Context(), form); err != nil {
			s.handleActionError(w, r, err)
			return
		}
		s.addNotice(w, r, portal.NoticeSuccess, "Profile updated successfully")
		redirectSuccess(w, r, RouteIndex)
	}
}

type healthResponse struct {
	Status        string `json:"status"`
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role"`
	View          string `json:"view"`
}

// HealthHandler reports liveness and the session state, never the token (GET /healthz)
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.portal.Session()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(healthResponse{
			Status:        "ok",
			Authenticated: session.Authenticated(),
			Role:          session.Role.String(),
			View:          s.portal.CurrentView().String(),
		}); err != nil {
			log.Err(err).Msg("HealthHandler: failed to encode response")
		}
	}
}

// handleActionError turns a failed portal operation into a notice and a redirect.
// Token failures go back to the login page.
func (s *Server) handleActionError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *college.APIError

	switch {
	case auth.IsTerminal(err):
		redirectToLogin(w, r, loginFailureMessage(err), "")
		return
	case errors.Is(err, views.ErrRejected):
		log.Warn().Err(err).Msg("View request rejected")
		s.addNotice(w, r, portal.NoticeWarning, "That page is not available for your account")
	case errors.Is(err, portal.ErrUsernameTaken):
		s.addNotice(w, r, portal.NoticeError, "Username is already taken")
	case errors.Is(err, portal.ErrInvalidForm):
		s.addNotice(w, r, portal.NoticeError, userMessage(err))
	case errors.As(err, &apiErr):
		s.addNotice(w, r, portal.NoticeError, apiErr.Detail)
	default:
		log.Err(err).Str("path", r.URL.Path).Msg("Portal action failed")
		s.addNotice(w, r, portal.NoticeError, "The request failed. Please try again.")
	}
	redirectSuccess(w, r, RouteIndex)
}

// userMessage drops the sentinel prefix of a form error
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
