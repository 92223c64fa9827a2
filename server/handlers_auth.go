package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/jrsteele09/college-portal/auth"
	"github.com/jrsteele09/college-portal/college"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Username string // Preserved on error
	Error    string
}

// LoginPageHandler displays the credential entry point (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.portal.Session().Authenticated() {
			redirectSuccess(w, r, RouteIndex)
			return
		}

		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Username: r.URL.Query().Get("username"),
			Error:    r.URL.Query().Get("error"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.pages.login.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler exchanges the submitted credentials for a session (POST /auth/login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		creds := college.Credentials{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}

		session, err := s.portal.Login(r.Context(), creds)
		if err != nil {
			redirectToLogin(w, r, loginFailureMessage(err), creds.Username)
			return
		}

		log.Info().Str("session", session.String()).Msg("User signed in")
		redirectSuccess(w, r, RouteIndex)
	}
}

// LogoutHandler clears the session and returns to the login page (GET /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.portal.Logout(r.Context()); err != nil {
			log.Err(err).Msg("LogoutHandler: failed to clear stored session")
		}
		redirectSuccess(w, r, RouteLogin)
	}
}

func loginFailureMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrNoProfileFound):
		return "No faculty or student profile is linked to this account"
	case errors.Is(err, auth.ErrTokenInvalid):
		return "Your session has expired. Please sign in again"
	default:
		log.Err(err).Msg("Login failed")
		return "Login failed"
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	query := url.Values{}
	query.Set("error", errorMsg)
	if username != "" {
		query.Set("username", username)
	}
	redirectSuccess(w, r, RouteLogin+"?"+query.Encode())
}

// redirectSuccess is htmx aware
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
