package server

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jrsteele09/college-portal/internal/config"
	"github.com/jrsteele09/college-portal/portal"
	"github.com/rs/zerolog/log"
)

const noticeSessionName = "college-portal-notices"

func init() {
	gob.Register(portal.Notice{})
}

func newNoticeStore(c config.SecurityConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore(c.GetCookieSecret())
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   c.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// addNotice queues a notice for the next rendered page
func (s *Server) addNotice(w http.ResponseWriter, r *http.Request, level portal.NoticeLevel, text string) {
	session, err := s.notices.Get(r, noticeSessionName)
	if err != nil {
		log.Warn().Err(err).Msg("addNotice: discarding unreadable notice cookie")
	}
	session.AddFlash(portal.Notice{Level: level, Text: text})
	if err := session.Save(r, w); err != nil {
		log.Err(err).Msg("addNotice: failed to save notice cookie")
	}
}

// takeNotices returns and clears the queued notices
func (s *Server) takeNotices(w http.ResponseWriter, r *http.Request) []portal.Notice {
	session, err := s.notices.Get(r, noticeSessionName)
	if err != nil {
		return nil
	}
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.Err(err).Msg("takeNotices: failed to clear notice cookie")
	}

	notices := make([]portal.Notice, 0, len(flashes))
	for _, flash := range flashes {
		if notice, ok := flash.(portal.Notice); ok {
			notices = append(notices, notice)
		}
	}
	return notices
}
