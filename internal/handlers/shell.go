package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
	"github.com/kingdavid103/Tracking-payment6/internal/templates"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
)

// UnreadCounter supplies the chat badge for the shell.
type UnreadCounter interface {
	Unread(ctx context.Context, token string) int
}

// Shell owns everything the pages share: the session cookie, the single
// notification slot, the header widgets and rendering.
type Shell struct {
	store     *session.Store
	notes     *notify.Center
	templates *templates.TemplateCache
	unread    UnreadCounter
	logger    zerolog.Logger
	now       func() time.Time
}

func NewShell(store *session.Store, notes *notify.Center, tc *templates.TemplateCache, unread UnreadCounter, logger zerolog.Logger) *Shell {
	return &Shell{
		store:     store,
		notes:     notes,
		templates: tc,
		unread:    unread,
		logger:    logger,
		now:       time.Now,
	}
}

type NotificationView struct {
	Message     string
	Severity    notify.Severity
	Icon        string
	Color       string
	RemainingMS int64
}

type ShellData struct {
	Authenticated bool
	UserName      string
	Avatar        string
	IsAdmin       bool
	Home          string
	Unread        int
	Active        string
	Path          string
	Notification  *NotificationView
	CSRF          template.HTML
}

type Page struct {
	Title string
	Shell ShellData
	Data  interface{}
}

// Page starts a page model. Unread is left at -1 so Render fetches it unless
// the handler already knows it.
func (s *Shell) Page(r *http.Request, title, active string, data interface{}) Page {
	p := Page{
		Title: title,
		Data:  data,
		Shell: ShellData{
			Active: active,
			Path:   r.URL.RequestURI(),
			Unread: -1,
			CSRF:   csrf.TemplateField(r),
		},
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		p.Shell.Authenticated = true
		p.Shell.UserName = sess.User.FullName()
		p.Shell.IsAdmin = sess.User.IsAdmin
		p.Shell.Home = session.HomeFor(sess.User)
		p.Shell.Avatar = sess.User.AvatarURL()
		if p.Shell.Avatar == "" {
			p.Shell.Avatar = views.PlaceholderAvatar
		}
	}
	return p
}

// Notify replaces the pending notification. It is written with the next
// Render, Redirect or session save in this request.
func (s *Shell) Notify(r *http.Request, message string, severity notify.Severity) {
	s.notes.Notify(s.store.Raw(r), message, severity)
}

// Dismiss drops the pending notification, if any.
func (s *Shell) Dismiss(r *http.Request) {
	s.notes.Dismiss(s.store.Raw(r))
}

func (s *Shell) commit(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Commit(w, r); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save session")
	}
}

func (s *Shell) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	if p.Shell.Authenticated && p.Shell.Unread < 0 {
		p.Shell.Unread = 0
		if sess, ok := session.FromContext(r.Context()); ok && s.unread != nil {
			p.Shell.Unread = s.unread.Unread(r.Context(), sess.Token)
		}
	}
	if n, ok := s.notes.Take(s.store.Raw(r)); ok {
		p.Shell.Notification = &NotificationView{
			Message:     n.Message,
			Severity:    n.Severity,
			Icon:        n.Icon(),
			Color:       n.Color(),
			RemainingMS: n.Remaining(s.now()).Milliseconds(),
		}
	}
	s.commit(w, r)
	if err := s.templates.Render(w, status, name, p); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Render failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Redirect commits the session (and any pending notification) and sends a
// 303 so the browser follows with a GET.
func (s *Shell) Redirect(w http.ResponseWriter, r *http.Request, url string) {
	s.commit(w, r)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// wantsJSON reports whether the caller is a script rather than a form post.
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}
