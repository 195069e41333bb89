package session

import (
	"encoding/json"
	"net/http"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	CookieName = "cbl-session"

	// The same keys the browser pages kept in local storage.
	keyToken = "token"
	keyUser  = "user"

	maxAge = 7 * 24 * 60 * 60
)

// Store persists the token + user pair in a signed HttpOnly cookie.
type Store struct {
	cookies *sessions.CookieStore
	logger  zerolog.Logger
}

func NewStore(key []byte, secure bool, logger zerolog.Logger) *Store {
	cs := sessions.NewCookieStore(key)
	cs.Options.HttpOnly = true
	cs.Options.Secure = secure
	cs.Options.SameSite = http.SameSiteLaxMode
	cs.Options.Path = "/"
	cs.Options.MaxAge = maxAge
	return &Store{
		cookies: cs,
		logger:  logger.With().Str("component", "session").Logger(),
	}
}

// Raw returns the underlying cookie session for this request. Repeated calls
// within one request return the same value.
func (s *Store) Raw(r *http.Request) *sessions.Session {
	sess, err := s.cookies.Get(r, CookieName)
	if err != nil {
		// A cookie signed with an old key decodes to a fresh session.
		s.logger.Debug().Err(err).Msg("Discarding unreadable session cookie")
	}
	return sess
}

// Load returns the stored session; a missing or corrupt cookie yields the
// zero Session.
func (s *Store) Load(r *http.Request) models.Session {
	raw := s.Raw(r)
	var out models.Session
	if tok, ok := raw.Values[keyToken].(string); ok {
		out.Token = tok
	}
	if u, ok := raw.Values[keyUser].(string); ok && u != "" {
		if err := json.Unmarshal([]byte(u), &out.User); err != nil {
			s.logger.Warn().Err(err).Msg("Stored user is not valid JSON")
			out.User = models.User{}
		}
	}
	return out
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, sess models.Session) error {
	raw := s.Raw(r)
	user, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	raw.Values[keyToken] = sess.Token
	raw.Values[keyUser] = string(user)
	return raw.Save(r, w)
}

// Clear forgets the token and user but keeps the cookie so a pending
// notification survives the redirect.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	raw := s.Raw(r)
	delete(raw.Values, keyToken)
	delete(raw.Values, keyUser)
	return raw.Save(r, w)
}

// Commit writes any changes made to the raw session during this request.
func (s *Store) Commit(w http.ResponseWriter, r *http.Request) error {
	return s.Raw(r).Save(r, w)
}
