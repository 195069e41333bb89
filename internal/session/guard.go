package session

import (
	"context"
	"net/http"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/metrics"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

const LoginPath = "/login.html"

type contextKey string

const sessionKey contextKey = "session"

// Guard gates protected pages. Failure is a redirect to the login page, never
// an error message, and the wrapped handler does not run.
type Guard struct {
	store  *Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewGuard(store *Store, logger zerolog.Logger) *Guard {
	return &Guard{
		store:  store,
		logger: logger.With().Str("component", "guard").Logger(),
		now:    time.Now,
	}
}

func (g *Guard) RequireUser(next http.Handler) http.Handler {
	return g.require(false, next)
}

func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return g.require(true, next)
}

func (g *Guard) require(admin bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, reason := g.check(w, r, admin)
		if reason != "" {
			metrics.GuardRedirectsTotal.WithLabelValues(reason).Inc()
			g.logger.Debug().Str("path", r.URL.Path).Str("reason", reason).Msg("Redirecting to login")
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

func (g *Guard) check(w http.ResponseWriter, r *http.Request, admin bool) (models.Session, string) {
	sess := g.store.Load(r)
	if !sess.Valid() {
		return sess, "missing"
	}
	if TokenExpired(sess.Token, g.now()) {
		if err := g.store.Clear(w, r); err != nil {
			g.logger.Error().Err(err).Msg("Failed to clear expired session")
		}
		return sess, "expired"
	}
	if admin && !sess.User.IsAdmin {
		return sess, "not_admin"
	}
	return sess, ""
}

// Current returns the stored session when it is usable, for pages such as
// login that redirect already-authenticated visitors away.
func (g *Guard) Current(r *http.Request) (models.Session, bool) {
	sess := g.store.Load(r)
	if !sess.Valid() || TokenExpired(sess.Token, g.now()) {
		return models.Session{}, false
	}
	return sess, true
}

// TokenExpired inspects the exp claim of a JWT without verifying it; the
// signing key lives with the backend. Opaque tokens never expire here.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

func WithSession(ctx context.Context, sess models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func FromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(models.Session)
	return sess, ok
}

// HomeFor is where a signed-in user lands.
func HomeFor(u models.User) string {
	if u.IsAdmin {
		return "/admin.html"
	}
	return "/dashboard.html"
}
