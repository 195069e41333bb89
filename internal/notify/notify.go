package notify

import (
	"encoding/gob"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/metrics"

	"github.com/gorilla/sessions"
)

func init() {
	gob.Register(Notification{})
}

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// ParseSeverity falls back to Info for anything it does not recognise.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Success, Warning, Error:
		return Severity(s)
	}
	return Info
}

func (s Severity) Icon() string {
	switch s {
	case Success:
		return "fa-check-circle"
	case Error:
		return "fa-exclamation-circle"
	case Warning:
		return "fa-exclamation-triangle"
	default:
		return "fa-info-circle"
	}
}

func (s Severity) Color() string {
	switch s {
	case Success:
		return "#10b981"
	case Error:
		return "#ef4444"
	case Warning:
		return "#f59e0b"
	default:
		return "#6366f1"
	}
}

type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

// Remaining is the lifetime left at now, used for the auto-dismiss timer.
func (n Notification) Remaining(now time.Time) time.Duration {
	if d := n.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (n Notification) Icon() string  { return n.Severity.Icon() }
func (n Notification) Color() string { return n.Severity.Color() }

const slotKey = "notification"

// Center keeps at most one notification per session. A new one replaces
// whatever is showing; there is no queue.
type Center struct {
	ttl time.Duration
	now func() time.Time
}

func NewCenter(ttl time.Duration) *Center {
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Notify(sess *sessions.Session, message string, severity Severity) Notification {
	n := Notification{
		Message:   message,
		Severity:  ParseSeverity(string(severity)),
		ExpiresAt: c.now().Add(c.ttl),
	}
	sess.Values[slotKey] = n
	metrics.NotificationsTotal.WithLabelValues(string(n.Severity)).Inc()
	return n
}

// Current returns the visible notification without consuming it.
func (c *Center) Current(sess *sessions.Session) (Notification, bool) {
	n, ok := sess.Values[slotKey].(Notification)
	if !ok {
		return Notification{}, false
	}
	if !c.now().Before(n.ExpiresAt) {
		delete(sess.Values, slotKey)
		return Notification{}, false
	}
	return n, true
}

// Take returns the visible notification and clears the slot, so it is shown
// on exactly one page render.
func (c *Center) Take(sess *sessions.Session) (Notification, bool) {
	n, ok := c.Current(sess)
	delete(sess.Values, slotKey)
	return n, ok
}

func (c *Center) Dismiss(sess *sessions.Session) {
	delete(sess.Values, slotKey)
}
