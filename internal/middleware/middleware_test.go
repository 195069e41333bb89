package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_PerClient(t *testing.T) {
	h := NewRateLimiter(rate.Limit(0.0001), 2, zerolog.Nop()).Middleware()(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login.html", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(rate.Limit(0.0001), 1, zerolog.Nop())
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock
	h := rl.Middleware()(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login.html", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 1; i <= 50; i++ {
		assert.Equal(t, http.StatusOK, call(fmt.Sprintf("10.0.1.%d:1000", i)))
	}
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.1.1:1001"))
	require.Equal(t, 50, rl.Len())

	clock = clock.Add(limiterIdle - time.Second)
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.1.2:1001"))
	assert.Equal(t, 50, rl.Len())

	// 10.0.1.2 was seen a second ago; every other client has gone idle.
	clock = clock.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.2.1:1000"))
	assert.Equal(t, 2, rl.Len())
	assert.Equal(t, http.StatusOK, call("10.0.1.1:1002"))
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

func TestErrorHandling_RecoversPanics(t *testing.T) {
	h := ErrorHandling(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard.html", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "{")
}

func TestRequireForm(t *testing.T) {
	h := RequireForm()(ok)

	req := httptest.NewRequest(http.MethodPost, "/chat/send", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/chat/send", strings.NewReader("message=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(true)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "script-src 'self';")
	assert.Contains(t, csp, "style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com;")
	assert.NotContains(t, csp, "unsafe-eval")

	rec = httptest.NewRecorder()
	SecurityHeaders(false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	h := CORS([]string{"https://cbl.example"})(ok)

	req := httptest.NewRequest(http.MethodGet, "/api/weather", nil)
	req.Header.Set("Origin", "https://cbl.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://cbl.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	require.NoError(t, http.NewResponseController(rw).Flush())
	assert.True(t, rec.Flushed)
}

func TestMaxBodySize(t *testing.T) {
	var readErr error
	h := MaxBodySize(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		if BodyTooLarge(r) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/profile/avatar", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, readErr)

	// Declared length over the cap never reaches the handler.
	readErr = nil
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/profile/avatar", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body too large")
	assert.NoError(t, readErr)

	// Unknown length is cut off while reading.
	req := httptest.NewRequest(http.MethodPost, "/profile/avatar", io.NopCloser(strings.NewReader(strings.Repeat("x", 64))))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var mbe *http.MaxBytesError
	assert.ErrorAs(t, readErr, &mbe)
}
