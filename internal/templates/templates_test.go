package templates

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CachesEveryPage(t *testing.T) {
	tc := NewTemplateCache(zerolog.Nop())
	require.NoError(t, tc.Load())

	for _, name := range []string{
		"index.html", "login.html", "register.html", "dashboard.html",
		"place-order.html", "track.html", "chat.html", "profile.html", "admin.html",
	} {
		assert.NotNil(t, tc.Get(name), name)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	tc := NewTemplateCache(zerolog.Nop())
	require.NoError(t, tc.Load())

	rec := httptest.NewRecorder()
	err := tc.Render(rec, http.StatusOK, "missing.html", nil)
	assert.Error(t, err)
	assert.Zero(t, rec.Body.Len())
}

func TestMultilineEscapes(t *testing.T) {
	fn := defaultFuncs()["multiline"].(func(string) template.HTML)
	assert.Equal(t, template.HTML("a &lt;b&gt;<br>c"), fn("a <b>\nc"))
}

func TestStatic_ServesAssets(t *testing.T) {
	rec := httptest.NewRecorder()
	http.StripPrefix("/static/", Static()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/js/chat.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EventSource")
}
