package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/rs/zerolog"
)

//go:embed html static
var files embed.FS

// TemplateCache holds one parsed template set per page. Every page is parsed
// together with the shared layout and partials.
type TemplateCache struct {
	cache  map[string]*template.Template
	mu     sync.RWMutex
	funcs  template.FuncMap
	logger zerolog.Logger
}

func NewTemplateCache(logger zerolog.Logger) *TemplateCache {
	return &TemplateCache{
		cache:  make(map[string]*template.Template),
		funcs:  defaultFuncs(),
		logger: logger,
	}
}

func (tc *TemplateCache) AddFunc(name string, fn interface{}) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.funcs[name] = fn
}

// Load parses every page under html/pages.
func (tc *TemplateCache) Load() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	pages, err := fs.Glob(files, "html/pages/*.html")
	if err != nil {
		return err
	}
	for _, page := range pages {
		name := path.Base(page)
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(files, "html/layout.html", "html/partials/*.html", page)
		if err != nil {
			tc.logger.Error().Err(err).Str("file", page).Msg("Failed to parse template")
			return err
		}
		tc.cache[name] = tmpl
		tc.logger.Debug().Str("name", name).Msg("Cached template")
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (tc *TemplateCache) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl := tc.Get(name)
	if tmpl == nil {
		return fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"money":        views.Money,
		"wholeDollars": views.WholeDollars,
		"date":         views.FormatDate,
		"clock":        views.FormatClock,
		"statusIcon":   views.StatusIcon,
		"statusClass":  views.StatusClass,
		"timeAgo": func(createdAt string) string {
			return views.TimeAgo(createdAt, time.Now())
		},
		// views.EscapeHTML already escapes the text, the <br> tags are ours.
		"multiline": func(text string) template.HTML {
			return template.HTML(views.EscapeHTML(text))
		},
		"year": func() int { return time.Now().Year() },
	}
}
