// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/term-mapper/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names
const (
	PageLogin         = "login.html"
	PageDashboard     = "dashboard.html"
	PageSession       = "session.html"
	PageComplete      = "complete.html"
	PageAdminLogin    = "admin_login.html"
	PageAdminConsole  = "admin_console.html"
	PageAdminMessages = "admin_messages.html"
	PageContact       = "contact.html"
	PageImprint       = "imprint.html"
	PageDatenschutz   = "datenschutz.html"
	PageError         = "error.html"
)

var pages = []string{
	PageLogin, PageDashboard, PageSession, PageComplete,
	PageAdminLogin, PageAdminConsole, PageAdminMessages,
	PageContact, PageImprint, PageDatenschutz, PageError,
}

// Site describes which public pages are linked from the footer.
type Site struct {
	Imprint     bool
	Datenschutz bool
	Contact     bool
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

func New(cfg *config.Config) (*Renderer, error) {
	site := Site{
		Imprint:     cfg.Imprint.Enabled,
		Datenschutz: cfg.Datenschutz.Enabled,
		Contact:     cfg.Contact.Enabled,
	}

	funcs := template.FuncMap{
		"site":  func() Site { return site },
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"ago":   func(t time.Time) string { return humanize.Time(t) },
		"date":  func(t time.Time) string { return t.Local().Format("02.01.2006 15:04") },
		"pct":   func(f float64) string { return humanize.FtoaWithDigits(f, 1) },
		"inc":   func(n int) int { return n + 1 },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render writes page with the given status. The page is rendered into a
// buffer first so a template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("failed to render template", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Error renders the plain error page.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, PageError, ErrorPage{Status: status, Message: message})
}

// StaticHandler serves the embedded stylesheet under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
