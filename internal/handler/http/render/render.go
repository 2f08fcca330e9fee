// Package render executes the server-side HTML templates. Each page template
// is parsed together with the shared layout; blog bodies are converted from
// markdown with goldmark before insertion.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/thedevarpan/dot-developer/internal/service/session"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Page is the base payload every template receives.
type Page struct {
	Title  string
	Viewer session.Viewer
	Data   any
}

// Renderer holds the parsed template sets, one per page.
type Renderer struct {
	pages    map[string]*template.Template
	markdown goldmark.Markdown
	logger   *slog.Logger
}

// New parses the embedded templates. Every file except layout.gohtml is a
// page combined with the layout.
func New(logger *slog.Logger) (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "layout.gohtml" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name[:len(name)-len(".gohtml")]] = t
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Renderer{pages: pages, markdown: md, logger: logger}, nil
}

// HTML renders the named page. The template is executed into a buffer first
// so a late failure cannot leave a half-written response.
func (r *Renderer) HTML(w http.ResponseWriter, code int, page string, p Page) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		r.logger.Error("failed to render page",
			slog.String("page", page),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w http.ResponseWriter, viewer session.Viewer) {
	r.HTML(w, http.StatusNotFound, "404", Page{Title: "Page not found", Viewer: viewer})
}

// Markdown converts a blog body to sanitized-enough HTML for the detail page.
func (r *Renderer) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
