// Package site serves the hackathon's pages.
package site

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
	"github.com/vibecodeutah/hackathon-site/internal/server"
	"github.com/vibecodeutah/hackathon-site/internal/site/content"
	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

// DocsHome is where /docs redirects.
const DocsHome = "/docs/welcome-to-docs/"

// ContentSource supplies the current page content. *content.Source
// satisfies it and swaps content in when its file changes.
type ContentSource interface {
	Current() *content.Content
}

type staticContent struct{ c *content.Content }

func (s staticContent) Current() *content.Content { return s.c }

// Static wraps fixed content as a ContentSource.
func Static(c *content.Content) ContentSource {
	return staticContent{c}
}

type Site struct {
	content   ContentSource
	templates *Templates
	docs      *Docs
	accent    theme.Accent
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Site)

// WithAccent picks the palette for page chrome.
func WithAccent(a theme.Accent) Option {
	return func(s *Site) { s.accent = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Site) { s.logger = l }
}

// WithDocs replaces the embedded docs.
func WithDocs(d *Docs) Option {
	return func(s *Site) { s.docs = d }
}

// WithClock sets the time used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

func New(src ContentSource, opts ...Option) (*Site, error) {
	s := &Site{
		content: src,
		accent:  theme.Default,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = tmpl

	if s.docs == nil {
		docs, err := EmbeddedDocs()
		if err != nil {
			return nil, err
		}
		s.docs = docs
	}
	return s, nil
}

// Mount registers the page routes on r.
func (s *Site) Mount(r chi.Router) {
	r.Get("/", s.page(PageHome))
	r.Get("/teams", s.page(PageTeams))
	r.Get("/teams/{id}", s.team)
	r.Get("/join", s.page(PageJoin))
	r.Get("/join/success", s.page(PageJoinSuccess))
	r.Get("/donate", s.page(PageDonate))
	r.Get("/donate/success", s.page(PageDonateSuccess))
	r.Get("/docs", s.docsHome)
	r.Get("/docs/*", s.doc)
	r.Get("/assets/motion.css", s.stylesheet)
	r.Get("/healthz", s.health)
	r.NotFound(s.notFound)
}

func (s *Site) data(r *http.Request) PageData {
	d := PageData{
		Content: s.content.Current(),
		Accent:  s.accent,
		Palette: s.accent.Palette(),
		Year:    s.now().Year(),
	}
	if r != nil {
		d.Path = r.URL.Path
	}
	return d
}

// RenderHome writes the landing page. The terminal preview parses it.
func (s *Site) RenderHome(w io.Writer) error {
	return s.templates.Render(w, PageHome, s.data(nil))
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf strings.Builder
	if err := s.templates.Render(&buf, name, data); err != nil {
		server.AddError(r.Context(), err)
		s.logger.Error("render failed", slog.String("page", name), slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	io.WriteString(w, buf.String())
}

func (s *Site) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, s.data(r))
	}
}

func (s *Site) team(w http.ResponseWriter, r *http.Request) {
	d := s.data(r)
	team, ok := d.Content.Team(chi.URLParam(r, "id"))
	if !ok {
		s.notFound(w, r)
		return
	}
	d.Team = team
	s.render(w, r, http.StatusOK, PageTeam, d)
}

func (s *Site) docsHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DocsHome, http.StatusMovedPermanently)
}

func (s *Site) doc(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")
	if strings.Trim(slug, "/") == "" {
		s.docsHome(w, r)
		return
	}
	doc, ok := s.docs.Get(slug)
	if !ok {
		s.notFound(w, r)
		return
	}
	d := s.data(r)
	d.Doc = doc
	d.Docs = s.docs.All()
	s.render(w, r, http.StatusOK, PageDoc, d)
}

func (s *Site) stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.WriteString(w, motion.Keyframes())
}

func (s *Site) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"teams":  len(s.content.Current().Teams),
	})
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, PageNotFound, s.data(r))
}
