package display

import (
	"log/slog"

	"github.com/vibecodeutah/hackathon-site/internal/dom"
	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

// Page is a parsed document bound to a loop, a viewport and a director.
type Page struct {
	Doc      *dom.Document
	Loop     *Loop
	View     *Viewport
	Director *motion.Director
}

// PageConfig configures Open.
type PageConfig struct {
	Width, Height int
	// PixelScale is CSS pixels per row; zero keeps one.
	PixelScale float64
	Pointer    motion.Pointer
	Logger     *slog.Logger
	Loop       []LoopOption
	Director   []motion.Option
}

// Open lays doc out, installs the keyframe sheet and mounts every animation.
// Entrance tweens start at once; the rest wait on the viewport.
func Open(doc *dom.Document, cfg PageConfig) *Page {
	loop := NewLoop(cfg.Loop...)
	view := NewViewport(dom.Bounds, loop.Post, cfg.Width, cfg.Height)
	if cfg.PixelScale > 0 {
		view.SetPixelScale(cfg.PixelScale)
	}
	view.SetContentHeight(doc.Layout(cfg.Width))

	opts := cfg.Director
	if cfg.Logger != nil {
		opts = append([]motion.Option{motion.WithLogger(cfg.Logger)}, opts...)
	}
	host := motion.Host{
		Scheduler: loop,
		Observer:  view,
		Intervals: loop,
		Pointer:   cfg.Pointer,
	}
	d := motion.NewDirector(doc, host, opts...)

	motion.InstallKeyframes(doc)
	d.Init()

	return &Page{Doc: doc, Loop: loop, View: view, Director: d}
}

// Resize relays the document for a new window size.
func (p *Page) Resize(width, height int) {
	p.View.SetContentHeight(p.Doc.Layout(width))
	p.View.Resize(width, height)
}

// Close unmounts every animation.
func (p *Page) Close() {
	p.Director.Close()
}
