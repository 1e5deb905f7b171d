// Package term shows a page in the terminal with its animations running:
// rows scroll with the arrow keys and the mouse, cards lift under the
// pointer.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vibecodeutah/hackathon-site/internal/display"
	"github.com/vibecodeutah/hackathon-site/internal/dom"
	"github.com/vibecodeutah/hackathon-site/internal/motion"
	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

// rowPixels is the CSS height of one terminal row.
const rowPixels = 16

const (
	wheelStep = 3
	barRune   = '█'
)

// Host renders a display.Page onto a tcell screen. It implements
// motion.Pointer from mouse motion.
type Host struct {
	screen  tcell.Screen
	page    *display.Page
	palette theme.Palette
	logger  *slog.Logger

	hovers  map[motion.Element]func(bool)
	hovered motion.Element
}

var _ motion.Pointer = (*Host)(nil)

// Option configures a Host.
type Option func(*options)

type options struct {
	accent   theme.Accent
	logger   *slog.Logger
	loop     []display.LoopOption
	director []motion.Option
}

// WithAccent colours counters and highlights.
func WithAccent(a theme.Accent) Option {
	return func(o *options) {
		o.accent = a
	}
}

// WithLogger sets the logger passed to the director.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLoopOptions forwards options to the frame loop.
func WithLoopOptions(opts ...display.LoopOption) Option {
	return func(o *options) {
		o.loop = append(o.loop, opts...)
	}
}

// WithDirectorOptions forwards options to the animation director.
func WithDirectorOptions(opts ...motion.Option) Option {
	return func(o *options) {
		o.director = append(o.director, opts...)
	}
}

// New mounts doc on screen. The screen must already be initialised; the
// bottom row is kept for a status line.
func New(screen tcell.Screen, doc *dom.Document, opts ...Option) *Host {
	o := options{accent: theme.Default, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	h := &Host{
		screen:  screen,
		palette: o.accent.Palette(),
		logger:  o.logger,
		hovers:  make(map[motion.Element]func(bool)),
	}
	w, ht := screen.Size()
	h.page = display.Open(doc, display.PageConfig{
		Width:      w,
		Height:     max(ht-1, 1),
		PixelScale: rowPixels,
		Pointer:    h,
		Logger:     o.logger,
		Loop:       o.loop,
		Director:   o.director,
	})
	h.page.Loop.AfterFrame(func(time.Time) { h.Draw() })
	return h
}

// Page exposes the mounted page.
func (h *Host) Page() *display.Page {
	return h.page
}

func (h *Host) OnHover(el motion.Element, fn func(bool)) (detach func()) {
	h.hovers[el] = fn
	return func() {
		delete(h.hovers, el)
		if h.hovered == el {
			h.hovered = nil
		}
	}
}

// Run drives the page until ctx is done or the user quits. It finalises the
// screen before returning.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			h.page.Loop.Post(func() {
				if h.Handle(ev) {
					cancel()
				}
			})
		}
	}()

	h.Draw()
	err := h.page.Loop.Run(ctx)
	h.page.Close()
	h.screen.Fini()
	wg.Wait()

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Handle applies one input event and reports whether the user asked to
// quit. It must run on the loop goroutine.
func (h *Host) Handle(ev tcell.Event) (quit bool) {
	_, height := h.screen.Size()
	page := max(height-2, 1)

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			h.page.View.ScrollBy(-1)
		case tcell.KeyDown:
			h.page.View.ScrollBy(1)
		case tcell.KeyPgUp:
			h.page.View.ScrollBy(-page)
		case tcell.KeyPgDn:
			h.page.View.ScrollBy(page)
		case tcell.KeyHome:
			h.page.View.ScrollTo(0)
		case tcell.KeyEnd:
			h.page.View.ScrollTo(math.MaxInt32)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'j', ' ':
				h.page.View.ScrollBy(1)
			case 'k':
				h.page.View.ScrollBy(-1)
			}
		}
	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			h.page.View.ScrollBy(-wheelStep)
		case btn&tcell.WheelDown != 0:
			h.page.View.ScrollBy(wheelStep)
		}
		x, y := ev.Position()
		h.pointAt(x, y)
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.page.Resize(w, max(ht-1, 1))
		h.screen.Sync()
	}
	h.Draw()
	return false
}

func (h *Host) pointAt(x, y int) {
	var card motion.Element
	if n, ok := h.page.Doc.Hit(x, y+h.page.View.Scroll()); ok {
		if c, ok := h.page.Doc.Closest(n, motion.ClassHoverCard); ok {
			card = c
		}
	}
	if card == h.hovered {
		return
	}
	if fn, ok := h.hovers[h.hovered]; ok {
		fn(false)
	}
	h.hovered = nil
	if fn, ok := h.hovers[card]; ok {
		h.hovered = card
		fn(true)
	}
}

// Draw paints the visible rows and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	w, height := h.screen.Size()
	rows := max(height-1, 1)
	top := h.page.View.Scroll()

	for _, n := range h.page.Doc.Nodes() {
		h.drawNode(n, top, rows)
	}

	status := fmt.Sprintf(" %s  row %d  ↑↓ scroll  q quit ", h.page.Doc.Title, top)
	h.put(0, height-1, runewidth.FillRight(status, w), tcell.StyleDefault.Reverse(true))
	h.screen.Show()
}

func (h *Host) drawNode(n *dom.Node, top, rows int) {
	r := n.Rect()
	opacity := styleFloat(n, "opacity", 1)
	if opacity < 0.05 {
		return
	}
	shift := int(math.Round(styleFloat(n, "translateY", 0) / rowPixels))
	x := int(r.X)
	y := int(r.Y) - top + shift

	style := h.nodeStyle(n, opacity)
	if raw, ok := n.Style("width"); ok {
		if y >= 0 && y < rows {
			h.bar(x, y, int(r.W), raw, style)
		}
		return
	}
	for i, line := range dom.Wrap(n.Text(), int(r.W)) {
		if row := y + i; row >= 0 && row < rows {
			h.put(x, row, line, style)
		}
	}
}

func (h *Host) nodeStyle(n *dom.Node, opacity float64) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case n.HasClass(motion.ClassCounter):
		style = style.Foreground(h.palette.Color).Bold(true)
	case strings.HasPrefix(n.Tag, "h") && len(n.Tag) == 2:
		style = style.Bold(true)
	}
	if v, ok := n.Style("verdict"); ok {
		if motion.Verdict(v) == motion.Genuine {
			style = style.Foreground(tcell.ColorGreen)
		} else {
			style = style.Foreground(tcell.ColorRed)
		}
	}
	if styleFloat(n, "translateY", 0) < 0 && n.HasClass(motion.ClassHoverCard) {
		style = style.Foreground(h.palette.Color)
	}
	if opacity < 0.6 {
		style = style.Dim(true)
	}
	return style
}

func (h *Host) bar(x, y, width int, raw string, style tcell.Style) {
	v, unit, err := motion.ParseLength(raw)
	if err != nil || (unit != "%" && unit != "") {
		return
	}
	cells := int(math.Round(min(max(v, 0), 100) / 100 * float64(width)))
	h.put(x, y, strings.Repeat(string(barRune), cells), style.Foreground(h.palette.Color))
}

func (h *Host) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func styleFloat(n *dom.Node, prop string, def float64) float64 {
	raw, ok := n.Style(prop)
	if !ok {
		return def
	}
	raw = strings.TrimSuffix(raw, "px")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
