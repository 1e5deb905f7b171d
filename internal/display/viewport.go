package display

import (
	"math"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

// Bounds locates an element in document coordinates.
type Bounds func(motion.Element) (motion.Rect, bool)

type watch struct {
	id      int
	el      motion.Element
	opts    motion.ObserveOptions
	fn      func(motion.Entry)
	state   int // -1 unknown, 0 outside, 1 inside
	removed bool
}

// Viewport is a scrollable window over a laid out document. It implements
// motion.Observer: entries are computed against the window grown or shrunk
// by each observation's root margin and are delivered through post, never
// synchronously from Observe or a scroll.
type Viewport struct {
	bounds Bounds
	post   func(func())

	width, height int
	content       int
	scroll        int
	scale         float64

	next    int
	watches []*watch
}

var _ motion.Observer = (*Viewport)(nil)

// NewViewport creates a width×height window at the top of the document.
// post must run tasks on the loop goroutine, normally Loop.Post.
func NewViewport(bounds Bounds, post func(func()), width, height int) *Viewport {
	return &Viewport{bounds: bounds, post: post, width: width, height: height, scale: 1}
}

// SetPixelScale sets how many CSS pixels one document unit stands for, so
// pixel root margins keep their meaning on a grid of terminal rows.
func (v *Viewport) SetPixelScale(px float64) {
	if px > 0 {
		v.scale = px
	}
	v.Check()
}

func (v *Viewport) pixels(r motion.Rect) motion.Rect {
	return motion.Rect{X: r.X * v.scale, Y: r.Y * v.scale, W: r.W * v.scale, H: r.H * v.scale}
}

// Observe starts watching el. The first entry is always delivered.
func (v *Viewport) Observe(el motion.Element, opts motion.ObserveOptions, fn func(motion.Entry)) (unobserve func()) {
	v.next++
	w := &watch{id: v.next, el: el, opts: opts, fn: fn, state: -1}
	v.watches = append(v.watches, w)
	v.Check()
	return func() {
		w.removed = true
		for i, x := range v.watches {
			if x == w {
				v.watches = append(v.watches[:i], v.watches[i+1:]...)
				break
			}
		}
	}
}

// Rect is the visible window in document coordinates.
func (v *Viewport) Rect() motion.Rect {
	return motion.Rect{Y: float64(v.scroll), W: float64(v.width), H: float64(v.height)}
}

// Scroll returns the first visible row.
func (v *Viewport) Scroll() int {
	return v.scroll
}

// SetContentHeight bounds scrolling to a document of h rows.
func (v *Viewport) SetContentHeight(h int) {
	v.content = h
	v.ScrollTo(v.scroll)
}

// Resize changes the window size and re-checks visibility.
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = width, height
	v.ScrollTo(v.scroll)
}

// ScrollTo moves the window so row y is at the top.
func (v *Viewport) ScrollTo(y int) {
	maxScroll := max(v.content-v.height, 0)
	v.scroll = min(max(y, 0), maxScroll)
	v.Check()
}

// ScrollBy moves the window by dy rows.
func (v *Viewport) ScrollBy(dy int) {
	v.ScrollTo(v.scroll + dy)
}

// Check recomputes every observation and queues an entry for each one whose
// intersecting state changed.
func (v *Viewport) Check() {
	view := v.pixels(v.Rect())
	for _, w := range v.watches {
		r, ok := v.bounds(w.el)
		if !ok {
			continue
		}
		ratio := Ratio(v.pixels(r), w.opts.RootMargin.Expand(view))
		state := 0
		if ratio > 0 && ratio >= w.opts.Threshold {
			state = 1
		}
		if state == w.state {
			continue
		}
		w.state = state
		entry := motion.Entry{Target: w.el, Ratio: ratio}
		v.post(func() {
			if !w.removed {
				w.fn(entry)
			}
		})
	}
}

// Ratio is the fraction of target's area inside root. A zero-area target
// counts as fully visible when it touches root.
func Ratio(target, root motion.Rect) float64 {
	x0 := math.Max(target.X, root.X)
	y0 := math.Max(target.Y, root.Y)
	x1 := math.Min(target.X+target.W, root.X+root.W)
	y1 := math.Min(target.Y+target.H, root.Y+root.H)
	if x1 < x0 || y1 < y0 {
		return 0
	}
	area := target.W * target.H
	if area <= 0 {
		return 1
	}
	return math.Min((x1-x0)*(y1-y0)/area, 1)
}
