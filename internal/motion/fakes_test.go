package motion

import (
	"slices"
	"time"
)

// fakeScheduler runs queued frames when the test advances time.
type fakeScheduler struct {
	now       time.Time
	next      FrameHandle
	queue     []queuedFrame
	cancelled map[FrameHandle]bool
}

type queuedFrame struct {
	h  FrameHandle
	fn func(time.Time)
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		now:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		cancelled: make(map[FrameHandle]bool),
	}
}

func (s *fakeScheduler) Now() time.Time { return s.now }

func (s *fakeScheduler) RequestFrame(fn func(time.Time)) FrameHandle {
	s.next++
	s.queue = append(s.queue, queuedFrame{h: s.next, fn: fn})
	return s.next
}

func (s *fakeScheduler) CancelFrame(h FrameHandle) {
	s.cancelled[h] = true
	s.queue = slices.DeleteFunc(s.queue, func(q queuedFrame) bool { return q.h == h })
}

// Advance moves the clock by d and runs one frame's worth of callbacks.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.now = s.now.Add(d)
	batch := s.queue
	s.queue = nil
	for _, q := range batch {
		if s.cancelled[q.h] {
			continue
		}
		q.fn(s.now)
	}
}

// Run advances in 16ms frames until total has elapsed.
func (s *fakeScheduler) Run(total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += 16 * time.Millisecond {
		s.Advance(16 * time.Millisecond)
	}
}

func (s *fakeScheduler) Pending() int { return len(s.queue) }

// fakeObserver records observations and lets tests push entries.
type fakeObserver struct {
	next int
	subs map[Element]map[int]observation
}

type observation struct {
	opts ObserveOptions
	fn   func(Entry)
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{subs: make(map[Element]map[int]observation)}
}

func (o *fakeObserver) Observe(el Element, opts ObserveOptions, fn func(Entry)) func() {
	o.next++
	id := o.next
	if o.subs[el] == nil {
		o.subs[el] = make(map[int]observation)
	}
	o.subs[el][id] = observation{opts: opts, fn: fn}
	return func() { delete(o.subs[el], id) }
}

func (o *fakeObserver) Emit(el Element, ratio float64) {
	for _, ob := range o.subs[el] {
		ob.fn(Entry{Target: el, Ratio: ratio})
	}
}

func (o *fakeObserver) Watching(el Element) int { return len(o.subs[el]) }

func (o *fakeObserver) Total() int {
	n := 0
	for _, subs := range o.subs {
		n += len(subs)
	}
	return n
}

func (o *fakeObserver) Options(el Element) (ObserveOptions, bool) {
	for _, ob := range o.subs[el] {
		return ob.opts, true
	}
	return ObserveOptions{}, false
}

// fakeIntervals collects interval callbacks for manual firing.
type fakeIntervals struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	every   time.Duration
	fn      func()
	stopped bool
}

func (iv *fakeIntervals) Every(d time.Duration, fn func()) func() {
	t := &fakeTimer{every: d, fn: fn}
	iv.timers = append(iv.timers, t)
	return func() { t.stopped = true }
}

// Fire runs every live timer with the given period n times.
func (iv *fakeIntervals) Fire(d time.Duration, n int) {
	for range n {
		for _, t := range iv.timers {
			if t.every == d && !t.stopped {
				t.fn()
			}
		}
	}
}

func (iv *fakeIntervals) Live() int {
	n := 0
	for _, t := range iv.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// fakePointer lets tests hover cards.
type fakePointer struct {
	handlers map[Element]func(bool)
}

func (p *fakePointer) OnHover(el Element, fn func(bool)) func() {
	if p.handlers == nil {
		p.handlers = make(map[Element]func(bool))
	}
	p.handlers[el] = fn
	return func() { delete(p.handlers, el) }
}

// fakeElement is a minimal page node.
type fakeElement struct {
	name     string
	classes  []string
	attrs    map[string]string
	parent   *fakeElement
	text     string
	texts    []string
	styles   map[string]string
	children []*fakeElement
}

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) SetText(text string) {
	e.text = text
	e.texts = append(e.texts, text)
}

func (e *fakeElement) SetStyle(prop, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[prop] = value
}

func (e *fakeElement) has(class string) bool {
	return slices.Contains(e.classes, class)
}

// fakePage keeps elements in document order.
type fakePage struct {
	all []*fakeElement
}

func (p *fakePage) add(parent *fakeElement, name string, classes []string, attrs map[string]string) *fakeElement {
	el := &fakeElement{name: name, classes: classes, attrs: attrs, parent: parent}
	if parent != nil {
		parent.children = append(parent.children, el)
	}
	p.all = append(p.all, el)
	return el
}

func (p *fakePage) QueryAll(class string) []Element {
	var out []Element
	for _, el := range p.all {
		if el.has(class) {
			out = append(out, el)
		}
	}
	return out
}

func (p *fakePage) Within(root Element, class string) []Element {
	r := root.(*fakeElement)
	var out []Element
	for _, el := range p.all {
		if el == r || !el.has(class) {
			continue
		}
		for a := el.parent; a != nil; a = a.parent {
			if a == r {
				out = append(out, el)
				break
			}
		}
	}
	return out
}

func (p *fakePage) Closest(el Element, class string) (Element, bool) {
	for e := el.(*fakeElement); e != nil; e = e.parent {
		if e.has(class) {
			return e, true
		}
	}
	return nil, false
}

// fakeRand replays fixed draws.
type fakeRand struct {
	draws []float64
}

func (r *fakeRand) Float64() float64 {
	v := r.draws[0]
	r.draws = r.draws[1:]
	return v
}

type fakeStyleSheet struct {
	styles map[string]string
	adds   int
}

func (s *fakeStyleSheet) HasStyle(id string) bool {
	_, ok := s.styles[id]
	return ok
}

func (s *fakeStyleSheet) AddStyle(id, css string) {
	if s.styles == nil {
		s.styles = make(map[string]string)
	}
	s.styles[id] = css
	s.adds++
}
