package motion

import (
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Element classes the director looks for.
const (
	ClassCounter        = "animate-counter"
	ClassStatsGrid      = "stats-grid"
	ClassStarkStat      = "stark-stat"
	ClassProgress       = "progress-segment"
	ClassProgressBar    = "progress-bar-container"
	ClassRevealSection  = "reveal-section"
	ClassRevealCards    = "reveal-cards"
	ClassCardItem       = "card-item"
	ClassHoverCard      = "hover-card"
	ClassCardGlow       = "card-glow"
	ClassFlowVerify     = "flow-verification"
	ClassFlowPipeline   = "flow-pipeline"
	ClassFlowMesh       = "flow-mesh"
	propText            = "text"
	propWidth           = "width"
	propTween           = "tween"
	progressStagger     = 300 * time.Millisecond
	progressDuration    = 1500 * time.Millisecond
	revealCardsStagger  = 120 * time.Millisecond
	defaultPacketsWidth = 40
)

// Rand is the randomness the demo flows draw from.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type target struct {
	el   Element
	prop string
}

// Option configures a Director.
type Option func(*Director)

// WithLogger sets the logger used for skipped elements.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Director) {
		d.logger = logger
	}
}

// WithRand sets the random source for the verification demo.
func WithRand(r Rand) Option {
	return func(d *Director) {
		d.rand = r
	}
}

// Director binds the elements of a page to their animations. All methods
// must be called on the host's UI goroutine.
type Director struct {
	page   Page
	host   Host
	logger *slog.Logger
	rand   Rand

	owners   map[target]*Interpolator
	hovers   map[Element]*hover
	triggers []*Trigger
	detach   []func()
	closed   bool
}

// NewDirector creates a director for page on host.
func NewDirector(page Page, host Host, opts ...Option) *Director {
	d := &Director{
		page:   page,
		host:   host,
		logger: slog.Default(),
		rand:   globalRand{},
		owners: make(map[target]*Interpolator),
		hovers: make(map[Element]*hover),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init mounts every animation kind on the page: the entrance sequence runs
// immediately, everything else waits for its trigger.
func (d *Director) Init() {
	d.Entrance(HeroEntrance())
	d.Reveals()
	d.Counters()
	d.StatGroups()
	d.ProgressBars()
	d.Hovers()
	d.Flows()
}

// Animate runs req against one property of el, cancelling whichever
// interpolator owned that property before.
func (d *Director) Animate(el Element, prop string, req Request, write func(Frame)) *Interpolator {
	if d.closed {
		return nil
	}
	key := target{el: el, prop: prop}
	if prev, ok := d.owners[key]; ok {
		prev.Cancel()
		delete(d.owners, key)
	}

	var ip *Interpolator
	ip = Start(d.host.Scheduler, req, write, func() {
		if d.owners[key] == ip {
			delete(d.owners, key)
		}
	})
	d.owners[key] = ip
	return ip
}

// Counter animates el's text through req.
func (d *Director) Counter(el Element, req Request) *Interpolator {
	return d.Animate(el, propText, req, func(f Frame) {
		el.SetText(f.Text)
	})
}

func (d *Director) tween(el Element, tw Tween) *Interpolator {
	return d.Animate(el, propTween, tw.request(), func(f Frame) {
		tw.Apply(el, f.Value)
	})
}

// Active counts interpolators that are still writing.
func (d *Director) Active() int {
	n := 0
	for _, ip := range d.owners {
		if ip.Active() {
			n++
		}
	}
	return n
}

func (d *Director) watch(el Element, opts ObserveOptions, fire func()) *Trigger {
	t := NewTrigger(el, opts, fire)
	d.triggers = append(d.triggers, t)
	if d.host.Observer != nil {
		t.Mount(d.host.Observer)
	}
	return t
}

func (d *Director) skip(kind string, err error) {
	d.logger.Debug("skipping element", slog.String("kind", kind), slog.String("reason", err.Error()))
}

// easeOf returns the easing named by el's data-ease, or def when the
// attribute is absent or unknown.
func (d *Director) easeOf(el Element, def Ease) Ease {
	name, ok := el.Attr("data-ease")
	if !ok {
		return def
	}
	ease, err := ParseEase(name)
	if err != nil {
		d.logger.Debug("ignoring data-ease", slog.String("value", name), slog.String("reason", err.Error()))
		return def
	}
	return ease
}

// Entrance plays tl once over the page chrome.
func (d *Director) Entrance(tl Timeline) {
	count := func(class string) int { return len(d.page.QueryAll(class)) }
	for _, p := range tl.Layout(count) {
		for i, el := range d.page.QueryAll(p.Step.Class) {
			tw := p.Step.Tween
			tw.Delay = p.Start + time.Duration(i)*p.Step.Stagger
			tw.Apply(el, 0)
			d.tween(el, tw)
		}
	}
}

// Reveals fades sections and staggered card groups in as they scroll into
// view.
func (d *Director) Reveals() {
	for _, el := range d.page.QueryAll(ClassRevealSection) {
		section := Fade(80, time.Second, d.easeOf(el, EaseOutCubic))
		section.Apply(el, 0)
		d.watch(el, ObserveOptions{RootMargin: StartAt(85)}, func() {
			d.tween(el, section)
		})
	}

	for _, container := range d.page.QueryAll(ClassRevealCards) {
		card := Fade(60, 800*time.Millisecond, d.easeOf(container, EaseOutCubic))
		cards := d.page.Within(container, ClassCardItem)
		if len(cards) == 0 {
			d.skip(ClassRevealCards, ErrMissingConfiguration)
			continue
		}
		for _, c := range cards {
			card.Apply(c, 0)
		}
		d.watch(container, ObserveOptions{RootMargin: StartAt(80)}, func() {
			for i, c := range cards {
				tw := card
				tw.Delay = time.Duration(i) * revealCardsStagger
				d.tween(c, tw)
			}
		})
	}
}

func (d *Director) inStatGroup(el Element) bool {
	for _, class := range []string{ClassStatsGrid, ClassStarkStat} {
		if _, ok := d.page.Closest(el, class); ok {
			return true
		}
	}
	return false
}

// Counters binds standalone counters, each to its own trigger.
func (d *Director) Counters() {
	for _, el := range d.page.QueryAll(ClassCounter) {
		if d.inStatGroup(el) {
			continue
		}
		req, err := CounterRequest(el)
		if err != nil {
			d.skip(ClassCounter, err)
			continue
		}
		el.SetText(req.Text(req.Start))
		d.watch(el, ObserveOptions{RootMargin: StartAt(85)}, func() {
			d.Counter(el, req)
		})
	}
}

// groupDefaults mirror the stats grid and the single large stat.
type groupDefaults struct {
	threshold  float64
	rootMargin string
	duration   time.Duration
	stagger    time.Duration
}

var statGroups = map[string]groupDefaults{
	ClassStatsGrid: {threshold: 0.2, rootMargin: "0px 0px -50px 0px", duration: 2000 * time.Millisecond, stagger: 150 * time.Millisecond},
	ClassStarkStat: {threshold: 0.3, rootMargin: "0px 0px -100px 0px", duration: 2500 * time.Millisecond},
}

// StatGroups binds every counter inside a stats group to the group's
// trigger, staggering starts by index.
func (d *Director) StatGroups() {
	for _, class := range []string{ClassStatsGrid, ClassStarkStat} {
		def := statGroups[class]
		for _, group := range d.page.QueryAll(class) {
			opts, stagger, duration := d.groupOptions(group, def)

			type bound struct {
				el  Element
				req Request
			}
			var counters []bound
			for _, el := range d.page.Within(group, ClassCounter) {
				req, err := CounterRequest(el)
				if err != nil {
					d.skip(class, err)
					continue
				}
				if _, ok := el.Attr("data-duration"); !ok {
					req.Duration = duration
				}
				req.Delay = time.Duration(len(counters)) * stagger
				el.SetText(req.Text(req.Start))
				counters = append(counters, bound{el: el, req: req})
			}
			if len(counters) == 0 {
				continue
			}

			d.watch(group, opts, func() {
				for _, c := range counters {
					d.Counter(c.el, c.req)
				}
			})
		}
	}
}

func (d *Director) groupOptions(group Element, def groupDefaults) (ObserveOptions, time.Duration, time.Duration) {
	opts := ObserveOptions{Threshold: def.threshold}
	margin := def.rootMargin
	if s, ok := group.Attr("data-root-margin"); ok {
		margin = s
	}
	m, err := ParseMargin(margin)
	if err != nil {
		d.skip("root-margin", err)
		m, _ = ParseMargin(def.rootMargin)
	}
	opts.RootMargin = m

	if s, ok := group.Attr("data-threshold"); ok {
		if v, err := ParseNumber(s); err == nil && v >= 0 && v <= 1 {
			opts.Threshold = v
		}
	}

	stagger, duration := def.stagger, def.duration
	if s, ok := group.Attr("data-stagger"); ok {
		if v, err := ParseNumber(s); err == nil && v >= 0 {
			stagger = time.Duration(v * float64(time.Millisecond))
		}
	}
	if s, ok := group.Attr("data-duration"); ok {
		if v, err := ParseNumber(s); err == nil && v > 0 {
			duration = time.Duration(v * float64(time.Millisecond))
		}
	}
	return opts, stagger, duration
}

// ProgressBars grows each segment to its data-width once its bar is in view.
func (d *Director) ProgressBars() {
	for i, seg := range d.page.QueryAll(ClassProgress) {
		raw, ok := seg.Attr("data-width")
		if !ok {
			d.skip(ClassProgress, ErrMissingConfiguration)
			continue
		}
		width, unit, err := ParseLength(raw)
		if err != nil {
			d.skip(ClassProgress, err)
			continue
		}
		if unit == "" {
			unit = "%"
		}

		trigger, ok := d.page.Closest(seg, ClassProgressBar)
		if !ok {
			trigger = seg
		}

		req := Request{
			Target:   width,
			Duration: progressDuration,
			Delay:    time.Duration(i) * progressStagger,
			Decimals: 2,
			Ease:     d.easeOf(seg, EaseOutCubic),
			Suffix:   unit,
		}
		seg.SetStyle(propWidth, req.Text(0))
		d.watch(trigger, ObserveOptions{RootMargin: StartAt(80)}, func() {
			d.Animate(seg, propWidth, req, func(f Frame) {
				seg.SetStyle(propWidth, f.Text)
			})
		})
	}
}

// Flows starts the impact demos when they become visible.
func (d *Director) Flows() {
	if d.host.Intervals == nil {
		return
	}
	visible := ObserveOptions{Threshold: 0.3}

	for _, el := range d.page.QueryAll(ClassFlowVerify) {
		flow := NewVerificationFlow(d.rand)
		flow.Render(el)
		d.watch(el, visible, func() {
			d.every(VerificationInterval, func() {
				flow.Advance()
				flow.Render(el)
			})
		})
	}

	for _, el := range d.page.QueryAll(ClassFlowPipeline) {
		d.bindPackets(el, ImpactPipeline(), visible)
	}
	for _, el := range d.page.QueryAll(ClassFlowMesh) {
		d.bindPackets(el, MeshRoute(), visible)
	}
}

func (d *Director) bindPackets(el Element, net *PacketNet, opts ObserveOptions) {
	width := defaultPacketsWidth
	if s, ok := el.Attr("data-columns"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			width = n
		}
	}
	el.SetText(net.Render(width))
	d.watch(el, opts, func() {
		d.every(net.SpawnEvery, net.Spawn)
		d.every(PacketStepInterval, func() {
			net.Step()
			el.SetText(net.Render(width))
		})
	})
}

func (d *Director) every(interval time.Duration, fn func()) {
	if d.closed {
		return
	}
	d.detach = append(d.detach, d.host.Intervals.Every(interval, fn))
}

// Close unmounts the page: interpolators stop, triggers stop observing,
// intervals and hover handlers are released.
func (d *Director) Close() {
	if d.closed {
		return
	}
	d.closed = true
	for key, ip := range d.owners {
		ip.Cancel()
		delete(d.owners, key)
	}
	for _, t := range d.triggers {
		t.Unmount()
	}
	d.triggers = nil
	for _, h := range d.hovers {
		h.stop(d.host.Scheduler)
	}
	for _, fn := range d.detach {
		fn()
	}
	d.detach = nil
}
