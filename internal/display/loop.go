// Package display runs animation hosts outside a browser: a single-goroutine
// frame loop and a scrolling viewport that reports element visibility.
package display

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

// FrameInterval is the default tick, about 60 frames per second.
const FrameInterval = 16 * time.Millisecond

// Clock supplies the current time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type frameRequest struct {
	h  motion.FrameHandle
	fn func(time.Time)
}

type interval struct {
	every   time.Duration
	next    time.Time
	fn      func()
	stopped bool
}

// Loop is the UI goroutine of a host. Frame requests, intervals and after
// frame hooks may only be touched from inside the loop (or before Run
// starts); other goroutines hand work in through Post.
type Loop struct {
	clock    Clock
	interval time.Duration

	frames    []frameRequest
	nextFrame motion.FrameHandle
	skip      map[motion.FrameHandle]bool
	intervals []*interval
	after     []func(time.Time)

	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

var (
	_ motion.Scheduler = (*Loop)(nil)
	_ motion.Intervals = (*Loop)(nil)
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithFrameInterval sets the tick period.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// NewLoop creates a stopped loop.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		clock:    systemClock{},
		interval: FrameInterval,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame queues fn for the next tick. Frames requested while a tick
// is running wait for the following one.
func (l *Loop) RequestFrame(fn func(time.Time)) motion.FrameHandle {
	l.nextFrame++
	l.frames = append(l.frames, frameRequest{h: l.nextFrame, fn: fn})
	return l.nextFrame
}

func (l *Loop) CancelFrame(h motion.FrameHandle) {
	if l.skip != nil {
		l.skip[h] = true
	}
	l.frames = slices.DeleteFunc(l.frames, func(f frameRequest) bool { return f.h == h })
}

// Every runs fn each d, starting d from now, until stop is called.
func (l *Loop) Every(d time.Duration, fn func()) (stop func()) {
	iv := &interval{every: d, next: l.Now().Add(d), fn: fn}
	l.intervals = append(l.intervals, iv)
	return func() { iv.stopped = true }
}

// AfterFrame registers a hook that runs at the end of every tick, used by
// renderers to draw what the frame callbacks wrote.
func (l *Loop) AfterFrame(fn func(time.Time)) {
	l.after = append(l.after, fn)
}

// Post hands fn to the loop. It is safe to call from any goroutine,
// including the loop itself.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Drain runs every posted task, including tasks posted while draining.
func (l *Loop) Drain() {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}

// Tick runs one frame at now: due intervals, then queued frame callbacks in
// request order, then after-frame hooks.
func (l *Loop) Tick(now time.Time) {
	for _, iv := range slices.Clone(l.intervals) {
		if iv.stopped || now.Before(iv.next) {
			continue
		}
		iv.fn()
		iv.next = iv.next.Add(iv.every)
		if !iv.next.After(now) {
			iv.next = now.Add(iv.every)
		}
	}
	l.intervals = slices.DeleteFunc(l.intervals, func(iv *interval) bool { return iv.stopped })

	batch := l.frames
	l.frames = nil
	l.skip = make(map[motion.FrameHandle]bool)
	for _, f := range batch {
		if l.skip[f.h] {
			continue
		}
		f.fn(now)
	}
	l.skip = nil

	for _, fn := range l.after {
		fn(now)
	}
}

// Pending reports the number of queued frame callbacks.
func (l *Loop) Pending() int {
	return len(l.frames)
}

// Run drives the loop until ctx is done. Posted tasks run as soon as they
// arrive; frames run on the ticker.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Drain()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		case <-ticker.C:
			l.Drain()
			l.Tick(l.Now())
		}
	}
}
