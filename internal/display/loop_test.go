package display

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Add(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

func TestLoopFramesRunInOrderOnNextTick(t *testing.T) {
	clock := newManualClock()
	l := NewLoop(WithClock(clock))

	var got []string
	l.RequestFrame(func(time.Time) {
		got = append(got, "a")
		l.RequestFrame(func(time.Time) { got = append(got, "c") })
	})
	l.RequestFrame(func(time.Time) { got = append(got, "b") })

	l.Tick(clock.Add(FrameInterval))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, l.Pending())

	l.Tick(clock.Add(FrameInterval))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopCancelFrame(t *testing.T) {
	clock := newManualClock()
	l := NewLoop(WithClock(clock))

	ran := 0
	l.RequestFrame(func(time.Time) { ran += 1 })
	h := l.RequestFrame(func(time.Time) { ran += 10 })
	l.RequestFrame(func(time.Time) { ran += 100 })
	l.CancelFrame(h)
	assert.Equal(t, 2, l.Pending())

	l.Tick(clock.Add(FrameInterval))
	assert.Equal(t, 101, ran)
}

func TestLoopCancelDuringTick(t *testing.T) {
	clock := newManualClock()
	l := NewLoop(WithClock(clock))

	ran := false
	var later motion.FrameHandle
	l.RequestFrame(func(time.Time) { l.CancelFrame(later) })
	later = l.RequestFrame(func(time.Time) { ran = true })

	l.Tick(clock.Add(FrameInterval))
	assert.False(t, ran)
	assert.Zero(t, l.Pending())
}

func TestLoopEvery(t *testing.T) {
	clock := newManualClock()
	l := NewLoop(WithClock(clock))

	n := 0
	stop := l.Every(30*time.Millisecond, func() { n++ })

	for range 6 {
		l.Tick(clock.Add(10 * time.Millisecond))
	}
	assert.Equal(t, 2, n)

	// a long stall runs the interval once, not once per missed period
	l.Tick(clock.Add(time.Second))
	assert.Equal(t, 3, n)

	stop()
	l.Tick(clock.Add(time.Second))
	assert.Equal(t, 3, n)
}

func TestLoopAfterFrame(t *testing.T) {
	clock := newManualClock()
	l := NewLoop(WithClock(clock))

	var order []string
	l.RequestFrame(func(time.Time) { order = append(order, "frame") })
	l.AfterFrame(func(time.Time) { order = append(order, "draw") })
	l.Tick(clock.Add(FrameInterval))

	assert.Equal(t, []string{"frame", "draw"}, order)
}

func TestLoopRunDeliversPostedTasks(t *testing.T) {
	l := NewLoop(WithFrameInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ticked := make(chan struct{})
	var once sync.Once
	l.Post(func() {
		l.RequestFrame(func(time.Time) {
			once.Do(func() { close(ticked) })
		})
	})

	select {
	case <-ticked:
	case <-time.After(5 * time.Second):
		t.Fatal("frame never ran")
	}

	cancel()
	err := <-done
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDrainRunsNestedPosts(t *testing.T) {
	l := NewLoop()
	var got []int
	l.Post(func() {
		got = append(got, 1)
		l.Post(func() { got = append(got, 2) })
	})
	l.Drain()
	assert.Equal(t, []int{1, 2}, got)
}
