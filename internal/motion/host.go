package motion

import "time"

// FrameHandle identifies a pending frame callback.
type FrameHandle uint64

// Scheduler is the host's display-refresh primitive. Callbacks run on the
// host's UI goroutine, once per frame, in request order.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// Intervals runs fn every d on the UI goroutine until stop is called.
type Intervals interface {
	Every(d time.Duration, fn func()) (stop func())
}

// Element is a display node that animations read configuration from and
// write frames to.
type Element interface {
	Attrs
	SetText(text string)
	SetStyle(property, value string)
}

// Page enumerates elements by class name.
type Page interface {
	QueryAll(class string) []Element
	Within(root Element, class string) []Element
	Closest(el Element, class string) (Element, bool)
}

// Entry reports how much of an observed element is visible.
type Entry struct {
	Target Element
	Ratio  float64
}

// ObserveOptions configure a visibility observation.
type ObserveOptions struct {
	// Threshold is the visible fraction required to count as intersecting.
	Threshold float64
	// RootMargin grows or shrinks the viewport before intersecting.
	RootMargin Margin
}

// Observer delivers intersection entries for observed elements. Delivery is
// asynchronous relative to frames but always on the UI goroutine.
type Observer interface {
	Observe(el Element, opts ObserveOptions, fn func(Entry)) (unobserve func())
}

// Pointer reports hover transitions. Hosts without a pointer may omit it.
type Pointer interface {
	OnHover(el Element, fn func(entered bool)) (detach func())
}

// Host bundles the collaborators the orchestrator needs.
type Host struct {
	Scheduler Scheduler
	Observer  Observer
	Intervals Intervals
	Pointer   Pointer
}
