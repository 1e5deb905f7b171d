package motion

// TriggerState is the lifecycle of a visibility trigger within one mount.
type TriggerState int

const (
	Unobserved TriggerState = iota
	Watching
	Intersecting
	Fired
)

func (s TriggerState) String() string {
	switch s {
	case Unobserved:
		return "unobserved"
	case Watching:
		return "watching"
	case Intersecting:
		return "intersecting"
	case Fired:
		return "fired"
	default:
		return "unknown"
	}
}

// Trigger fires its callback the first time its element becomes visible,
// and never again for the same mount. Unmount ends the mount; mounting again
// arms the trigger afresh.
type Trigger struct {
	el        Element
	opts      ObserveOptions
	fire      func()
	state     TriggerState
	unobserve func()
}

// NewTrigger binds fire to el. Nothing is observed until Mount.
func NewTrigger(el Element, opts ObserveOptions, fire func()) *Trigger {
	return &Trigger{el: el, opts: opts, fire: fire}
}

// Mount registers the trigger with obs. Mounting an already mounted trigger,
// fired or not, is a no-op.
func (t *Trigger) Mount(obs Observer) {
	if t.state != Unobserved {
		return
	}
	t.state = Watching
	t.unobserve = obs.Observe(t.el, t.opts, t.handle)
}

func (t *Trigger) handle(e Entry) {
	switch t.state {
	case Unobserved, Fired:
		return
	}

	if !crosses(e.Ratio, t.opts.Threshold) {
		t.state = Watching
		return
	}

	// Intersecting leads straight to Fired on the first crossing; Fired is
	// terminal, so observation stops before the callback runs.
	t.state = Intersecting
	t.stop()
	t.state = Fired
	if t.fire != nil {
		t.fire()
	}
}

func crosses(ratio, threshold float64) bool {
	return ratio > 0 && ratio >= threshold
}

// Unmount stops observation in any state and returns the trigger to
// Unobserved.
func (t *Trigger) Unmount() {
	t.stop()
	t.state = Unobserved
}

func (t *Trigger) stop() {
	if t.unobserve != nil {
		t.unobserve()
		t.unobserve = nil
	}
}

// State returns the current lifecycle state.
func (t *Trigger) State() TriggerState {
	return t.state
}

// HasFired reports whether the callback has run during this mount.
func (t *Trigger) HasFired() bool {
	return t.state == Fired
}
