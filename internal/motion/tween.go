package motion

import "time"

// Prop is one numeric style property moved by a Tween.
type Prop struct {
	Name     string
	From, To float64
	Unit     string
	Decimals int
}

func (p Prop) at(progress float64) string {
	return FormatNumber(p.From+(p.To-p.From)*progress, p.Decimals, false) + p.Unit
}

// Tween moves a set of style properties together under one easing curve.
type Tween struct {
	Props    []Prop
	Duration time.Duration
	Delay    time.Duration
	Ease     Ease
}

// request maps the tween onto a 0→1 ramp so it can run on an Interpolator.
func (tw Tween) request() Request {
	ease := tw.Ease
	if ease == nil {
		ease = Linear
	}
	return Request{Start: 0, Target: 1, Duration: tw.Duration, Delay: tw.Delay, Ease: ease, Decimals: 4}
}

// Apply writes every property at progress to el.
func (tw Tween) Apply(el Element, progress float64) {
	for _, p := range tw.Props {
		el.SetStyle(p.Name, p.at(progress))
	}
}

// Fade is the reveal tween: opacity 0→1 while rising dy pixels.
func Fade(dy float64, d time.Duration, ease Ease) Tween {
	return Tween{
		Props: []Prop{
			{Name: "opacity", From: 0, To: 1, Decimals: 3},
			{Name: "translateY", From: dy, To: 0, Unit: "px", Decimals: 1},
		},
		Duration: d,
		Ease:     ease,
	}
}

// Step is one entry of a Timeline.
type Step struct {
	Class   string
	Tween   Tween
	Stagger time.Duration

	// Position places the step relative to the timeline end so far, like
	// GSAP's "-=0.4". With Absolute set it is an offset from the start.
	Position time.Duration
	Absolute bool
}

// Timeline sequences steps the way a GSAP timeline lays out from-tweens.
type Timeline struct {
	Steps []Step
}

// Placement is a step resolved against a concrete element count.
type Placement struct {
	Step  Step
	Start time.Duration
}

// Layout resolves each step's start given how many elements it matches.
// Steps matching nothing take no time.
func (tl Timeline) Layout(count func(class string) int) []Placement {
	var end time.Duration
	out := make([]Placement, 0, len(tl.Steps))
	for _, s := range tl.Steps {
		start := end + s.Position
		if s.Absolute {
			start = s.Position
		}
		if start < 0 {
			start = 0
		}
		out = append(out, Placement{Step: s, Start: start})

		n := count(s.Class)
		if n == 0 {
			continue
		}
		stepEnd := start + s.Tween.Duration + time.Duration(n-1)*s.Stagger
		if stepEnd > end {
			end = stepEnd
		}
	}
	return out
}
