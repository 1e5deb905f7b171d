package motion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ease maps normalized elapsed time to normalized progress.
type Ease func(t float64) float64

// backOvershoot is the default overshoot for back.out.
const backOvershoot = 1.70158

func clamp01(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t
}

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return clamp01(t)
}

// EaseOutQuad is 1 - (1-t)^2.
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic is 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// EaseOutQuart is 1 - (1-t)^4. Counters use it.
func EaseOutQuart(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u*u
}

// EaseOutQuint is 1 - (1-t)^5.
func EaseOutQuint(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u*u*u
}

// BackOut returns an ease-out that overshoots the end by s before settling.
// The result is not monotonic and must not drive counters.
func BackOut(s float64) Ease {
	return func(t float64) float64 {
		t = clamp01(t) - 1
		return t*t*((s+1)*t+s) + 1
	}
}

// ParseEase resolves a GSAP-style easing name such as "power2.out" or
// "back.out(1.7)". The power names follow GSAP numbering, so power2 is cubic.
func ParseEase(name string) (Ease, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", "linear", "none":
		return Linear, nil
	case "power1.out":
		return EaseOutQuad, nil
	case "power2.out":
		return EaseOutCubic, nil
	case "power3.out":
		return EaseOutQuart, nil
	case "power4.out":
		return EaseOutQuint, nil
	case "back.out":
		return BackOut(backOvershoot), nil
	}

	if strings.HasPrefix(name, "back.out(") && strings.HasSuffix(name, ")") {
		arg := strings.TrimSuffix(strings.TrimPrefix(name, "back.out("), ")")
		s, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("invalid back.out overshoot %q", arg)
		}
		return BackOut(s), nil
	}

	return nil, fmt.Errorf("unknown ease %q", name)
}
