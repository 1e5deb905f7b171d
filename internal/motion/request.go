package motion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingConfiguration means an element asked for an animation
	// without the data it needs, such as a target value.
	ErrMissingConfiguration = errors.New("missing animation configuration")

	// ErrInvalidNumber means a numeric attribute was not a finite number.
	// Callers treat it the same as ErrMissingConfiguration.
	ErrInvalidNumber = errors.New("invalid numeric input")
)

// DefaultCounterDuration is the run time of a counter without data-duration.
const DefaultCounterDuration = 2500 * time.Millisecond

// Request describes one start-to-target ramp. A request is immutable once
// the interpolator driving it has started.
type Request struct {
	Start    float64
	Target   float64
	Duration time.Duration
	Decimals int
	Grouped  bool
	Prefix   string
	Suffix   string

	// Delay postpones the first frame, used for staggered groups.
	Delay time.Duration
	// Ease defaults to EaseOutQuart.
	Ease Ease
}

// Frame is one sample of a running animation.
type Frame struct {
	Elapsed time.Duration
	Value   float64
	Text    string
}

// Text formats v with the request's precision, grouping and affixes.
func (r Request) Text(v float64) string {
	return r.Prefix + FormatNumber(v, r.Decimals, r.Grouped) + r.Suffix
}

// FrameAt samples the ramp at elapsed time since the animation began,
// excluding Delay. Once elapsed reaches Duration the frame is pinned to
// Target exactly and done is true.
func (r Request) FrameAt(elapsed time.Duration) (f Frame, done bool) {
	if elapsed < 0 {
		elapsed = 0
	}

	ease := r.Ease
	if ease == nil {
		ease = EaseOutQuart
	}

	if r.Duration <= 0 || elapsed >= r.Duration {
		return Frame{Elapsed: elapsed, Value: r.Target, Text: r.Text(r.Target)}, true
	}

	progress := math.Min(float64(elapsed)/float64(r.Duration), 1)
	v := r.Start + (r.Target-r.Start)*ease(progress)
	return Frame{Elapsed: elapsed, Value: v, Text: r.Text(v)}, false
}

// Attrs is the read side of an element's static configuration.
type Attrs interface {
	Attr(name string) (string, bool)
}

// ParseNumber parses a finite number. Empty input is ErrMissingConfiguration.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingConfiguration
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// ParseLength splits a CSS length such as "45%" or "120px" into its number
// and unit. A bare number has an empty unit.
func ParseLength(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' {
			i--
			continue
		}
		break
	}
	v, err := ParseNumber(s[:i])
	if err != nil {
		return 0, "", err
	}
	return v, s[i:], nil
}

// CounterRequest builds a counter ramp from data-* attributes:
// data-target (required), data-prefix, data-suffix, data-decimals,
// data-duration (milliseconds) and data-separator ("false" disables grouping).
func CounterRequest(a Attrs) (Request, error) {
	raw, ok := a.Attr("data-target")
	if !ok {
		return Request{}, ErrMissingConfiguration
	}
	target, err := ParseNumber(raw)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Target:   target,
		Duration: DefaultCounterDuration,
		Grouped:  true,
		Ease:     EaseOutQuart,
	}
	req.Prefix, _ = a.Attr("data-prefix")
	req.Suffix, _ = a.Attr("data-suffix")

	if s, ok := a.Attr("data-decimals"); ok {
		if d, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && d >= 0 {
			req.Decimals = d
		}
	}
	if s, ok := a.Attr("data-duration"); ok {
		if ms, err := ParseNumber(s); err == nil && ms > 0 {
			req.Duration = time.Duration(ms * float64(time.Millisecond))
		}
	}
	if s, ok := a.Attr("data-separator"); ok && strings.EqualFold(strings.TrimSpace(s), "false") {
		req.Grouped = false
	}

	return req, nil
}
