package motion

import (
	"fmt"
	"strings"
)

// Length is a CSS offset in pixels or percent.
type Length struct {
	Value   float64
	Percent bool
}

// Resolve converts l to pixels against the reference extent.
func (l Length) Resolve(extent float64) float64 {
	if l.Percent {
		return l.Value / 100 * extent
	}
	return l.Value
}

// Margin is a rootMargin in CSS shorthand order.
type Margin struct {
	Top, Right, Bottom, Left Length
}

// Rect is an axis-aligned box in page pixels.
type Rect struct {
	X, Y, W, H float64
}

// Expand grows r by m. Percentages resolve against r's own height for the
// vertical sides and width for the horizontal ones.
func (m Margin) Expand(r Rect) Rect {
	top := m.Top.Resolve(r.H)
	bottom := m.Bottom.Resolve(r.H)
	left := m.Left.Resolve(r.W)
	right := m.Right.Resolve(r.W)
	return Rect{
		X: r.X - left,
		Y: r.Y - top,
		W: r.W + left + right,
		H: r.H + top + bottom,
	}
}

// StartAt returns the margin equivalent of a scroll trigger that starts when
// an element's top passes pct percent of the viewport height ("top 85%").
func StartAt(pct float64) Margin {
	return Margin{Bottom: Length{Value: pct - 100, Percent: true}}
}

// ParseMargin parses a rootMargin of one to four "px" or "%" values.
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("root margin %q: too many values", s)
	}

	ls := make([]Length, len(fields))
	for i, f := range fields {
		v, unit, err := ParseLength(f)
		if err != nil {
			return Margin{}, fmt.Errorf("root margin %q: %w", s, err)
		}
		switch unit {
		case "px":
		case "%":
			ls[i].Percent = true
		case "":
			if v != 0 {
				return Margin{}, fmt.Errorf("root margin %q: %q needs a unit", s, f)
			}
		default:
			return Margin{}, fmt.Errorf("root margin %q: unsupported unit %q", s, unit)
		}
		ls[i].Value = v
	}

	switch len(ls) {
	case 1:
		return Margin{ls[0], ls[0], ls[0], ls[0]}, nil
	case 2:
		return Margin{ls[0], ls[1], ls[0], ls[1]}, nil
	case 3:
		return Margin{ls[0], ls[1], ls[2], ls[1]}, nil
	default:
		return Margin{ls[0], ls[1], ls[2], ls[3]}, nil
	}
}
