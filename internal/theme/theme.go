// Package theme maps accent names to the class and colour sets used by
// page templates and the terminal preview.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Accent is one of the closed set of highlight colours.
type Accent int

const (
	Purple Accent = iota
	Cyan
	Orange
	Pink
	Green
)

// Default is used for empty or unknown accent names.
const Default = Purple

var names = [...]string{
	Purple: "purple",
	Cyan:   "cyan",
	Orange: "orange",
	Pink:   "pink",
	Green:  "green",
}

// Palette is everything a variant needs to render.
type Palette struct {
	Text       string
	Border     string
	Hover      string
	Glow       string
	Background string

	// Color is the terminal equivalent of Text.
	Color tcell.Color
}

var palettes = [...]Palette{
	Purple: palette("purple", 0xc084fc),
	Cyan:   palette("cyan", 0x22d3ee),
	Orange: palette("orange", 0xfb923c),
	Pink:   palette("pink", 0xf472b6),
	Green:  palette("green", 0x4ade80),
}

func palette(name string, rgb int32) Palette {
	return Palette{
		Text:       "text-" + name + "-400",
		Border:     "border-" + name + "-500/30",
		Hover:      "hover:border-" + name + "-500/60",
		Glow:       "group-hover:shadow-" + name + "-500/20",
		Background: "from-" + name + "-500/10 to-" + name + "-600/10",
		Color:      tcell.NewHexColor(rgb),
	}
}

// Parse resolves name case-insensitively. ok is false when name is not a
// known accent, in which case the default is returned.
func Parse(name string) (a Accent, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return Accent(i), true
		}
	}
	return Default, false
}

func (a Accent) valid() bool {
	return a >= 0 && int(a) < len(names)
}

func (a Accent) String() string {
	if !a.valid() {
		return names[Default]
	}
	return names[a]
}

// Palette returns the accent's class and colour set.
func (a Accent) Palette() Palette {
	if !a.valid() {
		return palettes[Default]
	}
	return palettes[a]
}

// UnmarshalText lets accents be decoded from YAML. Unknown names fall back
// to the default rather than failing the whole document.
func (a *Accent) UnmarshalText(text []byte) error {
	*a, _ = Parse(string(text))
	return nil
}

func (a Accent) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
