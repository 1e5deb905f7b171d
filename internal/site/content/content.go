// Package content holds the editable data behind the site's pages: event
// details, statistics, progress, teams and navigation.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

//go:embed content.yaml
var defaultContent []byte

// Categories a team may enter.
var Categories = []string{
	"Food Security",
	"Healthcare",
	"Education",
	"Disaster Response",
	"Economic Empowerment",
	"Environmental",
	"Accessibility",
	"Human Rights",
}

type Content struct {
	Event      Event           `yaml:"event"`
	Nav        []Link          `yaml:"nav"`
	Footer     []FooterSection `yaml:"footer"`
	Social     Social          `yaml:"social"`
	Stats      StatGrid        `yaml:"stats"`
	StarkStats []StarkStat     `yaml:"stark_stats"`
	Progress   []Segment       `yaml:"progress"`
	Teams      []Team          `yaml:"teams"`
}

type Event struct {
	Name     string    `yaml:"name"`
	Title    string    `yaml:"title"`
	Tagline  string    `yaml:"tagline"`
	Date     time.Time `yaml:"date"`
	Location string    `yaml:"location"`
}

type Link struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type FooterSection struct {
	Section string `yaml:"section"`
	Links   []Link `yaml:"links"`
}

type Social struct {
	GitHub  string `yaml:"github"`
	X       string `yaml:"x"`
	Discord string `yaml:"discord"`
}

// Counter is the number a stat counts up to and how it is printed.
type Counter struct {
	Number   float64 `yaml:"number"`
	Prefix   string  `yaml:"prefix"`
	Suffix   string  `yaml:"suffix"`
	Decimals int     `yaml:"decimals"`
}

type StatGrid struct {
	Columns  int           `yaml:"columns"`
	Stagger  time.Duration `yaml:"stagger"`
	Duration time.Duration `yaml:"duration"`
	Items    []Stat        `yaml:"items"`
}

type Stat struct {
	Counter     `yaml:",inline"`
	Label       string       `yaml:"label"`
	Description string       `yaml:"description"`
	Accent      theme.Accent `yaml:"accent"`
}

// StarkStat is a single large figure with its source.
type StarkStat struct {
	Counter     `yaml:",inline"`
	Context     string       `yaml:"context"`
	Citation    string       `yaml:"citation"`
	CitationURL string       `yaml:"citation_url"`
	Accent      theme.Accent `yaml:"accent"`
}

// Segment is one bar of the progress section. Width is a percentage.
type Segment struct {
	Label  string       `yaml:"label"`
	Width  float64      `yaml:"width"`
	Accent theme.Accent `yaml:"accent"`
}

type Team struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Slogan        string   `yaml:"slogan"`
	Members       []string `yaml:"members"`
	ProjectName   string   `yaml:"project_name"`
	ElevatorPitch string   `yaml:"elevator_pitch"`
	Category      string   `yaml:"category"`
	TokenImage    string   `yaml:"token_image"`
}

// Team returns the team with the given id.
func (c *Content) Team(id string) (Team, bool) {
	for _, t := range c.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the content compiled into the binary.
func Default() *Content {
	c, err := Parse(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("embedded content: %v", err))
	}
	return c
}

// Validate checks the rules the templates rely on.
func (c *Content) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Teams))
	for i, t := range c.Teams {
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Errorf("team %d: missing id", i))
		case seen[t.ID]:
			errs = append(errs, fmt.Errorf("team %q: duplicate id", t.ID))
		}
		seen[t.ID] = true
		if !slices.Contains(Categories, t.Category) {
			errs = append(errs, fmt.Errorf("team %q: unknown category %q", t.ID, t.Category))
		}
	}
	for _, s := range c.Progress {
		if s.Width < 0 || s.Width > 100 {
			errs = append(errs, fmt.Errorf("progress %q: width %v outside 0-100", s.Label, s.Width))
		}
	}
	switch c.Stats.Columns {
	case 0, 2, 3, 4:
	default:
		errs = append(errs, fmt.Errorf("stats: columns must be 2, 3 or 4, got %d", c.Stats.Columns))
	}
	return errors.Join(errs...)
}
