package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/vibecodeutah/hackathon-site/internal/motion"
	"github.com/vibecodeutah/hackathon-site/internal/site/content"
	"github.com/vibecodeutah/hackathon-site/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome          = "home"
	PageTeams         = "teams"
	PageTeam          = "team"
	PageJoin          = "join"
	PageJoinSuccess   = "join_success"
	PageDonate        = "donate"
	PageDonateSuccess = "donate_success"
	PageDoc           = "doc"
	PageNotFound      = "notfound"
)

var pageNames = []string{
	PageHome, PageTeams, PageTeam, PageJoin, PageJoinSuccess,
	PageDonate, PageDonateSuccess, PageDoc, PageNotFound,
}

var funcs = template.FuncMap{
	"palette":  theme.Accent.Palette,
	"num":      formatNum,
	"millis":   func(d time.Duration) int64 { return d.Milliseconds() },
	"longDate": func(t time.Time) string { return t.Format("Monday, January 2, 2006") },
	// start is the text a counter shows before its animation runs.
	"start": func(c content.Counter) string {
		return motion.Request{Decimals: c.Decimals, Grouped: true, Prefix: c.Prefix, Suffix: c.Suffix}.Text(0)
	},
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PageData is what every template receives.
type PageData struct {
	Content *content.Content
	Accent  theme.Accent
	Palette theme.Palette
	Path    string
	Year    int

	Team content.Team
	Doc  *Doc
	Docs []*Doc
}

// Templates holds one parsed set per page, each built on the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

// ParseTemplates parses the embedded layout and pages.
func ParseTemplates() (*Templates, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	t := &Templates{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

// Render executes a page into w. Output is buffered so a failed render
// writes nothing.
func (t *Templates) Render(w io.Writer, name string, data PageData) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
