package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecodeutah/hackathon-site/internal/dom"
	"github.com/vibecodeutah/hackathon-site/internal/motion"
)

func openTestPage(t *testing.T, body string, height int) (*Page, *manualClock) {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader("<html><body>" + body + "</body></html>"))
	require.NoError(t, err)
	clock := newManualClock()
	p := Open(doc, PageConfig{Width: 60, Height: height, PixelScale: 16, Loop: []LoopOption{WithClock(clock)}})
	t.Cleanup(p.Close)
	return p, clock
}

func run(p *Page, clock *manualClock, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameInterval {
		p.Loop.Drain()
		p.Loop.Tick(clock.Add(FrameInterval))
	}
}

func TestPageCountsUpWhenScrolledIntoView(t *testing.T) {
	filler := strings.Repeat("<p>filler</p>", 20)
	p, clock := openTestPage(t, filler+`<span id="n" class="animate-counter" data-target="100000">0</span>`+filler, 10)

	n, ok := p.Doc.ByID("n")
	require.True(t, ok)
	assert.True(t, p.Doc.HasStyle(motion.KeyframesID))

	run(p, clock, 3*time.Second)
	assert.Equal(t, "0", n.Text(), "off screen counters stay at their start")

	p.View.ScrollTo(15)
	run(p, clock, 100*time.Millisecond)
	assert.NotEqual(t, "0", n.Text())
	assert.NotEqual(t, "100,000", n.Text())

	run(p, clock, 3*time.Second)
	assert.Equal(t, "100,000", n.Text())
	assert.Zero(t, p.Director.Active())
}

func TestPageStatsGridAndProgress(t *testing.T) {
	p, clock := openTestPage(t, `
<div class="stats-grid">
  <span class="animate-counter" data-target="48" data-suffix="+">0</span>
  <span class="animate-counter" data-target="2.5" data-decimals="1" data-prefix="$" data-suffix="M">0</span>
</div>
<div class="progress-bar-container">
  <div id="seg" class="progress-segment" data-width="62"></div>
</div>`, 20)

	run(p, clock, 3*time.Second)

	counters := p.Doc.QueryAll(motion.ClassCounter)
	assert.Equal(t, "48+", counters[0].(*dom.Node).Text())
	assert.Equal(t, "$2.5M", counters[1].(*dom.Node).Text())

	seg, _ := p.Doc.ByID("seg")
	w, _ := seg.Style("width")
	assert.Equal(t, "62.00%", w)
}

func TestPageEntrance(t *testing.T) {
	p, clock := openTestPage(t, `<img class="hero-logo" alt="logo"><h1 class="hero-title">Hack</h1>`, 20)

	logo := p.Doc.QueryAll("hero-logo")[0].(*dom.Node)
	scale, _ := logo.Style("scale")
	assert.Equal(t, "0.500", scale)

	run(p, clock, 3*time.Second)
	scale, _ = logo.Style("scale")
	assert.Equal(t, "1.000", scale)
}
