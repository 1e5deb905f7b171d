package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	hoverLift    = -8.0
	hoverScale   = 1.02
	hoverGlow    = 0.6
	hoverEpsilon = 0.001
)

var hoverSpring = harmonica.NewSpring(harmonica.FPS(60), 12.0, 1.0)

// hover moves a card toward its lifted or resting pose on a critically
// damped spring.
type hover struct {
	card, glow Element

	y, vy, ty float64
	s, vs, ts float64
	g, vg, tg float64

	handle  FrameHandle
	running bool
}

func (h *hover) setTarget(entered bool) {
	if entered {
		h.ty, h.ts, h.tg = hoverLift, hoverScale, hoverGlow
		return
	}
	h.ty, h.ts, h.tg = 0, 1, 0
}

func (h *hover) step() (settled bool) {
	h.y, h.vy = hoverSpring.Update(h.y, h.vy, h.ty)
	h.s, h.vs = hoverSpring.Update(h.s, h.vs, h.ts)
	h.g, h.vg = hoverSpring.Update(h.g, h.vg, h.tg)

	settled = near(h.y, h.vy, h.ty) && near(h.s, h.vs, h.ts) && near(h.g, h.vg, h.tg)
	if settled {
		h.y, h.s, h.g = h.ty, h.ts, h.tg
		h.vy, h.vs, h.vg = 0, 0, 0
	}
	return settled
}

func near(pos, vel, target float64) bool {
	return math.Abs(pos-target) < hoverEpsilon && math.Abs(vel) < hoverEpsilon
}

func (h *hover) write() {
	h.card.SetStyle("translateY", FormatNumber(h.y, 2, false)+"px")
	h.card.SetStyle("scale", FormatNumber(h.s, 4, false))
	if h.glow != nil {
		h.glow.SetStyle("opacity", FormatNumber(h.g, 3, false))
	}
}

func (h *hover) stop(s Scheduler) {
	if h.running {
		s.CancelFrame(h.handle)
		h.running = false
	}
}

// Hovers lifts cards under the pointer. Hosts without a Pointer skip it.
func (d *Director) Hovers() {
	if d.host.Pointer == nil {
		return
	}
	for _, card := range d.page.QueryAll(ClassHoverCard) {
		var glow Element
		if gs := d.page.Within(card, ClassCardGlow); len(gs) > 0 {
			glow = gs[0]
		}
		d.detach = append(d.detach, d.host.Pointer.OnHover(card, func(entered bool) {
			d.hover(card, glow, entered)
		}))
	}
}

func (d *Director) hover(card, glow Element, entered bool) {
	if d.closed {
		return
	}
	h, ok := d.hovers[card]
	if !ok {
		h = &hover{card: card, glow: glow, s: 1, ts: 1}
		d.hovers[card] = h
	}
	h.setTarget(entered)
	if h.running {
		return
	}
	h.running = true
	d.scheduleHover(h)
}

func (d *Director) scheduleHover(h *hover) {
	h.handle = d.host.Scheduler.RequestFrame(func(time.Time) {
		settled := h.step()
		h.write()
		if settled || d.closed {
			h.running = false
			return
		}
		d.scheduleHover(h)
	})
}
