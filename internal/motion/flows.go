package motion

import (
	"math"
	"strings"
	"time"
)

// VerificationInterval is how long each verification stage is shown.
const VerificationInterval = 2500 * time.Millisecond

// PacketStepInterval is the tick of the packet demos.
const PacketStepInterval = 30 * time.Millisecond

// genuineCutoff: draws above it verify as genuine.
const genuineCutoff = 0.3

// Stage is a step of the SMS verification demo.
type Stage int

const (
	StagePackage Stage = iota
	StageSending
	StageVerifying
	StageResult
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StagePackage:
		return "package"
	case StageSending:
		return "sending"
	case StageVerifying:
		return "verifying"
	case StageResult:
		return "result"
	default:
		return "unknown"
	}
}

// Verdict is the outcome shown in the result stage.
type Verdict string

const (
	Genuine Verdict = "GENUINE"
	Fake    Verdict = "FAKE"
)

// VerificationFlow cycles through the verification stages and draws a
// verdict each time it reaches the result.
type VerificationFlow struct {
	rand    Rand
	stage   Stage
	verdict Verdict
}

// NewVerificationFlow starts at the package stage with a genuine verdict.
func NewVerificationFlow(r Rand) *VerificationFlow {
	return &VerificationFlow{rand: r, verdict: Genuine}
}

// Advance moves to the next stage, wrapping after the result.
func (f *VerificationFlow) Advance() {
	f.stage = (f.stage + 1) % stageCount
	if f.stage != StageResult {
		return
	}
	if f.rand.Float64() > genuineCutoff {
		f.verdict = Genuine
	} else {
		f.verdict = Fake
	}
}

func (f *VerificationFlow) Stage() Stage     { return f.stage }
func (f *VerificationFlow) Verdict() Verdict { return f.verdict }

// Label is the text shown for the current stage.
func (f *VerificationFlow) Label() string {
	switch f.stage {
	case StagePackage:
		return "MEDICINE [ABC123XYZ]"
	case StageSending:
		return "SMS -> verification server"
	case StageVerifying:
		return "VERIFYING..."
	}
	if f.verdict == Genuine {
		return "GENUINE: safe to use"
	}
	return "FAKE: counterfeit detected"
}

// Render writes the stage to el.
func (f *VerificationFlow) Render(el Element) {
	el.SetText(f.Label())
	el.SetStyle("stage", f.stage.String())
	if f.stage == StageResult {
		el.SetStyle("verdict", string(f.verdict))
	}
}

// Node is a station of a packet demo, positioned in percent of the canvas.
type Node struct {
	ID    string
	Label string
	X, Y  float64
}

// Packet travels along a PacketNet's route.
type Packet struct {
	ID       int
	Hop      int
	Progress float64
}

// Point is a position in percent of the canvas.
type Point struct {
	X, Y float64
}

// PacketNet moves packets along a fixed route of nodes. A packet advances
// Speed percent per Step, hops to the next edge at 100 and, after the last
// edge, dwells one more leg on the final node before it is dropped.
type PacketNet struct {
	Nodes      []Node
	Route      []int
	Speed      float64
	SpawnEvery time.Duration

	packets []Packet
	nextID  int
}

// ImpactPipeline is the problem → solution → impact demo.
func ImpactPipeline() *PacketNet {
	return &PacketNet{
		Nodes: []Node{
			{ID: "problem", Label: "Problem", X: 10, Y: 50},
			{ID: "solution", Label: "Solution", X: 50, Y: 50},
			{ID: "impact", Label: "Impact", X: 90, Y: 50},
		},
		Route:      []int{0, 1, 2},
		Speed:      2,
		SpawnEvery: 1500 * time.Millisecond,
	}
}

// MeshRoute is the mesh demo: traffic routes around the offline hospital.
func MeshRoute() *PacketNet {
	return &PacketNet{
		Nodes: []Node{
			{ID: "hospital", Label: "Hospital", X: 25, Y: 25},
			{ID: "school", Label: "School", X: 75, Y: 25},
			{ID: "home1", Label: "Home A", X: 25, Y: 75},
			{ID: "home2", Label: "Home B", X: 50, Y: 60},
			{ID: "tower", Label: "Cell Tower", X: 75, Y: 75},
		},
		Route:      []int{2, 3, 1, 4},
		Speed:      1.5,
		SpawnEvery: 2000 * time.Millisecond,
	}
}

// Spawn adds a packet at the start of the route.
func (n *PacketNet) Spawn() {
	n.packets = append(n.packets, Packet{ID: n.nextID})
	n.nextID++
}

// Step advances every packet and drops the ones that finished.
func (n *PacketNet) Step() {
	last := len(n.Route) - 1
	kept := n.packets[:0]
	for _, p := range n.packets {
		p.Progress += n.Speed
		if p.Progress >= 100 && p.Hop < last {
			p.Hop++
			p.Progress = 0
		}
		if p.Hop >= last && p.Progress >= 100 {
			continue
		}
		kept = append(kept, p)
	}
	n.packets = kept
}

// Packets returns a copy of the packets in flight.
func (n *PacketNet) Packets() []Packet {
	return append([]Packet(nil), n.packets...)
}

// Position interpolates a packet between its current and next node.
func (n *PacketNet) Position(p Packet) Point {
	from := n.Nodes[n.Route[p.Hop]]
	if p.Hop+1 >= len(n.Route) {
		return Point{X: from.X, Y: from.Y}
	}
	to := n.Nodes[n.Route[p.Hop+1]]
	t := p.Progress / 100
	return Point{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
	}
}

// Render projects the route onto a single line of width columns: route
// nodes as 'o', packets as '*'.
func (n *PacketNet) Render(width int) string {
	if width < 2 {
		width = 2
	}
	line := []rune(strings.Repeat("-", width))
	col := func(x float64) int {
		c := int(math.Round(x / 100 * float64(width-1)))
		return min(max(c, 0), width-1)
	}
	for _, p := range n.packets {
		line[col(n.Position(p).X)] = '*'
	}
	for _, idx := range n.Route {
		line[col(n.Nodes[idx].X)] = 'o'
	}
	return string(line)
}
