package motion

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationFlowCycle(t *testing.T) {
	flow := NewVerificationFlow(&fakeRand{draws: []float64{0.31, 0.3}})
	assert.Equal(t, StagePackage, flow.Stage())

	want := []Stage{StageSending, StageVerifying, StageResult, StagePackage}
	for _, s := range want {
		flow.Advance()
		assert.Equal(t, s, flow.Stage())
	}
	assert.Equal(t, Genuine, flow.Verdict())

	for range 3 {
		flow.Advance()
	}
	assert.Equal(t, Fake, flow.Verdict(), "a draw of exactly 0.3 is not genuine")
	assert.Equal(t, "FAKE: counterfeit detected", flow.Label())

	el := &fakeElement{}
	flow.Render(el)
	assert.Equal(t, "result", el.styles["stage"])
	assert.Equal(t, "FAKE", el.styles["verdict"])
}

func TestVerificationFlowSeeded(t *testing.T) {
	flow := NewVerificationFlow(rand.New(rand.NewPCG(1, 2)))
	seen := map[Verdict]int{}
	for range 400 {
		for range 4 {
			flow.Advance()
		}
		seen[flow.Verdict()]++
	}
	assert.Positive(t, seen[Genuine])
	assert.Positive(t, seen[Fake])
	assert.Greater(t, seen[Genuine], seen[Fake])
}

func TestPacketNetLifecycle(t *testing.T) {
	net := ImpactPipeline()
	net.Spawn()
	net.Spawn()
	require.Len(t, net.Packets(), 2)

	for range 50 {
		net.Step()
	}
	ps := net.Packets()
	require.Len(t, ps, 2)
	assert.Equal(t, 1, ps[0].Hop)
	assert.Equal(t, 0.0, ps[0].Progress)
	assert.Equal(t, Point{X: 50, Y: 50}, net.Position(ps[0]))

	// second leg, then the dwell leg on the last node
	for range 100 {
		net.Step()
	}
	assert.Empty(t, net.Packets())
}

func TestMeshRoute(t *testing.T) {
	net := MeshRoute()
	ids := make([]string, 0, len(net.Route))
	for _, idx := range net.Route {
		ids = append(ids, net.Nodes[idx].ID)
	}
	assert.Equal(t, []string{"home1", "home2", "school", "tower"}, ids)

	net.Spawn()
	for range 20 {
		net.Step()
	}
	p := net.Packets()[0]
	assert.InDelta(t, 30, p.Progress, 1e-9)
	assert.InDelta(t, 25+25*0.3, net.Position(p).X, 1e-9)
}
