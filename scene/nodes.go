package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// updateNodes animates node positions around their anchors and integrates
// the glow response to pulse shells and the hovered pointer.
func (s *Scene) updateNodes(dt float32) {
	freq := s.cfg.Drift.Frequency
	driftAmp := float32(s.cfg.Drift.Amplitude)
	noiseT := float64(s.elapsed) * s.cfg.Drift.TimeScale

	width := float32(s.cfg.Pulse.Width)
	boost := float32(s.cfg.Pulse.Boost)
	infRadius := float32(s.cfg.Interaction.InfluenceRadius)
	infBoost := float32(s.cfg.Interaction.InfluenceBoost)
	decay := math32.Exp(-float32(s.cfg.Nodes.ActivityDecay) * dt)
	waves := s.pulses.Waves()

	query := s.nodeFilter.Query()
	for query.Next() {
		_, pos, anchor, osc, act := query.Get()

		a := anchor.Vec()
		bob := osc.Amp * math32.Sin(s.elapsed*osc.Speed+osc.Phase)
		// Two decorrelated noise samples per node; the offsets just move
		// the second sample into a different noise region.
		dx := float32(s.drift.Noise3D(float64(a.X())*freq, float64(a.Y())*freq, noiseT)) * driftAmp
		dy := float32(s.drift.Noise3D(float64(a.X())*freq+31.4, float64(a.Y())*freq+47.2, noiseT)) * driftAmp
		pos.X = a.X() + dx
		pos.Y = a.Y() + dy
		pos.Z = a.Z() + bob

		// Glow decays toward its resting level, then picks up this
		// frame's pulse and pointer contributions.
		level := act.Base + (act.Level-act.Base)*decay
		p := pos.Vec()
		for _, w := range waves {
			d := p.Sub(w.Origin).Len()
			if diff := math32.Abs(d - w.Radius); diff < width {
				level += w.Intensity * boost * (1 - diff/width)
			}
		}
		if s.hasMouse {
			if d := p.Sub(s.mouse).Len(); d < infRadius {
				level += infBoost * (1 - d/infRadius)
			}
		}
		act.Level = clampLevel(level)
	}
}

func clampLevel(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}

// meanActivity averages node glow for the stats window.
func (s *Scene) meanActivity() float64 {
	var sum float64
	n := 0
	query := s.actFilter.Query()
	for query.Next() {
		act := query.Get()
		sum += float64(act.Level)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// NodeInfo is the inspector's view of one node.
type NodeInfo struct {
	ID       int
	Pos      mgl32.Vec3
	Anchor   mgl32.Vec3
	Degree   int
	Activity float32
}

// NodeInfo returns the current state of node id.
func (s *Scene) NodeInfo(id int) (NodeInfo, bool) {
	if id < 0 || id >= len(s.nodes) {
		return NodeInfo{}, false
	}
	neuron, pos, anchor, _, act := s.nodeMapper.Get(s.nodes[id])
	return NodeInfo{
		ID:       int(neuron.ID),
		Pos:      pos.Vec(),
		Anchor:   anchor.Vec(),
		Degree:   int(neuron.Degree),
		Activity: act.Level,
	}, true
}
