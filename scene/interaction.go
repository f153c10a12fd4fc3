package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/lattice"
)

// FindNearestPath returns the flow path whose midpoint sample is closest to
// p, or nil when no paths exist.
func (s *Scene) FindNearestPath(p mgl32.Vec3) *lattice.FlowPath {
	best := -1
	bestD := float32(math32.MaxFloat32)
	for i := range s.lat.Paths {
		if d := s.lat.Paths[i].Mid.Sub(p).LenSqr(); d < bestD {
			bestD = d
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &s.lat.Paths[best]
}

// TriggerPulse starts a pulse wave expanding from origin.
func (s *Scene) TriggerPulse(origin mgl32.Vec3) {
	s.pulses.Trigger(origin)
	s.collector.RecordPulse()
}

// TriggerBurst fires the configured number of burst particles from origin.
// Returns how many inactive slots could actually be activated.
func (s *Scene) TriggerBurst(origin mgl32.Vec3) int {
	return s.bursts.Trigger(origin, s.cfg.Burst.Count)
}

// UpdateMousePosition sets the pointer's world-space projection, used for
// hover glow until ClearMouse is called.
func (s *Scene) UpdateMousePosition(world mgl32.Vec3) {
	s.mouse = world
	s.hasMouse = true
}

// ClearMouse removes the pointer influence.
func (s *Scene) ClearMouse() { s.hasMouse = false }

// MousePosition returns the last projected pointer position and whether
// one is currently set.
func (s *Scene) MousePosition() (mgl32.Vec3, bool) {
	return s.mouse, s.hasMouse
}

// PickNode returns the id of the node whose anchor is nearest to p within
// the configured pick radius, or -1.
func (s *Scene) PickNode(p mgl32.Vec3) int {
	idx := s.lat.NearestNode(p)
	if idx < 0 {
		return -1
	}
	r := float32(s.cfg.Interaction.NodePickRadius)
	if s.lat.Nodes[idx].Pos.Sub(p).LenSqr() > r*r {
		return -1
	}
	return idx
}
