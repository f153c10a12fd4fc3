package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/scene"
)

// NetworkRenderer draws the static structure: the boundary frame, the
// curved structural edges, and the glowing nodes.
type NetworkRenderer struct {
	edgeSamples int
	nodeRadius  float32
}

// NewNetworkRenderer creates a network renderer. edgeSamples is the number
// of line segments each curved path is flattened into.
func NewNetworkRenderer(edgeSamples int, nodeRadius float32) *NetworkRenderer {
	if edgeSamples < 2 {
		edgeSamples = 2
	}
	return &NetworkRenderer{
		edgeSamples: edgeSamples,
		nodeRadius:  nodeRadius,
	}
}

// Draw renders the frame, edges and nodes. glow scales node brightness,
// scale is the display scale applied to every position.
func (r *NetworkRenderer) Draw(s *scene.Scene, glow, scale float32) {
	r.drawPaths(s, scale)
	r.drawNodes(s, glow, scale)
}

// drawPaths flattens every flow path into a polyline. Boundary sides get
// the bright frame color, structural edges stay dim.
func (r *NetworkRenderer) drawPaths(s *scene.Scene, scale float32) {
	paths := s.FlowPaths()
	step := 1 / float32(r.edgeSamples)

	for i := range paths {
		p := &paths[i]
		color := edgeColor
		if p.Main {
			color = frameColor
		}

		prev := p.Curve.PointAt(0)
		for k := 1; k <= r.edgeSamples; k++ {
			pt := p.Curve.PointAt(float32(k) * step)
			rl.DrawLine3D(world(prev, scale), world(pt, scale), color)
			prev = pt
		}
	}
}

// drawNodes renders each node as a solid sphere plus an additive halo.
// Activity drives both the color ramp and the halo strength.
func (r *NetworkRenderer) drawNodes(s *scene.Scene, glow, scale float32) {
	type glowNode struct {
		pos  mgl32.Vec3
		heat float32
	}
	halos := make([]glowNode, 0, s.NodeCount())

	s.EachNode(func(_ int, pos mgl32.Vec3, _ int, level float32) {
		// Activity is clamped to [0, 2]; map to a [0, 1] heat value.
		heat := level * 0.5 * glow
		if heat > 1 {
			heat = 1
		}

		radius := r.nodeRadius * (0.75 + 0.5*level) * scale
		rl.DrawSphereEx(world(pos, scale), radius, 8, 12, lerpColor(nodeBase, nodeHot, heat))

		if heat > 0.05 {
			halos = append(halos, glowNode{pos: pos, heat: heat})
		}
	})

	if len(halos) == 0 {
		return
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, h := range halos {
		radius := r.nodeRadius * 2.4 * (0.6 + h.heat) * scale
		rl.DrawSphereEx(world(h.pos, scale), radius, 6, 8, withAlpha(haloTint, 0.16*h.heat))
	}
	rl.EndBlendMode()
}

// DrawSelection marks the selected node with a pair of rings so it stays
// visible from any camera angle. No-op for out-of-range ids.
func (r *NetworkRenderer) DrawSelection(s *scene.Scene, id int, scale float32) {
	info, ok := s.NodeInfo(id)
	if !ok {
		return
	}
	center := world(info.Pos, scale)
	radius := r.nodeRadius * 3.2 * scale

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawCircle3D(center, radius, rl.Vector3{X: 1}, 90, withAlpha(selectTint, 0.9))
	rl.DrawCircle3D(center, radius, rl.Vector3{Y: 1}, 90, withAlpha(selectTint, 0.9))
	rl.EndBlendMode()
}
