package lattice

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// generateNodes seeds node positions inside the boundary from three
// sources, in order: concentric rings, inset copies of the boundary
// vertices, and uniform random interior points topping up to the target.
// Candidates closer than the dedup precision to an accepted node are
// rejected, and the total is capped.
func generateNodes(p Params, b Boundary, rng *rand.Rand) []Node {
	limit := nodeLimit(p)
	if limit <= 0 || len(b.Vertices) == 0 {
		return nil
	}

	g := nodeSet{precision: p.DedupPrecision, nodes: make([]Node, 0, limit)}

	for _, ring := range p.Rings {
		r := ring.Fraction * b.Radius
		for i := 0; i < ring.Count && len(g.nodes) < limit; i++ {
			a := float32(i)/float32(ring.Count)*2*math32.Pi + (rng.Float32()-0.5)*p.RingJitter
			pos := mgl32.Vec3{
				math32.Cos(a) * r,
				math32.Sin(a) * r,
				(rng.Float32() - 0.5) * p.DepthJitter,
			}
			if b.Contains(pos) {
				g.add(pos)
			}
		}
	}

	for _, ratio := range p.InsetRatios {
		for _, v := range b.Vertices {
			if len(g.nodes) >= limit {
				break
			}
			pos := mgl32.Vec3{
				v.X() * ratio,
				v.Y() * ratio,
				(rng.Float32() - 0.5) * p.DepthJitter,
			}
			if b.Contains(pos) {
				g.add(pos)
			}
		}
	}

	// Random interior fill. Rejection sampling against the boundary; the
	// attempt budget bounds the loop when the target is unreachable.
	attempts := limit * 12
	for len(g.nodes) < limit && attempts > 0 {
		attempts--
		pos := mgl32.Vec3{
			(rng.Float32()*2 - 1) * b.Radius,
			(rng.Float32()*2 - 1) * b.Radius,
			(rng.Float32() - 0.5) * p.DepthJitter,
		}
		if b.Contains(pos) {
			g.add(pos)
		}
	}

	return g.nodes
}

// nodeLimit applies the configured and hard node caps.
func nodeLimit(p Params) int {
	limit := p.TargetNodes
	if p.MaxNodes > 0 && limit > p.MaxNodes {
		limit = p.MaxNodes
	}
	if limit > hardNodeCap {
		limit = hardNodeCap
	}
	return limit
}

// nodeSet accumulates nodes while enforcing the minimum separation.
type nodeSet struct {
	precision float32
	nodes     []Node
}

// add accepts pos unless an existing node lies within the dedup precision.
// Node count is capped at a few hundred, so the linear scan stays cheap.
func (g *nodeSet) add(pos mgl32.Vec3) {
	for i := range g.nodes {
		if g.nodes[i].Pos.Sub(pos).Len() < g.precision {
			return
		}
	}
	g.nodes = append(g.nodes, Node{Pos: pos})
}
