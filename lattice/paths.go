package lattice

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/curve"
)

const (
	// boundaryWavePhase keys the deterministic z-offset of each boundary
	// side's midpoint, so the frame undulates instead of lying flat.
	boundaryWavePhase = 0.8

	pathLengthSamples = 16
)

// derivePaths builds the unified flow path list: one smoothed path per
// boundary side first, then one bezier per structural edge. Output order is
// stable so particle path indices stay valid for the whole session.
func derivePaths(p Params, b Boundary, nodes []Node, edges []Edge, rng *rand.Rand) []FlowPath {
	paths := make([]FlowPath, 0, len(b.Vertices)+len(edges))

	for i := range b.Vertices {
		a, c := b.Side(i)
		mid := a.Add(c).Mul(0.5)
		mid[2] += p.WaveAmplitude * math32.Sin(float32(i)*boundaryWavePhase)
		crv := curve.Spline3{P0: a, P1: mid, P2: c}
		paths = append(paths, newPath(crv, a, c, true))
	}

	for _, e := range edges {
		a := nodes[e.A].Pos
		c := nodes[e.B].Pos
		ctrl := a.Add(c).Mul(0.5).Add(perpJitter(c.Sub(a), p.MidpointJitter, rng))
		crv := curve.QuadBezier{P0: a, C: ctrl, P1: c}
		paths = append(paths, newPath(crv, a, c, false))
	}

	return paths
}

func newPath(crv curve.Curve, start, end mgl32.Vec3, main bool) FlowPath {
	return FlowPath{
		Curve:  crv,
		Start:  start,
		End:    end,
		Mid:    crv.PointAt(0.5),
		Length: curve.Length(crv, pathLengthSamples),
		Main:   main,
	}
}

// perpJitter returns a random offset perpendicular to dir, with a smaller
// depth component so structural paths also bow slightly out of the plane.
func perpJitter(dir mgl32.Vec3, amount float32, rng *rand.Rand) mgl32.Vec3 {
	if amount <= 0 {
		return mgl32.Vec3{}
	}
	perp := dir.Cross(mgl32.Vec3{0, 0, 1})
	if perp.LenSqr() < 1e-9 {
		perp = mgl32.Vec3{1, 0, 0}
	} else {
		perp = perp.Normalize()
	}
	lateral := (rng.Float32()*2 - 1) * amount
	depth := (rng.Float32()*2 - 1) * amount * 0.5
	return perp.Mul(lateral).Add(mgl32.Vec3{0, 0, depth})
}
