// Package curve provides the parametric curves flow paths are built on.
package curve

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Curve is a parametric curve over t in [0, 1].
// PointAt and TangentAt are defined and continuous across the whole range.
// Behaviour outside [0, 1] is unspecified; callers clamp before evaluating.
type Curve interface {
	// PointAt evaluates the curve position at parameter t.
	PointAt(t float32) mgl32.Vec3

	// TangentAt returns the unit tangent at parameter t.
	// Degenerate curves yield the +X axis rather than NaN.
	TangentAt(t float32) mgl32.Vec3
}

// QuadBezier is a quadratic Bezier through P0 and P1 with a single control
// point C. Both endpoints are interpolated exactly.
type QuadBezier struct {
	P0, C, P1 mgl32.Vec3
}

// PointAt evaluates the Bezier basis at t.
func (b QuadBezier) PointAt(t float32) mgl32.Vec3 {
	u := 1 - t
	p := b.P0.Mul(u * u)
	p = p.Add(b.C.Mul(2 * u * t))
	p = p.Add(b.P1.Mul(t * t))
	return p
}

// TangentAt returns the normalized derivative at t.
func (b QuadBezier) TangentAt(t float32) mgl32.Vec3 {
	// B'(t) = 2(1-t)(C-P0) + 2t(P1-C)
	d := b.C.Sub(b.P0).Mul(2 * (1 - t))
	d = d.Add(b.P1.Sub(b.C).Mul(2 * t))
	return safeNormalize(d)
}

// Spline3 is a Catmull-Rom style spline through three points. It
// interpolates P0 at t=0, P1 at t=0.5 and P2 at t=1 exactly, built from two
// Hermite segments sharing a central-difference tangent at P1.
type Spline3 struct {
	P0, P1, P2 mgl32.Vec3
}

// PointAt evaluates the spline at t.
func (s Spline3) PointAt(t float32) mgl32.Vec3 {
	p0, m0, p1, m1, u := s.segment(t)
	u2 := u * u
	u3 := u2 * u
	p := p0.Mul(2*u3 - 3*u2 + 1)
	p = p.Add(m0.Mul(u3 - 2*u2 + u))
	p = p.Add(p1.Mul(-2*u3 + 3*u2))
	p = p.Add(m1.Mul(u3 - u2))
	return p
}

// TangentAt returns the normalized derivative at t.
func (s Spline3) TangentAt(t float32) mgl32.Vec3 {
	p0, m0, p1, m1, u := s.segment(t)
	u2 := u * u
	d := p0.Mul(6*u2 - 6*u)
	d = d.Add(m0.Mul(3*u2 - 4*u + 1))
	d = d.Add(p1.Mul(-6*u2 + 6*u))
	d = d.Add(m1.Mul(3*u2 - 2*u))
	return safeNormalize(d)
}

// segment selects the Hermite segment covering t and returns its endpoints,
// tangents, and the local parameter. The interior tangent is the classic
// Catmull-Rom central difference; the end tangents are one-sided so the
// spline stays clamped to its endpoints.
func (s Spline3) segment(t float32) (p0, m0, p1, m1 mgl32.Vec3, u float32) {
	mid := s.P2.Sub(s.P0).Mul(0.5)
	if t < 0.5 {
		return s.P0, s.P1.Sub(s.P0), s.P1, mid, t * 2
	}
	return s.P1, mid, s.P2, s.P2.Sub(s.P1), t*2 - 1
}

// Length approximates arc length by flattening the curve into a polyline.
func Length(c Curve, samples int) float32 {
	if samples < 1 {
		samples = 1
	}
	var total float32
	prev := c.PointAt(0)
	for i := 1; i <= samples; i++ {
		p := c.PointAt(float32(i) / float32(samples))
		total += p.Sub(prev).Len()
		prev = p
	}
	return total
}

// safeNormalize returns d normalized, or the +X axis when d is too short to
// carry a direction (mgl32.Normalize on a zero vector produces NaN).
func safeNormalize(d mgl32.Vec3) mgl32.Vec3 {
	if d.LenSqr() < 1e-12 {
		return mgl32.Vec3{1, 0, 0}
	}
	return d.Normalize()
}
