package curve

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// vecClose reports whether two vectors match within tol on every component.
func vecClose(a, b mgl32.Vec3, tol float32) bool {
	d := a.Sub(b)
	return absf(d.X()) <= tol && absf(d.Y()) <= tol && absf(d.Z()) <= tol
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestQuadBezierEndpoints(t *testing.T) {
	tests := []struct {
		name string
		c    QuadBezier
	}{
		{"axis_aligned", QuadBezier{
			P0: mgl32.Vec3{0, 0, 0},
			C:  mgl32.Vec3{1, 2, 0},
			P1: mgl32.Vec3{2, 0, 0},
		}},
		{"offset_3d", QuadBezier{
			P0: mgl32.Vec3{-4, 1, 2},
			C:  mgl32.Vec3{0, 5, -1},
			P1: mgl32.Vec3{3, -2, 0.5},
		}},
		{"negative_quadrant", QuadBezier{
			P0: mgl32.Vec3{-1, -1, -1},
			C:  mgl32.Vec3{-3, -0.5, -2},
			P1: mgl32.Vec3{-5, -4, 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.PointAt(0); !vecClose(got, tt.c.P0, 1e-6) {
				t.Errorf("PointAt(0) = %v, want %v", got, tt.c.P0)
			}
			if got := tt.c.PointAt(1); !vecClose(got, tt.c.P1, 1e-6) {
				t.Errorf("PointAt(1) = %v, want %v", got, tt.c.P1)
			}
		})
	}
}

func TestSpline3Interpolates(t *testing.T) {
	s := Spline3{
		P0: mgl32.Vec3{-2, 0, 0},
		P1: mgl32.Vec3{0, 1.5, 0.8},
		P2: mgl32.Vec3{2, 0, 0},
	}

	if got := s.PointAt(0); !vecClose(got, s.P0, 1e-5) {
		t.Errorf("PointAt(0) = %v, want %v", got, s.P0)
	}
	if got := s.PointAt(0.5); !vecClose(got, s.P1, 1e-5) {
		t.Errorf("PointAt(0.5) = %v, want %v", got, s.P1)
	}
	if got := s.PointAt(1); !vecClose(got, s.P2, 1e-5) {
		t.Errorf("PointAt(1) = %v, want %v", got, s.P2)
	}
}

func TestSpline3Continuity(t *testing.T) {
	s := Spline3{
		P0: mgl32.Vec3{0, 0, 0},
		P1: mgl32.Vec3{3, 4, 1},
		P2: mgl32.Vec3{6, 0, -1},
	}

	// Positions straddling the segment boundary should stay close.
	a := s.PointAt(0.499)
	b := s.PointAt(0.501)
	if d := a.Sub(b).Len(); d > 0.1 {
		t.Errorf("discontinuity at segment join: |p(0.499)-p(0.501)| = %v", d)
	}

	// Tangents should agree at the join as well.
	ta := s.TangentAt(0.499)
	tb := s.TangentAt(0.501)
	if dot := ta.Dot(tb); dot < 0.99 {
		t.Errorf("tangent kink at segment join: dot = %v", dot)
	}
}

func TestTangentUnitLength(t *testing.T) {
	curves := []struct {
		name string
		c    Curve
	}{
		{"quad", QuadBezier{
			P0: mgl32.Vec3{0, 0, 0},
			C:  mgl32.Vec3{2, 3, 1},
			P1: mgl32.Vec3{4, 0, 0},
		}},
		{"spline", Spline3{
			P0: mgl32.Vec3{0, 0, 0},
			P1: mgl32.Vec3{1, 2, 0.5},
			P2: mgl32.Vec3{2, 0, 1},
		}},
	}

	for _, tt := range curves {
		t.Run(tt.name, func(t *testing.T) {
			for _, tp := range []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
				tan := tt.c.TangentAt(tp)
				if l := tan.Len(); absf(l-1) > 1e-4 {
					t.Errorf("TangentAt(%v) length = %v, want 1", tp, l)
				}
			}
		})
	}
}

func TestDegenerateTangentFallback(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}
	want := mgl32.Vec3{1, 0, 0}

	curves := []struct {
		name string
		c    Curve
	}{
		{"quad", QuadBezier{P0: p, C: p, P1: p}},
		{"spline", Spline3{P0: p, P1: p, P2: p}},
	}

	for _, tt := range curves {
		t.Run(tt.name, func(t *testing.T) {
			for _, tp := range []float32{0, 0.5, 1} {
				got := tt.c.TangentAt(tp)
				if got != want {
					t.Errorf("TangentAt(%v) = %v, want %v", tp, got, want)
				}
				// NaN would fail both comparisons silently, so check explicitly.
				if got.X() != got.X() {
					t.Errorf("TangentAt(%v) produced NaN", tp)
				}
			}
		})
	}
}

func TestLengthStraightLine(t *testing.T) {
	// A quadratic with its control point on the chord is a straight line.
	b := QuadBezier{
		P0: mgl32.Vec3{0, 0, 0},
		C:  mgl32.Vec3{1.5, 0, 0},
		P1: mgl32.Vec3{3, 0, 0},
	}
	if got := Length(b, 20); absf(got-3) > 1e-3 {
		t.Errorf("Length = %v, want 3", got)
	}
}

func TestLengthExceedsChordWhenCurved(t *testing.T) {
	b := QuadBezier{
		P0: mgl32.Vec3{0, 0, 0},
		C:  mgl32.Vec3{1.5, 2, 0},
		P1: mgl32.Vec3{3, 0, 0},
	}
	chord := b.P1.Sub(b.P0).Len()
	if got := Length(b, 20); got <= chord {
		t.Errorf("Length = %v, want > chord %v", got, chord)
	}
}
