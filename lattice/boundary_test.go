package lattice

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildBoundaryVertices(t *testing.T) {
	b := BuildBoundary(8, 8, 0.95)

	if len(b.Vertices) != 8 {
		t.Fatalf("vertex count = %d, want 8", len(b.Vertices))
	}

	for i, v := range b.Vertices {
		want := float32(i) * 2 * math32.Pi / 8
		got := math32.Atan2(v.Y(), v.X())
		if got < 0 {
			got += 2 * math32.Pi
		}
		if d := math32.Abs(got - want); d > 1e-5 && math32.Abs(d-2*math32.Pi) > 1e-5 {
			t.Errorf("vertex %d angle = %v, want %v", i, got, want)
		}
		if r := math32.Hypot(v.X(), v.Y()); math32.Abs(r-8) > 1e-5 {
			t.Errorf("vertex %d radius = %v, want 8", i, r)
		}
		if v.Z() != 0 {
			t.Errorf("vertex %d z = %v, want 0", i, v.Z())
		}
	}
}

func TestBoundaryContains(t *testing.T) {
	b := BuildBoundary(8, 8, 0.95)

	// 22.5 degrees is the middle of the first side, where the polygon edge
	// is nearest to the centre (the apothem, ~7.39 for this octagon).
	apoX := math32.Cos(math32.Pi / 8)
	apoY := math32.Sin(math32.Pi / 8)

	tests := []struct {
		name string
		p    mgl32.Vec3
		want bool
	}{
		{"centre", mgl32.Vec3{0, 0, 0}, true},
		{"centre_with_depth", mgl32.Vec3{0, 0, 2}, true},
		{"interior", mgl32.Vec3{3, 2, 0.5}, true},
		{"far_outside", mgl32.Vec3{20, 0, 0}, false},
		{"inside_near_vertex", mgl32.Vec3{7.2, 0, 0}, true},
		{"tolerance_band_at_vertex", mgl32.Vec3{7.8, 0, 0}, false},
		{"inside_near_side", mgl32.Vec3{apoX * 6.5, apoY * 6.5, 0}, true},
		{"outside_near_side", mgl32.Vec3{apoX * 7.3, apoY * 7.3, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundaryDegenerate(t *testing.T) {
	for _, sides := range []int{0, 1, 2} {
		b := BuildBoundary(sides, 8, 0.95)
		if len(b.Vertices) != 0 {
			t.Errorf("sides=%d: vertex count = %d, want 0", sides, len(b.Vertices))
		}
		if b.Contains(mgl32.Vec3{0, 0, 0}) {
			t.Errorf("sides=%d: empty boundary should contain nothing", sides)
		}
	}

	b := BuildBoundary(8, 0, 0.95)
	if len(b.Vertices) != 0 {
		t.Errorf("radius=0: vertex count = %d, want 0", len(b.Vertices))
	}
}

func TestBoundarySide(t *testing.T) {
	b := BuildBoundary(8, 8, 0.95)

	a, c := b.Side(0)
	if a != b.Vertices[0] || c != b.Vertices[1] {
		t.Errorf("Side(0) = %v..%v, want %v..%v", a, c, b.Vertices[0], b.Vertices[1])
	}

	// The last side closes the polygon back to vertex 0.
	a, c = b.Side(7)
	if a != b.Vertices[7] || c != b.Vertices[0] {
		t.Errorf("Side(7) = %v..%v, want %v..%v", a, c, b.Vertices[7], b.Vertices[0])
	}
}
