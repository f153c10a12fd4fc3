package lattice

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Boundary is a regular polygon in the XY plane, centred on the origin.
// Vertex i sits at angle 2π·i/Sides.
type Boundary struct {
	Sides    int
	Radius   float32
	Vertices []mgl32.Vec3

	apothem float32
	sector  float32 // angular width of one vertex-to-vertex span
	tol     float32
}

// BuildBoundary constructs a regular polygon. Containment shrinks the
// polygon by tolerance (e.g. 0.95) so boundary-hugging points are excluded.
// Fewer than 3 sides or a non-positive radius yields an empty boundary.
func BuildBoundary(sides int, radius, tolerance float32) Boundary {
	b := Boundary{Sides: sides, Radius: radius, tol: tolerance}
	if sides < 3 || radius <= 0 {
		return b
	}

	b.sector = 2 * math32.Pi / float32(sides)
	b.apothem = radius * math32.Cos(b.sector/2)
	b.Vertices = make([]mgl32.Vec3, sides)
	for i := 0; i < sides; i++ {
		a := float32(i) * b.sector
		b.Vertices[i] = mgl32.Vec3{math32.Cos(a) * radius, math32.Sin(a) * radius, 0}
	}
	return b
}

// Contains reports whether p, projected to the XY plane, lies inside the
// polygon shrunk by the inward tolerance. The test works per angular
// sector: the polygon edge sits at apothem/cos(a) where a is the angle
// from the local side's midpoint direction.
func (b Boundary) Contains(p mgl32.Vec3) bool {
	if len(b.Vertices) == 0 {
		return false
	}
	r := math32.Hypot(p.X(), p.Y())
	if r == 0 {
		return true
	}
	phi := math32.Atan2(p.Y(), p.X())
	local := math32.Mod(phi, b.sector)
	if local < 0 {
		local += b.sector
	}
	local -= b.sector / 2
	limit := b.apothem / math32.Cos(local)
	return r <= limit*b.tol
}

// Side returns the endpoints of side i, joining vertex i to vertex i+1.
func (b Boundary) Side(i int) (a, c mgl32.Vec3) {
	n := len(b.Vertices)
	return b.Vertices[i%n], b.Vertices[(i+1)%n]
}
