// Package lattice builds the procedural structure the visualization runs
// on: a regular polygon boundary, node positions seeded inside it, a
// k-nearest-neighbour edge set, and the flow paths particles travel along.
//
// A Lattice is built once and never mutated afterwards; every consumer
// treats it as read-only.
package lattice

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/glowlab/synaptic/curve"
)

// hardNodeCap bounds node count regardless of configuration.
const hardNodeCap = 500

// Params controls structure generation. Zero values for tolerance, dedup
// precision and neighbour count fall back to package defaults.
type Params struct {
	// Boundary polygon
	Sides           int
	Radius          float32
	InsideTolerance float32

	// Node seeding
	Rings          []Ring
	RingJitter     float32
	DepthJitter    float32
	InsetRatios    []float32
	TargetNodes    int
	MaxNodes       int
	DedupPrecision float32

	// Edge connection
	Neighbors int

	// Path shaping
	WaveAmplitude  float32
	MidpointJitter float32
}

// Ring seeds evenly spaced nodes on one concentric circle.
type Ring struct {
	Fraction float32 // of boundary radius
	Count    int
}

// Node is one generated structure vertex.
type Node struct {
	Pos    mgl32.Vec3
	Degree int
}

// Edge joins two node indices, always ordered A < B.
type Edge struct {
	A, B int
}

// FlowPath is one parametric lane particles travel along.
type FlowPath struct {
	Curve  curve.Curve
	Start  mgl32.Vec3
	End    mgl32.Vec3
	Mid    mgl32.Vec3 // PointAt(0.5), cached for nearest-path queries
	Length float32
	Main   bool // boundary-side path, as opposed to structural
}

// Lattice is the generated structure: boundary, nodes, edges, and the flow
// paths derived from them. Paths list boundary sides first, then structural
// edges, in a stable order.
type Lattice struct {
	Boundary Boundary
	Nodes    []Node
	Edges    []Edge
	Paths    []FlowPath

	tree *kdtree.Tree
}

// Build generates the whole structure from params. All randomness comes
// from rng, so a fixed seed reproduces the lattice exactly. Degenerate
// params (fewer than 3 sides, non-positive radius) yield an empty but
// usable lattice rather than an error.
func Build(p Params, rng *rand.Rand) *Lattice {
	p = p.withDefaults()
	b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)
	nodes := generateNodes(p, b, rng)
	edges, tree := connectNodes(nodes, p.Neighbors)
	for _, e := range edges {
		nodes[e.A].Degree++
		nodes[e.B].Degree++
	}
	return &Lattice{
		Boundary: b,
		Nodes:    nodes,
		Edges:    edges,
		Paths:    derivePaths(p, b, nodes, edges, rng),
		tree:     tree,
	}
}

// NearestNode returns the index of the node closest to p, or -1 when the
// lattice has no nodes.
func (l *Lattice) NearestNode(p mgl32.Vec3) int {
	if l.tree == nil || l.tree.Count == 0 {
		return -1
	}
	got, _ := l.tree.Nearest(nodePoint{pos: p, idx: -1})
	if got == nil {
		return -1
	}
	return got.(nodePoint).idx
}

func (p Params) withDefaults() Params {
	if p.InsideTolerance <= 0 {
		p.InsideTolerance = 0.95
	}
	if p.DedupPrecision <= 0 {
		p.DedupPrecision = 1e-3
	}
	if p.Neighbors <= 0 {
		p.Neighbors = 4
	}
	return p
}
