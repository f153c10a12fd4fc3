package lattice

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/go-gl/mathgl/mgl32"
)

// connectNodes links every node to its k nearest neighbours and returns the
// edge set, deduplicated on a normalized (min,max) index key, plus the
// kd-tree for later nearest-node queries. 0 or 1 nodes yield no edges.
func connectNodes(nodes []Node, k int) ([]Edge, *kdtree.Tree) {
	if len(nodes) == 0 {
		return nil, nil
	}

	// kdtree.New partitions its input in place, so the tree's internal
	// order differs from the node order; idx carries the identity through.
	pts := make(nodePoints, len(nodes))
	for i, n := range nodes {
		pts[i] = nodePoint{pos: n.Pos, idx: i}
	}
	tree := kdtree.New(pts, false)

	if len(nodes) < 2 || k < 1 {
		return nil, tree
	}

	type pair struct{ a, b int }
	seen := make(map[pair]struct{}, len(nodes)*k)
	edges := make([]Edge, 0, len(nodes)*k/2)

	for i, n := range nodes {
		// One extra slot because the query point finds itself at distance 0.
		keep := kdtree.NewNKeeper(k + 1)
		tree.NearestSet(keep, nodePoint{pos: n.Pos, idx: i})
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				// NKeeper pads with a sentinel when the tree is small.
				continue
			}
			j := c.Comparable.(nodePoint).idx
			if j == i {
				continue
			}
			a, b := i, j
			if a > b {
				a, b = b, a
			}
			if _, dup := seen[pair{a, b}]; dup {
				continue
			}
			seen[pair{a, b}] = struct{}{}
			edges = append(edges, Edge{A: a, B: b})
		}
	}

	return edges, tree
}

// nodePoint adapts a node position to gonum's kd-tree interfaces.
type nodePoint struct {
	pos mgl32.Vec3
	idx int
}

func (p nodePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(nodePoint)
	return float64(p.pos[d] - q.pos[d])
}

func (p nodePoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, per the kdtree contract.
func (p nodePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(nodePoint)
	return float64(p.pos.Sub(q.pos).LenSqr())
}

type nodePoints []nodePoint

func (p nodePoints) Index(i int) kdtree.Comparable { return p[i] }
func (p nodePoints) Len() int                      { return len(p) }
func (p nodePoints) Pivot(d kdtree.Dim) int {
	return nodePlane{points: p, dim: d}.Pivot()
}
func (p nodePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// nodePlane sorts nodePoints along one dimension for tree construction.
type nodePlane struct {
	points nodePoints
	dim    kdtree.Dim
}

func (p nodePlane) Len() int { return len(p.points) }
func (p nodePlane) Less(i, j int) bool {
	return p.points[i].pos[p.dim] < p.points[j].pos[p.dim]
}
func (p nodePlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p nodePlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p nodePlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
