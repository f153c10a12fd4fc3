package lattice

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testParams() Params {
	return Params{
		Sides:          8,
		Radius:         8,
		Rings:          []Ring{{Fraction: 0.35, Count: 8}, {Fraction: 0.6, Count: 12}},
		RingJitter:     0.15,
		DepthJitter:    0.8,
		InsetRatios:    []float32{0.9, 0.72},
		TargetNodes:    50,
		MaxNodes:       500,
		Neighbors:      4,
		WaveAmplitude:  0.5,
		MidpointJitter: 0.6,
	}
}

func TestGenerateNodesScenario(t *testing.T) {
	p := testParams().withDefaults()
	b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)
	nodes := generateNodes(p, b, rand.New(rand.NewSource(42)))

	if len(nodes) < 1 || len(nodes) > 50 {
		t.Fatalf("node count = %d, want 1..50", len(nodes))
	}
	for i, n := range nodes {
		if !b.Contains(n.Pos) {
			t.Errorf("node %d at %v is outside the boundary", i, n.Pos)
		}
	}
}

func TestGenerateNodesSeparation(t *testing.T) {
	p := testParams().withDefaults()
	b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)
	nodes := generateNodes(p, b, rand.New(rand.NewSource(7)))

	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			if d := nodes[i].Pos.Sub(nodes[j].Pos).Len(); d < p.DedupPrecision {
				t.Errorf("nodes %d and %d are %v apart, want >= %v", i, j, d, p.DedupPrecision)
			}
		}
	}
}

func TestGenerateNodesCaps(t *testing.T) {
	tests := []struct {
		name   string
		target int
		max    int
		most   int
	}{
		{"hard_ceiling", 2000, 0, hardNodeCap},
		{"configured_cap", 100, 30, 30},
		{"zero_target", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams().withDefaults()
			p.TargetNodes = tt.target
			p.MaxNodes = tt.max
			b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)
			nodes := generateNodes(p, b, rand.New(rand.NewSource(1)))
			if len(nodes) > tt.most {
				t.Errorf("node count = %d, want <= %d", len(nodes), tt.most)
			}
		})
	}
}

func TestGenerateNodesDeterministic(t *testing.T) {
	p := testParams().withDefaults()
	b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)

	a := generateNodes(p, b, rand.New(rand.NewSource(99)))
	c := generateNodes(p, b, rand.New(rand.NewSource(99)))

	if len(a) != len(c) {
		t.Fatalf("node counts differ: %d vs %d", len(a), len(c))
	}
	for i := range a {
		if a[i].Pos != c[i].Pos {
			t.Errorf("node %d differs: %v vs %v", i, a[i].Pos, c[i].Pos)
		}
	}
}

func TestConnectNodesScenario(t *testing.T) {
	p := testParams().withDefaults()
	b := BuildBoundary(p.Sides, p.Radius, p.InsideTolerance)
	nodes := generateNodes(p, b, rand.New(rand.NewSource(42)))
	if len(nodes) < 3 {
		t.Fatalf("fixture produced %d nodes, want >= 3", len(nodes))
	}

	edges, tree := connectNodes(nodes, p.Neighbors)
	if len(edges) == 0 {
		t.Fatal("edge set is empty for a populated node set")
	}
	if tree == nil {
		t.Fatal("tree is nil for a populated node set")
	}

	degree := make([]int, len(nodes))
	seen := make(map[Edge]bool)
	for _, e := range edges {
		if e.A >= e.B {
			t.Errorf("edge %v not normalized (want A < B)", e)
		}
		if e.A < 0 || e.B >= len(nodes) {
			t.Errorf("edge %v references out-of-range nodes", e)
		}
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
		degree[e.A]++
		degree[e.B]++
	}
	for i, d := range degree {
		if d == 0 {
			t.Errorf("node %d is isolated", i)
		}
	}
}

func TestConnectNodesSmall(t *testing.T) {
	if edges, _ := connectNodes(nil, 4); len(edges) != 0 {
		t.Errorf("0 nodes: edge count = %d, want 0", len(edges))
	}

	one := []Node{{Pos: mgl32.Vec3{1, 0, 0}}}
	if edges, _ := connectNodes(one, 4); len(edges) != 0 {
		t.Errorf("1 node: edge count = %d, want 0", len(edges))
	}

	two := []Node{{Pos: mgl32.Vec3{0, 0, 0}}, {Pos: mgl32.Vec3{1, 0, 0}}}
	edges, _ := connectNodes(two, 4)
	if len(edges) != 1 || edges[0] != (Edge{A: 0, B: 1}) {
		t.Errorf("2 nodes: edges = %v, want [{0 1}]", edges)
	}
}

func TestConnectNodesCoincident(t *testing.T) {
	// Exact duplicates are normally removed upstream; the connector itself
	// must still survive them.
	nodes := []Node{
		{Pos: mgl32.Vec3{0, 0, 0}},
		{Pos: mgl32.Vec3{0, 0, 0}},
		{Pos: mgl32.Vec3{2, 0, 0}},
	}
	edges, _ := connectNodes(nodes, 2)
	if len(edges) == 0 {
		t.Error("coincident nodes produced no edges")
	}
	for _, e := range edges {
		if e.A == e.B {
			t.Errorf("self edge %v", e)
		}
	}
}

func TestBuildPathsOrderAndEndpoints(t *testing.T) {
	l := Build(testParams(), rand.New(rand.NewSource(42)))

	if len(l.Paths) != l.Boundary.Sides+len(l.Edges) {
		t.Fatalf("path count = %d, want %d", len(l.Paths), l.Boundary.Sides+len(l.Edges))
	}

	for i, fp := range l.Paths {
		wantMain := i < l.Boundary.Sides
		if fp.Main != wantMain {
			t.Errorf("path %d Main = %v, want %v", i, fp.Main, wantMain)
		}
		if got := fp.Curve.PointAt(0); got.Sub(fp.Start).Len() > 1e-4 {
			t.Errorf("path %d PointAt(0) = %v, want %v", i, got, fp.Start)
		}
		if got := fp.Curve.PointAt(1); got.Sub(fp.End).Len() > 1e-4 {
			t.Errorf("path %d PointAt(1) = %v, want %v", i, got, fp.End)
		}
		if got := fp.Curve.PointAt(0.5); got.Sub(fp.Mid).Len() > 1e-5 {
			t.Errorf("path %d cached Mid = %v, want %v", i, fp.Mid, got)
		}
		if fp.Length <= 0 {
			t.Errorf("path %d length = %v, want > 0", i, fp.Length)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(testParams(), rand.New(rand.NewSource(5)))
	b := Build(testParams(), rand.New(rand.NewSource(5)))

	if len(a.Nodes) != len(b.Nodes) || len(a.Edges) != len(b.Edges) || len(a.Paths) != len(b.Paths) {
		t.Fatalf("sizes differ: nodes %d/%d edges %d/%d paths %d/%d",
			len(a.Nodes), len(b.Nodes), len(a.Edges), len(b.Edges), len(a.Paths), len(b.Paths))
	}
	for i := range a.Nodes {
		if a.Nodes[i].Pos != b.Nodes[i].Pos {
			t.Errorf("node %d differs", i)
		}
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			t.Errorf("edge %d differs: %v vs %v", i, a.Edges[i], b.Edges[i])
		}
	}
	for i := range a.Paths {
		if a.Paths[i].Mid != b.Paths[i].Mid {
			t.Errorf("path %d midpoint differs", i)
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	p := testParams()
	p.Sides = 2
	l := Build(p, rand.New(rand.NewSource(1)))

	if len(l.Nodes) != 0 || len(l.Edges) != 0 || len(l.Paths) != 0 {
		t.Errorf("degenerate build not empty: %d nodes, %d edges, %d paths",
			len(l.Nodes), len(l.Edges), len(l.Paths))
	}
	if got := l.NearestNode(mgl32.Vec3{0, 0, 0}); got != -1 {
		t.Errorf("NearestNode on empty lattice = %d, want -1", got)
	}
}

func TestNearestNode(t *testing.T) {
	l := Build(testParams(), rand.New(rand.NewSource(42)))
	if len(l.Nodes) == 0 {
		t.Fatal("fixture produced no nodes")
	}

	for _, idx := range []int{0, len(l.Nodes) / 2, len(l.Nodes) - 1} {
		probe := l.Nodes[idx].Pos.Add(mgl32.Vec3{1e-4, -1e-4, 1e-4})
		got := l.NearestNode(probe)
		if got != idx {
			// Another node could genuinely be nearer only if it sat within
			// the dedup precision, which generation forbids.
			t.Errorf("NearestNode near node %d = %d", idx, got)
		}
	}
}

func TestNodeDegreesMatchEdges(t *testing.T) {
	l := Build(testParams(), rand.New(rand.NewSource(42)))

	want := make([]int, len(l.Nodes))
	for _, e := range l.Edges {
		want[e.A]++
		want[e.B]++
	}
	for i, n := range l.Nodes {
		if n.Degree != want[i] {
			t.Errorf("node %d degree = %d, want %d", i, n.Degree, want[i])
		}
	}
}
