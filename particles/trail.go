package particles

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/lattice"
)

// TrailConfig tunes the trail pool.
type TrailConfig struct {
	Count          int
	RingLen        int
	ActivateChance float32 // per inactive trail per frame
	SpeedMin       float32
	SpeedMax       float32
	MaxLife        float32 // seconds; 0 disables the timeout
}

// Trail is a short history ring of positions sampled along one path.
// Points[0] is the newest sample; Alpha fades with slot age.
type Trail struct {
	Points   []mgl32.Vec3
	Alpha    []float32
	PathIdx  int32
	Progress float32
	Speed    float32
	Life     float32
	Active   bool
}

// TrailPool owns a fixed set of trails that light up probabilistically,
// streak along a random path, and clear when they reach the end.
type TrailPool struct {
	Trails []Trail

	cfg   TrailConfig
	paths []lattice.FlowPath
	rng   *rand.Rand

	activations int
	completions int
}

// NewTrailPool allocates cfg.Count inactive trails over the given paths.
func NewTrailPool(cfg TrailConfig, paths []lattice.FlowPath, rng *rand.Rand) *TrailPool {
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	ring := cfg.RingLen
	if ring < 2 {
		ring = 2
	}
	t := &TrailPool{
		Trails: make([]Trail, n),
		cfg:    cfg,
		paths:  paths,
		rng:    rng,
	}
	for i := range t.Trails {
		t.Trails[i].Points = make([]mgl32.Vec3, ring)
		t.Trails[i].Alpha = make([]float32, ring)
	}
	return t
}

// Update rolls activation for idle trails and advances live ones. With no
// paths the tick is a no-op.
func (t *TrailPool) Update(dt, animSpeed float32) {
	if len(t.paths) == 0 {
		return
	}
	for i := range t.Trails {
		tr := &t.Trails[i]

		if !tr.Active {
			if t.rng.Float32() < t.cfg.ActivateChance {
				t.activate(tr)
			}
			continue
		}

		tr.Progress += tr.Speed * dt * animSpeed
		if t.cfg.MaxLife > 0 {
			tr.Life -= dt
		}
		if tr.Progress > 1 || (t.cfg.MaxLife > 0 && tr.Life <= 0) {
			t.clear(tr)
			t.completions++
			continue
		}

		p := t.paths[tr.PathIdx].Curve.PointAt(tr.Progress)
		// Shift the ring toward the tail and insert the new head sample.
		for j := len(tr.Points) - 1; j > 0; j-- {
			tr.Points[j] = tr.Points[j-1]
		}
		tr.Points[0] = p
		for s := range tr.Alpha {
			tr.Alpha[s] = 1 - float32(s)/float32(len(tr.Alpha))
		}
	}
}

// activate lights a trail on a random path, seeding the whole ring at the
// path start so the first frames draw a point, not stale geometry.
func (t *TrailPool) activate(tr *Trail) {
	tr.PathIdx = int32(t.rng.Intn(len(t.paths)))
	tr.Progress = 0
	tr.Speed = randRange(t.rng, t.cfg.SpeedMin, t.cfg.SpeedMax)
	tr.Life = t.cfg.MaxLife
	tr.Active = true

	start := t.paths[tr.PathIdx].Curve.PointAt(0)
	for j := range tr.Points {
		tr.Points[j] = start
	}
	for s := range tr.Alpha {
		tr.Alpha[s] = 1 - float32(s)/float32(len(tr.Alpha))
	}
	t.activations++
}

// clear deactivates a trail and zeroes its ring so nothing lingers.
func (t *TrailPool) clear(tr *Trail) {
	tr.Active = false
	tr.Progress = 0
	for j := range tr.Points {
		tr.Points[j] = mgl32.Vec3{}
	}
	for s := range tr.Alpha {
		tr.Alpha[s] = 0
	}
}

// ActiveCount returns the number of live trails.
func (t *TrailPool) ActiveCount() int {
	n := 0
	for i := range t.Trails {
		if t.Trails[i].Active {
			n++
		}
	}
	return n
}

// TakeCounters returns and resets the activation and completion counts
// accumulated since the previous call.
func (t *TrailPool) TakeCounters() (activations, completions int) {
	activations, completions = t.activations, t.completions
	t.activations, t.completions = 0, 0
	return activations, completions
}
