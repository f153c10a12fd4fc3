package particles

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/lattice"
)

// PathConfig tunes one path-following pool. Flow and ambient populations
// are both PathPools, differing only in these numbers.
type PathConfig struct {
	Count        int
	SpeedMin     float32
	SpeedMax     float32
	SizeMin      float32
	SizeMax      float32
	OscAmplitude float32
	OscFrequency float32
	RerollChance float32 // on wrap, probability of a fresh path + attributes
	FadeEdge     float32 // progress fraction covered by the fade ramps
}

// PathPool drives a fixed population of particles along the flow paths.
// Attributes live in parallel slices so the renderer can walk whole arrays
// without copying; index i always refers to the same particle.
type PathPool struct {
	Pos      []mgl32.Vec3
	Vel      []mgl32.Vec3
	Fade     []float32
	Size     []float32
	Progress []float32
	Speed    []float32
	Phase    []float32
	PathIdx  []int32

	cfg   PathConfig
	paths []lattice.FlowPath
	rng   *rand.Rand

	wraps   int
	rerolls int
}

// NewPathPool allocates a pool of cfg.Count particles scattered along the
// given paths with randomized progress, speed and phase. An empty path list
// is accepted: particles idle at the origin until rebuilt with paths.
func NewPathPool(cfg PathConfig, paths []lattice.FlowPath, rng *rand.Rand) *PathPool {
	n := cfg.Count
	if n < 0 {
		n = 0
	}
	p := &PathPool{
		Pos:      make([]mgl32.Vec3, n),
		Vel:      make([]mgl32.Vec3, n),
		Fade:     make([]float32, n),
		Size:     make([]float32, n),
		Progress: make([]float32, n),
		Speed:    make([]float32, n),
		Phase:    make([]float32, n),
		PathIdx:  make([]int32, n),
		cfg:      cfg,
		paths:    paths,
		rng:      rng,
	}
	for i := 0; i < n; i++ {
		p.assign(i)
		p.Progress[i] = rng.Float32()
		p.place(i, 0)
	}
	return p
}

// Count returns the pool capacity; every slot is always live.
func (p *PathPool) Count() int { return len(p.Progress) }

// Update advances every particle by one frame. With no paths the tick is a
// no-op: particles hold position until a rebuild supplies geometry.
func (p *PathPool) Update(elapsed, dt, animSpeed float32) {
	if len(p.paths) == 0 {
		return
	}
	for i := range p.Progress {
		pr := p.Progress[i] + p.Speed[i]*dt*animSpeed
		if pr > 1 {
			pr = 0
			p.wraps++
			if p.rng.Float32() < p.cfg.RerollChance {
				p.assign(i)
				p.rerolls++
			}
		}
		p.Progress[i] = pr
		p.place(i, elapsed)
	}
}

// assign gives particle i a fresh path and fresh random attributes.
func (p *PathPool) assign(i int) {
	if len(p.paths) > 0 {
		p.PathIdx[i] = int32(p.rng.Intn(len(p.paths)))
	} else {
		p.PathIdx[i] = -1
	}
	p.Speed[i] = randRange(p.rng, p.cfg.SpeedMin, p.cfg.SpeedMax)
	p.Size[i] = randRange(p.rng, p.cfg.SizeMin, p.cfg.SizeMax)
	p.Phase[i] = p.rng.Float32() * 2 * math32.Pi
}

// place evaluates particle i's position, velocity and fade at its current
// progress. A stale path index is rerolled rather than faulted on.
func (p *PathPool) place(i int, elapsed float32) {
	idx := p.PathIdx[i]
	if idx < 0 || int(idx) >= len(p.paths) {
		if len(p.paths) == 0 {
			return
		}
		p.assign(i)
		idx = p.PathIdx[i]
	}
	path := &p.paths[idx]
	pr := p.Progress[i]
	tan := path.Curve.TangentAt(pr)
	pos := path.Curve.PointAt(pr)
	pos = pos.Add(oscOffset(tan, elapsed*p.cfg.OscFrequency+p.Phase[i], p.cfg.OscAmplitude))
	p.Pos[i] = pos
	p.Vel[i] = tan
	p.Fade[i] = fadeRamp(pr, p.cfg.FadeEdge)
}

// TakeCounters returns and resets the wrap and reroll counts accumulated
// since the previous call.
func (p *PathPool) TakeCounters() (wraps, rerolls int) {
	wraps, rerolls = p.wraps, p.rerolls
	p.wraps, p.rerolls = 0, 0
	return wraps, rerolls
}
