package particles

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BurstKind identifies the visual sub-type of a burst particle.
type BurstKind uint8

const (
	BurstSpark BurstKind = iota
	BurstEmber
	BurstFlash

	burstKinds
)

// Burst is one pool slot. Life counts down from 1; a slot at zero is the
// inactive sentinel, eligible for reuse by the next trigger.
type Burst struct {
	Pos  mgl32.Vec3
	Vel  mgl32.Vec3
	Life float32
	Size float32
	Kind BurstKind
}

// BurstConfig tunes the burst pool.
type BurstConfig struct {
	Capacity  int
	DecayRate float32 // life units per second, may exceed 1
	SpeedMin  float32
	SpeedMax  float32
	SizeMin   float32
	SizeMax   float32
	Gravity   float32 // downward (-Y) velocity bias per second
	Drag      float32 // exponential velocity damping rate
}

// BurstPool recycles a fixed set of radial burst particles. Slots are
// activated in place by Trigger and expire back to inactive; the pool
// itself never grows.
type BurstPool struct {
	Particles []Burst

	cfg BurstConfig
	rng *rand.Rand

	triggers  int
	activated int
	starved   int
}

// NewBurstPool allocates cfg.Capacity inactive slots.
func NewBurstPool(cfg BurstConfig, rng *rand.Rand) *BurstPool {
	n := cfg.Capacity
	if n < 0 {
		n = 0
	}
	return &BurstPool{
		Particles: make([]Burst, n),
		cfg:       cfg,
		rng:       rng,
	}
}

// Trigger activates up to count inactive slots at origin, each with a
// random outward velocity and sub-type. When fewer slots are free only
// those are activated; the pool never overflows and never blocks. Returns
// the number actually activated.
func (b *BurstPool) Trigger(origin mgl32.Vec3, count int) int {
	b.triggers++
	activated := 0
	for i := range b.Particles {
		if activated >= count {
			break
		}
		s := &b.Particles[i]
		if s.Life > 0 {
			continue
		}
		s.Pos = origin
		s.Vel = randomOnSphere(b.rng).Mul(randRange(b.rng, b.cfg.SpeedMin, b.cfg.SpeedMax))
		s.Life = 1
		s.Size = randRange(b.rng, b.cfg.SizeMin, b.cfg.SizeMax)
		s.Kind = BurstKind(b.rng.Intn(int(burstKinds)))
		activated++
	}
	b.activated += activated
	if activated < count {
		b.starved++
	}
	return activated
}

// Update decays and integrates every active slot.
func (b *BurstPool) Update(dt float32) {
	drag := math32.Exp(-b.cfg.Drag * dt)
	for i := range b.Particles {
		s := &b.Particles[i]
		if s.Life <= 0 {
			continue
		}
		s.Life -= dt * b.cfg.DecayRate
		if s.Life < 0 {
			s.Life = 0
		}
		s.Vel = s.Vel.Mul(drag)
		s.Vel[1] -= b.cfg.Gravity * dt
		s.Pos = s.Pos.Add(s.Vel.Mul(dt))
	}
}

// ActiveCount returns the number of live slots.
func (b *BurstPool) ActiveCount() int {
	n := 0
	for i := range b.Particles {
		if b.Particles[i].Life > 0 {
			n++
		}
	}
	return n
}

// Capacity returns the fixed pool size.
func (b *BurstPool) Capacity() int { return len(b.Particles) }

// TakeCounters returns and resets the trigger, activation and starvation
// counts accumulated since the previous call. A trigger is starved when it
// found fewer inactive slots than it asked for.
func (b *BurstPool) TakeCounters() (triggers, activated, starved int) {
	triggers, activated, starved = b.triggers, b.activated, b.starved
	b.triggers, b.activated, b.starved = 0, 0, 0
	return triggers, activated, starved
}
