package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PulseWave is one expanding spherical shell.
type PulseWave struct {
	Origin    mgl32.Vec3
	Radius    float32
	Life      float32 // remaining seconds
	Intensity float32 // remaining life over initial life
}

// PulseField holds the bounded set of active pulse waves. Triggering at
// capacity evicts the oldest wave; expired waves are dropped during Update.
type PulseField struct {
	maxWaves int
	life     float32
	speed    float32

	waves []PulseWave // oldest first
}

// NewPulseField creates a field of at most maxWaves waves, each living life
// seconds and growing speed units per second.
func NewPulseField(maxWaves int, life, speed float32) *PulseField {
	if maxWaves < 1 {
		maxWaves = 1
	}
	if life <= 0 {
		life = 3
	}
	return &PulseField{
		maxWaves: maxWaves,
		life:     life,
		speed:    speed,
		waves:    make([]PulseWave, 0, maxWaves),
	}
}

// Trigger starts a new wave at origin with radius 0 and full intensity.
func (f *PulseField) Trigger(origin mgl32.Vec3) {
	if len(f.waves) >= f.maxWaves {
		copy(f.waves, f.waves[1:])
		f.waves = f.waves[:len(f.waves)-1]
	}
	f.waves = append(f.waves, PulseWave{Origin: origin, Life: f.life, Intensity: 1})
}

// Update grows every wave and retires those whose life ran out.
func (f *PulseField) Update(dt float32) {
	alive := f.waves[:0]
	for _, w := range f.waves {
		w.Life -= dt
		if w.Life <= 0 {
			continue
		}
		w.Radius += f.speed * dt
		w.Intensity = w.Life / f.life
		alive = append(alive, w)
	}
	f.waves = alive
}

// Waves returns the active waves, oldest first. The slice is owned by the
// field and only valid until the next Trigger or Update.
func (f *PulseField) Waves() []PulseWave { return f.waves }

// ActiveCount returns the number of live waves.
func (f *PulseField) ActiveCount() int { return len(f.waves) }
