package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/glowlab/synaptic/particles"
)

// Base world-space radius of one path particle before per-particle size and
// the user size multiplier are applied.
const particleRadius = 0.045

// ParticleRenderer draws every particle population with additive blending.
type ParticleRenderer struct{}

// NewParticleRenderer creates a particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// DrawFlow renders the main flow population.
func (r *ParticleRenderer) DrawFlow(pool *particles.PathPool, sizeScale, scale float32) {
	r.drawPathPool(pool, flowTint, sizeScale, scale)
}

// DrawAmbient renders the drifting ambient population.
func (r *ParticleRenderer) DrawAmbient(pool *particles.PathPool, sizeScale, scale float32) {
	r.drawPathPool(pool, ambientTint, sizeScale*0.8, scale)
}

func (r *ParticleRenderer) drawPathPool(pool *particles.PathPool, tint rl.Color, sizeScale, scale float32) {
	maxAlpha := float32(tint.A) / 255

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range pool.Pos {
		fade := pool.Fade[i]
		if fade < 0.02 {
			continue
		}
		radius := pool.Size[i] * particleRadius * sizeScale * scale
		rl.DrawSphereEx(world(pool.Pos[i], scale), radius, 4, 6, withAlpha(tint, fade*maxAlpha))
	}
	rl.EndBlendMode()
}

// DrawTrails renders each active trail as a segment strip fading toward
// the tail.
func (r *ParticleRenderer) DrawTrails(pool *particles.TrailPool, scale float32) {
	maxAlpha := float32(trailTint.A) / 255

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range pool.Trails {
		tr := &pool.Trails[i]
		if !tr.Active {
			continue
		}
		for j := 0; j < len(tr.Points)-1; j++ {
			a := tr.Alpha[j] * maxAlpha
			if a < 0.02 {
				break
			}
			rl.DrawLine3D(world(tr.Points[j], scale), world(tr.Points[j+1], scale), withAlpha(trailTint, a))
		}
	}
	rl.EndBlendMode()
}

// DrawBursts renders live burst particles, colored by sub-type and faded
// by remaining life.
func (r *ParticleRenderer) DrawBursts(pool *particles.BurstPool, sizeScale, scale float32) {
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range pool.Particles {
		b := &pool.Particles[i]
		if b.Life <= 0 {
			continue
		}
		tint := burstColors[int(b.Kind)%len(burstColors)]
		radius := b.Size * particleRadius * 1.6 * sizeScale * scale
		rl.DrawSphereEx(world(b.Pos, scale), radius, 6, 8, withAlpha(tint, b.Life))
	}
	rl.EndBlendMode()
}
