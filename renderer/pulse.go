package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/glowlab/synaptic/scene"
)

// PulseRenderer draws expanding pulse rings in the network plane.
type PulseRenderer struct {
	width float32
}

// NewPulseRenderer creates a pulse renderer. width is the visual shell
// thickness in world units.
func NewPulseRenderer(width float32) *PulseRenderer {
	if width <= 0 {
		width = 1
	}
	return &PulseRenderer{width: width}
}

// Draw renders each live wave as three concentric rings so the shell reads
// as a band rather than a hairline.
func (r *PulseRenderer) Draw(field *scene.PulseField, scale float32) {
	waves := field.Waves()
	if len(waves) == 0 {
		return
	}
	axis := rl.Vector3{X: 0, Y: 0, Z: 1}

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range waves {
		w := &waves[i]
		radius := w.Radius * scale
		if radius < 0.01 {
			radius = 0.01
		}
		half := r.width * 0.5 * scale
		alpha := w.Intensity * float32(pulseTint.A) / 255

		center := world(w.Origin, scale)
		rl.DrawCircle3D(center, radius, axis, 0, withAlpha(pulseTint, alpha))
		if radius > half {
			rl.DrawCircle3D(center, radius-half, axis, 0, withAlpha(pulseTint, alpha*0.35))
		}
		rl.DrawCircle3D(center, radius+half, axis, 0, withAlpha(pulseTint, alpha*0.35))
	}
	rl.EndBlendMode()
}
