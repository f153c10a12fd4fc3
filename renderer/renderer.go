// Package renderer draws the network scene with raylib. Each visual layer
// has its own renderer type; the app composes them inside one 3D mode block.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Palette. The scene reads as glowing circuitry on a near-black ground.
var (
	Background = rl.Color{R: 8, G: 12, B: 24, A: 255}

	frameColor = rl.Color{R: 0, G: 170, B: 190, A: 200}
	edgeColor  = rl.Color{R: 55, G: 85, B: 140, A: 110}

	nodeBase = rl.Color{R: 40, G: 110, B: 150, A: 255}
	nodeHot  = rl.Color{R: 150, G: 245, B: 255, A: 255}
	haloTint = rl.Color{R: 70, G: 200, B: 255, A: 255}

	flowTint    = rl.Color{R: 80, G: 200, B: 255, A: 190}
	ambientTint = rl.Color{R: 100, G: 140, B: 220, A: 120}
	trailTint   = rl.Color{R: 140, G: 230, B: 255, A: 200}
	pulseTint   = rl.Color{R: 200, G: 240, B: 255, A: 160}
	selectTint  = rl.Color{R: 255, G: 245, B: 180, A: 255}

	burstColors = [...]rl.Color{
		{R: 255, G: 220, B: 120, A: 255}, // spark
		{R: 255, G: 140, B: 60, A: 255},  // ember
		{R: 180, G: 220, B: 255, A: 255}, // flash
	}
)

// world converts a scene position to a raylib vector, applying the display
// scale. Scaling happens here so the simulation never sees it.
func world(v mgl32.Vec3, scale float32) rl.Vector3 {
	return rl.Vector3{X: v.X() * scale, Y: v.Y() * scale, Z: v.Z() * scale}
}

// withAlpha returns c with its alpha channel replaced by a*255, clamped.
func withAlpha(c rl.Color, a float32) rl.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a * 255)
	return c
}

// lerpColor blends a toward b by t in [0, 1], alpha included.
func lerpColor(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}
