// Package particles implements the fixed-capacity pools that animate the
// structure: path-following flow and ambient populations, click-triggered
// bursts, and path-sampling trails. Pools never grow or shrink after
// construction, and nothing here allocates in the per-frame path.
package particles

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// smoothstep is the standard Hermite ease between lo and hi.
func smoothstep(lo, hi, x float32) float32 {
	t := clamp32((x-lo)/(hi-lo), 0, 1)
	return t * t * (3 - 2*t)
}

// fadeRamp ramps intensity up over the first edge fraction of progress and
// back down over the last, so particles never pop at path endpoints.
func fadeRamp(t, edge float32) float32 {
	if edge <= 0 {
		return 1
	}
	return smoothstep(0, edge, t) * (1 - smoothstep(1-edge, 1, t))
}

// oscOffset is a small perpendicular wobble that keeps path followers from
// looking like beads on a wire. Purely visual.
func oscOffset(tan mgl32.Vec3, theta, amp float32) mgl32.Vec3 {
	if amp <= 0 {
		return mgl32.Vec3{}
	}
	side := tan.Cross(mgl32.Vec3{0, 0, 1})
	if side.LenSqr() < 1e-9 {
		side = mgl32.Vec3{1, 0, 0}
	} else {
		side = side.Normalize()
	}
	up := tan.Cross(side)
	return side.Mul(math32.Cos(theta) * amp).Add(up.Mul(math32.Sin(theta) * amp * 0.6))
}

// randomOnSphere samples a uniformly distributed unit vector.
func randomOnSphere(rng *rand.Rand) mgl32.Vec3 {
	z := rng.Float32()*2 - 1
	a := rng.Float32() * 2 * math32.Pi
	r := math32.Sqrt(1 - z*z)
	return mgl32.Vec3{r * math32.Cos(a), r * math32.Sin(a), z}
}

func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
