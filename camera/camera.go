// Package camera provides the orbit camera that frames the network.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/config"
)

// pitchLimit keeps the view off the poles so the up vector never flips.
const pitchLimit = math32.Pi/2 - 0.05

// Camera orbits a fixed target point. Yaw and pitch are in radians,
// distance in world units, all clamped to the configured range.
type Camera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance float32
	MaxDistance float32
	FOV         float32

	// Input scaling
	OrbitSpeed float32 // radians per dragged pixel
	ZoomSpeed  float32 // world units per wheel notch

	homeYaw      float32
	homePitch    float32
	homeDistance float32
}

// New creates a camera using the configured framing.
func New(cfg *config.Config) *Camera {
	c := &Camera{
		Yaw:         float32(cfg.Camera.Yaw),
		Pitch:       float32(cfg.Camera.Pitch),
		Distance:    float32(cfg.Camera.Distance),
		MinDistance: float32(cfg.Camera.MinDistance),
		MaxDistance: float32(cfg.Camera.MaxDistance),
		FOV:         float32(cfg.Camera.FOV),
		OrbitSpeed:  float32(cfg.Camera.OrbitSpeed),
		ZoomSpeed:   float32(cfg.Camera.ZoomSpeed),
	}
	c.Pitch = clamp(c.Pitch, -pitchLimit, pitchLimit)
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.homeYaw, c.homePitch, c.homeDistance = c.Yaw, c.Pitch, c.Distance
	return c
}

// Orbit rotates the view by a drag delta in screen pixels.
func (c *Camera) Orbit(dx, dy float32) {
	c.Yaw = wrapAngle(c.Yaw + dx*c.OrbitSpeed)
	c.Pitch = clamp(c.Pitch+dy*c.OrbitSpeed, -pitchLimit, pitchLimit)
}

// AutoRotate advances the yaw by speed radians per second.
func (c *Camera) AutoRotate(speed, dt float32) {
	c.Yaw = wrapAngle(c.Yaw + speed*dt)
}

// Zoom moves the camera along the view axis. Positive notches zoom in.
func (c *Camera) Zoom(notches float32) {
	c.Distance = clamp(c.Distance-notches*c.ZoomSpeed, c.MinDistance, c.MaxDistance)
}

// Reset restores the configured framing.
func (c *Camera) Reset() {
	c.Yaw, c.Pitch, c.Distance = c.homeYaw, c.homePitch, c.homeDistance
}

// Position returns the camera's world position on the orbit sphere.
func (c *Camera) Position() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return c.Target.Add(mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cp * math32.Cos(c.Yaw),
	})
}

// Basis returns the view's right, up and forward unit vectors.
// Pitch never reaches the poles, so the cross products stay well defined.
func (c *Camera) Basis() (right, up, forward mgl32.Vec3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// ScreenRay returns the picking ray through a screen pixel as an origin and
// unit direction in world space.
func (c *Camera) ScreenRay(mx, my, screenW, screenH float32) (origin, dir mgl32.Vec3) {
	right, up, forward := c.Basis()

	// FOV is the vertical field of view in degrees.
	halfH := math32.Tan(c.FOV * math32.Pi / 360)
	halfW := halfH * screenW / screenH

	nx := 2*mx/screenW - 1
	ny := 1 - 2*my/screenH

	dir = forward.
		Add(right.Mul(nx * halfW)).
		Add(up.Mul(ny * halfH)).
		Normalize()
	return c.Position(), dir
}

// RayAtZ returns the point where a ray crosses the given z plane, and
// whether it does so in front of the origin.
func RayAtZ(origin, dir mgl32.Vec3, z float32) (mgl32.Vec3, bool) {
	if math32.Abs(dir.Z()) < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (z - origin.Z()) / dir.Z()
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// RLCamera converts the current framing to a raylib camera for BeginMode3D.
func (c *Camera) RLCamera() rl.Camera3D {
	p := c.Position()
	return rl.NewCamera3D(
		rl.NewVector3(p.X(), p.Y(), p.Z()),
		rl.NewVector3(c.Target.X(), c.Target.Y(), c.Target.Z()),
		rl.NewVector3(0, 1, 0),
		c.FOV,
		rl.CameraPerspective,
	)
}

// wrapAngle keeps an angle in [-pi, pi).
func wrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
