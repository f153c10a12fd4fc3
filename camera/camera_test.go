package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestNewUsesConfiguredFraming(t *testing.T) {
	cfg := testConfig(t)
	cam := New(cfg)

	if cam.Yaw != float32(cfg.Camera.Yaw) {
		t.Errorf("yaw = %v, want %v", cam.Yaw, cfg.Camera.Yaw)
	}
	if cam.Pitch != float32(cfg.Camera.Pitch) {
		t.Errorf("pitch = %v, want %v", cam.Pitch, cfg.Camera.Pitch)
	}
	if cam.Distance != float32(cfg.Camera.Distance) {
		t.Errorf("distance = %v, want %v", cam.Distance, cfg.Camera.Distance)
	}
	if cam.FOV != float32(cfg.Camera.FOV) {
		t.Errorf("fov = %v, want %v", cam.FOV, cfg.Camera.FOV)
	}
}

func TestPositionKeepsOrbitDistance(t *testing.T) {
	cam := New(testConfig(t))

	angles := []struct{ yaw, pitch float32 }{
		{0, 0},
		{1.2, 0.4},
		{-2.5, -1.0},
		{3.0, 1.3},
	}
	for _, a := range angles {
		cam.Yaw, cam.Pitch = a.yaw, a.pitch
		d := cam.Position().Sub(cam.Target).Len()
		if math.Abs(float64(d-cam.Distance)) > 1e-3 {
			t.Errorf("yaw=%v pitch=%v: orbit distance %v, want %v", a.yaw, a.pitch, d, cam.Distance)
		}
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(testConfig(t))

	cam.Orbit(0, 1e6)
	if cam.Pitch != pitchLimit {
		t.Errorf("pitch = %v, want clamp at %v", cam.Pitch, float32(pitchLimit))
	}
	cam.Orbit(0, -1e6)
	if cam.Pitch != -pitchLimit {
		t.Errorf("pitch = %v, want clamp at %v", cam.Pitch, -float32(pitchLimit))
	}
}

func TestZoomClampsDistance(t *testing.T) {
	cam := New(testConfig(t))

	cam.Zoom(1e6)
	if cam.Distance != cam.MinDistance {
		t.Errorf("distance = %v, want min %v", cam.Distance, cam.MinDistance)
	}
	cam.Zoom(-1e6)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("distance = %v, want max %v", cam.Distance, cam.MaxDistance)
	}
}

func TestAutoRotateAdvancesYaw(t *testing.T) {
	cam := New(testConfig(t))
	before := cam.Yaw

	cam.AutoRotate(0.5, 0.1)

	if math.Abs(float64(cam.Yaw-before-0.05)) > 1e-4 {
		t.Errorf("yaw advanced by %v, want 0.05", cam.Yaw-before)
	}
}

func TestAutoRotateWrapsYaw(t *testing.T) {
	cam := New(testConfig(t))

	// Many full revolutions must not accumulate an unbounded angle.
	for i := 0; i < 10000; i++ {
		cam.AutoRotate(2.0, 1.0/60.0)
	}
	if cam.Yaw < -math.Pi-1e-4 || cam.Yaw > math.Pi+1e-4 {
		t.Errorf("yaw left wrap range: %v", cam.Yaw)
	}
}

func TestScreenRayCenterLooksAtTarget(t *testing.T) {
	cam := New(testConfig(t))

	origin, dir := cam.ScreenRay(640, 360, 1280, 720)

	if origin != cam.Position() {
		t.Errorf("ray origin %v, want camera position %v", origin, cam.Position())
	}
	want := cam.Target.Sub(cam.Position()).Normalize()
	if dir.Sub(want).Len() > 1e-4 {
		t.Errorf("center ray direction %v, want %v", dir, want)
	}
}

func TestScreenRayHitsTargetPlane(t *testing.T) {
	cam := New(testConfig(t))

	origin, dir := cam.ScreenRay(640, 360, 1280, 720)
	hit, ok := RayAtZ(origin, dir, 0)
	if !ok {
		t.Fatal("center ray should reach the z=0 plane")
	}
	if hit.Sub(cam.Target).Len() > 1e-3 {
		t.Errorf("center ray hit %v, want target %v", hit, cam.Target)
	}
}

func TestRayAtZ(t *testing.T) {
	hit, ok := RayAtZ(mgl32.Vec3{1, 2, 10}, mgl32.Vec3{0, 0, -1}, 0)
	if !ok {
		t.Fatal("straight ray should hit the plane")
	}
	if hit != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("hit = %v, want (1, 2, 0)", hit)
	}

	if _, ok := RayAtZ(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{1, 0, 0}, 0); ok {
		t.Error("ray parallel to the plane should miss")
	}
	if _, ok := RayAtZ(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}, 0); ok {
		t.Error("plane behind the ray should miss")
	}
}

func TestResetRestoresFraming(t *testing.T) {
	cfg := testConfig(t)
	cam := New(cfg)

	cam.Orbit(500, 300)
	cam.Zoom(5)
	cam.Reset()

	if cam.Yaw != float32(cfg.Camera.Yaw) {
		t.Errorf("yaw = %v, want %v", cam.Yaw, cfg.Camera.Yaw)
	}
	if cam.Pitch != float32(cfg.Camera.Pitch) {
		t.Errorf("pitch = %v, want %v", cam.Pitch, cfg.Camera.Pitch)
	}
	if cam.Distance != float32(cfg.Camera.Distance) {
		t.Errorf("distance = %v, want %v", cam.Distance, cfg.Camera.Distance)
	}
}

func TestRLCameraMatchesState(t *testing.T) {
	cam := New(testConfig(t))
	rc := cam.RLCamera()

	p := cam.Position()
	if rc.Position.X != p.X() || rc.Position.Y != p.Y() || rc.Position.Z != p.Z() {
		t.Errorf("position %v, want %v", rc.Position, p)
	}
	if rc.Fovy != cam.FOV {
		t.Errorf("fovy = %v, want %v", rc.Fovy, cam.FOV)
	}
	if rc.Up.Y != 1 {
		t.Errorf("up = %v, want +Y", rc.Up)
	}
}
