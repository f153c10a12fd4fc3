package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPulseWaveExpansion(t *testing.T) {
	f := NewPulseField(8, 3, 8)
	f.Trigger(mgl32.Vec3{1, 2, 0})

	dt := float32(1.0 / 60.0)
	for i := 0; i < 90; i++ { // 1.5 simulated seconds
		f.Update(dt)
	}

	if f.ActiveCount() != 1 {
		t.Fatalf("expected 1 active wave, got %d", f.ActiveCount())
	}
	w := f.Waves()[0]
	if w.Radius < 11.9 || w.Radius > 12.1 {
		t.Errorf("radius after 1.5s = %v, want ~12", w.Radius)
	}
	if w.Intensity < 0.49 || w.Intensity > 0.51 {
		t.Errorf("intensity after 1.5s = %v, want ~0.5", w.Intensity)
	}

	for i := 0; i < 100; i++ { // past the 3 second life
		f.Update(dt)
	}
	if f.ActiveCount() != 0 {
		t.Errorf("expected wave retired after its life, still %d active", f.ActiveCount())
	}
}

func TestPulseEvictOldest(t *testing.T) {
	f := NewPulseField(8, 3, 8)
	for i := 0; i < 8; i++ {
		f.Trigger(mgl32.Vec3{float32(i), 0, 0})
	}
	if f.ActiveCount() != 8 {
		t.Fatalf("expected 8 active waves, got %d", f.ActiveCount())
	}

	f.Trigger(mgl32.Vec3{99, 0, 0})

	if f.ActiveCount() != 8 {
		t.Errorf("capacity exceeded: %d waves", f.ActiveCount())
	}
	waves := f.Waves()
	if waves[0].Origin.X() != 1 {
		t.Errorf("oldest wave should be evicted; head origin x = %v, want 1", waves[0].Origin.X())
	}
	if waves[len(waves)-1].Origin.X() != 99 {
		t.Errorf("newest wave missing; tail origin x = %v, want 99", waves[len(waves)-1].Origin.X())
	}
}

func TestPulseFieldMinimumCapacity(t *testing.T) {
	f := NewPulseField(0, 3, 8)
	f.Trigger(mgl32.Vec3{})
	f.Trigger(mgl32.Vec3{1, 0, 0})
	if f.ActiveCount() != 1 {
		t.Errorf("expected capacity clamp to 1, got %d waves", f.ActiveCount())
	}
}

func TestPulseMonotonic(t *testing.T) {
	f := NewPulseField(8, 3, 8)
	f.Trigger(mgl32.Vec3{})

	dt := float32(1.0 / 60.0)
	lastRadius := float32(-1)
	lastIntensity := float32(2)
	for i := 0; i < 170; i++ {
		f.Update(dt)
		if f.ActiveCount() == 0 {
			break
		}
		w := f.Waves()[0]
		if w.Radius <= lastRadius {
			t.Fatalf("radius not increasing at tick %d: %v -> %v", i, lastRadius, w.Radius)
		}
		if w.Intensity >= lastIntensity {
			t.Fatalf("intensity not decreasing at tick %d: %v -> %v", i, lastIntensity, w.Intensity)
		}
		lastRadius = w.Radius
		lastIntensity = w.Intensity
	}
}
