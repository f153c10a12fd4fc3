package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Boundary.Sides != 8 {
		t.Errorf("boundary sides = %d, want 8", cfg.Boundary.Sides)
	}
	if cfg.Boundary.Radius != 8.0 {
		t.Errorf("boundary radius = %v, want 8", cfg.Boundary.Radius)
	}
	if cfg.Params.ParticleCount <= 0 {
		t.Error("expected positive default particle count")
	}
	if cfg.Flow.Fraction+cfg.Ambient.Fraction <= 0 {
		t.Error("expected positive pool fractions")
	}
	if cfg.Derived.DT32 <= 0 {
		t.Error("expected derived DT32 to be computed")
	}
	if cfg.Derived.NodeTarget != cfg.NodeTargetFor(cfg.Params.ParticleCount) {
		t.Error("derived node target should match NodeTargetFor of default count")
	}
}

func TestNodeTargetFor(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	tests := []struct {
		name      string
		particles int
		want      int
	}{
		{"above_cap", 6000, cfg.Nodes.MaxCount},
		{"default", 3000, 300},
		{"small", 40, 4},
		{"zero", 0, 0},
		{"negative", -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.NodeTargetFor(tt.particles); got != tt.want {
				t.Errorf("NodeTargetFor(%d) = %d, want %d", tt.particles, got, tt.want)
			}
		})
	}
}

func TestFractionNormalization(t *testing.T) {
	cfg := &Config{}
	cfg.Flow.Fraction = 0.9
	cfg.Ambient.Fraction = 0.6
	cfg.computeDerived()

	if sum := cfg.Flow.Fraction + cfg.Ambient.Fraction; sum > 1.0001 {
		t.Errorf("fractions should be scaled to sum <= 1, got %v", sum)
	}
	// Ratio is preserved under scaling
	ratio := cfg.Flow.Fraction / cfg.Ambient.Fraction
	if ratio < 1.49 || ratio > 1.51 {
		t.Errorf("flow/ambient ratio = %v, want 1.5", ratio)
	}

	empty := &Config{}
	empty.computeDerived()
	if empty.Flow.Fraction != 0.7 || empty.Ambient.Fraction != 0.3 {
		t.Errorf("unset fractions should default to 0.7/0.3, got %v/%v",
			empty.Flow.Fraction, empty.Ambient.Fraction)
	}
}

func TestLoadOverridesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := []byte("boundary:\n  radius: 12.0\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	if cfg.Boundary.Radius != 12.0 {
		t.Errorf("overridden radius = %v, want 12", cfg.Boundary.Radius)
	}
	// Fields absent from the override keep their defaults
	if cfg.Boundary.Sides != 8 {
		t.Errorf("sides = %d, want default 8", cfg.Boundary.Sides)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Boundary.Radius = 9.5

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if loaded.Boundary.Radius != 9.5 {
		t.Errorf("round-tripped radius = %v, want 9.5", loaded.Boundary.Radius)
	}
}
