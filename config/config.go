// Package config provides configuration loading and access for the visualization.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualization configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Boundary    BoundaryConfig    `yaml:"boundary"`
	Nodes       NodesConfig       `yaml:"nodes"`
	Paths       PathsConfig       `yaml:"paths"`
	Params      ParamsConfig      `yaml:"params"`
	Flow        PathPoolConfig    `yaml:"flow"`
	Ambient     PathPoolConfig    `yaml:"ambient"`
	Burst       BurstConfig       `yaml:"burst"`
	Trail       TrailConfig       `yaml:"trail"`
	Pulse       PulseConfig       `yaml:"pulse"`
	Drift       DriftConfig       `yaml:"drift"`
	Interaction InteractionConfig `yaml:"interaction"`
	Render      RenderConfig      `yaml:"render"`
	Camera      CameraConfig      `yaml:"camera"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Filled in by computeDerived after loading.
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window and frame rate settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds timing parameters.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`           // Fixed step used by headless ticking
	MaxFrameDT float64 `yaml:"max_frame_dt"` // Frame delta clamp applied by the host loop
}

// BoundaryConfig holds the enclosing polygon parameters.
type BoundaryConfig struct {
	Sides     int     `yaml:"sides"`
	Radius    float64 `yaml:"radius"`
	Tolerance float64 `yaml:"tolerance"` // Inward tolerance for inside tests (e.g. 0.95)
}

// RingConfig seeds evenly spaced nodes on one concentric ring.
type RingConfig struct {
	Fraction float64 `yaml:"fraction"` // Of boundary radius
	Count    int     `yaml:"count"`
}

// NodesConfig holds node generation parameters.
type NodesConfig struct {
	Rings         []RingConfig `yaml:"rings"`
	RingJitter    float64      `yaml:"ring_jitter"`    // Angular jitter on ring placement (radians)
	DepthJitter   float64      `yaml:"depth_jitter"`   // Max |z| offset for seeded nodes
	InsetRatios   []float64    `yaml:"inset_ratios"`   // Boundary vertices scaled inward by these
	PerParticles  int          `yaml:"per_particles"`  // Node target = particle_count / this
	MaxCount      int          `yaml:"max_count"`      // Configured node ceiling
	MinSeparation float64      `yaml:"min_separation"` // Dedup distance threshold
	Neighbors     int          `yaml:"neighbors"`      // k for nearest-neighbour edges
	BaseActivity  float64      `yaml:"base_activity"`  // Resting glow level
	ActivityDecay float64      `yaml:"activity_decay"` // Glow decay toward base (per second)
}

// PathsConfig holds flow path shaping parameters.
type PathsConfig struct {
	WaveAmplitude  float64 `yaml:"wave_amplitude"`  // Sinusoidal z-offset on boundary paths
	MidpointJitter float64 `yaml:"midpoint_jitter"` // Perpendicular jitter on structural paths
}

// ParamsConfig holds the runtime-adjustable parameter defaults. These are
// the values the host may change per session via the control panel.
type ParamsConfig struct {
	ParticleCount  int     `yaml:"particle_count"`
	AnimationSpeed float64 `yaml:"animation_speed"`
	GlowIntensity  float64 `yaml:"glow_intensity"`
	ParticleSize   float64 `yaml:"particle_size"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	NetworkScale   float64 `yaml:"network_scale"`
}

// PathPoolConfig holds one path-following particle pool's parameters.
// Used for both the flow and ambient sections.
type PathPoolConfig struct {
	Fraction     float64 `yaml:"fraction"` // Share of params.particle_count
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	SizeMin      float64 `yaml:"size_min"`
	SizeMax      float64 `yaml:"size_max"`
	OscAmplitude float64 `yaml:"osc_amplitude"`
	OscFrequency float64 `yaml:"osc_frequency"`
	RerollChance float64 `yaml:"reroll_chance"`
	FadePortion  float64 `yaml:"fade_portion"`
}

// BurstConfig holds burst pool parameters.
type BurstConfig struct {
	Capacity  int     `yaml:"capacity"`
	Count     int     `yaml:"count"` // Particles requested per trigger
	DecayRate float64 `yaml:"decay_rate"`
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	SizeMin   float64 `yaml:"size_min"`
	SizeMax   float64 `yaml:"size_max"`
	Gravity   float64 `yaml:"gravity"`
	Drag      float64 `yaml:"drag"`
}

// TrailConfig holds trail pool parameters.
type TrailConfig struct {
	Count          int     `yaml:"count"`
	RingLength     int     `yaml:"ring_length"`
	ActivateChance float64 `yaml:"activate_chance"` // Per-frame activation probability
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMax       float64 `yaml:"speed_max"`
	MaxLife        float64 `yaml:"max_life"` // Forced timeout in seconds (0 = none)
}

// PulseConfig holds pulse wave parameters.
type PulseConfig struct {
	MaxWaves int     `yaml:"max_waves"` // Ring buffer capacity
	Life     float64 `yaml:"life"`      // Seconds per wave
	Speed    float64 `yaml:"speed"`     // Radius growth per second
	Width    float64 `yaml:"width"`     // Shell thickness for node response
	Boost    float64 `yaml:"boost"`     // Activity boost at the shell
}

// DriftConfig holds node idle animation parameters.
type DriftConfig struct {
	Alpha          float64 `yaml:"alpha"`     // Noise smoothness
	Beta           float64 `yaml:"beta"`      // Noise harmonic scaling
	Octaves        int     `yaml:"octaves"`   // Noise iteration count
	Frequency      float64 `yaml:"frequency"` // Spatial noise frequency
	Amplitude      float64 `yaml:"amplitude"`
	TimeScale      float64 `yaml:"time_scale"`
	FloatAmplitude float64 `yaml:"float_amplitude"` // Sinusoidal bob height
	FloatSpeed     float64 `yaml:"float_speed"`
}

// InteractionConfig holds pointer interaction parameters.
type InteractionConfig struct {
	NodePickRadius  float64 `yaml:"node_pick_radius"` // Hit-test sphere radius
	InfluenceRadius float64 `yaml:"influence_radius"` // Hover glow falloff radius
	InfluenceBoost  float64 `yaml:"influence_boost"`  // Hover glow strength
}

// RenderConfig holds drawing parameters that are not runtime-adjustable.
type RenderConfig struct {
	NodeRadius  float64 `yaml:"node_radius"`
	EdgeSamples int     `yaml:"edge_samples"` // Polyline segments per curve
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	OrbitSpeed  float64 `yaml:"orbit_speed"` // Radians per dragged pixel
	ZoomSpeed   float64 `yaml:"zoom_speed"`  // Distance per scroll step
	FOV         float64 `yaml:"fov"`
}

// TelemetryConfig holds stats and perf collection parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig carries values computed from the loaded fields.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	NodeTarget int     // Node count target for the default particle count
}

var global *Config

// Init loads the global configuration from path and makes it available
// through Cfg. An empty path keeps the embedded defaults.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit calls Init and panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: init: %v", err))
	}
}

// Cfg returns the configuration loaded by Init. It panics when Init has
// not run.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg before Init")
	}
	return global
}

// Load parses a YAML config file on top of the embedded defaults. An
// empty path returns the defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// The second unmarshal only touches keys present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// NodeTargetFor returns the node count target for a given particle count,
// capped at the configured ceiling.
func (c *Config) NodeTargetFor(particleCount int) int {
	per := c.Nodes.PerParticles
	if per < 1 {
		per = 10
	}
	target := particleCount / per
	if c.Nodes.MaxCount > 0 && target > c.Nodes.MaxCount {
		target = c.Nodes.MaxCount
	}
	if target < 0 {
		target = 0
	}
	return target
}

func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.NodeTarget = c.NodeTargetFor(c.Params.ParticleCount)

	// Pool fractions default to a 70/30 flow/ambient split and are scaled
	// down proportionally if they exceed the whole.
	if c.Flow.Fraction == 0 && c.Ambient.Fraction == 0 {
		c.Flow.Fraction = 0.7
		c.Ambient.Fraction = 0.3
	}
	if sum := c.Flow.Fraction + c.Ambient.Fraction; sum > 1 {
		c.Flow.Fraction /= sum
		c.Ambient.Fraction /= sum
	}
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
