// Package scene assembles the generated lattice, the node entities and the
// particle pools into one frame-driven simulation, with a read-only surface
// for rendering and interaction.
package scene

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/glowlab/synaptic/components"
	"github.com/glowlab/synaptic/config"
	"github.com/glowlab/synaptic/lattice"
	"github.com/glowlab/synaptic/particles"
	"github.com/glowlab/synaptic/telemetry"
)

// Params are the runtime-adjustable knobs exposed to the control panel.
// Changing ParticleCount rebuilds the flow and ambient pools at the
// configured split; everything else only scales animation and rendering.
type Params struct {
	ParticleCount  int
	AnimationSpeed float32
	GlowIntensity  float32
	ParticleSize   float32
	RotationSpeed  float32
	NetworkScale   float32
}

// DefaultParams returns the params section of cfg as a Params value.
func DefaultParams(cfg *config.Config) Params {
	return Params{
		ParticleCount:  cfg.Params.ParticleCount,
		AnimationSpeed: float32(cfg.Params.AnimationSpeed),
		GlowIntensity:  float32(cfg.Params.GlowIntensity),
		ParticleSize:   float32(cfg.Params.ParticleSize),
		RotationSpeed:  float32(cfg.Params.RotationSpeed),
		NetworkScale:   float32(cfg.Params.NetworkScale),
	}
}

// Scene owns the world state: the immutable lattice, the node entities and
// every particle pool. One Update call advances one frame; the frame delta
// is assumed pre-clamped by the host loop (physics.max_frame_dt).
type Scene struct {
	cfg    *config.Config
	rng    *rand.Rand
	params Params

	lat *lattice.Lattice

	world      ecs.World
	nodeMapper ecs.Map5[components.Neuron, components.Position, components.Anchor, components.Oscillation, components.Activity]
	nodeFilter *ecs.Filter5[components.Neuron, components.Position, components.Anchor, components.Oscillation, components.Activity]
	actFilter  *ecs.Filter1[components.Activity]
	nodes      []ecs.Entity // index = lattice node index

	flow    *particles.PathPool
	ambient *particles.PathPool
	trails  *particles.TrailPool
	bursts  *particles.BurstPool
	pulses  *PulseField

	drift *perlin.Perlin

	mouse    mgl32.Vec3
	hasMouse bool

	tick    int32
	elapsed float32

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	onStats   func(telemetry.WindowStats)
	logStats  bool

	progressSample []float64
}

// NewScene builds the lattice, spawns node entities and allocates the
// particle pools. All randomness flows from seed, so the same seed and
// config reproduce the scene exactly.
func NewScene(cfg *config.Config, seed int64) *Scene {
	rng := rand.New(rand.NewSource(seed))
	params := DefaultParams(cfg)

	lp := lattice.Params{
		Sides:           cfg.Boundary.Sides,
		Radius:          float32(cfg.Boundary.Radius),
		InsideTolerance: float32(cfg.Boundary.Tolerance),
		RingJitter:      float32(cfg.Nodes.RingJitter),
		DepthJitter:     float32(cfg.Nodes.DepthJitter),
		TargetNodes:     cfg.NodeTargetFor(params.ParticleCount),
		MaxNodes:        cfg.Nodes.MaxCount,
		DedupPrecision:  float32(cfg.Nodes.MinSeparation),
		Neighbors:       cfg.Nodes.Neighbors,
		WaveAmplitude:   float32(cfg.Paths.WaveAmplitude),
		MidpointJitter:  float32(cfg.Paths.MidpointJitter),
	}
	for _, r := range cfg.Nodes.Rings {
		lp.Rings = append(lp.Rings, lattice.Ring{Fraction: float32(r.Fraction), Count: r.Count})
	}
	for _, ratio := range cfg.Nodes.InsetRatios {
		lp.InsetRatios = append(lp.InsetRatios, float32(ratio))
	}

	s := &Scene{
		cfg:       cfg,
		rng:       rng,
		params:    params,
		lat:       lattice.Build(lp, rng),
		world:     ecs.NewWorld(),
		drift:     perlin.NewPerlin(cfg.Drift.Alpha, cfg.Drift.Beta, int32(cfg.Drift.Octaves), seed),
		pulses:    NewPulseField(cfg.Pulse.MaxWaves, float32(cfg.Pulse.Life), float32(cfg.Pulse.Speed)),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
	}
	s.nodeMapper = ecs.NewMap5[
		components.Neuron,
		components.Position,
		components.Anchor,
		components.Oscillation,
		components.Activity,
	](&s.world)
	s.nodeFilter = ecs.NewFilter5[
		components.Neuron,
		components.Position,
		components.Anchor,
		components.Oscillation,
		components.Activity,
	](&s.world)
	s.actFilter = ecs.NewFilter1[components.Activity](&s.world)

	s.spawnNodes()
	s.buildPathPools(params.ParticleCount)
	s.trails = particles.NewTrailPool(trailConfig(cfg), s.lat.Paths, rng)
	s.bursts = particles.NewBurstPool(burstConfig(cfg), rng)

	slog.Info("scene built",
		"seed", seed,
		"nodes", len(s.lat.Nodes),
		"edges", len(s.lat.Edges),
		"paths", len(s.lat.Paths),
		"flow", s.flow.Count(),
		"ambient", s.ambient.Count(),
	)
	return s
}

// spawnNodes creates one entity per lattice node. The anchor keeps the
// generated position; the position component is what drift animates.
func (s *Scene) spawnNodes() {
	base := float32(s.cfg.Nodes.BaseActivity)
	s.nodes = make([]ecs.Entity, 0, len(s.lat.Nodes))
	for i, n := range s.lat.Nodes {
		e := s.nodeMapper.NewEntity(
			&components.Neuron{ID: uint32(i), Degree: uint16(n.Degree)},
			&components.Position{X: n.Pos.X(), Y: n.Pos.Y(), Z: n.Pos.Z()},
			&components.Anchor{X: n.Pos.X(), Y: n.Pos.Y(), Z: n.Pos.Z()},
			&components.Oscillation{
				Phase: s.rng.Float32() * 2 * math32.Pi,
				Amp:   float32(s.cfg.Drift.FloatAmplitude) * (0.6 + 0.8*s.rng.Float32()),
				Speed: float32(s.cfg.Drift.FloatSpeed) * (0.7 + 0.6*s.rng.Float32()),
			},
			&components.Activity{Base: base, Level: base},
		)
		s.nodes = append(s.nodes, e)
	}
}

// buildPathPools (re)creates the flow and ambient pools for a total
// particle budget, split by the configured fractions.
func (s *Scene) buildPathPools(total int) {
	if total < 0 {
		total = 0
	}
	flowCount := int(math.Round(float64(total) * s.cfg.Flow.Fraction))
	ambientCount := int(math.Round(float64(total) * s.cfg.Ambient.Fraction))
	if flowCount+ambientCount > total {
		ambientCount = total - flowCount
		if ambientCount < 0 {
			ambientCount = 0
		}
	}
	s.flow = particles.NewPathPool(pathConfig(s.cfg.Flow, flowCount), s.lat.Paths, s.rng)
	s.ambient = particles.NewPathPool(pathConfig(s.cfg.Ambient, ambientCount), s.lat.Paths, s.rng)
}

func pathConfig(c config.PathPoolConfig, count int) particles.PathConfig {
	return particles.PathConfig{
		Count:        count,
		SpeedMin:     float32(c.SpeedMin),
		SpeedMax:     float32(c.SpeedMax),
		SizeMin:      float32(c.SizeMin),
		SizeMax:      float32(c.SizeMax),
		OscAmplitude: float32(c.OscAmplitude),
		OscFrequency: float32(c.OscFrequency),
		RerollChance: float32(c.RerollChance),
		FadeEdge:     float32(c.FadePortion),
	}
}

func burstConfig(cfg *config.Config) particles.BurstConfig {
	return particles.BurstConfig{
		Capacity:  cfg.Burst.Capacity,
		DecayRate: float32(cfg.Burst.DecayRate),
		SpeedMin:  float32(cfg.Burst.SpeedMin),
		SpeedMax:  float32(cfg.Burst.SpeedMax),
		SizeMin:   float32(cfg.Burst.SizeMin),
		SizeMax:   float32(cfg.Burst.SizeMax),
		Gravity:   float32(cfg.Burst.Gravity),
		Drag:      float32(cfg.Burst.Drag),
	}
}

func trailConfig(cfg *config.Config) particles.TrailConfig {
	return particles.TrailConfig{
		Count:          cfg.Trail.Count,
		RingLen:        cfg.Trail.RingLength,
		ActivateChance: float32(cfg.Trail.ActivateChance),
		SpeedMin:       float32(cfg.Trail.SpeedMin),
		SpeedMax:       float32(cfg.Trail.SpeedMax),
		MaxLife:        float32(cfg.Trail.MaxLife),
	}
}

// Update advances the scene one frame. elapsed is the total animation time
// in seconds, dt the frame delta, both already clamped by the caller.
func (s *Scene) Update(elapsed, dt float32) {
	s.perf.StartTick()
	s.elapsed = elapsed
	s.tick++

	s.perf.StartPhase(telemetry.PhasePulses)
	s.pulses.Update(dt)

	s.perf.StartPhase(telemetry.PhaseNodes)
	s.updateNodes(dt)

	s.perf.StartPhase(telemetry.PhaseFlow)
	s.flow.Update(elapsed, dt, s.params.AnimationSpeed)

	s.perf.StartPhase(telemetry.PhaseAmbient)
	s.ambient.Update(elapsed, dt, s.params.AnimationSpeed)

	s.perf.StartPhase(telemetry.PhaseTrails)
	s.trails.Update(dt, s.params.AnimationSpeed)

	s.perf.StartPhase(telemetry.PhaseBursts)
	s.bursts.Update(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordTelemetry()

	s.perf.EndTick()
}

// recordTelemetry moves the pools' per-tick counters into the collector and
// flushes a stats window when due.
func (s *Scene) recordTelemetry() {
	w, r := s.flow.TakeCounters()
	s.collector.RecordFlow(w, r)
	w, r = s.ambient.TakeCounters()
	s.collector.RecordAmbient(w, r)
	tg, act, st := s.bursts.TakeCounters()
	s.collector.RecordBursts(tg, act, st)
	lit, done := s.trails.TakeCounters()
	s.collector.RecordTrails(lit, done)

	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.gauges(), s.flowProgress(), s.meanActivity())
	if s.logStats {
		stats.LogStats()
	}
	if s.onStats != nil {
		s.onStats(stats)
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}

	perfStats := s.perf.Stats()
	if s.logStats {
		perfStats.LogStats()
	}
	if err := s.output.WritePerf(perfStats, s.tick); err != nil {
		slog.Error("perf write failed", "error", err)
	}
}

func (s *Scene) gauges() telemetry.PoolGauges {
	return telemetry.PoolGauges{
		Nodes:       len(s.lat.Nodes),
		Paths:       len(s.lat.Paths),
		Flow:        s.flow.Count(),
		Ambient:     s.ambient.Count(),
		BurstActive: s.bursts.ActiveCount(),
		TrailActive: s.trails.ActiveCount(),
		PulseActive: s.pulses.ActiveCount(),
	}
}

// flowProgress copies the flow pool's progress values into a reusable
// float64 scratch for the stats distribution.
func (s *Scene) flowProgress() []float64 {
	s.progressSample = s.progressSample[:0]
	for _, pr := range s.flow.Progress {
		s.progressSample = append(s.progressSample, float64(pr))
	}
	return s.progressSample
}

// UpdateParams applies new runtime parameters. Geometry is never rebuilt; a
// changed ParticleCount rebuilds only the flow and ambient pools, keeping
// the configured flow/ambient split.
func (s *Scene) UpdateParams(p Params) {
	if p.ParticleCount != s.params.ParticleCount {
		s.buildPathPools(p.ParticleCount)
	}
	s.params = p
}

// Params returns the active runtime parameters.
func (s *Scene) Params() Params { return s.params }

// SetOutput attaches an output manager for CSV export. The scene takes
// ownership and closes it in Close. nil disables file output.
func (s *Scene) SetOutput(om *telemetry.OutputManager) { s.output = om }

// SetStatsCallback registers a hook that receives every flushed stats
// window. Used by headless drivers that score a run without file output.
func (s *Scene) SetStatsCallback(fn func(telemetry.WindowStats)) { s.onStats = fn }

// SetStatsLogging turns per-window slog output on or off. Off by default;
// CSV output and the stats callback are unaffected.
func (s *Scene) SetStatsLogging(on bool) { s.logStats = on }

// RecordFrame forwards a frame boundary to the perf collector.
func (s *Scene) RecordFrame() { s.perf.RecordFrame() }

// Close writes a final stats window and closes the attached output.
func (s *Scene) Close() error {
	if s.output == nil {
		return nil
	}
	stats := s.collector.Flush(s.tick, s.gauges(), s.flowProgress(), s.meanActivity())
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
	if err := s.output.WritePerf(s.perf.Stats(), s.tick); err != nil {
		slog.Error("perf write failed", "error", err)
	}
	return s.output.Close()
}

// Lattice returns the immutable generated structure.
func (s *Scene) Lattice() *lattice.Lattice { return s.lat }

// FlowPaths returns the shared path list. Callers must treat it as
// read-only; it is never replaced after construction.
func (s *Scene) FlowPaths() []lattice.FlowPath { return s.lat.Paths }

// NodeCount returns the number of node entities.
func (s *Scene) NodeCount() int { return len(s.nodes) }

// EachNode calls fn for every node with its id, current position, degree
// and glow level. Iteration order is not the id order.
func (s *Scene) EachNode(fn func(id int, pos mgl32.Vec3, degree int, level float32)) {
	query := s.nodeFilter.Query()
	for query.Next() {
		neuron, pos, _, _, act := query.Get()
		fn(int(neuron.ID), pos.Vec(), int(neuron.Degree), act.Level)
	}
}

// NodePositions returns the current node positions indexed by node id.
func (s *Scene) NodePositions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, s.NodeCount())
	s.EachNode(func(id int, pos mgl32.Vec3, _ int, _ float32) {
		out[id] = pos
	})
	return out
}

// Flow returns the flow particle pool for rendering.
func (s *Scene) Flow() *particles.PathPool { return s.flow }

// Ambient returns the ambient particle pool for rendering.
func (s *Scene) Ambient() *particles.PathPool { return s.ambient }

// Trails returns the trail pool for rendering.
func (s *Scene) Trails() *particles.TrailPool { return s.trails }

// Bursts returns the burst pool for rendering.
func (s *Scene) Bursts() *particles.BurstPool { return s.bursts }

// Pulses returns the pulse field for rendering.
func (s *Scene) Pulses() *PulseField { return s.pulses }

// Tick returns the number of completed updates.
func (s *Scene) Tick() int32 { return s.tick }

// Elapsed returns the animation time of the latest update.
func (s *Scene) Elapsed() float32 { return s.elapsed }
