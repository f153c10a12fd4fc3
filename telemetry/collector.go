// Package telemetry aggregates per-window counters and timings for the
// visualization core, for structured logging and CSV export.
package telemetry

// Collector accumulates particle and interaction events within time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for the current window
	flowWraps      int
	flowRerolls    int
	ambientWraps   int
	ambientRerolls int
	burstTriggers  int
	burstActivated int
	burstStarved   int
	pulses         int
	trailsLit      int
	trailsDone     int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick, used for tick-to-time conversion.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFlow adds the flow pool's wrap and reroll counts for one tick.
func (c *Collector) RecordFlow(wraps, rerolls int) {
	c.flowWraps += wraps
	c.flowRerolls += rerolls
}

// RecordAmbient adds the ambient pool's wrap and reroll counts for one tick.
func (c *Collector) RecordAmbient(wraps, rerolls int) {
	c.ambientWraps += wraps
	c.ambientRerolls += rerolls
}

// RecordBursts adds burst trigger activity: triggers fired, particles
// activated, and triggers that found fewer free slots than requested.
func (c *Collector) RecordBursts(triggers, activated, starved int) {
	c.burstTriggers += triggers
	c.burstActivated += activated
	c.burstStarved += starved
}

// RecordPulse records one pulse wave injection.
func (c *Collector) RecordPulse() {
	c.pulses++
}

// RecordTrails adds trail activations and completions for one tick.
func (c *Collector) RecordTrails(lit, done int) {
	c.trailsLit += lit
	c.trailsDone += done
}

// ShouldFlush reports whether enough ticks have passed to close the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PoolGauges holds live pool levels sampled at window end.
type PoolGauges struct {
	Nodes       int
	Paths       int
	Flow        int
	Ambient     int
	BurstActive int
	TrailActive int
	PulseActive int
}

// Flush produces a WindowStats and resets counters for the next window.
// flowProgress carries a sample of per-particle progress values for the
// distribution columns; meanActivity is the average node glow level.
func (c *Collector) Flush(currentTick int32, gauges PoolGauges, flowProgress []float64, meanActivity float64) WindowStats {
	var rerollRate float64
	if wraps := c.flowWraps + c.ambientWraps; wraps > 0 {
		rerollRate = float64(c.flowRerolls+c.ambientRerolls) / float64(wraps)
	}

	mean, p50, p90 := ProgressStats(flowProgress)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		NodeCount:    gauges.Nodes,
		PathCount:    gauges.Paths,
		FlowCount:    gauges.Flow,
		AmbientCount: gauges.Ambient,
		BurstActive:  gauges.BurstActive,
		TrailActive:  gauges.TrailActive,
		PulseActive:  gauges.PulseActive,

		FlowWraps:      c.flowWraps,
		FlowRerolls:    c.flowRerolls,
		AmbientWraps:   c.ambientWraps,
		AmbientRerolls: c.ambientRerolls,
		BurstTriggers:  c.burstTriggers,
		BurstActivated: c.burstActivated,
		BurstStarved:   c.burstStarved,
		Pulses:         c.pulses,
		TrailsLit:      c.trailsLit,
		TrailsDone:     c.trailsDone,
		RerollRate:     rerollRate,

		FlowProgressMean: mean,
		FlowProgressP50:  p50,
		FlowProgressP90:  p90,

		NodeActivityMean: meanActivity,
	}

	c.windowStartTick = currentTick
	c.flowWraps = 0
	c.flowRerolls = 0
	c.ambientWraps = 0
	c.ambientRerolls = 0
	c.burstTriggers = 0
	c.burstActivated = 0
	c.burstStarved = 0
	c.pulses = 0
	c.trailsLit = 0
	c.trailsDone = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
