package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated particle statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Live gauges at window end
	NodeCount    int `csv:"nodes"`
	PathCount    int `csv:"paths"`
	FlowCount    int `csv:"flow"`
	AmbientCount int `csv:"ambient"`
	BurstActive  int `csv:"burst_active"`
	TrailActive  int `csv:"trail_active"`
	PulseActive  int `csv:"pulse_active"`

	// Events during window
	FlowWraps      int `csv:"flow_wraps"`
	FlowRerolls    int `csv:"flow_rerolls"`
	AmbientWraps   int `csv:"ambient_wraps"`
	AmbientRerolls int `csv:"ambient_rerolls"`
	BurstTriggers  int `csv:"burst_triggers"`
	BurstActivated int `csv:"burst_activated"`
	BurstStarved   int `csv:"burst_starved"`
	Pulses         int `csv:"pulses"`
	TrailsLit      int `csv:"trails_lit"`
	TrailsDone     int `csv:"trails_done"`

	// RerollRate is rerolls per wrap across both path pools.
	RerollRate float64 `csv:"reroll_rate"`

	// Flow progress distribution (sampled at window end)
	FlowProgressMean float64 `csv:"flow_progress_mean"`
	FlowProgressP50  float64 `csv:"flow_progress_p50"`
	FlowProgressP90  float64 `csv:"flow_progress_p90"`

	NodeActivityMean float64 `csv:"node_activity_mean"`
}

// ProgressStats calculates the mean, median and 90th percentile of a
// progress sample. The input is copied before sorting.
func ProgressStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("nodes", s.NodeCount),
		slog.Int("paths", s.PathCount),
		slog.Int("flow", s.FlowCount),
		slog.Int("ambient", s.AmbientCount),
		slog.Int("burst_active", s.BurstActive),
		slog.Int("trail_active", s.TrailActive),
		slog.Int("pulse_active", s.PulseActive),
		slog.Int("flow_wraps", s.FlowWraps),
		slog.Int("flow_rerolls", s.FlowRerolls),
		slog.Int("ambient_wraps", s.AmbientWraps),
		slog.Int("ambient_rerolls", s.AmbientRerolls),
		slog.Int("burst_triggers", s.BurstTriggers),
		slog.Int("burst_activated", s.BurstActivated),
		slog.Int("burst_starved", s.BurstStarved),
		slog.Int("pulses", s.Pulses),
		slog.Int("trails_lit", s.TrailsLit),
		slog.Int("trails_done", s.TrailsDone),
		slog.Float64("reroll_rate", s.RerollRate),
		slog.Float64("flow_progress_mean", s.FlowProgressMean),
		slog.Float64("flow_progress_p50", s.FlowProgressP50),
		slog.Float64("flow_progress_p90", s.FlowProgressP90),
		slog.Float64("node_activity_mean", s.NodeActivityMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"nodes", s.NodeCount,
		"paths", s.PathCount,
		"flow", s.FlowCount,
		"ambient", s.AmbientCount,
		"burst_active", s.BurstActive,
		"trail_active", s.TrailActive,
		"pulse_active", s.PulseActive,
		"flow_wraps", s.FlowWraps,
		"flow_rerolls", s.FlowRerolls,
		"ambient_wraps", s.AmbientWraps,
		"ambient_rerolls", s.AmbientRerolls,
		"burst_triggers", s.BurstTriggers,
		"burst_activated", s.BurstActivated,
		"burst_starved", s.BurstStarved,
		"pulses", s.Pulses,
		"trails_lit", s.TrailsLit,
		"trails_done", s.TrailsDone,
		"reroll_rate", s.RerollRate,
		"flow_progress_mean", s.FlowProgressMean,
		"flow_progress_p50", s.FlowProgressP50,
		"flow_progress_p90", s.FlowProgressP90,
		"node_activity_mean", s.NodeActivityMean,
	)
}
