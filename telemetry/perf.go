package telemetry

import (
	"log/slog"
	"time"
)

// Phase labels for the fixed parts of the update loop, in execution order.
const (
	PhasePulses    = "pulses"
	PhaseNodes     = "nodes"
	PhaseFlow      = "flow"
	PhaseAmbient   = "ambient"
	PhaseTrails    = "trails"
	PhaseBursts    = "bursts"
	PhaseTelemetry = "telemetry"
)

// tickPhases is the canonical phase order for flat exports and log lines.
var tickPhases = []string{
	PhasePulses, PhaseNodes, PhaseFlow, PhaseAmbient,
	PhaseTrails, PhaseBursts, PhaseTelemetry,
}

// tickSpan is the timing record of one completed tick.
type tickSpan struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector times update ticks and their phases over a rolling window.
// One collector belongs to one scene; the methods are not safe for
// concurrent use.
type PerfCollector struct {
	ring   []tickSpan
	head   int // next write position
	filled int // valid records, grows until the ring is full

	open      tickSpan // tick currently being timed
	tickBegan time.Time
	spanBegan time.Time
	openPhase string

	lastFrame time.Time
	frameDT   time.Duration
}

// NewPerfCollector sizes the rolling window in ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring: make([]tickSpan, window),
		open: tickSpan{phases: make(map[string]time.Duration)},
	}
}

// StartTick opens a new tick record.
func (p *PerfCollector) StartTick() {
	p.tickBegan = time.Now()
	p.open = tickSpan{phases: make(map[string]time.Duration)}
	p.openPhase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.spanBegan = now
	p.openPhase = name
}

// EndTick closes the tick and commits it to the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.open.total = now.Sub(p.tickBegan)

	p.ring[p.head] = p.open
	p.head = (p.head + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.openPhase == "" {
		return
	}
	p.open.phases[p.openPhase] += now.Sub(p.spanBegan)
	p.openPhase = ""
}

// RecordFrame marks a render frame boundary. Frame timing is independent of
// tick timing, so headless runs simply never report it.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDT = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats is the aggregate view over the current window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window. An empty window yields zeros and
// empty maps; frame timing is filled in whenever two frames have been seen.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDT,
	}
	if p.frameDT > 0 {
		out.FPS = float64(time.Second) / float64(p.frameDT)
	}
	if p.filled == 0 {
		return out
	}

	var total time.Duration
	for i := 0; i < p.filled; i++ {
		rec := &p.ring[i]
		total += rec.total
		if i == 0 || rec.total < out.MinTickDuration {
			out.MinTickDuration = rec.total
		}
		if rec.total > out.MaxTickDuration {
			out.MaxTickDuration = rec.total
		}
		for name, d := range rec.phases {
			out.PhaseAvg[name] += d
		}
	}

	n := time.Duration(p.filled)
	out.AvgTickDuration = total / n
	for name, sum := range out.PhaseAvg {
		avg := sum / n
		out.PhaseAvg[name] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[name] = 100 * float64(avg) / float64(out.AvgTickDuration)
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogStats emits one "perf" line. Phases below 0.1% are dropped to keep the
// line readable.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, name := range tickPhases {
		if pct := s.PhasePct[name]; pct > 0.1 {
			attrs = append(attrs, name+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range tickPhases {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the flat per-window record written to perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PulsesPct    float64 `csv:"pulses_pct"`
	NodesPct     float64 `csv:"nodes_pct"`
	FlowPct      float64 `csv:"flow_pct"`
	AmbientPct   float64 `csv:"ambient_pct"`
	TrailsPct    float64 `csv:"trails_pct"`
	BurstsPct    float64 `csv:"bursts_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for CSV export.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PulsesPct:    s.PhasePct[PhasePulses],
		NodesPct:     s.PhasePct[PhaseNodes],
		FlowPct:      s.PhasePct[PhaseFlow],
		AmbientPct:   s.PhasePct[PhaseAmbient],
		TrailsPct:    s.PhasePct[PhaseTrails],
		BurstsPct:    s.PhasePct[PhaseBursts],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
