package telemetry

import (
	"math"
	"testing"
)

func TestProgressStats(t *testing.T) {
	// Uniform ramp over [0, 1]
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i) / 100
	}

	mean, p50, p90 := ProgressStats(values)

	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
	if math.Abs(p50-0.5) > 0.02 {
		t.Errorf("p50 = %v, want ~0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.02 {
		t.Errorf("p90 = %v, want ~0.9", p90)
	}
	if p90 <= p50 {
		t.Errorf("expected p90 (%v) > p50 (%v)", p90, p50)
	}
}

func TestProgressStatsConstant(t *testing.T) {
	mean, p50, p90 := ProgressStats([]float64{0.3, 0.3, 0.3})

	if mean != 0.3 || p50 != 0.3 || p90 != 0.3 {
		t.Errorf("constant sample should give constant stats, got mean=%v p50=%v p90=%v",
			mean, p50, p90)
	}
}

func TestProgressStatsUnsortedInput(t *testing.T) {
	unsorted := []float64{0.9, 0.1, 0.5, 0.3, 0.7}
	want := []float64{0.9, 0.1, 0.5, 0.3, 0.7}

	mean, _, _ := ProgressStats(unsorted)

	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("mean = %v, want 0.5", mean)
	}

	// Input order must be preserved
	for i := range unsorted {
		if unsorted[i] != want[i] {
			t.Fatalf("input slice mutated at %d: got %v, want %v", i, unsorted[i], want[i])
		}
	}
}

func TestProgressStatsEmpty(t *testing.T) {
	mean, p50, p90 := ProgressStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.RecordFlow(10, 3)
	c.RecordAmbient(4, 1)
	c.RecordBursts(2, 60, 1)
	c.RecordPulse()
	c.RecordPulse()
	c.RecordTrails(5, 2)

	gauges := PoolGauges{Nodes: 40, Paths: 90, Flow: 500, Ambient: 200,
		BurstActive: 30, TrailActive: 8, PulseActive: 2}

	stats := c.Flush(60, gauges, []float64{0.2, 0.4, 0.6}, 0.25)

	if stats.FlowWraps != 10 || stats.FlowRerolls != 3 {
		t.Errorf("flow counters = %d/%d, want 10/3", stats.FlowWraps, stats.FlowRerolls)
	}
	if stats.AmbientWraps != 4 || stats.AmbientRerolls != 1 {
		t.Errorf("ambient counters = %d/%d, want 4/1", stats.AmbientWraps, stats.AmbientRerolls)
	}
	if stats.BurstTriggers != 2 || stats.BurstActivated != 60 || stats.BurstStarved != 1 {
		t.Errorf("burst counters = %d/%d/%d, want 2/60/1",
			stats.BurstTriggers, stats.BurstActivated, stats.BurstStarved)
	}
	if stats.Pulses != 2 {
		t.Errorf("pulses = %d, want 2", stats.Pulses)
	}
	if stats.TrailsLit != 5 || stats.TrailsDone != 2 {
		t.Errorf("trail counters = %d/%d, want 5/2", stats.TrailsLit, stats.TrailsDone)
	}
	if stats.FlowCount != 500 || stats.NodeCount != 40 {
		t.Errorf("gauges not carried through: flow=%d nodes=%d", stats.FlowCount, stats.NodeCount)
	}

	// 4 rerolls over 14 wraps
	wantRate := 4.0 / 14.0
	if math.Abs(stats.RerollRate-wantRate) > 1e-9 {
		t.Errorf("reroll rate = %v, want %v", stats.RerollRate, wantRate)
	}

	if math.Abs(stats.FlowProgressMean-0.4) > 1e-9 {
		t.Errorf("progress mean = %v, want 0.4", stats.FlowProgressMean)
	}
	if stats.NodeActivityMean != 0.25 {
		t.Errorf("activity mean = %v, want 0.25", stats.NodeActivityMean)
	}

	// Next window starts clean
	next := c.Flush(120, gauges, nil, 0)
	if next.FlowWraps != 0 || next.BurstTriggers != 0 || next.Pulses != 0 || next.TrailsLit != 0 {
		t.Error("counters should reset after flush")
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	if c.WindowDurationTicks() != 60 {
		t.Errorf("window ticks = %d, want 60", c.WindowDurationTicks())
	}
	if c.ShouldFlush(59) {
		t.Error("should not flush before window elapses")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush once window elapses")
	}

	c.Flush(60, PoolGauges{}, nil, 0)
	if c.ShouldFlush(90) {
		t.Error("should not flush 30 ticks into second window")
	}
	if !c.ShouldFlush(120) {
		t.Error("should flush at end of second window")
	}
}

func TestCollectorZeroWrapRate(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	stats := c.Flush(60, PoolGauges{}, nil, 0)
	if stats.RerollRate != 0 {
		t.Errorf("reroll rate with no wraps = %v, want 0", stats.RerollRate)
	}
}
