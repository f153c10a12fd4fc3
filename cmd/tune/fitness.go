package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/glowlab/synaptic/config"
	"github.com/glowlab/synaptic/scene"
	"github.com/glowlab/synaptic/telemetry"
)

// Scoring weights and targets. Quality lands in [0, 1] and fitness is its
// negation: runs never fail outright, so the score is purely how good the
// motion looks.
const (
	weightCoverage = 0.35
	weightTurnover = 0.30
	weightTrails   = 0.20
	weightSteady   = 0.15

	warmupWindows = 2 // pools are still filling; skip

	targetWrapRate  = 0.15 // flow laps per particle per sim-second
	targetTrailDuty = 0.4  // fraction of trail slots lit

	tuneStatsWindow = 5.0 // sim-seconds per scored window
)

// FitnessEvaluator scores a parameter vector by running short headless
// scenes over several seeds and aggregating their telemetry windows.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64
}

func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the mean quality of the most recent Evaluate call.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate runs every seed in parallel and returns the fitness to minimize
// (negative mean quality).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qualities[i] = fe.scoreRun(x, seed)
		}()
	}
	wg.Wait()

	quality := stat.Mean(qualities, nil)

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// scoreRun executes one headless run and scores its telemetry windows.
// Window stats arrive through the scene's stats callback, so no files are
// written.
func (fe *FitnessEvaluator) scoreRun(x []float64, seed int64) float64 {
	cfg := fe.runConfig(x)

	var windows []telemetry.WindowStats
	s := scene.NewScene(cfg, seed)
	s.SetStatsCallback(func(stats telemetry.WindowStats) {
		windows = append(windows, stats)
	})

	dt := cfg.Derived.DT32
	var elapsed float32
	for s.Tick() < fe.maxTicks {
		elapsed += dt
		s.Update(elapsed, dt)
	}

	return fe.quality(windows)
}

// runConfig clones the base config with the candidate parameters applied
// and the stats window pinned to the tuning cadence. The clone shares the
// node ring slices, which nothing mutates; every tuned field is a scalar.
func (fe *FitnessEvaluator) runConfig(x []float64) *config.Config {
	cfg := *fe.baseConfig
	cfg.Telemetry.StatsWindow = tuneStatsWindow
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}

// quality folds a run's windows into one score.
func (fe *FitnessEvaluator) quality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}

	var coverage, turnover, trails float64
	var scored int
	var wrapRates []float64

	trailSlots := float64(fe.baseConfig.Trail.Count)

	for _, w := range windows[warmupWindows:] {
		if w.FlowCount == 0 {
			continue
		}
		scored++

		// Coverage: particles spread along their paths, not bunched.
		// Uniform progress has mean 0.5 and p90 near 0.9.
		coverage += 0.6*band(w.FlowProgressMean, 0.5, 0.15) + 0.4*band(w.FlowProgressP90, 0.9, 0.10)

		// Turnover: lap rate in a band that reads as steady drift.
		rate := float64(w.FlowWraps) / (float64(w.FlowCount) * tuneStatsWindow)
		wrapRates = append(wrapRates, rate)
		turnover += band(rate, targetWrapRate, 0.10)

		// Trail duty: some trails lit, never all of them at once.
		if trailSlots > 0 {
			trails += band(float64(w.TrailActive)/trailSlots, targetTrailDuty, 0.20)
		}
	}
	if scored == 0 {
		return 0
	}

	n := float64(scored)
	q := weightCoverage*coverage/n +
		weightTurnover*turnover/n +
		weightTrails*trails/n +
		weightSteady*steadiness(wrapRates)

	return math.Min(1, math.Max(0, q))
}

// band scores how close x sits to target with a Gaussian falloff: 1 at the
// target, ~0.37 one width away.
func band(x, target, width float64) float64 {
	d := (x - target) / width
	return math.Exp(-d * d)
}

// steadiness maps the spread of per-window wrap rates onto [0, 1]; zero
// variation across windows is perfectly steady.
func steadiness(rates []float64) float64 {
	if len(rates) < 2 {
		return 0
	}
	mean := stat.Mean(rates, nil)
	if mean == 0 {
		return 0
	}
	c := stat.StdDev(rates, nil) / mean
	return math.Exp(-c * c * 4)
}
