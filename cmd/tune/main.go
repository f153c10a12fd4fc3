// Package main tunes particle motion parameters with CMA-ES: it searches
// for pool speeds and chances that keep the flow field evenly covered and
// the trails gently active.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/glowlab/synaptic/config"
)

type tuneOptions struct {
	configPath string
	outputDir  string
	maxTicks   int
	seeds      int
	maxEvals   int
	population int
}

func main() {
	var opts tuneOptions
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.IntVar(&opts.maxTicks, "max-ticks", 3600, "Ticks per headless run (60s at 60 tps)")
	flag.IntVar(&opts.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Evaluation budget")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.Parse()

	if opts.outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts tuneOptions) error {
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = 42 + int64(i)*7919
	}
	evaluator := NewFitnessEvaluator(params, int32(opts.maxTicks), seeds, config.Cfg())

	progress, err := newEvalLog(filepath.Join(opts.outputDir, "tune_log.csv"), params, opts.maxEvals)
	if err != nil {
		return err
	}
	defer progress.close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params.Denormalize(x))
			progress.record(params.Clamp(params.Denormalize(x)), fitness, evaluator.LastQuality())
			return fitness
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0, // sequential evaluations; seeds run in parallel inside
	}
	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("tuning %d parameters, population %d, budget %d evals, %d seeds x %d ticks\n",
		params.Dim(), popSize, opts.maxEvals, opts.seeds, opts.maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		// CMA-ES commonly stops on its own convergence conditions; the best
		// evaluation so far is still valid.
		log.Printf("tuning stopped: %v", err)
	}

	best := progress.bestParams()
	if best == nil {
		best = params.Denormalize(result.X)
	}
	fmt.Printf("\ndone after %d evaluations in %s\n",
		progress.evals, time.Since(progress.started).Round(time.Second))
	fmt.Printf("best quality: %.3f\n", -progress.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-22s %.6f\n", spec.Name, best[i])
	}

	return writeBestConfig(opts.configPath, opts.outputDir, params, best)
}

// writeBestConfig bakes the winning parameters into a fresh copy of the base
// config and saves it next to the log.
func writeBestConfig(configPath, outputDir string, params *ParamVector, best []float64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("reloading base config: %w", err)
	}
	params.ApplyToConfig(cfg, best)

	out := filepath.Join(outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("best config saved to %s\n", out)
	return nil
}

// evalLog streams one CSV row per evaluation, prints progress with an ETA,
// and remembers the best parameter set seen.
type evalLog struct {
	file  *os.File
	w     *csv.Writer
	specs []ParamSpec

	evals       int
	maxEvals    int
	started     time.Time
	bestFitness float64
	best        []float64
}

func newEvalLog(path string, params *ParamVector, maxEvals int) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	l := &evalLog{
		file:        f,
		w:           csv.NewWriter(f),
		specs:       params.Specs,
		maxEvals:    maxEvals,
		started:     time.Now(),
		bestFitness: 1e9,
	}
	header := []string{"eval", "fitness"}
	for _, spec := range l.specs {
		header = append(header, spec.Name)
	}
	l.w.Write(header)
	l.w.Flush()
	return l, nil
}

// record logs one evaluation. clamped holds the parameter values the run
// actually used.
func (l *evalLog) record(clamped []float64, fitness, quality float64) {
	l.evals++
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.best = append(l.best[:0], clamped...)
	}

	row := make([]string, 0, len(clamped)+2)
	row = append(row, strconv.Itoa(l.evals), fmt.Sprintf("%.6f", fitness))
	for _, v := range clamped {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	l.w.Write(row)
	l.w.Flush()

	elapsed := time.Since(l.started)
	remaining := time.Duration(0)
	if l.evals < l.maxEvals {
		remaining = elapsed / time.Duration(l.evals) * time.Duration(l.maxEvals-l.evals)
	}
	fmt.Printf("eval %3d/%d  quality %.3f  best %.3f  elapsed %s  eta %s\n",
		l.evals, l.maxEvals, quality, -l.bestFitness,
		elapsed.Round(time.Second), remaining.Round(time.Second))
}

// bestParams returns a copy of the best clamped parameters, or nil before
// the first evaluation.
func (l *evalLog) bestParams() []float64 {
	if l.best == nil {
		return nil
	}
	out := make([]float64, len(l.best))
	copy(out, l.best)
	return out
}

func (l *evalLog) close() {
	l.w.Flush()
	l.file.Close()
}
