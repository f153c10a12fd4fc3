package main

import (
	"flag"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/app"
	"github.com/glowlab/synaptic/config"
	"github.com/glowlab/synaptic/scene"
	"github.com/glowlab/synaptic/telemetry"
)

type runOptions struct {
	seed     int64
	output   *telemetry.OutputManager
	maxTicks int
	logStats bool
	inject   bool
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	inject := flag.Bool("inject", false, "Inject random pulses and bursts in headless runs")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides config
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
	}

	opts := runOptions{
		seed:     rngSeed,
		output:   output,
		maxTicks: *maxTicks,
		logStats: *logStats,
		inject:   *inject,
	}

	if *headless {
		runHeadless(cfg, opts)
		return
	}
	runWindow(cfg, opts)
}

// runHeadless ticks the scene at the fixed step. No raylib calls, so it
// runs on machines without a display.
func runHeadless(cfg *config.Config, opts runOptions) {
	s := scene.NewScene(cfg, opts.seed)
	s.SetOutput(opts.output)
	s.SetStatsLogging(opts.logStats)

	slog.Info("starting headless run",
		"seed", opts.seed,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_ticks", opts.maxTicks,
		"inject", opts.inject,
	)

	// Scripted interaction keeps pulses and bursts exercised without a
	// window. Separate stream so it never perturbs the scene's RNG.
	injectRNG := rand.New(rand.NewSource(opts.seed + 1))
	radius := float32(cfg.Boundary.Radius)

	dt := cfg.Derived.DT32
	var elapsed float32
	for {
		elapsed += dt
		s.Update(elapsed, dt)

		if opts.inject {
			// Expected one pulse per 4 and one burst per 10 sim-seconds.
			if injectRNG.Float64() < float64(dt)*0.25 {
				s.TriggerPulse(randomPoint(injectRNG, radius))
			}
			if injectRNG.Float64() < float64(dt)*0.1 {
				s.TriggerBurst(randomPoint(injectRNG, radius))
			}
		}

		if opts.maxTicks > 0 && int(s.Tick()) >= opts.maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			break
		}
	}
	if err := s.Close(); err != nil {
		slog.Error("output close failed", "error", err)
	}
}

func runWindow(cfg *config.Config, opts runOptions) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Synaptic")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := app.New(cfg, app.Options{
		Seed:     opts.seed,
		Output:   opts.output,
		LogStats: opts.logStats,
	})

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()

		if opts.maxTicks > 0 && int(a.Tick()) >= opts.maxTicks {
			break
		}
	}
	if err := a.Close(); err != nil {
		slog.Error("output close failed", "error", err)
	}
}

// randomPoint picks a uniform point inside a disc of the given radius on
// the network plane.
func randomPoint(rng *rand.Rand, radius float32) mgl32.Vec3 {
	r := radius * float32(math.Sqrt(rng.Float64()))
	theta := rng.Float64() * 2 * math.Pi
	return mgl32.Vec3{r * float32(math.Cos(theta)), r * float32(math.Sin(theta)), 0}
}
