// Package app wires the scene, the orbit camera, the renderer stack and
// the UI into one interactive session.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/glowlab/synaptic/camera"
	"github.com/glowlab/synaptic/config"
	"github.com/glowlab/synaptic/inspector"
	"github.com/glowlab/synaptic/renderer"
	"github.com/glowlab/synaptic/scene"
	"github.com/glowlab/synaptic/telemetry"
	"github.com/glowlab/synaptic/ui"
)

const controlHint = "RMB drag: orbit | Wheel: zoom | LMB: pulse/select | MMB: burst | Space: pause | Tab: panel | R: reseed | Home: reset view"

// Options configure app construction.
type Options struct {
	Seed     int64
	Output   *telemetry.OutputManager
	LogStats bool
}

// App owns the interactive session.
type App struct {
	cfg *config.Config

	scene *scene.Scene
	cam   *camera.Camera

	network   *renderer.NetworkRenderer
	particles *renderer.ParticleRenderer
	pulses    *renderer.PulseRenderer

	panel     *ui.ControlPanel
	hud       *ui.HUD
	inspector *inspector.NodeInspector

	output   *telemetry.OutputManager
	logStats bool
	defaults scene.Params

	screenW, screenH float32
	paused           bool
	showHUD          bool
	elapsed          float32
}

// New builds the app. The raylib window must exist before the first Draw.
func New(cfg *config.Config, opts Options) *App {
	a := &App{
		cfg:       cfg,
		cam:       camera.New(cfg),
		network:   renderer.NewNetworkRenderer(cfg.Render.EdgeSamples, float32(cfg.Render.NodeRadius)),
		particles: renderer.NewParticleRenderer(),
		pulses:    renderer.NewPulseRenderer(float32(cfg.Pulse.Width)),
		panel:     ui.NewControlPanel(10, 110, 250),
		hud:       ui.NewHUD(),
		inspector: inspector.New(),
		output:    opts.Output,
		logStats:  opts.LogStats,
		defaults:  scene.DefaultParams(cfg),
		screenW:   cfg.Derived.ScreenW32,
		screenH:   cfg.Derived.ScreenH32,
		showHUD:   true,
	}
	a.scene = a.newScene(opts.Seed)
	return a
}

func (a *App) newScene(seed int64) *scene.Scene {
	s := scene.NewScene(a.cfg, seed)
	s.SetOutput(a.output)
	s.SetStatsLogging(a.logStats)
	return s
}

// reseed replaces the scene with a freshly generated one, keeping the
// current runtime parameters. The telemetry output carries over, so only
// the final scene may close it.
func (a *App) reseed(seed int64) {
	params := a.scene.Params()
	a.scene = a.newScene(seed)
	a.scene.UpdateParams(params)
	a.inspector.Clear()
}

// Update processes input and advances the scene by one clamped frame.
func (a *App) Update() {
	a.handleInput()

	dt := rl.GetFrameTime()
	if maxDT := float32(a.cfg.Physics.MaxFrameDT); dt > maxDT {
		// Long stall (window dragged, tab in background): drop the excess
		// time instead of letting particles jump.
		dt = maxDT
	}

	a.cam.AutoRotate(a.scene.Params().RotationSpeed, dt)

	if !a.paused {
		a.elapsed += dt
		a.scene.Update(a.elapsed, dt)
	}
	a.scene.RecordFrame()
}

// Draw renders one frame: the 3D layers inside one mode block, then the
// 2D overlays.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(renderer.Background)

	params := a.scene.Params()
	scale := params.NetworkScale
	if scale <= 0 {
		scale = 1
	}

	rl.BeginMode3D(a.cam.RLCamera())
	a.network.Draw(a.scene, params.GlowIntensity, scale)
	a.particles.DrawFlow(a.scene.Flow(), params.ParticleSize, scale)
	a.particles.DrawAmbient(a.scene.Ambient(), params.ParticleSize, scale)
	a.particles.DrawTrails(a.scene.Trails(), scale)
	a.particles.DrawBursts(a.scene.Bursts(), params.ParticleSize, scale)
	a.pulses.Draw(a.scene.Pulses(), scale)
	if sel := a.inspector.Selected(); sel >= 0 {
		a.network.DrawSelection(a.scene, sel, scale)
	}
	rl.EndMode3D()

	if a.showHUD {
		a.hud.Draw(ui.HUDData{
			Nodes:       a.scene.NodeCount(),
			Paths:       len(a.scene.FlowPaths()),
			Particles:   a.scene.Flow().Count() + a.scene.Ambient().Count(),
			TrailActive: a.scene.Trails().ActiveCount(),
			BurstActive: a.scene.Bursts().ActiveCount(),
			PulseActive: a.scene.Pulses().ActiveCount(),
			FPS:         rl.GetFPS(),
			Paused:      a.paused,
		})
		a.hud.DrawControls(int32(a.screenH), controlHint)
	}

	if newParams, changed := a.panel.Draw(params, a.defaults); changed {
		a.scene.UpdateParams(newParams)
	}

	a.inspector.Draw(a.scene, int32(a.screenW))

	rl.EndDrawing()
}

// Tick returns the number of completed scene updates.
func (a *App) Tick() int32 { return a.scene.Tick() }

// Close flushes telemetry and releases the scene's output.
func (a *App) Close() error { return a.scene.Close() }
