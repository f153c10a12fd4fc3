package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/glowlab/synaptic/camera"
)

func (a *App) handleInput() {
	a.handleResize()
	a.handleKeys()
	a.handleMouse()
}

func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.screenW = float32(rl.GetScreenWidth())
	a.screenH = float32(rl.GetScreenHeight())
}

func (a *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reseed(time.Now().UnixNano())
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}

// handleMouse projects the pointer onto the network plane and drives
// orbit, zoom, picking and pulses.
func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()
	overUI := a.panel.Contains(mouse.X, mouse.Y)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overUI {
		a.cam.Zoom(wheel)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.cam.Orbit(delta.X, delta.Y)
	}

	if overUI {
		a.scene.ClearMouse()
		return
	}

	origin, dir := a.cam.ScreenRay(mouse.X, mouse.Y, a.screenW, a.screenH)
	hit, ok := camera.RayAtZ(origin, dir, 0)
	if !ok {
		a.scene.ClearMouse()
		return
	}

	// The ray hit is in display space; undo the display scale before
	// handing the point to the scene.
	scale := a.scene.Params().NetworkScale
	if scale <= 0 {
		scale = 1
	}
	world := hit.Mul(1 / scale)
	a.scene.UpdateMousePosition(world)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if id := a.scene.PickNode(world); id >= 0 {
			a.inspector.Select(id)
		} else {
			a.inspector.Clear()
		}
		a.scene.TriggerPulse(world)
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		a.scene.TriggerBurst(world)
	}
}
