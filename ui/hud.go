package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the values the heads-up display shows.
type HUDData struct {
	Nodes       int
	Paths       int
	Particles   int
	TrailActive int
	BurstActive int
	PulseActive int
	FPS         int32
	Paused      bool
}

// HUD renders the top-left status block and the bottom control legend.
type HUD struct{}

// NewHUD returns a ready-to-use HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the status block.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Synaptic", 10, 10, 20, rl.White)

	y := h.line(35, fmt.Sprintf("Nodes: %d | Paths: %d | Particles: %d",
		data.Nodes, data.Paths, data.Particles))
	y = h.line(y, fmt.Sprintf("Trails: %d | Bursts: %d | Pulses: %d | FPS: %d",
		data.TrailActive, data.BurstActive, data.PulseActive, data.FPS))
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}
}

func (h *HUD) line(y int32, text string) int32 {
	rl.DrawText(text, 10, y, 16, rl.LightGray)
	return y + 20
}

// DrawControls renders the control legend along the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
