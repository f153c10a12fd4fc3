// Lattice preview tool - interactive structure generation with sliders.
//
// Usage: go run ./cmd/latticeview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/glowlab/synaptic/lattice"
)

const (
	windowWidth  = 1100
	windowHeight = 840
	previewSize  = 700
	panelWidth   = windowWidth - previewSize - 30
)

// ViewParams holds the generation parameters exposed to the sliders.
type ViewParams struct {
	Sides          int
	Radius         float32
	TargetNodes    int
	RingJitter     float32
	DepthJitter    float32
	Neighbors      int
	WaveAmplitude  float32
	MidpointJitter float32
	Seed           int64
}

func defaultViewParams() ViewParams {
	return ViewParams{
		Sides:          8,
		Radius:         8.0,
		TargetNodes:    300,
		RingJitter:     0.15,
		DepthJitter:    0.8,
		Neighbors:      4,
		WaveAmplitude:  0.5,
		MidpointJitter: 0.6,
		Seed:           12345,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Lattice Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultViewParams()
	lat := rebuild(params)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			lat = rebuild(params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 10, G: 14, B: 26, A: 255})

		drawLattice(lat, params)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats
		meanDegree := float32(0)
		for _, n := range lat.Nodes {
			meanDegree += float32(n.Degree)
		}
		if len(lat.Nodes) > 0 {
			meanDegree /= float32(len(lat.Nodes))
		}
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Nodes: %d  Edges: %d  Paths: %d  Mean degree: %.1f",
			len(lat.Nodes), len(lat.Edges), len(lat.Paths), meanDegree), 15, statsY, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Lattice Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		// Sides slider
		rl.DrawText("Sides (boundary polygon)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSides := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"3", "12",
			float32(params.Sides), 3, 12,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Sides), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newSides) != params.Sides {
			params.Sides = int(newSides)
			needsRegen = true
		}
		panelY += 35

		// Radius slider
		rl.DrawText("Radius", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadius := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"4", "16",
			params.Radius, 4, 16,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Radius), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newRadius != params.Radius {
			params.Radius = newRadius
			needsRegen = true
		}
		panelY += 35

		// Node target slider
		rl.DrawText("Node target", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTarget := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"50", "500",
			float32(params.TargetNodes), 50, 500,
		)
		rl.DrawText(fmt.Sprintf("%d", params.TargetNodes), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newTarget) != params.TargetNodes {
			params.TargetNodes = int(newTarget)
			needsRegen = true
		}
		panelY += 35

		// Ring jitter slider
		rl.DrawText("Ring jitter (angular, radians)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRingJitter := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.5",
			params.RingJitter, 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.RingJitter), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newRingJitter != params.RingJitter {
			params.RingJitter = newRingJitter
			needsRegen = true
		}
		panelY += 35

		// Depth jitter slider
		rl.DrawText("Depth jitter (max |z|)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDepthJitter := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "2",
			params.DepthJitter, 0, 2,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.DepthJitter), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newDepthJitter != params.DepthJitter {
			params.DepthJitter = newDepthJitter
			needsRegen = true
		}
		panelY += 35

		// Neighbors slider
		rl.DrawText("Neighbors (k per node)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newNeighbors := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "6",
			float32(params.Neighbors), 1, 6,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Neighbors), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int(newNeighbors) != params.Neighbors {
			params.Neighbors = int(newNeighbors)
			needsRegen = true
		}
		panelY += 35

		// Wave amplitude slider
		rl.DrawText("Wave amplitude (boundary z-wave)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newWave := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1.5",
			params.WaveAmplitude, 0, 1.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.WaveAmplitude), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newWave != params.WaveAmplitude {
			params.WaveAmplitude = newWave
			needsRegen = true
		}
		panelY += 35

		// Midpoint jitter slider
		rl.DrawText("Midpoint jitter (edge curvature)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMidJitter := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1.5",
			params.MidpointJitter, 0, 1.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.MidpointJitter), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if newMidJitter != params.MidpointJitter {
			params.MidpointJitter = newMidJitter
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultViewParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p ViewParams) []string {
	return []string{
		"boundary:",
		fmt.Sprintf("  sides: %d", p.Sides),
		fmt.Sprintf("  radius: %.1f", p.Radius),
		"nodes:",
		fmt.Sprintf("  ring_jitter: %.2f", p.RingJitter),
		fmt.Sprintf("  depth_jitter: %.2f", p.DepthJitter),
		fmt.Sprintf("  neighbors: %d", p.Neighbors),
		"paths:",
		fmt.Sprintf("  wave_amplitude: %.2f", p.WaveAmplitude),
		fmt.Sprintf("  midpoint_jitter: %.2f", p.MidpointJitter),
	}
}

// rebuild regenerates the lattice with the default ring/inset layout and
// the slider-controlled parameters.
func rebuild(p ViewParams) *lattice.Lattice {
	lp := lattice.Params{
		Sides:           p.Sides,
		Radius:          p.Radius,
		InsideTolerance: 0.95,
		Rings: []lattice.Ring{
			{Fraction: 0.35, Count: 8},
			{Fraction: 0.6, Count: 12},
		},
		RingJitter:     p.RingJitter,
		DepthJitter:    p.DepthJitter,
		InsetRatios:    []float32{0.9, 0.72},
		TargetNodes:    p.TargetNodes,
		MaxNodes:       500,
		Neighbors:      p.Neighbors,
		WaveAmplitude:  p.WaveAmplitude,
		MidpointJitter: p.MidpointJitter,
	}
	return lattice.Build(lp, rand.New(rand.NewSource(p.Seed)))
}

// project maps a world-space point into the preview square, top-down.
func project(p mgl32.Vec3, radius float32) rl.Vector2 {
	scale := float32(previewSize) / (2.2 * radius)
	return rl.Vector2{
		X: 10 + previewSize/2 + p.X()*scale,
		Y: 10 + previewSize/2 - p.Y()*scale,
	}
}

// drawLattice renders a top-down projection. Depth maps to brightness so
// the z-jitter stays visible in 2D.
func drawLattice(lat *lattice.Lattice, params ViewParams) {
	const pathSamples = 16

	for _, path := range lat.Paths {
		col := rl.Color{R: 50, G: 80, B: 130, A: 255}
		thickness := float32(1)
		if path.Main {
			col = rl.Color{R: 0, G: 170, B: 190, A: 255}
			thickness = 2
		}
		prev := project(path.Curve.PointAt(0), params.Radius)
		for i := 1; i <= pathSamples; i++ {
			t := float32(i) / pathSamples
			next := project(path.Curve.PointAt(t), params.Radius)
			rl.DrawLineEx(prev, next, thickness, col)
			prev = next
		}
	}

	for _, n := range lat.Nodes {
		pos := project(n.Pos, params.Radius)
		radius := 3 + float32(n.Degree)*0.6

		// Brightness from depth: nodes in front of the plane render lighter.
		shade := float32(0.5)
		if params.DepthJitter > 0 {
			shade = 0.5 + 0.5*n.Pos.Z()/params.DepthJitter
			if shade < 0 {
				shade = 0
			}
			if shade > 1 {
				shade = 1
			}
		}
		col := rl.Color{
			R: uint8(60 + 120*shade),
			G: uint8(140 + 100*shade),
			B: uint8(180 + 75*shade),
			A: 255,
		}
		rl.DrawCircleV(pos, radius, col)
	}
}
