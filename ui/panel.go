package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/glowlab/synaptic/scene"
)

const (
	sliderRowHeight = 38
	buttonHeight    = 26
	sliderCount     = 6
)

// ControlPanel exposes the runtime parameters as sliders. Particle count
// changes are quantized to hundreds so a drag does not rebuild the pools on
// every pixel of travel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates the panel, initially visible.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool { return c.visible }

// Contains reports whether a screen point falls inside the visible panel.
// The app uses this to keep panel drags from orbiting the camera.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height())
}

func (c *ControlPanel) height() int32 {
	r := c.renderer
	return r.Theme.Padding*2 + r.Theme.LineHeight + 6 + sliderCount*sliderRowHeight + 6 + buttonHeight
}

// Draw renders the panel and returns the possibly-edited parameters plus
// whether anything changed this frame.
func (c *ControlPanel) Draw(params, defaults scene.Params) (scene.Params, bool) {
	if !c.visible {
		return params, false
	}
	out := params

	r := c.renderer
	padding := r.Theme.Padding
	c.renderer.DrawPanel(c.x, c.y, c.width, c.height())

	x := c.x + padding
	y := c.y + padding
	w := float32(c.width - padding*2 - 45)

	rl.DrawText("Parameters", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	count := c.slider(x, &y, w, "Particles", float32(out.ParticleCount), 500, 8000, "%.0f")
	out.ParticleCount = int(count/100+0.5) * 100

	out.AnimationSpeed = c.slider(x, &y, w, "Speed", out.AnimationSpeed, 0, 3, "%.2f")
	out.GlowIntensity = c.slider(x, &y, w, "Glow", out.GlowIntensity, 0, 2.5, "%.2f")
	out.ParticleSize = c.slider(x, &y, w, "Size", out.ParticleSize, 0.3, 3, "%.2f")
	out.RotationSpeed = c.slider(x, &y, w, "Rotation", out.RotationSpeed, 0, 0.5, "%.3f")
	out.NetworkScale = c.slider(x, &y, w, "Scale", out.NetworkScale, 0.5, 2, "%.2f")

	y += 6
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 110, Height: buttonHeight}, "Reset") {
		out = defaults
	}

	return out, out != params
}

// slider draws one labelled slider row and returns the new value.
func (c *ControlPanel) slider(x int32, y *int32, w float32, label string, value, min, max float32, format string) float32 {
	r := c.renderer

	rl.DrawText(label, x, *y, r.Theme.FontSize, r.Theme.LabelColor)
	*y += 14

	v := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: w, Height: 16},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), x+int32(w)+6, *y+2, r.Theme.FontSize, r.Theme.ValueColor)
	*y += sliderRowHeight - 14

	return v
}
