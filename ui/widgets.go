// Package ui provides the control panel and heads-up display drawn over
// the 3D scene.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	Accent      rl.Color
	BarBg       rl.Color
	BarFill     rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 14, G: 20, B: 32, A: 235},
		PanelBorder: rl.Color{R: 50, G: 70, B: 100, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		Accent:      rl.Color{R: 90, G: 210, B: 255, A: 255},
		BarBg:       rl.Color{R: 35, G: 42, B: 55, A: 255},
		BarFill:     rl.Color{R: 80, G: 180, B: 230, A: 255},

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Renderer draws the primitives the overlay panels are built from.
type Renderer struct {
	Theme Theme
}

// NewRenderer returns a Renderer styled with DefaultTheme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a panel rectangle and outlines it.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	t := r.Theme
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}

// DrawLabelValue draws "label: value" and returns the Y of the next line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}

// DrawBar draws a labelled progress bar for a [0, 1] value.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	t := r.Theme
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}

	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)

	barX := x + t.LabelWidth
	barW := width - t.LabelWidth - 45
	rl.DrawRectangle(barX, y+2, barW, t.BarHeight, t.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*value), t.BarHeight, t.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barW+5, y, t.FontSize, t.ValueColor)

	return y + t.LineHeight + 2
}
