// Package inspector provides the node detail panel for click-to-inspect.
package inspector

import (
	"fmt"

	"github.com/glowlab/synaptic/scene"
	"github.com/glowlab/synaptic/ui"
)

const panelWidth = 230

// NodeInspector tracks the selected node and draws its live state in a
// panel anchored to the top-right corner.
type NodeInspector struct {
	renderer *ui.Renderer
	selected int
}

// New creates an inspector with nothing selected.
func New() *NodeInspector {
	return &NodeInspector{
		renderer: ui.NewRenderer(),
		selected: -1,
	}
}

// Select sets the inspected node. A negative id clears the selection.
func (n *NodeInspector) Select(id int) {
	if id < 0 {
		id = -1
	}
	n.selected = id
}

// Clear drops the selection.
func (n *NodeInspector) Clear() { n.selected = -1 }

// Selected returns the inspected node id, or -1.
func (n *NodeInspector) Selected() int { return n.selected }

// Draw renders the panel for the selected node. Stale selections (after a
// rebuild shrank the node set) clear themselves.
func (n *NodeInspector) Draw(s *scene.Scene, screenW int32) {
	if n.selected < 0 {
		return
	}
	info, ok := s.NodeInfo(n.selected)
	if !ok {
		n.selected = -1
		return
	}

	r := n.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	x := screenW - panelWidth - 10
	y := int32(10)
	height := padding*2 + lineHeight*6 + 4

	r.DrawPanel(x, y, panelWidth, height)

	cx := x + padding
	cy := y + padding

	cy = r.DrawLabelValue(cx, cy, "Node", fmt.Sprintf("#%d", info.ID))
	cy = r.DrawLabelValue(cx, cy, "Degree", fmt.Sprintf("%d", info.Degree))
	cy = r.DrawLabelValue(cx, cy, "Pos", fmt.Sprintf("%.2f %.2f %.2f", info.Pos.X(), info.Pos.Y(), info.Pos.Z()))
	cy = r.DrawLabelValue(cx, cy, "Anchor", fmt.Sprintf("%.2f %.2f %.2f", info.Anchor.X(), info.Anchor.Y(), info.Anchor.Z()))
	cy += 4

	// Activity is clamped to [0, 2]; show it on a half scale.
	r.DrawBar(cx, cy, "Activity", info.Activity*0.5, panelWidth-padding*2)
}
