package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the simulation state the controls panel edits.
type ControlsState struct {
	Paused bool
	Speed  int // Simulation steps per frame
}

// ControlsPanel renders the raygui pause button, speed slider and overlay toggles.
// It is anchored by its bottom-left corner.
type ControlsPanel struct {
	renderer *Renderer
	x        int32
	bottom   int32
	width    int32
	maxSpeed int

	lastHeight int32
}

const (
	controlHeight = 24
	controlGap    = 6
)

// NewControlsPanel creates a controls panel whose bottom edge sits at bottom.
func NewControlsPanel(x, bottom, width int32, maxSpeed int) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		bottom:   bottom,
		width:    width,
		maxSpeed: max(maxSpeed, 1),
	}
}

// SetPosition moves the panel's bottom-left corner.
func (c *ControlsPanel) SetPosition(x, bottom int32) {
	c.x = x
	c.bottom = bottom
}

// Contains reports whether a screen point lies on the panel as last drawn.
func (c *ControlsPanel) Contains(x, y float32) bool {
	top := c.bottom - c.lastHeight
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(top) && y <= float32(c.bottom)
}

// Height returns the panel height for n overlays.
func (c *ControlsPanel) Height(n int) int32 {
	p := c.renderer.Theme.Padding
	rows := int32(2 + n)
	return 2*p + 20 + rows*(controlHeight+controlGap)
}

// Draw renders the panel and applies clicks to state and overlays.
func (c *ControlsPanel) Draw(state *ControlsState, overlays *OverlayRegistry) {
	r := c.renderer
	descs := overlays.All()
	height := c.Height(len(descs))
	c.lastHeight = height

	top := c.bottom - height
	r.DrawPanel(c.x, top, c.width, height)

	x := float32(c.x + r.Theme.Padding)
	y := float32(top + r.Theme.Padding)
	w := float32(c.width - 2*r.Theme.Padding)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 20

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: controlHeight}, label) {
		state.Paused = !state.Paused
	}
	y += controlHeight + controlGap

	speed := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: y, Width: w - 80, Height: controlHeight},
		"Speed", fmt.Sprintf("%dx", state.Speed),
		float32(state.Speed), 1, float32(c.maxSpeed),
	)
	state.Speed = clampSpeed(speed, c.maxSpeed)
	y += controlHeight + controlGap

	for _, desc := range descs {
		mark := "[ ]"
		if overlays.IsEnabled(desc.ID) {
			mark = "[x]"
		}
		text := fmt.Sprintf("%s %s (%s)", mark, desc.Name, desc.KeyLabel)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: controlHeight}, text) {
			overlays.Toggle(desc.ID)
		}
		y += controlHeight + controlGap
	}
}

// clampSpeed rounds a slider value to a whole step count in [1, maxSpeed].
func clampSpeed(v float32, maxSpeed int) int {
	s := int(math.Round(float64(v)))
	return min(max(s, 1), maxSpeed)
}
