// Package inspector draws a detail panel for one selected entity and a
// line graph of reporting windows.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/neural"
	"github.com/pthm-cable/forage/systems"
)

// Panel dimensions
const (
	PanelWidth    = 320
	PanelPadding  = 10
	HeaderHeight  = 30
	NetworkHeight = 200
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Entity is everything the panel shows about the selected entity.
type Entity struct {
	ID       uint32
	Rank     int // 1 is the fittest
	Position components.Position
	Life     components.Life
	Velocity float64
	Inputs   systems.SensorInputs
	Brain    *neural.Brain
}

// sensorOptions labels the input bars in neuron order.
var sensorOptions = map[string]string{"labels": "L,N,R,W", "max": "12"}

// PickFunc returns the ID of the entity at a screen point, if any.
type PickFunc func(x, y float32) (uint32, bool)

// Inspector tracks the selected entity by ID, since entities change
// ranking slots every tick.
type Inspector struct {
	selected    uint32
	hasSelected bool

	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize keeps the panel anchored to the right edge.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
}

// SetSensorScale sets the maximum drawn for sensor input bars.
func SetSensorScale(maxStrength float64) {
	sensorOptions["max"] = fmt.Sprintf("%g", maxStrength)
}

// HandleInput processes click detection for entity selection.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pick PickFunc) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		if ins.onCloseButton(mouseX, mouseY) {
			ins.Deselect()
			return
		}
		if ins.onPanel(mouseX, mouseY) {
			return
		}
	}

	if id, ok := pick(mouseX, mouseY); ok {
		ins.Select(id)
	}
}

func (ins *Inspector) onCloseButton(mouseX, mouseY float32) bool {
	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	return int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20
}

func (ins *Inspector) onPanel(mouseX, mouseY float32) bool {
	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+panelHeight()
}

// Select makes id the inspected entity.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the ID of the selected entity.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel for e.
func (ins *Inspector) Draw(e Entity) {
	if !ins.hasSelected {
		return
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight(), ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight())},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("ID: %d  Rank: %d", e.ID, e.Rank), x, y, 14, ColorHeaderText)
	y += 22
	y = ins.separator(x, y)

	for _, f := range ExtractFields(e.Position) {
		y += DrawField(x, y, f)
	}
	y += DrawLabel(x, y, "Velocity", e.Velocity, nil)
	for _, f := range ExtractFields(e.Life) {
		y += DrawField(x, y, f)
	}
	y = ins.separator(x, y)

	ins.drawSectionHeader(x, y, "SENSORS")
	y += 20
	y += DrawField(x, y, Field{Name: "Input", Value: e.Inputs, Widget: WidgetBar, Options: sensorOptions})
	y = ins.separator(x, y)

	ins.drawSectionHeader(x, y, "BRAIN")
	y += 20
	if e.Brain != nil {
		rl.DrawText(fmt.Sprintf("%d neurons, %d axons", e.Brain.NeuronCount(), e.Brain.AxonCount()), x, y, 12, ColorLabelDim)
	}
	y += 16

	DrawNetworkDiagram(x, y, PanelWidth-2*PanelPadding, NetworkHeight, e.Brain)
}

func (ins *Inspector) separator(x, y int32) int32 {
	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	return y + 8
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the fixed panel height.
func panelHeight() int32 {
	height := HeaderHeight + PanelPadding
	height += 22 + 12      // ID line, separator
	height += 20 + 20 + 44 // x, y, heading
	height += 20           // velocity
	height += 20 + 20 + 18 // food, age, hunger
	height += 12           // separator
	height += 20 + 44      // sensors header, input bars
	height += 12           // separator
	height += 20 + 16      // brain header, counts
	height += NetworkHeight
	height += PanelPadding
	return int32(height)
}
