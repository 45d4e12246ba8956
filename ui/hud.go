package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Population   int
	FoodCount    int
	Tick         int64
	Speed        int
	FPS          int32
	Paused       bool
	BestFitness  int
	HighScore    int
	Efficiency   float64
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Population: %d | Food: %d | Best: %d | Record: %d | Efficiency: %.1f",
			data.Population, data.FoodCount, data.BestFitness, data.HighScore, data.Efficiency),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	width := int32(220)
	height := int32(len(telemetry.Phases))*14 + 60
	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 12, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// WindowPanelDescriptor lays out the most recent reporting window.
var WindowPanelDescriptor = PanelDescriptor{
	ID:    "window",
	Title: "Last Window",
	Sections: []SectionDescriptor{
		{
			ID:    "fitness",
			Title: "Fitness",
			Fields: []FieldDescriptor{
				{ID: "food_avg", Label: "Food avg", Widget: WidgetText, Format: "%.2f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return s.FoodAverage })},
				{ID: "life_avg", Label: "Life avg", Widget: WidgetText, Format: "%.0f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return s.LifeAverage })},
				{ID: "efficiency", Label: "Efficiency", Widget: WidgetText, Format: "%.2f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return s.Efficiency })},
				{ID: "p50", Label: "Median", Widget: WidgetText, Format: "%.1f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return s.FitnessP50 })},
				{ID: "p90", Label: "P90", Widget: WidgetText, Format: "%.1f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return s.FitnessP90 })},
			},
		},
		{
			ID:    "events",
			Title: "Events",
			Fields: []FieldDescriptor{
				{ID: "eaten", Label: "Eaten", Widget: WidgetText, Format: "%.0f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return float64(s.Eaten) })},
				{ID: "starved", Label: "Starved", Widget: WidgetText, Format: "%.0f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return float64(s.Starved) })},
				{ID: "wandered", Label: "Wandered", Widget: WidgetText, Format: "%.0f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return float64(s.Wandered) })},
				{ID: "natural", Label: "Old age", Widget: WidgetText, Format: "%.0f", Getter: windowGetter(func(s telemetry.WindowStats) float64 { return float64(s.Natural) })},
			},
		},
	},
}

func windowGetter(fn func(telemetry.WindowStats) float64) func(any) float64 {
	return func(data any) float64 {
		s, ok := data.(telemetry.WindowStats)
		if !ok {
			return 0
		}
		return fn(s)
	}
}

// WindowPanel shows the latest telemetry window through WindowPanelDescriptor.
type WindowPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewWindowPanel creates a window stats panel.
func NewWindowPanel(x, y, width int32) *WindowPanel {
	return &WindowPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders stats; a zero window shows a waiting message.
func (w *WindowPanel) Draw(stats telemetry.WindowStats) {
	r := w.renderer
	desc := WindowPanelDescriptor
	height := int32(desc.Lines(stats))*r.Theme.LineHeight + r.Theme.Padding*2 + 4*int32(len(desc.Sections))
	r.DrawPanel(w.x, w.y, w.width, height)

	x := w.x + r.Theme.Padding
	y := w.y + r.Theme.Padding
	rl.DrawText(desc.Title, x, y, 14, rl.White)
	y += r.Theme.LineHeight

	if stats.WindowEndTick == 0 {
		rl.DrawText("Waiting for data...", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return
	}
	for _, sd := range desc.Sections {
		y = r.DrawSection(x, y, sd, stats, w.width-2*r.Theme.Padding)
	}
}
