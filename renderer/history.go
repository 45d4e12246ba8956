package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/telemetry"
)

var (
	colorGraphBg     = rl.Color{R: 15, G: 15, B: 25, A: 230}
	colorGraphBorder = rl.Color{R: 60, G: 60, B: 70, A: 255}
	colorGraphGrid   = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphLine   = rl.Color{R: 255, G: 200, B: 80, A: 255}
	colorGraphText   = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// HistoryGraph plots the best-fitness samples between the low and high score.
type HistoryGraph struct{}

// NewHistoryGraph creates a history graph.
func NewHistoryGraph() *HistoryGraph {
	return &HistoryGraph{}
}

// Draw renders the graph into the given screen rectangle. The horizontal
// axis spans the full history capacity so the line grows to the right.
func (g *HistoryGraph) Draw(h *telemetry.History, x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, colorGraphBg)
	rl.DrawRectangleLines(x, y, width, height, colorGraphBorder)
	for i := int32(1); i < 4; i++ {
		gridY := y + height*i/4
		rl.DrawLine(x, gridY, x+width, gridY, colorGraphGrid)
	}

	rl.DrawText("BEST FITNESS", x+6, y+4, 10, colorGraphText)

	samples := h.Samples()
	if len(samples) < 2 {
		return
	}

	low, high := h.LowScore(), h.HighScore()
	plotY, plotH := y+18, height-24
	var prev rl.Vector2
	for i, s := range samples {
		p := rl.Vector2{
			X: float32(x) + float32(i)*float32(width)/float32(h.Capacity()-1),
			Y: float32(plotY) + float32(plotH)*(1-graphScale(s, low, high)),
		}
		if i > 0 {
			rl.DrawLineV(prev, p, colorGraphLine)
		}
		prev = p
	}

	label := fmt.Sprintf("%d", high)
	rl.DrawText(label, x+width-rl.MeasureText(label, 10)-4, y+4, 10, colorGraphText)
	label = fmt.Sprintf("%d", low)
	rl.DrawText(label, x+width-rl.MeasureText(label, 10)-4, y+height-12, 10, colorGraphText)
}

// graphScale maps v into [0, 1] between low and high. A flat range maps to 0.
func graphScale(v, low, high int) float32 {
	if high <= low {
		return 0
	}
	t := float32(v-low) / float32(high-low)
	return min(max(t, 0), 1)
}
