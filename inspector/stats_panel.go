package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/telemetry"
)

const (
	// History buffer size (number of windows to keep)
	statsHistorySize = 120

	// Line series indices
	seriesFoodAvg    = 0
	seriesP50        = 1
	seriesP90        = 2
	seriesBest       = 3
	seriesEfficiency = 4
	seriesEaten      = 5
	seriesDeaths     = 6
	numSeries        = 7
)

// Fitness series share the left axis; rates share the right one.
var (
	fitnessSeries = []int{seriesFoodAvg, seriesP50, seriesP90, seriesBest}
	rateSeries    = []int{seriesEfficiency, seriesEaten, seriesDeaths}
)

// StatsPanel displays recent reporting windows as line graphs.
type StatsPanel struct {
	screenWidth  int32
	screenHeight int32

	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	latest telemetry.WindowStats

	// Ring buffers, one per series
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	// Toggled by clicking the legend
	seriesVisible [numSeries]bool

	seriesNames  [numSeries]string
	seriesColors [numSeries]rl.Color
}

// Stats panel colors
var (
	colorStatsTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorStatsPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg      = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid    = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder  = rl.Color{R: 60, G: 60, B: 70, A: 255}
)

// NewStatsPanel creates a stats panel along the bottom of the screen.
func NewStatsPanel(screenWidth, screenHeight int32) *StatsPanel {
	p := &StatsPanel{panelHeight: 200}
	p.Resize(screenWidth, screenHeight)

	for i := range p.history {
		p.history[i] = make([]float64, statsHistorySize)
	}

	p.seriesVisible = [numSeries]bool{
		true,  // Food avg
		false, // Median
		true,  // P90
		true,  // Best
		false, // Efficiency
		true,  // Eaten
		true,  // Deaths
	}
	p.seriesNames = [numSeries]string{"Food avg", "Median", "P90", "Best", "Effic.", "Eaten", "Deaths"}
	p.seriesColors = [numSeries]rl.Color{
		{R: 100, G: 149, B: 237, A: 255}, // Cornflower blue
		{R: 150, G: 200, B: 255, A: 255}, // Light blue
		{R: 80, G: 180, B: 80, A: 255},   // Green
		{R: 255, G: 200, B: 80, A: 255},  // Gold
		{R: 255, G: 255, B: 100, A: 255}, // Yellow
		{R: 150, G: 255, B: 150, A: 255}, // Light green
		{R: 255, G: 100, B: 80, A: 255},  // Red-orange
	}

	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *StatsPanel) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight

	// Leave room on the right for the inspector
	p.panelWidth = max(screenWidth-PanelWidth-40, 400)
	p.panelX = 10
	p.panelY = screenHeight - p.panelHeight - 40
}

// Update records a new reporting window.
func (p *StatsPanel) Update(stats telemetry.WindowStats) {
	p.latest = stats

	idx := p.historyIndex
	p.history[seriesFoodAvg][idx] = stats.FoodAverage
	p.history[seriesP50][idx] = stats.FitnessP50
	p.history[seriesP90][idx] = stats.FitnessP90
	p.history[seriesBest][idx] = float64(stats.Best)
	p.history[seriesEfficiency][idx] = stats.Efficiency
	p.history[seriesEaten][idx] = float64(stats.Eaten)
	p.history[seriesDeaths][idx] = float64(stats.Starved + stats.Wandered + stats.Natural)

	p.historyIndex = (p.historyIndex + 1) % statsHistorySize
	if p.historyCount < statsHistorySize {
		p.historyCount++
	}
}

// Len returns the number of windows retained.
func (p *StatsPanel) Len() int {
	return p.historyCount
}

// Series returns the retained values of one series, oldest first.
func (p *StatsPanel) Series(series int) []float64 {
	out := make([]float64, p.historyCount)
	for i := range out {
		out[i] = p.history[series][p.ringIndex(i)]
	}
	return out
}

func (p *StatsPanel) ringIndex(i int) int {
	return (p.historyIndex - p.historyCount + i + statsHistorySize) % statsHistorySize
}

// HandleInput processes mouse clicks for legend toggling.
func (p *StatsPanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	if i, ok := p.legendItemAt(rl.GetMouseX(), rl.GetMouseY()); ok {
		p.seriesVisible[i] = !p.seriesVisible[i]
	}
}

// legendItemAt returns the series whose legend entry covers a screen point.
func (p *StatsPanel) legendItemAt(mx, my int32) (int, bool) {
	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*90
		if mx >= itemX && mx < itemX+85 && my >= legendY && my < legendY+18 {
			return i, true
		}
	}
	return 0, false
}

// Draw renders the panel with graphs.
func (p *StatsPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorStatsPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText("WINDOWS", p.panelX+10, p.panelY+6, 14, colorStatsTitle)

	if p.historyCount == 0 {
		rl.DrawText("Waiting for data...", p.panelX+100, p.panelY+80, 14, ColorTextDim)
		return
	}

	summaryWidth := int32(160)
	graphX := p.panelX + summaryWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - summaryWidth - 40
	graphH := p.panelHeight - 54

	p.drawSummary(p.panelX+10, p.panelY+28)
	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawSummary prints the latest window's key numbers.
func (p *StatsPanel) drawSummary(x, y int32) {
	s := p.latest
	lines := []string{
		fmt.Sprintf("Tick   %d", s.WindowEndTick),
		fmt.Sprintf("Food   %.2f", s.FoodAverage),
		fmt.Sprintf("Life   %.0f", s.LifeAverage),
		fmt.Sprintf("Effic. %.2f", s.Efficiency),
		fmt.Sprintf("Best   %d", s.Best),
		fmt.Sprintf("TPS    %.0f", s.TicksPerSec),
	}
	for _, line := range lines {
		rl.DrawText(line, x, y, 11, ColorText)
		y += 18
	}
}

// drawGraph renders the line graph.
func (p *StatsPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	fitMin, fitMax := p.seriesRange(fitnessSeries)
	rateMin, rateMax := p.seriesRange(rateSeries)

	for _, series := range fitnessSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, fitMin, fitMax)
		}
	}
	for _, series := range rateSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, rateMin, rateMax)
		}
	}

	rl.DrawText(formatValue(fitMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(formatValue(fitMin), x+2, y+h-10, 9, ColorTextDim)
	maxLabel, minLabel := formatValue(rateMax), formatValue(rateMin)
	rl.DrawText(maxLabel, x+w-rl.MeasureText(maxLabel, 9)-2, y+2, 9, ColorTextDim)
	rl.DrawText(minLabel, x+w-rl.MeasureText(minLabel, 9)-2, y+h-10, 9, ColorTextDim)
}

// seriesRange finds min/max across the visible series, padded by 10%.
func (p *StatsPanel) seriesRange(seriesIndices []int) (lo, hi float64) {
	lo = math.MaxFloat64
	hi = -math.MaxFloat64
	hasVisible := false

	for _, s := range seriesIndices {
		if !p.seriesVisible[s] {
			continue
		}
		hasVisible = true
		for i := 0; i < p.historyCount; i++ {
			v := p.history[s][p.ringIndex(i)]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	if !hasVisible || lo >= hi {
		return 0, 1
	}

	padding := math.Max((hi-lo)*0.1, 0.001)
	return lo - padding, hi + padding
}

// drawSeriesLine draws one data series as a line.
func (p *StatsPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		v := p.history[series][p.ringIndex(i)]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		py = min(max(py, y), y+h)

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the interactive legend.
func (p *StatsPanel) drawLegend(x, y int32) {
	itemWidth := int32(90)

	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	hintX := x + int32(numSeries)*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

// formatValue formats an axis value for display.
func formatValue(v float64) string {
	switch a := math.Abs(v); {
	case a >= 10000:
		return fmt.Sprintf("%.0fk", v/1000)
	case a >= 1000:
		return fmt.Sprintf("%.1fk", v/1000)
	case a >= 100:
		return fmt.Sprintf("%.0f", v)
	case a >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
