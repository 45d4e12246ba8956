package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/neural"
)

// InputLabels name the input-layer neurons in slot order.
var InputLabels = []string{"Food L", "Food", "Food R", "Wall"}

// Network diagram colors.
var (
	ColorNodeResting  = rl.Color{R: 60, G: 60, B: 60, A: 255}
	ColorNodeCharged  = rl.Color{R: 255, G: 140, B: 60, A: 255}
	ColorNodeBorder   = rl.Color{R: 100, G: 100, B: 100, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// DrawNetworkDiagram renders the brain as one column per layer, with each
// axon drawn to its target in the next layer. Node brightness is the
// neuron's excitation relative to its threshold.
func DrawNetworkDiagram(x, y, width, height int32, brain *neural.Brain) {
	if brain == nil || len(brain.Layers) == 0 {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	// Leave room for labels on both sides
	left := float32(x) + 50
	right := float32(x+width) - 50
	nodes := nodePositions(brain, left, right, float32(y)+10, float32(height)-20)
	nodeRadius := float32(7)

	for l, layer := range brain.Layers[:len(brain.Layers)-1] {
		for s, n := range layer {
			for _, a := range n.Axons {
				drawEdge(nodes[l][s], nodes[l+1][a.Target], a.Strength)
			}
		}
	}

	last := len(brain.Layers) - 1
	for l, layer := range brain.Layers {
		for s, n := range layer {
			drawNode(nodes[l][s], nodeRadius, charge(n))

			switch {
			case l == 0 && s < len(InputLabels):
				label := InputLabels[s]
				w := float32(rl.MeasureText(label, 10))
				rl.DrawText(label, int32(nodes[l][s].X-nodeRadius-w-4), int32(nodes[l][s].Y)-5, 10, ColorLabelDim)
			case l == last && s < int(neural.NumMotors):
				rl.DrawText(neural.Motor(s).String(), int32(nodes[l][s].X+nodeRadius+4), int32(nodes[l][s].Y)-5, 10, ColorLabelDim)
			}
		}
	}
}

// nodePositions lays out neurons in evenly spaced columns between left and right.
func nodePositions(brain *neural.Brain, left, right, top, height float32) [][]rl.Vector2 {
	out := make([][]rl.Vector2, len(brain.Layers))
	cols := len(brain.Layers)
	for l, layer := range brain.Layers {
		cx := left
		if cols > 1 {
			cx = left + (right-left)*float32(l)/float32(cols-1)
		}
		out[l] = make([]rl.Vector2, len(layer))
		spacing := height / float32(len(layer))
		for s := range layer {
			out[l][s] = rl.Vector2{X: cx, Y: top + spacing*(float32(s)+0.5)}
		}
	}
	return out
}

// charge is a neuron's excitation as a fraction of its threshold.
func charge(n neural.Neuron) float64 {
	if n.Threshold <= 0 {
		return 0
	}
	return clamp01(n.Excitation / n.Threshold)
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius float32, charge float64) {
	rl.DrawCircleV(pos, radius, lerpColor(ColorNodeResting, ColorNodeCharged, charge))
	rl.DrawCircleLinesV(pos, radius, ColorNodeBorder)
}

// drawEdge renders an axon; thickness and alpha follow its strength.
func drawEdge(from, to rl.Vector2, strength float64) {
	mag := math.Abs(strength)
	thickness := float32(math.Min(math.Max(mag*0.25, 0.5), 3))

	color := ColorEdgePositive
	if strength < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(math.Min(40+mag*10, 160))

	rl.DrawLineEx(from, to, thickness, color)
}
