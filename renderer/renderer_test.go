package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/forage/components"
)

func TestWedgePoints(t *testing.T) {
	pos := components.Position{X: 100, Y: 50, Heading: 0}
	tip, left, right := wedgePoints(pos, 10, math.Pi/4)

	if math.Abs(float64(tip.X)-110) > 1e-4 || math.Abs(float64(tip.Y)-50) > 1e-4 {
		t.Errorf("tip = (%v, %v), want (110, 50)", tip.X, tip.Y)
	}
	if left.X >= 100 || right.X >= 100 {
		t.Errorf("tail corners should sit behind the center: left.X=%v right.X=%v", left.X, right.X)
	}
	if math.Abs(float64(left.Y+right.Y)-100) > 1e-4 {
		t.Errorf("tail corners not symmetric about heading: %v, %v", left.Y, right.Y)
	}
}

func TestGraphScale(t *testing.T) {
	tests := []struct {
		v, low, high int
		want         float32
	}{
		{5, 0, 10, 0.5},
		{0, 0, 10, 0},
		{10, 0, 10, 1},
		{3, 3, 3, 0},
		{12, 0, 10, 1},
	}
	for _, tt := range tests {
		if got := graphScale(tt.v, tt.low, tt.high); got != tt.want {
			t.Errorf("graphScale(%d, %d, %d) = %v, want %v", tt.v, tt.low, tt.high, got, tt.want)
		}
	}
}
