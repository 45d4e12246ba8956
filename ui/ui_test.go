package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/telemetry"
)

func TestOverlayRegistryDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayHistory) {
		t.Error("history overlay should start enabled")
	}
	if reg.IsEnabled(OverlayVisionCones) {
		t.Error("vision cones should start disabled")
	}
	if got := len(reg.All()); got != 5 {
		t.Errorf("registered overlays = %d, want 5", got)
	}
}

func TestOverlayToggleByKey(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyV)
	if !ok || id != OverlayVisionCones || !on {
		t.Fatalf("HandleKeyPress(V) = (%q, %v, %v), want (vision_cones, true, true)", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}

	reg.Toggle(OverlayVisionCones)
	if reg.IsEnabled(OverlayVisionCones) {
		t.Error("second toggle should disable the overlay")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: "a", Exclusive: []OverlayID{"b"}})
	reg.Register(OverlayDescriptor{ID: "b", Default: true})

	reg.Toggle("a")
	if !reg.IsEnabled("a") || reg.IsEnabled("b") {
		t.Errorf("enabling a should disable b: a=%v b=%v", reg.IsEnabled("a"), reg.IsEnabled("b"))
	}
}

func TestWindowPanelDescriptor(t *testing.T) {
	stats := telemetry.WindowStats{FoodAverage: 2.5, Starved: 3}

	// Title, two section headers, nine fields
	if got := WindowPanelDescriptor.Lines(stats); got != 12 {
		t.Errorf("Lines = %d, want 12", got)
	}

	for _, sd := range WindowPanelDescriptor.Sections {
		for _, fd := range sd.Fields {
			switch fd.ID {
			case "food_avg":
				if got := FieldText(fd, stats); got != "2.50" {
					t.Errorf("food_avg = %q, want 2.50", got)
				}
			case "starved":
				if got := FieldText(fd, stats); got != "3" {
					t.Errorf("starved = %q, want 3", got)
				}
			}
		}
	}
}

func TestFieldTextWrongData(t *testing.T) {
	fd := WindowPanelDescriptor.Sections[0].Fields[0]
	if got := FieldText(fd, "not stats"); got != "0.00" {
		t.Errorf("FieldText = %q, want 0.00", got)
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		value float64
		rng   FieldRange
		want  float64
	}{
		{0.5, DefaultRange(), 0.5},
		{-1, DefaultRange(), 0},
		{2, DefaultRange(), 1},
		{15, FieldRange{Min: 10, Max: 20}, 0.5},
		{1, FieldRange{Min: 1, Max: 1}, 0},
	}
	for _, tt := range tests {
		if got := barRatio(tt.value, tt.rng); got != tt.want {
			t.Errorf("barRatio(%v, %+v) = %v, want %v", tt.value, tt.rng, got, tt.want)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		v    float32
		want int
	}{
		{0, 1},
		{1.4, 1},
		{1.6, 2},
		{100, 64},
	}
	for _, tt := range tests {
		if got := clampSpeed(tt.v, 64); got != tt.want {
			t.Errorf("clampSpeed(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestControlsContainsBeforeDraw(t *testing.T) {
	c := NewControlsPanel(10, 500, 200, 8)
	if c.Contains(50, 490) {
		t.Error("panel has no area before it is drawn")
	}
	c.lastHeight = c.Height(5)
	if !c.Contains(50, 490) {
		t.Error("point inside the drawn panel not contained")
	}
}
