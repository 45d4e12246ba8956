package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/inspector"
	"github.com/pthm-cable/forage/ui"
)

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()

	rl.BeginMode2D(g.camera2D())

	w, h := g.pop.Bounds().Size()
	g.world.DrawBackground(w, h)
	g.world.DrawFood(g.pop.Food())

	entities := g.pop.Snapshot()
	selectedID, hasSelection := g.inspector.Selected()
	for _, e := range entities {
		if g.overlays.IsEnabled(ui.OverlayVisionCones) {
			g.world.DrawVision(e.Position)
		}
		g.world.DrawEntity(e.Position, e.Slot == 0)
	}

	var selected EntityView
	if hasSelection {
		var ok bool
		if selected, ok = g.findEntity(selectedID); ok {
			g.world.DrawSelection(selected.Position)
		} else {
			g.inspector.Deselect()
			hasSelection = false
		}
	}

	rl.EndMode2D()

	g.drawUI()

	if hasSelection {
		g.inspector.Draw(inspector.Entity{
			ID:       selected.ID,
			Rank:     selected.Slot + 1,
			Position: selected.Position,
			Life:     selected.Life,
			Velocity: selected.Velocity,
			Inputs:   g.pop.Inputs(selected.Slot),
			Brain:    selected.Brain,
		})
	}

	rl.EndDrawing()
}

// drawUI draws the HUD, panels and graphs.
func (g *Game) drawUI() {
	best := g.pop.Best()
	g.hud.Draw(ui.HUDData{
		Title:        "Forage",
		Population:   g.pop.Len(),
		FoodCount:    len(g.pop.Food()),
		Tick:         g.pop.TickCount(),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		BestFitness:  best.Life.FoodEaten,
		HighScore:    g.history.HighScore(),
		Efficiency:   g.lastStats.Efficiency,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})

	if g.overlays.IsEnabled(ui.OverlayHistory) {
		g.historyGraph.Draw(g.history, 240, int32(g.screenHeight)-180, 300, 140)
	}
	if g.overlays.IsEnabled(ui.OverlayWindowStats) {
		g.windowPanel.Draw(g.lastStats)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayStatsGraph) {
		g.statsPanel.Draw()
	}

	state := ui.ControlsState{Paused: g.paused, Speed: g.stepsPerUpdate}
	g.controls.Draw(&state, g.overlays)
	g.paused = state.Paused
	g.stepsPerUpdate = state.Speed

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"SPACE: Pause | < >: Speed | Click: Inspect | Wheel/Arrows: View | V: Vision | H: History | G: Graph | W: Window | P: Perf")
}
