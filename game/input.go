package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}

	if g.overlays.IsEnabled(ui.OverlayStatsGraph) {
		g.statsPanel.HandleInput()
	}

	mouse := rl.GetMousePosition()
	if g.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	g.handleCamera(mouse)
	g.inspector.HandleInput(mouse.X, mouse.Y, g.pickEntity)
}

// Camera pan speed in screen pixels per frame
const panSpeed = 12

// handleCamera zooms with the wheel around the cursor and pans with the
// arrow keys or a middle-button drag. Home resets the view.
func (g *Game) handleCamera(mouse rl.Vector2) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomAt(float32(math.Pow(1.1, float64(wheel))), mouse.X, mouse.Y)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	var dx, dy float32
	if rl.IsKeyDown(rl.KeyLeft) {
		dx -= panSpeed
	}
	if rl.IsKeyDown(rl.KeyRight) {
		dx += panSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= panSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy += panSpeed
	}
	if dx != 0 || dy != 0 {
		g.camera.Pan(dx, dy)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// camera2D converts the camera to raylib's world-space transform.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	}
}

// pickEntity returns the ID of the entity nearest to the screen point (x, y)
// within one entity size, if any.
func (g *Game) pickEntity(x, y float32) (uint32, bool) {
	x, y = g.camera.ScreenToWorld(x, y)
	radius := g.cfg.Render.EntitySize
	best := radius * radius
	var id uint32
	found := false

	for _, e := range g.pop.Snapshot() {
		dx := float64(x) - e.Position.X
		dy := float64(y) - e.Position.Y
		if d := dx*dx + dy*dy; d <= best {
			best = d
			id = e.ID
			found = true
		}
	}
	return id, found
}

// findEntity returns the view of the entity with the given ID.
func (g *Game) findEntity(id uint32) (EntityView, bool) {
	for _, e := range g.pop.Snapshot() {
		if e.ID == id {
			return e, true
		}
	}
	return EntityView{}, false
}

// handleResize checks for window resize and propagates new dimensions.
// A window-sized world follows the window from the next tick on.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = float32(math.Max(1, float64(w)))
	g.screenHeight = float32(math.Max(1, float64(h)))

	g.camera.Resize(g.screenWidth, g.screenHeight)
	if g.worldFollowsWindow {
		g.camera.SetWorld(g.screenWidth, g.screenHeight)
	}
	g.inspector.Resize(int32(w), int32(h))
	g.statsPanel.Resize(int32(w), int32(h))
	g.perfPanel.SetPosition(int32(w)-230, 10)
	g.controls.SetPosition(10, int32(h)-40)
}
