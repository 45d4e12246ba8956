// Package renderer draws the world, its entities and the fitness history with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
)

var (
	colorBackground = rl.Color{R: 18, G: 22, B: 28, A: 255}
	colorBorder     = rl.Color{R: 60, G: 70, B: 80, A: 255}
	colorFood       = rl.Color{R: 90, G: 190, B: 90, A: 255}
	colorFoodReach  = rl.Color{R: 90, G: 190, B: 90, A: 50}
	colorEntity     = rl.Color{R: 120, G: 170, B: 230, A: 255}
	colorBest       = rl.Color{R: 255, G: 200, B: 80, A: 255}
	colorVision     = rl.Color{R: 200, G: 200, B: 255, A: 18}
	colorSelection  = rl.Yellow
)

// WorldRenderer draws food and entities in world coordinates, which match
// screen coordinates.
type WorldRenderer struct {
	entitySize   float64
	wedgeAngle   float64
	fieldOfView  float64
	viewDistance float64
	reach        float64
}

// NewWorldRenderer creates a renderer using the render and perception settings of cfg.
func NewWorldRenderer(cfg *config.Config) *WorldRenderer {
	return &WorldRenderer{
		entitySize:   cfg.Render.EntitySize,
		wedgeAngle:   cfg.Render.WedgeAngle,
		fieldOfView:  cfg.Perception.FieldOfView,
		viewDistance: cfg.Perception.ViewDistance,
		reach:        cfg.Food.Reach,
	}
}

// DrawBackground clears the screen and outlines the world rectangle.
func (r *WorldRenderer) DrawBackground(width, height float64) {
	rl.ClearBackground(colorBackground)
	rl.DrawRectangleLines(0, 0, int32(width), int32(height), colorBorder)
}

// DrawFood draws every food item with a faint ring marking its eating radius.
func (r *WorldRenderer) DrawFood(food []systems.Food) {
	for _, f := range food {
		center := rl.Vector2{X: float32(f.X), Y: float32(f.Y)}
		rl.DrawCircleLinesV(center, float32(f.Size+r.reach), colorFoodReach)
		rl.DrawCircleV(center, float32(f.Size), colorFood)
	}
}

// DrawEntity draws an entity as a wedge pointing along its heading.
func (r *WorldRenderer) DrawEntity(pos components.Position, best bool) {
	tip, left, right := wedgePoints(pos, r.entitySize, r.wedgeAngle)
	color := colorEntity
	if best {
		color = colorBest
	}
	// Counter-clockwise on screen (Y down)
	rl.DrawTriangle(tip, left, right, color)
}

// DrawVision shades the entity's field of view.
func (r *WorldRenderer) DrawVision(pos components.Position) {
	start := pos.Heading - r.fieldOfView/2
	drawSectorFilled(float32(pos.X), float32(pos.Y), float32(r.viewDistance),
		float32(start), float32(start+r.fieldOfView), colorVision)
}

// DrawSelection circles the selected entity.
func (r *WorldRenderer) DrawSelection(pos components.Position) {
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), float32(r.entitySize*1.6), colorSelection)
}

// wedgePoints returns the tip and the two tail corners of an entity wedge.
// The tail corners sit half a size behind the center, spread by wedge radians.
func wedgePoints(pos components.Position, size, wedge float64) (tip, left, right rl.Vector2) {
	point := func(angle, dist float64) rl.Vector2 {
		return rl.Vector2{
			X: float32(pos.X + math.Cos(angle)*dist),
			Y: float32(pos.Y + math.Sin(angle)*dist),
		}
	}
	tip = point(pos.Heading, size)
	left = point(pos.Heading+math.Pi+wedge, size/2)
	right = point(pos.Heading+math.Pi-wedge, size/2)
	return tip, left, right
}

// drawSectorFilled draws a filled pie sector.
func drawSectorFilled(cx, cy, radius, startAngle, endAngle float32, color rl.Color) {
	const segments = 24
	angleStep := (endAngle - startAngle) / float32(segments)

	for i := 0; i < segments; i++ {
		a1 := startAngle + float32(i)*angleStep
		a2 := a1 + angleStep

		x1 := cx + radius*float32(math.Cos(float64(a1)))
		y1 := cy + radius*float32(math.Sin(float64(a1)))
		x2 := cx + radius*float32(math.Cos(float64(a2)))
		y2 := cy + radius*float32(math.Sin(float64(a2)))

		// DrawTriangle requires counter-clockwise winding (screen coords: Y down)
		rl.DrawTriangle(
			rl.Vector2{X: cx, Y: cy},
			rl.Vector2{X: x2, Y: y2},
			rl.Vector2{X: x1, Y: y1},
			color,
		)
	}
}
