package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/neural"
)

func init() {
	config.MustInit("")
}

// testConfig returns an independent copy of the defaults.
func testConfig() *config.Config {
	return config.Cfg().Clone()
}

// supplyOf builds a supply holding exactly the given items.
func supplyOf(cfg *config.Config, bounds Bounds, items ...Food) *FoodSupply {
	return &FoodSupply{
		Items:  items,
		rng:    rand.New(rand.NewSource(1)),
		bounds: bounds,
		cfg:    cfg,
	}
}

func TestWallDistanceFacingRightWall(t *testing.T) {
	cfg := testConfig()
	cfg.Perception.ViewDistance = 192
	bounds := FixedBounds{Width: 200, Height: 200}

	got := WallDistance(components.Position{X: 50, Y: 50, Heading: 0}, bounds, cfg)
	if math.Abs(got-150) > 1e-9 {
		t.Errorf("wall distance = %v, want 150", got)
	}
}

func TestWallDistanceCases(t *testing.T) {
	cfg := testConfig()
	cfg.Perception.ViewDistance = 192
	bounds := FixedBounds{Width: 200, Height: 100}

	tests := []struct {
		name string
		pos  components.Position
		want float64
	}{
		{"facing left wall", components.Position{X: 50, Y: 50, Heading: math.Pi}, 50},
		{"facing bottom", components.Position{X: 50, Y: 20, Heading: math.Pi / 2}, 80},
		{"facing top", components.Position{X: 50, Y: 20, Heading: 3 * math.Pi / 2}, 20},
		{"capped at view distance", components.Position{X: 0, Y: 50, Heading: 0}, 192},
		{"diagonal exits through top", components.Position{X: 100, Y: 10, Heading: 7 * math.Pi / 4}, 10 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WallDistance(tt.pos, bounds, cfg)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("wall distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindFoodVisibilityAndOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Perception.ViewDistance = 100
	cfg.Perception.FieldOfView = math.Pi / 2
	bounds := FixedBounds{Width: 1000, Height: 1000}

	supply := supplyOf(cfg, bounds,
		Food{X: 180, Y: 100, Size: 5}, // ahead, 80 away
		Food{X: 120, Y: 100, Size: 5}, // ahead, 20 away
		Food{X: 50, Y: 100, Size: 5},  // behind
		Food{X: 250, Y: 100, Size: 5}, // too far
		Food{X: 140, Y: 138, Size: 5}, // just inside the edge of view
		Food{X: 110, Y: 190, Size: 5}, // outside field of view
	)
	pos := components.Position{X: 100, Y: 100, Heading: 0}

	seen := FindFood(pos, supply, cfg)
	if len(seen) != 3 {
		t.Fatalf("saw %d food, want 3: %+v", len(seen), seen)
	}

	wantOrder := []int{1, 4, 0}
	for i, fv := range seen {
		if fv.Index != wantOrder[i] {
			t.Errorf("seen[%d] = food %d, want %d", i, fv.Index, wantOrder[i])
		}
		if fv.Distance > cfg.Perception.ViewDistance {
			t.Errorf("food %d at distance %v beyond view", fv.Index, fv.Distance)
		}
		if math.Abs(fv.Angle) > cfg.Perception.FieldOfView/2+1e-12 {
			t.Errorf("food %d at angle %v outside field of view", fv.Index, fv.Angle)
		}
	}

	// Heading 0 minus a bearing just under 45 degrees
	want := -math.Atan2(38, 40)
	if math.Abs(seen[1].Angle-want) > 1e-9 {
		t.Errorf("angle = %v, want %v", seen[1].Angle, want)
	}
}

func TestFindFoodAngleWraps(t *testing.T) {
	cfg := testConfig()
	bounds := FixedBounds{Width: 1000, Height: 1000}
	supply := supplyOf(cfg, bounds, Food{X: 150, Y: 90, Size: 5})

	// Heading just below 2*Pi looks along +x; the food sits slightly above it.
	pos := components.Position{X: 100, Y: 100, Heading: 2*math.Pi - 0.01}
	seen := FindFood(pos, supply, cfg)
	if len(seen) != 1 {
		t.Fatalf("saw %d food, want 1", len(seen))
	}
	if seen[0].Angle <= -math.Pi || seen[0].Angle > math.Pi {
		t.Errorf("angle %v not normalized", seen[0].Angle)
	}
	want := -0.01 - math.Atan2(-10, 50)
	if math.Abs(seen[0].Angle-want) > 1e-9 {
		t.Errorf("angle = %v, want %v", seen[0].Angle, want)
	}
}

func TestFindFoodZeroDisplacement(t *testing.T) {
	cfg := testConfig()
	bounds := FixedBounds{Width: 1000, Height: 1000}
	supply := supplyOf(cfg, bounds, Food{X: 100, Y: 100, Size: 5})

	seen := FindFood(components.Position{X: 100, Y: 100}, supply, cfg)
	if len(seen) != 1 {
		t.Fatalf("food under the entity should be visible, saw %d", len(seen))
	}
	if math.IsNaN(seen[0].Angle) || math.IsNaN(seen[0].Distance) {
		t.Errorf("degenerate vector %+v", seen[0])
	}
}

func TestSenseInputs(t *testing.T) {
	cfg := testConfig()
	cfg.Perception.ViewDistance = 100
	cfg.Perception.FieldOfView = math.Pi
	cfg.Neural.MaxStrength = 10
	bounds := FixedBounds{Width: 1000, Height: 1000}
	pos := components.Position{X: 500, Y: 500, Heading: 0}

	t.Run("no food", func(t *testing.T) {
		in := SenseInputs(pos, supplyOf(cfg, bounds), bounds, cfg)
		for i, v := range in {
			if v != 0 {
				t.Errorf("input %d = %v, want 0", i, v)
			}
		}
	})

	t.Run("food at negative angle", func(t *testing.T) {
		// Bearing +pi/4 gives angle -pi/4
		supply := supplyOf(cfg, bounds, Food{X: 530, Y: 530, Size: 5})
		in := SenseInputs(pos, supply, bounds, cfg)

		if math.Abs(in[InputFoodLeft]-5) > 1e-9 {
			t.Errorf("left = %v, want 5", in[InputFoodLeft])
		}
		if in[InputFoodRight] != 0 {
			t.Errorf("right = %v, want 0", in[InputFoodRight])
		}
		wantNear := (100 - 30*math.Sqrt2) / 100 * 10
		if math.Abs(in[InputFoodNear]-wantNear) > 1e-9 {
			t.Errorf("near = %v, want %v", in[InputFoodNear], wantNear)
		}
	})

	t.Run("food at positive angle", func(t *testing.T) {
		supply := supplyOf(cfg, bounds, Food{X: 530, Y: 470, Size: 5})
		in := SenseInputs(pos, supply, bounds, cfg)

		if in[InputFoodLeft] != 0 {
			t.Errorf("left = %v, want 0", in[InputFoodLeft])
		}
		if math.Abs(in[InputFoodRight]-5) > 1e-9 {
			t.Errorf("right = %v, want 5", in[InputFoodRight])
		}
	})

	t.Run("wall ahead", func(t *testing.T) {
		near := components.Position{X: 975, Y: 500, Heading: 0}
		in := SenseInputs(near, supplyOf(cfg, bounds), bounds, cfg)
		if math.Abs(in[InputWallNear]-7.5) > 1e-9 {
			t.Errorf("wall = %v, want 7.5", in[InputWallNear])
		}
	})
}

func TestMove(t *testing.T) {
	cfg := testConfig()
	cfg.Movement.MaxTurn = 1
	cfg.Movement.MinVelocity = 1
	cfg.Movement.MaxVelocity = 5
	cfg.Neural.ThoughtsPerMove = 4
	cfg.ComputeDerived()
	bounds := FixedBounds{Width: 100, Height: 100}

	pos := components.Position{X: 50, Y: 50, Heading: 0}
	motor := components.Motor{}
	motor.Counts[neural.LeftTurn] = 2
	motor.Counts[neural.RightTurn] = 1
	motor.Counts[neural.Accelerate] = 3
	motor.Counts[neural.Decelerate] = 1

	Move(&pos, &motor, cfg, bounds)

	// heading += (2-1) * 1/4, v = 1 + (3-1) * 4/4
	if math.Abs(pos.Heading-0.25) > 1e-12 {
		t.Errorf("heading = %v, want 0.25", pos.Heading)
	}
	if math.Abs(motor.LastVelocity-3) > 1e-12 {
		t.Errorf("velocity = %v, want 3", motor.LastVelocity)
	}
	if math.Abs(pos.X-(50+3*math.Cos(0.25))) > 1e-9 || math.Abs(pos.Y-(50+3*math.Sin(0.25))) > 1e-9 {
		t.Errorf("position = (%v, %v)", pos.X, pos.Y)
	}
	for i, c := range motor.Counts {
		if c != 0 {
			t.Errorf("motor count %d = %d after move, want 0", i, c)
		}
	}
}

func TestMoveVelocityFloorAndHeadingWrap(t *testing.T) {
	cfg := testConfig()
	cfg.Movement.MaxTurn = 1
	cfg.Neural.ThoughtsPerMove = 1
	cfg.ComputeDerived()
	bounds := FixedBounds{Width: 100, Height: 100}

	pos := components.Position{X: 50, Y: 50, Heading: 0.5}
	motor := components.Motor{}
	motor.Counts[neural.RightTurn] = 1
	motor.Counts[neural.Decelerate] = 5 // hard brake

	Move(&pos, &motor, cfg, bounds)

	if motor.LastVelocity != 0 {
		t.Errorf("velocity = %v, want floor of 0", motor.LastVelocity)
	}
	if pos.X != 50 || pos.Y != 50 {
		t.Errorf("entity moved to (%v, %v) at zero velocity", pos.X, pos.Y)
	}
	want := 2*math.Pi - 0.5
	if math.Abs(pos.Heading-want) > 1e-12 {
		t.Errorf("heading = %v, want %v", pos.Heading, want)
	}
}

func TestMoveBoundaryHandling(t *testing.T) {
	bounds := FixedBounds{Width: 100, Height: 100}

	tests := []struct {
		name     string
		wander   bool
		teleport bool
		wantX    float64
	}{
		{"wander leaves world", true, false, 100 + 1},
		{"teleport wraps", false, true, 0},
		{"clamp stops at edge", false, false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Boundary.CanWander = tt.wander
			cfg.Boundary.Teleport = tt.teleport
			cfg.Movement.MinVelocity = 1

			pos := components.Position{X: 100, Y: 50, Heading: 0}
			motor := components.Motor{}
			Move(&pos, &motor, cfg, bounds)

			if math.Abs(pos.X-tt.wantX) > 1e-9 {
				t.Errorf("x = %v, want %v", pos.X, tt.wantX)
			}
		})
	}
}

func TestEat(t *testing.T) {
	cfg := testConfig()
	cfg.Food.MinSize = 4
	cfg.Food.MaxSize = 6
	cfg.Food.Reach = 2
	bounds := FixedBounds{Width: 1000, Height: 1000}

	supply := supplyOf(cfg, bounds,
		Food{X: 500, Y: 500, Size: 5.5},
		Food{X: 501, Y: 500, Size: 5.5},
	)
	life := components.NewLife()
	life.Hunger = 42
	pos := components.Position{X: 503, Y: 500}

	if !Eat(pos, components.Motor{}, &life, supply, cfg) {
		t.Fatal("expected to eat")
	}
	if life.FoodEaten != 1 || life.Hunger != 0 {
		t.Errorf("life = %+v, want 1 eaten and no hunger", life)
	}
	if supply.Items[0].Size != 4.5 {
		t.Errorf("first food size = %v, want 4.5", supply.Items[0].Size)
	}
	if supply.Items[1].Size != 5.5 {
		t.Errorf("second food should be untouched, size = %v", supply.Items[1].Size)
	}

	// Second bite takes food 0 to the minimum, which replaces it
	Eat(pos, components.Motor{}, &life, supply, cfg)
	f := supply.Items[0]
	if f.Size < cfg.Food.MinSize || f.Size > cfg.Food.MaxSize {
		t.Errorf("replacement size %v outside [%v, %v]", f.Size, cfg.Food.MinSize, cfg.Food.MaxSize)
	}
	if f.X < cfg.Food.Border || f.X > 1000-cfg.Food.Border {
		t.Errorf("replacement x %v outside border", f.X)
	}
}

func TestEatMissAddsHunger(t *testing.T) {
	cfg := testConfig()
	cfg.Metabolism.EnergyCost = 1.5
	bounds := FixedBounds{Width: 1000, Height: 1000}
	supply := supplyOf(cfg, bounds, Food{X: 10, Y: 10, Size: 5})

	life := components.NewLife()
	motor := components.Motor{LastVelocity: 2}
	if Eat(components.Position{X: 500, Y: 500}, motor, &life, supply, cfg) {
		t.Fatal("nothing should be in reach")
	}
	if life.Hunger != 4 {
		t.Errorf("hunger = %v, want 1 + 2*1.5", life.Hunger)
	}
}

func TestFoodSupplyReplenish(t *testing.T) {
	cfg := testConfig()
	bounds := FixedBounds{Width: 300, Height: 200}
	rng := rand.New(rand.NewSource(3))
	supply := NewFoodSupply(rng, bounds, cfg)

	if len(supply.Items) != cfg.Food.Count {
		t.Fatalf("supply has %d items, want %d", len(supply.Items), cfg.Food.Count)
	}

	supply.Items[0].X = 400
	supply.Items[1].Y = -1
	if n := supply.Replenish(); n != 2 {
		t.Errorf("replaced %d items, want 2", n)
	}
	for i, f := range supply.Items {
		if OutOfBounds(bounds, f.X, f.Y) {
			t.Errorf("food %d at (%v, %v) out of bounds", i, f.X, f.Y)
		}
	}
}

func TestLiveWanderIsCertain(t *testing.T) {
	cfg := testConfig()
	cfg.Boundary.CanWander = true
	bounds := FixedBounds{Width: 100, Height: 100}
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 1000; i++ {
		life := components.NewLife()
		if got := Live(components.Position{X: 101, Y: 50}, &life, bounds, cfg, rng); got != Wandered {
			t.Fatalf("trial %d: cause = %v, want wandered", i, got)
		}
		if life.Age != 2 {
			t.Fatalf("age = %d, want 2", life.Age)
		}
	}
}

func TestLiveHealthyEntitySurvives(t *testing.T) {
	cfg := testConfig()
	bounds := FixedBounds{Width: 100, Height: 100}
	rng := rand.New(rand.NewSource(9))
	life := components.NewLife()

	for i := 0; i < 1000; i++ {
		if got := Live(components.Position{X: 50, Y: 50}, &life, bounds, cfg, rng); got != Alive {
			t.Fatalf("tick %d: cause = %v, want alive", i, got)
		}
	}
	if life.Age != 1001 {
		t.Errorf("age = %d, want 1001", life.Age)
	}
}

func TestLiveVulnerableDeaths(t *testing.T) {
	cfg := testConfig()
	cfg.Metabolism.DeathChance = 1
	bounds := FixedBounds{Width: 100, Height: 100}
	rng := rand.New(rand.NewSource(9))
	pos := components.Position{X: 50, Y: 50}

	starving := components.Life{Age: cfg.Metabolism.OldAge + 10, Hunger: cfg.Metabolism.StarvationLength + 1}
	if got := Live(pos, &starving, bounds, cfg, rng); got != Starved {
		t.Errorf("starving cause = %v, want starved", got)
	}

	old := components.Life{Age: cfg.Metabolism.OldAge}
	if got := Live(pos, &old, bounds, cfg, rng); got != Natural {
		t.Errorf("old cause = %v, want natural", got)
	}

	cfg.Metabolism.DeathChance = 0
	for i := 0; i < 100; i++ {
		if got := Live(pos, &starving, bounds, cfg, rng); got != Alive {
			t.Fatalf("death with zero chance: %v", got)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-0.5, 2*math.Pi - 0.5},
		{2 * math.Pi, 0},
		{7, 7 - 2*math.Pi},
		{-1e-20, 0},
	}
	for _, tt := range tests {
		got := normalizeHeading(tt.in)
		if got < 0 || got >= 2*math.Pi || math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeHeading(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
