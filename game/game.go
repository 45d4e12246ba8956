// Package game ties the population, telemetry and presentation together.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/forage/camera"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/inspector"
	"github.com/pthm-cable/forage/renderer"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
	"github.com/pthm-cable/forage/ui"
)

// maxStepsPerUpdate caps the speed control.
const maxStepsPerUpdate = 64

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool   // Log window stats and bookmarks via slog
	OutputDir      string // CSV logs, config.yaml and snapshots (empty = disabled)
	StatsDB        string // SQLite database path (empty = disabled)
	SnapshotDir    string // Bookmark and exit snapshots (empty = OutputDir)
	ResumeFrom     string // Snapshot file to continue from
	Headless       bool
	StepsPerUpdate int

	Config        *config.Config              // nil = config.Cfg()
	StatsCallback func(telemetry.WindowStats) // Called after every flushed window
}

// Game holds the simulation and everything that observes it.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64
	runID   string
	pop     *Population

	paused         bool
	stepsPerUpdate int
	headless       bool

	// Telemetry
	collector     *telemetry.Collector
	history       *telemetry.History
	bookmarks     *telemetry.BookmarkDetector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	store         *telemetry.SQLiteStore
	logStats      bool
	snapshotDir   string
	lastStats     telemetry.WindowStats
	statsCallback func(telemetry.WindowStats)

	// Graphical mode only
	screenWidth        float32
	screenHeight       float32
	worldFollowsWindow bool
	camera             *camera.Camera

	world        *renderer.WorldRenderer
	historyGraph *renderer.HistoryGraph
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	windowPanel  *ui.WindowPanel
	controls     *ui.ControlsPanel
	overlays     *ui.OverlayRegistry
	inspector    *inspector.Inspector
	statsPanel   *inspector.StatsPanel
}

// NewGameWithOptions creates a game. In graphical mode the raylib window must
// already be open; the world follows the window size.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		runID:          telemetry.NewRunID(),
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		statsCallback:  opts.StatsCallback,
	}
	if g.snapshotDir == "" {
		g.snapshotDir = opts.OutputDir
	}

	var bounds systems.Bounds = systems.FixedBounds{Width: cfg.Derived.WorldW, Height: cfg.Derived.WorldH}
	if !opts.Headless {
		g.screenWidth = float32(rl.GetScreenWidth())
		g.screenHeight = float32(rl.GetScreenHeight())

		// Without an explicit world size the world is the window
		if cfg.World.Width == 0 && cfg.World.Height == 0 {
			g.worldFollowsWindow = true
			bounds = systems.BoundsFunc(func() (float64, float64) {
				return float64(g.screenWidth), float64(g.screenHeight)
			})
		}
	}

	if opts.ResumeFrom != "" {
		snap, err := telemetry.LoadSnapshot(opts.ResumeFrom)
		if err != nil {
			return nil, err
		}
		if g.pop, err = RestorePopulation(cfg, g.rng, bounds, snap); err != nil {
			return nil, fmt.Errorf("resuming from %s: %w", opts.ResumeFrom, err)
		}
		// Events before the snapshot belong to the previous run's windows
		g.pop.Stats().ResetWindow()
		slog.Info("resumed from snapshot", "path", opts.ResumeFrom, "tick", snap.Tick, "previous_run", snap.RunID)
	} else {
		g.pop = NewPopulation(cfg, g.rng, bounds)
	}

	if err := g.initTelemetry(opts); err != nil {
		g.close()
		return nil, err
	}
	if !opts.Headless {
		g.initGraphics()
	}
	return g, nil
}

func (g *Game) initTelemetry(opts Options) error {
	cfg := g.cfg

	g.collector = telemetry.NewCollector(g.runID, cfg.Telemetry.ReportingRate)
	g.collector.ResumeAt(g.pop.TickCount())
	g.history = telemetry.NewHistory(cfg.Telemetry.HistoryLength, cfg.Telemetry.HistoryInterval)
	g.bookmarks = telemetry.NewBookmarkDetector(10, cfg.Genetics.PopulationSize)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.pop.SetPerfCollector(g.perfCollector)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	if opts.StatsDB != "" {
		ctx := context.Background()
		store := telemetry.NewSQLiteStore(opts.StatsDB)
		if err := store.Init(ctx); err != nil {
			return err
		}
		g.store = store

		configYAML, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		if err := store.StartRun(ctx, g.runID, g.rngSeed, configYAML); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}

	slog.Info("run started",
		"run_id", g.runID,
		"seed", g.rngSeed,
		"population", g.pop.Len(),
		"output_dir", om.Dir(),
	)
	return nil
}

func (g *Game) initGraphics() {
	w, h := int32(g.screenWidth), int32(g.screenHeight)

	worldW, worldH := g.pop.Bounds().Size()
	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(worldW), float32(worldH))
	g.world = renderer.NewWorldRenderer(g.cfg)
	g.historyGraph = renderer.NewHistoryGraph()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(w-230, 10)
	g.windowPanel = ui.NewWindowPanel(10, 100, 220)
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(10, h-40, 220, maxStepsPerUpdate)
	g.inspector = inspector.NewInspector(w, h)
	inspector.SetSensorScale(g.cfg.Neural.MaxStrength)
	g.statsPanel = inspector.NewStatsPanel(w, h)
}

// UpdateHeadless runs simulation steps without any raylib calls.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Update handles input and advances the simulation unless paused.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep advances one tick and feeds telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.pop.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.history.Observe(g.pop.TickCount(), g.pop.BestFitness())
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Unload writes a final snapshot and releases output resources.
func (g *Game) Unload() {
	if g.snapshotDir != "" {
		g.saveSnapshot("exit")
	}
	g.close()
}

func (g *Game) close() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			slog.Error("failed to close stats database", "error", err)
		}
	}
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int64 {
	return g.pop.TickCount()
}

// RunID returns the identifier used in every output row of this run.
func (g *Game) RunID() string {
	return g.runID
}

// Population exposes the simulated population.
func (g *Game) Population() *Population {
	return g.pop
}

// History returns the best-fitness history.
func (g *Game) History() *telemetry.History {
	return g.history
}

// LastStats returns the most recent window, zero before the first flush.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}
