// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// Values are read once when a population is built; nothing reconfigures at runtime.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Movement   MovementConfig   `yaml:"movement"`
	Neural     NeuralConfig     `yaml:"neural"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Perception PerceptionConfig `yaml:"perception"`
	Food       FoodConfig       `yaml:"food"`
	Metabolism MetabolismConfig `yaml:"metabolism"`
	Boundary   BoundaryConfig   `yaml:"boundary"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Render     RenderConfig     `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions for headless runs.
// In graphical mode the window size is used instead.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// MovementConfig holds movement limitations.
type MovementConfig struct {
	MaxTurn     float64 `yaml:"max_turn"`     // Radians per tick at full turn output
	MaxVelocity float64 `yaml:"max_velocity"` // Units per tick at full acceleration
	MinVelocity float64 `yaml:"min_velocity"` // Units per tick with no motor output
}

// NeuralConfig holds brain tuning parameters.
type NeuralConfig struct {
	MaxNetLayers    int     `yaml:"max_net_layers"`
	NeuronsPerLayer int     `yaml:"neurons_per_layer"` // Must be >= number of inputs (4)
	MaxAxons        int     `yaml:"max_axons"`
	MaxStrength     float64 `yaml:"max_strength"`
	MaxTrigger      float64 `yaml:"max_trigger"`
	MinTrigger      float64 `yaml:"min_trigger"`
	MaxRelaxation   float64 `yaml:"max_relaxation"` // Percent, relaxation lower bound is 1 - this/100
	ThoughtsPerMove int     `yaml:"thoughts_per_move"`
}

// GeneticsConfig holds population and mutation parameters.
type GeneticsConfig struct {
	PopulationSize int     `yaml:"population_size"`
	MutationRate   float64 `yaml:"mutation_rate"`  // Gene mutations per birth = floor(rate * U[0,1))
	MutationDelta  float64 `yaml:"mutation_delta"` // Max perturbation of a numeric gene value
	Precision      int     `yaml:"precision"`      // Decimal digits kept after mutation
	Sex            bool    `yaml:"sex"`            // Crossover; unsupported, must stay false
}

// PerceptionConfig holds perceptual limitations.
type PerceptionConfig struct {
	FieldOfView  float64 `yaml:"field_of_view"` // Radians, centered on heading
	ViewDistance float64 `yaml:"view_distance"`
}

// FoodConfig holds food supply parameters.
type FoodConfig struct {
	MinSize float64 `yaml:"min_size"`
	MaxSize float64 `yaml:"max_size"`
	Count   int     `yaml:"count"`
	Border  float64 `yaml:"border"` // Spawn margin from world edges
	Reach   float64 `yaml:"reach"`  // Added to food size for the eating radius
}

// MetabolismConfig holds hunger and aging parameters.
type MetabolismConfig struct {
	StarvationLength float64 `yaml:"starvation_length"` // Hunger above this makes death possible
	OldAge           int     `yaml:"old_age"`           // Age above this makes natural death possible
	EnergyCost       float64 `yaml:"energy_cost"`       // Hunger per unit of velocity on a tick without food
	DeathChance      float64 `yaml:"death_chance"`      // Per-tick death probability once vulnerable
}

// BoundaryConfig holds world boundary handling.
type BoundaryConfig struct {
	CanWander bool `yaml:"can_wander"` // Leaving the world kills the entity
	Teleport  bool `yaml:"teleport"`   // When wandering is off: wrap (true) or clamp (false)
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	ReportingRate       int `yaml:"reporting_rate"`        // Ticks per stats window
	HistoryLength       int `yaml:"history_length"`        // Best-fitness samples kept
	HistoryInterval     int `yaml:"history_interval"`      // Ticks between history samples
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Ticks averaged for perf stats
}

// RenderConfig holds drawing parameters for the graphical mode.
type RenderConfig struct {
	EntitySize float64 `yaml:"entity_size"`
	WedgeAngle float64 `yaml:"wedge_angle"`
	NodeRadius float64 `yaml:"node_radius"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW        float64 // Effective world width
	WorldH        float64 // Effective world height
	GenomeLength  int     // MaxNetLayers * NeuronsPerLayer
	MinRelaxation float64 // 1 - MaxRelaxation/100
	TurnStep      float64 // MaxTurn / ThoughtsPerMove
	VelocityStep  float64 // (MaxVelocity - MinVelocity) / ThoughtsPerMove
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Compute derived values
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports the first configuration value the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Genetics.Sex:
		return errors.New("genetics.sex: crossover is not supported")
	case c.Genetics.PopulationSize < 1:
		return errors.New("genetics.population_size must be positive")
	case c.Genetics.MutationRate < 0:
		return errors.New("genetics.mutation_rate must not be negative")
	case c.Genetics.Precision < 0:
		return errors.New("genetics.precision must not be negative")
	case c.Neural.MaxNetLayers < 2:
		return errors.New("neural.max_net_layers must be at least 2")
	case c.Neural.NeuronsPerLayer < 4:
		return errors.New("neural.neurons_per_layer must be at least 4 (one per input and motor)")
	case c.Neural.MaxAxons < 1:
		return errors.New("neural.max_axons must be at least 1")
	case c.Neural.MinTrigger > c.Neural.MaxTrigger:
		return errors.New("neural.min_trigger must not exceed neural.max_trigger")
	case c.Neural.MaxRelaxation < 0 || c.Neural.MaxRelaxation >= 100:
		return errors.New("neural.max_relaxation must be in [0, 100)")
	case c.Neural.ThoughtsPerMove < 1:
		return errors.New("neural.thoughts_per_move must be positive")
	case c.Perception.ViewDistance <= 0:
		return errors.New("perception.view_distance must be positive")
	case c.Perception.FieldOfView <= 0:
		return errors.New("perception.field_of_view must be positive")
	case c.Food.MinSize > c.Food.MaxSize:
		return errors.New("food.min_size must not exceed food.max_size")
	case c.Food.Count < 0:
		return errors.New("food.count must not be negative")
	case c.Telemetry.ReportingRate < 1:
		return errors.New("telemetry.reporting_rate must be positive")
	case c.Telemetry.HistoryInterval < 1:
		return errors.New("telemetry.history_interval must be positive")
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.GenomeLength = c.Neural.MaxNetLayers * c.Neural.NeuronsPerLayer
	c.Derived.MinRelaxation = 1 - c.Neural.MaxRelaxation/100

	thoughts := float64(c.Neural.ThoughtsPerMove)
	c.Derived.TurnStep = c.Movement.MaxTurn / thoughts
	c.Derived.VelocityStep = (c.Movement.MaxVelocity - c.Movement.MinVelocity) / thoughts
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
