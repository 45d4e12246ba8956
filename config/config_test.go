package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Genetics.PopulationSize != 64 {
		t.Errorf("population size = %d, want 64", cfg.Genetics.PopulationSize)
	}
	if cfg.Neural.ThoughtsPerMove != 64 {
		t.Errorf("thoughts per move = %d, want 64", cfg.Neural.ThoughtsPerMove)
	}
	if cfg.Perception.ViewDistance != 192 {
		t.Errorf("view distance = %v, want 192", cfg.Perception.ViewDistance)
	}
	if math.Abs(cfg.Perception.FieldOfView-math.Pi) > 1e-12 {
		t.Errorf("field of view = %v, want pi", cfg.Perception.FieldOfView)
	}
	if cfg.Genetics.Sex {
		t.Error("crossover should be disabled by default")
	}
	if !cfg.Boundary.CanWander {
		t.Error("wandering should be enabled by default")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Derived.GenomeLength != 12 {
		t.Errorf("genome length = %d, want 12", cfg.Derived.GenomeLength)
	}
	if math.Abs(cfg.Derived.MinRelaxation-0.01) > 1e-12 {
		t.Errorf("min relaxation = %v, want 0.01", cfg.Derived.MinRelaxation)
	}
	if cfg.Derived.WorldW != 1280 || cfg.Derived.WorldH != 720 {
		t.Errorf("world = %vx%v, want screen size 1280x720", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if math.Abs(cfg.Derived.VelocityStep-4.0/64) > 1e-12 {
		t.Errorf("velocity step = %v, want %v", cfg.Derived.VelocityStep, 4.0/64)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("genetics:\n  population_size: 8\nworld:\n  width: 200\n  height: 150\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}

	if cfg.Genetics.PopulationSize != 8 {
		t.Errorf("population size = %d, want 8", cfg.Genetics.PopulationSize)
	}
	// Untouched fields keep their defaults
	if cfg.Genetics.MutationRate != 1.5 {
		t.Errorf("mutation rate = %v, want default 1.5", cfg.Genetics.MutationRate)
	}
	if cfg.Derived.WorldW != 200 || cfg.Derived.WorldH != 150 {
		t.Errorf("world = %vx%v, want 200x150", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"crossover", func(c *Config) { c.Genetics.Sex = true }},
		{"empty population", func(c *Config) { c.Genetics.PopulationSize = 0 }},
		{"too few neurons", func(c *Config) { c.Neural.NeuronsPerLayer = 3 }},
		{"single layer", func(c *Config) { c.Neural.MaxNetLayers = 1 }},
		{"inverted trigger", func(c *Config) { c.Neural.MinTrigger = 30 }},
		{"full relaxation", func(c *Config) { c.Neural.MaxRelaxation = 100 }},
		{"inverted food size", func(c *Config) { c.Food.MinSize = 10 }},
		{"no thoughts", func(c *Config) { c.Neural.ThoughtsPerMove = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Genetics.MutationDelta = 2.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Genetics.MutationDelta != 2.5 {
		t.Errorf("mutation delta = %v, want 2.5", loaded.Genetics.MutationDelta)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init")
		}
	}()
	Cfg()
}
