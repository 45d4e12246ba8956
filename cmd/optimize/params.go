// Package main provides CMA-ES optimization for forage simulation parameters.
package main

import (
	"github.com/pthm-cable/forage/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Genetics
			{Name: "mutation_rate", Path: "genetics.mutation_rate", Min: 0.2, Max: 4.0, Default: 1.5},
			{Name: "mutation_delta", Path: "genetics.mutation_delta", Min: 0.5, Max: 10.0, Default: 4.0},
			// Metabolism
			{Name: "energy_cost", Path: "metabolism.energy_cost", Min: 0.5, Max: 3.0, Default: 1.5},
			{Name: "death_chance", Path: "metabolism.death_chance", Min: 0.001, Max: 0.05, Default: 0.01},
			// Food
			{Name: "food_count", Path: "food.count", Min: 8, Max: 64, Default: 24},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Genetics.MutationRate = clamped[0]
	cfg.Genetics.MutationDelta = clamped[1]
	cfg.Metabolism.EnergyCost = clamped[2]
	cfg.Metabolism.DeathChance = clamped[3]
	cfg.Food.Count = int(clamped[4] + 0.5)

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Genetics.MutationRate,
		cfg.Genetics.MutationDelta,
		cfg.Metabolism.EnergyCost,
		cfg.Metabolism.DeathChance,
		float64(cfg.Food.Count),
	}
}
