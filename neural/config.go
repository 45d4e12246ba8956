package neural

import (
	"math"

	"github.com/pthm-cable/forage/config"
)

// Params holds the genetic and neural limits genes are built and mutated within.
type Params struct {
	Layers          int
	NeuronsPerLayer int
	MaxAxons        int

	MaxStrength   float64
	MinTrigger    float64
	MaxTrigger    float64
	MinRelaxation float64

	MutationRate  float64
	MutationDelta float64
	Precision     int
}

// NewParams extracts neural parameters from the simulation config.
func NewParams(cfg *config.Config) Params {
	return Params{
		Layers:          cfg.Neural.MaxNetLayers,
		NeuronsPerLayer: cfg.Neural.NeuronsPerLayer,
		MaxAxons:        cfg.Neural.MaxAxons,
		MaxStrength:     cfg.Neural.MaxStrength,
		MinTrigger:      cfg.Neural.MinTrigger,
		MaxTrigger:      cfg.Neural.MaxTrigger,
		MinRelaxation:   1 - cfg.Neural.MaxRelaxation/100,
		MutationRate:    cfg.Genetics.MutationRate,
		MutationDelta:   cfg.Genetics.MutationDelta,
		Precision:       cfg.Genetics.Precision,
	}
}

// GenomeLength returns the number of genes in a genome, one per neuron slot.
func (p Params) GenomeLength() int {
	return p.Layers * p.NeuronsPerLayer
}

// fix rounds v to the configured decimal precision, half away from negative infinity.
func (p Params) fix(v float64) float64 {
	factor := math.Pow(10, float64(p.Precision))
	return math.Floor(v*factor+0.5) / factor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
