package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one reporting window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`

	// Population sampled at window end
	Efficiency  float64 `csv:"efficiency"` // Food per 10000 ticks of life
	FoodAverage float64 `csv:"food_avg"`
	LifeAverage float64 `csv:"life_avg"` // Floored
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
	Best        int     `csv:"best"`

	// Events during window
	Starved  int `csv:"starved"`
	Wandered int `csv:"wandered"`
	Natural  int `csv:"natural"`
	Eaten    int `csv:"eaten"`

	// Since the run started
	Born      int `csv:"born"`
	Mutations int `csv:"mutations"`
}

// FitnessStats summarizes a fitness sample.
type FitnessStats struct {
	Mean, Std, P50, P90 float64
}

// ComputeFitnessStats returns the mean, population standard deviation and
// empirical quantiles of the values. The input is not modified.
func ComputeFitnessStats(values []float64) FitnessStats {
	if len(values) == 0 {
		return FitnessStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	return FitnessStats{
		Mean: mean,
		Std:  math.Sqrt(variance),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// Efficiency is food eaten per 10000 ticks of life, from population averages.
// Life is floored first, as the stats table has always shown it.
func Efficiency(foodAvg, lifeAvg float64) float64 {
	life := math.Floor(lifeAvg)
	if life <= 0 {
		return 0
	}
	return foodAvg * 10000 / life
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("ticks_per_sec", s.TicksPerSec),
		slog.Float64("efficiency", s.Efficiency),
		slog.Float64("food_avg", s.FoodAverage),
		slog.Float64("life_avg", s.LifeAverage),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Int("best", s.Best),
		slog.Int("starved", s.Starved),
		slog.Int("wandered", s.Wandered),
		slog.Int("natural", s.Natural),
		slog.Int("eaten", s.Eaten),
		slog.Int("born", s.Born),
		slog.Int("mutations", s.Mutations),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"ticks_per_sec", int(s.TicksPerSec),
		"efficiency", math.Round(s.Efficiency*100)/100,
		"food_avg", math.Round(s.FoodAverage*100)/100,
		"life_avg", s.LifeAverage,
		"fitness_p90", s.FitnessP90,
		"starved", s.Starved,
		"wandered", s.Wandered,
		"natural", s.Natural,
		"eaten", s.Eaten,
		"born", s.Born,
		"best", s.Best,
	)
}
