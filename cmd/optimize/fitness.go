package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/game"
	"github.com/pthm-cable/forage/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestSnapshot *telemetry.Snapshot
	lastQuality  float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestSnapshot returns the final population of the best evaluation.
func (fe *FitnessEvaluator) BestSnapshot() *telemetry.Snapshot {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSnapshot
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
	snapshot    *telemetry.Snapshot
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	quality  float64
	snapshot *telemetry.Snapshot
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel; each game owns its config copy and RNG
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(cfg.Clone(), s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:  computeFitness(result.windowStats, quality),
				quality:  quality,
				snapshot: result.snapshot,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedSnapshot *telemetry.Snapshot

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedSnapshot = r.snapshot
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestSnapshot = bestSeedSnapshot
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run for maxTicks.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	result.snapshot = g.Population().Export(g.RunID(), seed)
	return result
}

// Quality component weights.
const (
	qualityWeightTrend  = 0.6
	qualityWeightSpread = 0.4

	warmupWindows = 3 // skip first N windows (random brains)
)

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(mean efficiency × (1 + 0.2 × quality))
// Efficiency dominates; quality separates configs with similar efficiency.
func computeFitness(windows []telemetry.WindowStats, quality float64) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}

	eff := make([]float64, 0, len(windows)-warmupWindows)
	for _, w := range windows[warmupWindows:] {
		eff = append(eff, w.Efficiency)
	}
	return -(stat.Mean(eff, nil) * (1.0 + 0.2*quality))
}

// computeQuality scores learning progress in [0, 1] from window stats:
// a rising food average and a population whose P90 stays close to its
// best performer.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows+1 {
		return 0
	}
	valid := windows[warmupWindows:]

	xs := make([]float64, len(valid))
	food := make([]float64, len(valid))
	var spreadSum float64
	var spreadCount int
	for i, w := range valid {
		xs[i] = float64(w.WindowEndTick)
		food[i] = w.FoodAverage
		if w.Best > 0 {
			spreadSum += w.FitnessP90 / float64(w.Best)
			spreadCount++
		}
	}

	// Slope of food average per 10000 ticks
	_, slope := stat.LinearRegression(xs, food, nil, false)
	trendScore := 1 - math.Exp(-math.Max(slope*10000, 0))

	spreadScore := 0.0
	if spreadCount > 0 {
		spreadScore = spreadSum / float64(spreadCount)
	}

	return clamp01(qualityWeightTrend*trendScore + qualityWeightSpread*spreadScore)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
