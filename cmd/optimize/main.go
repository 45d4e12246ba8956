// Command optimize searches genetic and metabolic parameters with CMA-ES,
// scoring each candidate by the foraging efficiency its population evolves.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 20000, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *population); err != nil {
		slog.Error("optimize failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks int64, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return errors.New("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	if err := config.Init(configPath); err != nil {
		return err
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, maxTicks, evalSeeds, baseCfg)

	evalLog, err := createEvalLog(filepath.Join(outputDir, "optimize_log.csv"))
	if err != nil {
		return err
	}
	defer evalLog.Close()
	progress := newTracker(params, evalLog, maxEvals)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params.Denormalize(x))
			progress.observe(x, fitness, evaluator.LastQuality())
			return fitness
		},
	}

	// Auto-size: 4 + floor(3*ln(n))
	dim := params.Dim()
	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	slog.Info("starting CMA-ES",
		"parameters", dim,
		"population", popSize,
		"max_evals", maxEvals,
		"seeds", seeds,
		"ticks_per_run", maxTicks,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize})
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// The best candidate may come from any evaluation, not just the final mean
	bestParams := progress.bestParams
	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	attrs := []any{"evals", progress.evals, "duration", time.Since(progress.start).Round(time.Second), "best_score", -progress.best}
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Name, bestParams[i])
	}
	slog.Info("optimization complete", attrs...)

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)
	configOut := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOut); err != nil {
		return err
	}
	slog.Info("best config saved", "path", configOut)

	// The evolved population from the best run can be continued with -resume
	if snap := evaluator.BestSnapshot(); snap != nil {
		if err := writeSnapshot(filepath.Join(outputDir, "best_population.json"), snap); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(path string, snap *telemetry.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	slog.Info("best population saved", "path", path)
	return nil
}
