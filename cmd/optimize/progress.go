package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// evalRecord is one row of optimize_log.csv: the clamped parameter values
// a candidate actually ran with and how it scored.
type evalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	Efficiency float64 `csv:"efficiency"`
	Quality    float64 `csv:"quality"`

	MutationRate  float64 `csv:"mutation_rate"`
	MutationDelta float64 `csv:"mutation_delta"`
	EnergyCost    float64 `csv:"energy_cost"`
	DeathChance   float64 `csv:"death_chance"`
	FoodCount     float64 `csv:"food_count"`
}

func newEvalRecord(pv *ParamVector, eval int, fitness, quality float64, values []float64) evalRecord {
	rec := evalRecord{
		Eval:       eval,
		Fitness:    fitness,
		Efficiency: efficiencyOf(fitness, quality),
		Quality:    quality,
	}
	for i, spec := range pv.Specs {
		switch spec.Name {
		case "mutation_rate":
			rec.MutationRate = values[i]
		case "mutation_delta":
			rec.MutationDelta = values[i]
		case "energy_cost":
			rec.EnergyCost = values[i]
		case "death_chance":
			rec.DeathChance = values[i]
		case "food_count":
			rec.FoodCount = values[i]
		}
	}
	return rec
}

// efficiencyOf undoes the quality bonus in computeFitness.
func efficiencyOf(fitness, quality float64) float64 {
	return -fitness / (1 + 0.2*quality)
}

// evalLog appends evalRecords to a CSV file, header first.
type evalLog struct {
	f             *os.File
	headerWritten bool
}

func createEvalLog(path string) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	return &evalLog{f: f}, nil
}

func (l *evalLog) append(rec evalRecord) error {
	records := []evalRecord{rec}
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.f); err != nil {
			return err
		}
		l.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, l.f)
}

func (l *evalLog) Close() error {
	return l.f.Close()
}

// tracker follows the search: it remembers the best candidate, logs every
// evaluation and estimates the time left.
type tracker struct {
	params   *ParamVector
	log      *evalLog
	maxEvals int

	evals      int
	best       float64
	bestParams []float64
	start      time.Time
}

func newTracker(params *ParamVector, log *evalLog, maxEvals int) *tracker {
	return &tracker{
		params:   params,
		log:      log,
		maxEvals: maxEvals,
		best:     math.Inf(1),
		start:    time.Now(),
	}
}

// observe records the evaluation of normalized point x.
func (t *tracker) observe(x []float64, fitness, quality float64) {
	t.evals++

	clamped := t.params.Clamp(t.params.Denormalize(x))
	if fitness < t.best {
		t.best = fitness
		t.bestParams = clamped
	}

	if t.log != nil {
		if err := t.log.append(newEvalRecord(t.params, t.evals, fitness, quality, clamped)); err != nil {
			slog.Error("failed to write eval log", "error", err)
		}
	}

	elapsed := time.Since(t.start)
	remaining := time.Duration(max(t.maxEvals-t.evals, 0)) * (elapsed / time.Duration(t.evals))
	slog.Info("evaluation",
		"eval", t.evals,
		"of", t.maxEvals,
		"efficiency", efficiencyOf(fitness, quality),
		"quality", quality,
		"best_score", -t.best,
		"elapsed", elapsed.Round(time.Second),
		"eta", remaining.Round(time.Second),
	)
}
