package telemetry

import "time"

// PopulationSample is the population state a window row is computed from.
type PopulationSample struct {
	Fitness []float64 // Food eaten per entity
	Ages    []float64
	Best    int // Fitness of the top-ranked entity
}

// Collector turns the population's counters into one WindowStats row every
// reporting interval.
type Collector struct {
	runID       string
	windowTicks int64

	windowStartTick int64
	windowStartTime time.Time
	now             func() time.Time
}

// NewCollector creates a collector emitting a row every windowTicks ticks.
func NewCollector(runID string, windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		runID:           runID,
		windowTicks:     int64(windowTicks),
		windowStartTime: time.Now(),
		now:             time.Now,
	}
}

// ResumeAt starts the current window at tick, for runs continued from a
// snapshot.
func (c *Collector) ResumeAt(tick int64) {
	c.windowStartTick = tick
	c.windowStartTime = c.now()
}

// ShouldFlush reports whether the window ending at currentTick is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the row for the window ending at currentTick and clears the
// windowed counters.
func (c *Collector) Flush(currentTick int64, counters *Counters, sample PopulationSample) WindowStats {
	now := c.now()
	var tps float64
	if elapsed := now.Sub(c.windowStartTime).Seconds(); elapsed > 0 {
		tps = float64(currentTick-c.windowStartTick) / elapsed
	}

	fit := ComputeFitnessStats(sample.Fitness)
	var lifeAvg float64
	if n := len(sample.Ages); n > 0 {
		var sum float64
		for _, a := range sample.Ages {
			sum += a
		}
		lifeAvg = sum / float64(n)
	}

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		TicksPerSec:     tps,

		Efficiency:  Efficiency(fit.Mean, lifeAvg),
		FoodAverage: fit.Mean,
		LifeAverage: float64(int64(lifeAvg)),
		FitnessStd:  fit.Std,
		FitnessP50:  fit.P50,
		FitnessP90:  fit.P90,
		Best:        sample.Best,

		Starved:  counters.Starved,
		Wandered: counters.Wandered,
		Natural:  counters.Natural,
		Eaten:    counters.Eaten,

		Born:      counters.Born,
		Mutations: counters.Mutations,
	}

	counters.ResetWindow()
	c.windowStartTick = currentTick
	c.windowStartTime = now

	return stats
}
