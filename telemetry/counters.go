// Package telemetry collects simulation statistics and writes them to logs,
// CSV files and an optional SQLite database.
package telemetry

import "log/slog"

// Counters are the population's event tallies.
// The population increments them during a tick; readers may reset the
// windowed ones between ticks.
type Counters struct {
	// Windowed, cleared by ResetWindow
	Eaten    int
	Starved  int
	Wandered int
	Natural  int

	// Cumulative
	Born      int
	Mutations int
}

// Deaths returns the windowed death total.
func (c *Counters) Deaths() int {
	return c.Starved + c.Wandered + c.Natural
}

// ResetWindow clears the per-window counters and keeps the cumulative ones.
func (c *Counters) ResetWindow() {
	c.Eaten = 0
	c.Starved = 0
	c.Wandered = 0
	c.Natural = 0
}

// LogValue implements slog.LogValuer for structured logging.
func (c Counters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("eaten", c.Eaten),
		slog.Int("starved", c.Starved),
		slog.Int("wandered", c.Wandered),
		slog.Int("natural", c.Natural),
		slog.Int("born", c.Born),
		slog.Int("mutations", c.Mutations),
	)
}
