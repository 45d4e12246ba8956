package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/forage/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.pop.TickCount()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.pop.Stats(), g.pop.Sample())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsPanel != nil {
		g.statsPanel.Update(stats)
	}
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.runID, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if g.store != nil {
		if err := g.store.SaveWindow(context.Background(), stats); err != nil {
			slog.Error("failed to store window", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if g.store != nil {
			if err := g.store.SaveBookmark(context.Background(), bm); err != nil {
				slog.Error("failed to store bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" && bm.Type == telemetry.BookmarkNewRecord {
			g.saveSnapshot(string(bm.Type))
		}
	}
}

// saveSnapshot writes the current population to the snapshot directory.
func (g *Game) saveSnapshot(reason string) {
	snapshot := g.pop.Export(g.runID, g.rngSeed)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", snapshot.Tick, "reason", reason)
}
