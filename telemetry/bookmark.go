package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkNewRecord       BookmarkType = "new_record"
	BookmarkEfficiencyJump  BookmarkType = "efficiency_jump"
	BookmarkMassExtinction  BookmarkType = "mass_extinction"
	BookmarkForagingEmerged BookmarkType = "foraging_emerged"
)

// Bookmark marks a notable reporting window.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable changes.
type BookmarkDetector struct {
	populationSize int

	history []WindowStats // Ring buffer
	next    int
	full    bool

	record   int
	foraging bool
}

// NewBookmarkDetector compares each window against the previous historySize.
func NewBookmarkDetector(historySize, populationSize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		populationSize: populationSize,
		history:        make([]WindowStats, historySize),
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	mark := func(t BookmarkType, format string, args ...any) {
		out = append(out, Bookmark{
			RunID:       stats.RunID,
			Type:        t,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if stats.Best > bd.record {
		if bd.record > 0 {
			mark(BookmarkNewRecord, "Best fitness %d beats previous record %d", stats.Best, bd.record)
		}
		bd.record = stats.Best
	}

	// One meal per entity per window on average
	if !bd.foraging && bd.populationSize > 0 && stats.Eaten >= bd.populationSize {
		bd.foraging = true
		mark(BookmarkForagingEmerged, "%d meals in one window for %d entities", stats.Eaten, bd.populationSize)
	}

	if deaths := stats.Starved + stats.Wandered + stats.Natural; bd.populationSize > 0 && deaths*2 >= bd.populationSize {
		mark(BookmarkMassExtinction, "%d of %d entities died in one window", deaths, bd.populationSize)
	}

	if history := bd.window(); len(history) >= 3 {
		var sum float64
		for _, h := range history {
			sum += h.Efficiency
		}
		avg := sum / float64(len(history))
		if avg > 0 && stats.Efficiency > 2*avg {
			mark(BookmarkEfficiencyJump, "Efficiency %.2f is %.1fx average (%.2f)", stats.Efficiency, stats.Efficiency/avg, avg)
		}
	}

	bd.history[bd.next] = stats
	bd.next = (bd.next + 1) % len(bd.history)
	if bd.next == 0 {
		bd.full = true
	}

	return out
}

func (bd *BookmarkDetector) window() []WindowStats {
	if bd.full {
		return bd.history
	}
	return bd.history[:bd.next]
}
