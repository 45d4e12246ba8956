package telemetry

// History keeps the most recent best-fitness samples for the graph.
// The high score covers the whole run; the low score only the retained samples.
type History struct {
	capacity int
	interval int64

	samples   []int // Ring buffer, oldest at start once full
	start     int
	highScore int
}

// NewHistory keeps up to capacity samples taken every interval ticks.
func NewHistory(capacity, interval int) *History {
	if capacity < 1 {
		capacity = 1
	}
	if interval < 1 {
		interval = 1
	}
	return &History{
		capacity: capacity,
		interval: int64(interval),
		samples:  make([]int, 0, capacity),
	}
}

// Observe records best if tick falls on the sampling interval.
// It reports whether a sample was taken.
func (h *History) Observe(tick int64, best int) bool {
	if tick%h.interval != 0 {
		return false
	}
	h.Record(best)
	return true
}

// Record appends a sample, dropping the oldest when full.
func (h *History) Record(best int) {
	if len(h.samples) < h.capacity {
		h.samples = append(h.samples, best)
	} else {
		h.samples[h.start] = best
		h.start = (h.start + 1) % h.capacity
	}

	if best > h.highScore {
		h.highScore = best
	}
}

// Samples returns the retained samples, oldest first.
func (h *History) Samples() []int {
	out := make([]int, 0, len(h.samples))
	out = append(out, h.samples[h.start:]...)
	out = append(out, h.samples[:h.start]...)
	return out
}

// Len returns the number of retained samples.
func (h *History) Len() int { return len(h.samples) }

// Capacity returns the maximum number of retained samples.
func (h *History) Capacity() int { return h.capacity }

// HighScore returns the best sample ever recorded.
func (h *History) HighScore() int { return h.highScore }

// LowScore returns the smallest retained sample, or 0 when empty.
func (h *History) LowScore() int {
	if len(h.samples) == 0 {
		return 0
	}
	low := h.samples[0]
	for _, s := range h.samples[1:] {
		low = min(low, s)
	}
	return low
}
