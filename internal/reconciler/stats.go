package reconciler

import (
	"sync"
	"time"
)

// RunStats summarizes one reconciliation pass.
type RunStats struct {
	StartedAt time.Time
	Duration  time.Duration
	Checked   int
	Updated   int
	Refunded  int
	Failed    int
	Unmapped  int
}

// Stats keeps a bounded history of run summaries. It is an injected
// object, not a package global, so tests and multiple schedulers can
// each own their own.
type Stats struct {
	mu       sync.Mutex
	capacity int
	history  []RunStats
}

func NewStats(capacity int) *Stats {
	if capacity <= 0 {
		capacity = 1
	}
	return &Stats{capacity: capacity}
}

func (st *Stats) Record(rs RunStats) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.history = append(st.history, rs)
	if len(st.history) > st.capacity {
		st.history = st.history[len(st.history)-st.capacity:]
	}
}

func (st *Stats) History() []RunStats {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]RunStats, len(st.history))
	copy(out, st.history)
	return out
}

func (st *Stats) Last() (RunStats, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.history) == 0 {
		return RunStats{}, false
	}
	return st.history[len(st.history)-1], true
}
