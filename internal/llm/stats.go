package llm

import (
	"slices"
	"sync"
	"time"
)

// Outcome classifies a finished model call.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeTimeout Outcome = "timeout"
)

type call struct {
	at         time.Time
	durationMs int64
	outcome    Outcome
}

// StatsSnapshot aggregates the model calls inside the rolling window.
type StatsSnapshot struct {
	Calls    int     `json:"calls"`
	OK       int     `json:"ok"`
	Failed   int     `json:"failed"`
	Timeouts int     `json:"timeouts"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
}

// LLMStats records model call latency and outcome for the stats endpoint.
// It is observability only; generation never reads it.
type LLMStats struct {
	mu     sync.Mutex
	calls  []call
	window time.Duration
	now    func() time.Time
}

func NewLLMStats(window time.Duration) *LLMStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LLMStats{
		calls:  make([]call, 0, 128),
		window: window,
		now:    time.Now,
	}
}

func (s *LLMStats) Record(durationMs int64, outcome Outcome) {
	if durationMs < 0 {
		durationMs = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	s.calls = append(s.calls, call{at: now, durationMs: durationMs, outcome: outcome})
}

func (s *LLMStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	if len(s.calls) == 0 {
		return StatsSnapshot{}
	}

	snap := StatsSnapshot{Calls: len(s.calls)}
	durations := make([]int64, 0, len(s.calls))
	var sum int64
	for _, c := range s.calls {
		switch c.outcome {
		case OutcomeOK:
			snap.OK++
		case OutcomeTimeout:
			snap.Timeouts++
		default:
			snap.Failed++
		}
		durations = append(durations, c.durationMs)
		sum += c.durationMs
	}
	slices.Sort(durations)

	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(sum) / float64(len(durations))
	snap.P50Ms = percentile(durations, 50)
	snap.P95Ms = percentile(durations, 95)
	return snap
}

func (s *LLMStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.calls = slices.DeleteFunc(s.calls, func(c call) bool {
		return c.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
