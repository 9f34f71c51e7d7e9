package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLLMStats_SnapshotPercentilesAndOutcomes(t *testing.T) {
	stats := NewLLMStats(time.Hour)
	stats.Record(100, OutcomeOK)
	stats.Record(200, OutcomeOK)
	stats.Record(300, OutcomeFailed)
	stats.Record(400, OutcomeOK)
	stats.Record(500, OutcomeTimeout)

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Calls)
	assert.Equal(t, 3, snap.OK)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, 1, snap.Timeouts)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 300.0, snap.AvgMs)
	assert.Equal(t, 300.0, snap.P50Ms)
	assert.InDelta(t, 480.0, snap.P95Ms, 1e-9)
}

func TestLLMStats_PrunesOutsideWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stats := NewLLMStats(time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100, OutcomeOK)
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, stats.Snapshot().Calls)

	stats.Record(200, OutcomeFailed)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Calls)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, int64(200), snap.MinMs)
}

func TestLLMStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewLLMStats(0)
	stats.Record(-10, OutcomeOK)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Calls)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestLLMStats_Empty(t *testing.T) {
	assert.Equal(t, StatsSnapshot{}, NewLLMStats(time.Hour).Snapshot())
}
