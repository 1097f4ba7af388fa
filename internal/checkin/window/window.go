// Package window keeps per-gate redemption timestamps for rate reporting.
// Rates are never stored: they are counted over the window on every read.
package window

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is a process-local window. Timestamps older than the retention
// period are dropped as new ones arrive.
type Memory struct {
	retention time.Duration

	mu    sync.Mutex
	gates map[string][]time.Time
}

func NewMemory(retention time.Duration) *Memory {
	return &Memory{
		retention: retention,
		gates:     make(map[string][]time.Time),
	}
}

func (m *Memory) Add(_ context.Context, gateID, _ string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	times := m.gates[gateID]

	// Redemptions usually arrive in order; keep the slice sorted otherwise.
	i := sort.Search(len(times), func(i int) bool { return times[i].After(at) })
	times = append(times, time.Time{})
	copy(times[i+1:], times[i:])
	times[i] = at

	cutoff := at.Add(-m.retention)
	drop := sort.Search(len(times), func(i int) bool { return !times[i].Before(cutoff) })
	m.gates[gateID] = times[drop:]

	return nil
}

func (m *Memory) Count(_ context.Context, gateID string, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	times := m.gates[gateID]
	i := sort.Search(len(times), func(i int) bool { return !times[i].Before(since) })

	return int64(len(times) - i), nil
}
