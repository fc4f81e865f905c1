package backend

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
	failed     bool
}

// StatsSnapshot is a point-in-time aggregate of latency samples for one
// backend endpoint.
type StatsSnapshot struct {
	Count    int     `json:"count"`
	Failures int     `json:"failures"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
}

// Stats tracks recent backend call latencies per endpoint within a rolling
// window.
type Stats struct {
	mu        sync.Mutex
	endpoints map[string][]sample
	maxAge    time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		endpoints: make(map[string][]sample),
		maxAge:    maxAge,
	}
}

// Record adds one call to the endpoint's window.
func (s *Stats) Record(endpoint string, durationMs int64, failed bool) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.endpoints[endpoint] = append(s.endpoints[endpoint], sample{
		timestamp:  now,
		durationMs: durationMs,
		failed:     failed,
	})
}

// Snapshot aggregates every endpoint that has samples in the window.
func (s *Stats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	out := make(map[string]StatsSnapshot, len(s.endpoints))
	for endpoint, samples := range s.endpoints {
		out[endpoint] = aggregate(samples)
	}
	return out
}

func aggregate(samples []sample) StatsSnapshot {
	if len(samples) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, 0, len(samples))
	var sum int64
	failures := 0
	for _, sm := range samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
		if sm.failed {
			failures++
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count:    len(values),
		Failures: failures,
		MinMs:    values[0],
		MaxMs:    values[len(values)-1],
		AvgMs:    float64(sum) / float64(len(values)),
		P50Ms:    percentile(values, 50),
		P95Ms:    percentile(values, 95),
		P99Ms:    percentile(values, 99),
	}
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	for endpoint, samples := range s.endpoints {
		writeIdx := 0
		for _, sm := range samples {
			if !sm.timestamp.Before(cutoff) {
				samples[writeIdx] = sm
				writeIdx++
			}
		}
		if writeIdx == 0 {
			delete(s.endpoints, endpoint)
			continue
		}
		s.endpoints[endpoint] = samples[:writeIdx]
	}
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
