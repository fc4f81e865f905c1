package backend

import (
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(EndpointSummary, ms, false)
	}

	snap := stats.Snapshot()[EndpointSummary]
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsKeepsEndpointsApart(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(EndpointSummary, 100, false)
	stats.Record(EndpointAsk, 50, true)
	stats.Record(EndpointAsk, 70, false)

	snap := stats.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(snap))
	}
	if snap[EndpointAsk].Count != 2 || snap[EndpointAsk].Failures != 1 {
		t.Errorf("expected ask count=2 failures=1, got %+v", snap[EndpointAsk])
	}
	if snap[EndpointSummary].Failures != 0 {
		t.Errorf("expected no summary failures, got %d", snap[EndpointSummary].Failures)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Record(EndpointInsights, 100, false)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if _, ok := snap[EndpointInsights]; ok {
		t.Fatalf("expected endpoint to be pruned, got %+v", snap[EndpointInsights])
	}

	stats.Record(EndpointInsights, 200, false)
	got := stats.Snapshot()[EndpointInsights]
	if got.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", got.Count)
	}
	if got.MinMs != 200 || got.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", got.MinMs, got.MaxMs)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(EndpointMetadata, -10, false)
	snap := stats.Snapshot()[EndpointMetadata]
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
