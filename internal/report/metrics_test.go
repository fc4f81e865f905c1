package report

import (
	"testing"

	"github.com/dgallion1/vidbrief/internal/backend"
)

func f(v float64) *float64 { return &v }

func TestLayoutMetrics_Nil(t *testing.T) {
	if s := LayoutMetrics(nil); s != nil {
		t.Errorf("expected no section for nil metrics, got %+v", s)
	}
	if s := LayoutMetrics(&backend.Metrics{}); s != nil {
		t.Errorf("expected no section for empty metrics, got %+v", s)
	}
}

func TestLayoutMetrics_FormatsAndOmits(t *testing.T) {
	s := LayoutMetrics(&backend.Metrics{
		RetrievalScore: f(0.8234),
		MRR:            f(1),
		Latency:        f(1.25),
	})
	if s == nil {
		t.Fatal("expected a metrics section")
	}
	want := []Stat{
		{Label: "Retrieval score", Value: "82.3%"},
		{Label: "MRR", Value: "100.0%"},
		{Label: "Latency", Value: "1.25s"},
	}
	if len(s.Stats) != len(want) {
		t.Fatalf("expected %d stats, got %+v", len(want), s.Stats)
	}
	for i := range want {
		if s.Stats[i] != want[i] {
			t.Errorf("stat[%d]: expected %+v, got %+v", i, want[i], s.Stats[i])
		}
	}
}

func TestLayoutMetrics_AllScoresInOrder(t *testing.T) {
	s := LayoutMetrics(&backend.Metrics{
		RetrievalScore:     f(0.1),
		Faithfulness:       f(0.2),
		AnswerRelevance:    f(0.3),
		Coherence:          f(0.4),
		ContextPrecision:   f(0.5),
		ContextRecallProxy: f(0.6),
		MRR:                f(0.7),
		Latency:            f(2),
	})
	labels := []string{
		"Retrieval score", "Faithfulness", "Answer relevance", "Coherence",
		"Context precision", "Context recall", "MRR", "Latency",
	}
	if len(s.Stats) != len(labels) {
		t.Fatalf("expected %d stats, got %d", len(labels), len(s.Stats))
	}
	for i, l := range labels {
		if s.Stats[i].Label != l {
			t.Errorf("stat[%d]: expected %q, got %q", i, l, s.Stats[i].Label)
		}
	}
}
