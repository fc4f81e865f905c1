package report

import (
	"fmt"

	"github.com/dgallion1/vidbrief/internal/backend"
)

// LayoutMetrics lays out the evaluation record of a chat answer. Scores are
// shown as percentages and latency in seconds; absent fields are skipped.
// It returns nil when there is nothing to show.
func LayoutMetrics(m *backend.Metrics) *Section {
	if m.Empty() {
		return nil
	}

	s := &Section{Kind: SectionMetrics, Title: "Evaluation metrics"}
	scores := []struct {
		label string
		v     *float64
	}{
		{"Retrieval score", m.RetrievalScore},
		{"Faithfulness", m.Faithfulness},
		{"Answer relevance", m.AnswerRelevance},
		{"Coherence", m.Coherence},
		{"Context precision", m.ContextPrecision},
		{"Context recall", m.ContextRecallProxy},
		{"MRR", m.MRR},
	}
	for _, sc := range scores {
		if sc.v != nil {
			s.Stats = append(s.Stats, Stat{Label: sc.label, Value: percent(*sc.v)})
		}
	}
	if m.Latency != nil {
		s.Stats = append(s.Stats, Stat{Label: "Latency", Value: fmt.Sprintf("%.2fs", *m.Latency)})
	}
	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
