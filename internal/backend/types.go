package backend

import (
	"fmt"
	"strings"
)

// SummaryType selects the summary prompt on the backend.
type SummaryType string

const (
	SummaryShort    SummaryType = "short"
	SummaryDetailed SummaryType = "detailed"
)

// ParseSummaryType accepts "short", "detailed" or an empty string (short).
func ParseSummaryType(s string) (SummaryType, error) {
	switch SummaryType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SummaryShort:
		return SummaryShort, nil
	case SummaryDetailed:
		return SummaryDetailed, nil
	}
	return "", fmt.Errorf("unknown summary type %q", s)
}

// Metadata describes a video as reported by the oEmbed endpoint.
type Metadata struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
	WatchURL     string `json:"watch_url"`
}

// Exchange is one question/answer pair of a chat session.
type Exchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Metrics is the optional evaluation record attached to a chat answer.
// Scores are fractions in [0,1]; Latency is in seconds.
type Metrics struct {
	RetrievalScore     *float64 `json:"retrieval_score,omitempty"`
	Faithfulness       *float64 `json:"faithfulness,omitempty"`
	AnswerRelevance    *float64 `json:"answer_relevance,omitempty"`
	Coherence          *float64 `json:"coherence,omitempty"`
	ContextPrecision   *float64 `json:"context_precision,omitempty"`
	ContextRecallProxy *float64 `json:"context_recall_proxy,omitempty"`
	MRR                *float64 `json:"mrr,omitempty"`
	Latency            *float64 `json:"latency,omitempty"`
}

// Empty reports whether no field of the record is set.
func (m *Metrics) Empty() bool {
	if m == nil {
		return true
	}
	for _, v := range []*float64{
		m.RetrievalScore, m.Faithfulness, m.AnswerRelevance, m.Coherence,
		m.ContextPrecision, m.ContextRecallProxy, m.MRR, m.Latency,
	} {
		if v != nil {
			return false
		}
	}
	return true
}

// Answer is the result of a question/answer exchange.
type Answer struct {
	Text    string   `json:"text"`
	Metrics *Metrics `json:"metrics,omitempty"`
}

// NamedCount is an entity name with its mention count.
type NamedCount struct {
	Name     string `json:"name"`
	Mentions int    `json:"mentions"`
}

// KeyFacts holds the aggregate counters of an entity report.
type KeyFacts struct {
	PeopleMentioned  int          `json:"people_mentioned"`
	Organizations    int          `json:"organizations"`
	Locations        int          `json:"locations"`
	DatesMentioned   int          `json:"dates_mentioned"`
	NumbersMentioned int          `json:"numbers_mentioned,omitempty"`
	QuestionsAsked   int          `json:"questions_asked,omitempty"`
	SmartInsights    []string     `json:"smart_insights,omitempty"`
	TopPeople        []NamedCount `json:"top_people,omitempty"`
	TopOrganizations []NamedCount `json:"top_organizations,omitempty"`
	TopLocations     []NamedCount `json:"top_locations,omitempty"`
}

// Empty reports whether the facts carry nothing worth showing.
func (f *KeyFacts) Empty() bool {
	if f == nil {
		return true
	}
	return f.PeopleMentioned == 0 && f.Organizations == 0 && f.Locations == 0 &&
		f.DatesMentioned == 0 && f.NumbersMentioned == 0 && f.QuestionsAsked == 0 &&
		len(f.SmartInsights) == 0 && len(f.TopPeople) == 0 &&
		len(f.TopOrganizations) == 0 && len(f.TopLocations) == 0
}

// Entity is one named entity occurrence.
type Entity struct {
	Text        string `json:"text"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// TimelineEntry pairs a date expression with the sentence it appeared in.
type TimelineEntry struct {
	Date    string `json:"date"`
	Context string `json:"context"`
}

// Relationship is a co-occurrence of two entities.
type Relationship struct {
	Type    string `json:"type"`
	Entity1 string `json:"entity1"`
	Entity2 string `json:"entity2"`
	Context string `json:"context,omitempty"`
}

// EntityReport is the pre-structured result of entity extraction. Raw holds
// the payload when the backend could not produce structured data.
type EntityReport struct {
	KeyFacts      *KeyFacts           `json:"key_facts,omitempty"`
	Entities      map[string][]Entity `json:"entities,omitempty"`
	Timeline      []TimelineEntry     `json:"timeline,omitempty"`
	Relationships []Relationship      `json:"relationships,omitempty"`
	Raw           string              `json:"raw,omitempty"`
}
