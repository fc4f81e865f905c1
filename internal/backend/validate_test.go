package backend

import (
	"strings"
	"testing"
)

func TestSanitizeReport_Nil(t *testing.T) {
	// Should not panic.
	SanitizeReport(nil)
}

func TestSanitizeReport_EntitiesTrimmedAndDeduplicated(t *testing.T) {
	r := &EntityReport{Entities: map[string][]Entity{
		"person": {{Text: " Ada Lovelace "}, {Text: "ada lovelace"}, {Text: ""}},
		"PERSON": {{Text: "Charles Babbage"}},
		"org":    {{Text: "   "}},
		" ":      {{Text: "orphan"}},
		"LOC":    {{Text: strings.Repeat("x", maxEntityText+1)}},
	}}
	SanitizeReport(r)

	people := r.Entities["PERSON"]
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d: %+v", len(people), people)
	}
	for _, p := range people {
		if p.Text != strings.TrimSpace(p.Text) {
			t.Errorf("expected trimmed text, got %q", p.Text)
		}
	}
	if _, ok := r.Entities["ORG"]; ok {
		t.Error("expected empty ORG category to be dropped")
	}
	if _, ok := r.Entities["LOC"]; ok {
		t.Error("expected over-long entity to be dropped")
	}
	if len(r.Entities) != 1 {
		t.Errorf("expected 1 category, got %d", len(r.Entities))
	}
}

func TestSanitizeReport_TimelineAndRelationships(t *testing.T) {
	r := &EntityReport{
		Timeline: []TimelineEntry{
			{Date: "1843", Context: "Notes published."},
			{Date: " ", Context: ""},
			{Date: "", Context: "Undated but useful."},
		},
		Relationships: []Relationship{
			{Type: "PERSON-ORG", Entity1: "Ada", Entity2: "Royal Society"},
			{Type: "PERSON-ORG", Entity1: "Ada", Entity2: " "},
		},
	}
	SanitizeReport(r)

	if len(r.Timeline) != 2 {
		t.Errorf("expected 2 timeline entries, got %d", len(r.Timeline))
	}
	if len(r.Relationships) != 1 {
		t.Errorf("expected 1 relationship, got %d", len(r.Relationships))
	}
}

func TestSanitizeReport_KeyFactsClamped(t *testing.T) {
	r := &EntityReport{KeyFacts: &KeyFacts{
		PeopleMentioned: -3,
		Locations:       2,
		SmartInsights:   []string{" Did you know? ", ""},
		TopPeople:       []NamedCount{{Name: "Ada", Mentions: -1}, {Name: ""}},
	}}
	SanitizeReport(r)

	f := r.KeyFacts
	if f.PeopleMentioned != 0 {
		t.Errorf("expected clamped count 0, got %d", f.PeopleMentioned)
	}
	if f.Locations != 2 {
		t.Errorf("expected locations 2, got %d", f.Locations)
	}
	if len(f.SmartInsights) != 1 || f.SmartInsights[0] != "Did you know?" {
		t.Errorf("unexpected insights %q", f.SmartInsights)
	}
	if len(f.TopPeople) != 1 || f.TopPeople[0].Mentions != 0 {
		t.Errorf("unexpected top people %+v", f.TopPeople)
	}
}

func TestKeyFactsEmpty(t *testing.T) {
	var nilFacts *KeyFacts
	if !nilFacts.Empty() {
		t.Error("expected nil facts to be empty")
	}
	if !(&KeyFacts{}).Empty() {
		t.Error("expected zero facts to be empty")
	}
	if (&KeyFacts{DatesMentioned: 1}).Empty() {
		t.Error("expected facts with a count to be non-empty")
	}
}
