// Package report lays out pre-structured backend data (entity reports and
// evaluation metrics) into ordered, truncated sections ready to render.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/vidbrief/internal/backend"
)

// MaxItems is the number of entries any list-like section shows before the
// rest is summarised as a remainder count.
const MaxItems = 10

// MinFallbackLen is the shortest raw text worth showing when a report has
// no structured data.
const MinFallbackLen = 20

// NotAvailable is shown when a report has neither data nor useful raw text.
const NotAvailable = "No entity information is available for this video."

// SectionKind identifies a laid-out section.
type SectionKind string

const (
	SectionFacts         SectionKind = "facts"
	SectionEntities      SectionKind = "entities"
	SectionTimeline      SectionKind = "timeline"
	SectionRelationships SectionKind = "relationships"
	SectionRaw           SectionKind = "raw"
	SectionUnavailable   SectionKind = "unavailable"
	SectionMetrics       SectionKind = "metrics"
)

// Layout is an ordered list of sections.
type Layout struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one titled block of a layout. Which fields are set depends on
// Kind: facts use Stats and Groups, entities use Groups, timeline and
// relationships use Rows, raw and unavailable use Text.
type Section struct {
	Kind      SectionKind `json:"kind" yaml:"kind"`
	Title     string      `json:"title" yaml:"title"`
	Stats     []Stat      `json:"stats,omitempty" yaml:"stats,omitempty"`
	Groups    []Group     `json:"groups,omitempty" yaml:"groups,omitempty"`
	Rows      []Row       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Remaining int         `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	Text      string      `json:"text,omitempty" yaml:"text,omitempty"`
}

// Stat is a labelled value.
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Group is a named list of short items.
type Group struct {
	Name      string   `json:"name" yaml:"name"`
	Items     []string `json:"items" yaml:"items"`
	Remaining int      `json:"remaining,omitempty" yaml:"remaining,omitempty"`
}

// Row is one timeline entry or relationship.
type Row struct {
	Label  string `json:"label" yaml:"label"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// categoryOrder is the display order of entity categories; unknown
// categories follow alphabetically.
var categoryOrder = []string{
	"PERSON", "ORG", "GPE", "LOC", "DATE", "TIME", "MONEY",
	"PERCENT", "EVENT", "PRODUCT", "LAW", "LANGUAGE", "NORP",
}

var categoryNames = map[string]string{
	"PERSON":   "People",
	"ORG":      "Organizations",
	"GPE":      "Countries, cities and states",
	"LOC":      "Locations",
	"DATE":     "Dates",
	"TIME":     "Times",
	"MONEY":    "Money",
	"PERCENT":  "Percentages",
	"EVENT":    "Events",
	"PRODUCT":  "Products",
	"LAW":      "Laws",
	"LANGUAGE": "Languages",
	"NORP":     "Groups and nationalities",
}

// LayoutReport arranges a report as facts, entities, timeline and relationships,
// skipping empty sections. A report without any data falls back to its raw
// text, or to a not-available notice when the raw text is too short.
func LayoutReport(r *backend.EntityReport) Layout {
	if r == nil {
		r = &backend.EntityReport{}
	}

	var l Layout
	if s, ok := factsSection(r.KeyFacts); ok {
		l.Sections = append(l.Sections, s)
	}
	if s, ok := entitiesSection(r.Entities); ok {
		l.Sections = append(l.Sections, s)
	}
	if s, ok := timelineSection(r.Timeline); ok {
		l.Sections = append(l.Sections, s)
	}
	if s, ok := relationshipsSection(r.Relationships); ok {
		l.Sections = append(l.Sections, s)
	}
	if len(l.Sections) > 0 {
		return l
	}

	raw := strings.TrimSpace(r.Raw)
	if len([]rune(raw)) >= MinFallbackLen {
		l.Sections = append(l.Sections, Section{Kind: SectionRaw, Title: "Entity analysis", Text: raw})
	} else {
		l.Sections = append(l.Sections, Section{Kind: SectionUnavailable, Title: "Entity analysis", Text: NotAvailable})
	}
	return l
}

func factsSection(f *backend.KeyFacts) (Section, bool) {
	if f.Empty() {
		return Section{}, false
	}
	s := Section{Kind: SectionFacts, Title: "Key facts"}

	counters := []struct {
		label string
		n     int
	}{
		{"People mentioned", f.PeopleMentioned},
		{"Organizations", f.Organizations},
		{"Locations", f.Locations},
		{"Dates mentioned", f.DatesMentioned},
		{"Numbers mentioned", f.NumbersMentioned},
		{"Questions asked", f.QuestionsAsked},
	}
	for _, c := range counters {
		if c.n > 0 {
			s.Stats = append(s.Stats, Stat{Label: c.label, Value: fmt.Sprint(c.n)})
		}
	}

	if len(f.SmartInsights) > 0 {
		s.Groups = append(s.Groups, truncatedGroup("Did you know?", f.SmartInsights))
	}
	for _, top := range []struct {
		name string
		list []backend.NamedCount
	}{
		{"Top people", f.TopPeople},
		{"Top organizations", f.TopOrganizations},
		{"Top locations", f.TopLocations},
	} {
		if len(top.list) == 0 {
			continue
		}
		items := make([]string, 0, len(top.list))
		for _, nc := range top.list {
			items = append(items, fmt.Sprintf("%s (%d)", nc.Name, nc.Mentions))
		}
		s.Groups = append(s.Groups, truncatedGroup(top.name, items))
	}
	return s, true
}

func entitiesSection(entities map[string][]backend.Entity) (Section, bool) {
	s := Section{Kind: SectionEntities, Title: "Entities"}
	for _, category := range orderedCategories(entities) {
		list := entities[category]
		if len(list) == 0 {
			continue
		}
		items := make([]string, 0, len(list))
		for _, e := range list {
			items = append(items, e.Text)
		}
		s.Groups = append(s.Groups, truncatedGroup(CategoryName(category), items))
	}
	return s, len(s.Groups) > 0
}

func timelineSection(timeline []backend.TimelineEntry) (Section, bool) {
	if len(timeline) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionTimeline, Title: "Timeline"}
	shown, rest := split(len(timeline))
	for _, t := range timeline[:shown] {
		s.Rows = append(s.Rows, Row{Label: t.Date, Detail: t.Context})
	}
	s.Remaining = rest
	return s, true
}

func relationshipsSection(rels []backend.Relationship) (Section, bool) {
	if len(rels) == 0 {
		return Section{}, false
	}
	s := Section{Kind: SectionRelationships, Title: "Relationships"}
	shown, rest := split(len(rels))
	for _, r := range rels[:shown] {
		label := r.Entity1 + " ↔ " + r.Entity2
		if r.Type != "" {
			label += " (" + r.Type + ")"
		}
		s.Rows = append(s.Rows, Row{Label: label, Detail: r.Context})
	}
	s.Remaining = rest
	return s, true
}

// CategoryName returns the display name of an entity category.
func CategoryName(category string) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return category
}

func orderedCategories(entities map[string][]backend.Entity) []string {
	known := make(map[string]bool, len(categoryOrder))
	out := make([]string, 0, len(entities))
	for _, c := range categoryOrder {
		known[c] = true
		if _, ok := entities[c]; ok {
			out = append(out, c)
		}
	}
	var unknown []string
	for c := range entities {
		if !known[c] {
			unknown = append(unknown, c)
		}
	}
	sort.Strings(unknown)
	return append(out, unknown...)
}

func truncatedGroup(name string, items []string) Group {
	shown, rest := split(len(items))
	return Group{Name: name, Items: items[:shown], Remaining: rest}
}

func split(n int) (shown, rest int) {
	if n <= MaxItems {
		return n, 0
	}
	return MaxItems, n - MaxItems
}
