package backend

import (
	"strings"
)

const maxEntityText = 200

// SanitizeReport cleans a decoded entity report in place: entity texts are
// trimmed and de-duplicated per category, category keys are upper-cased,
// incomplete timeline entries and relationships are dropped and negative
// counters are clamped to zero.
func SanitizeReport(r *EntityReport) {
	if r == nil {
		return
	}

	if len(r.Entities) > 0 {
		cleaned := make(map[string][]Entity, len(r.Entities))
		for category, list := range r.Entities {
			key := strings.ToUpper(strings.TrimSpace(category))
			if key == "" {
				continue
			}
			seen := make(map[string]bool)
			for _, e := range cleaned[key] {
				seen[strings.ToLower(e.Text)] = true
			}
			for _, e := range list {
				e.Text = strings.TrimSpace(e.Text)
				if e.Text == "" || len(e.Text) > maxEntityText {
					continue
				}
				if seen[strings.ToLower(e.Text)] {
					continue
				}
				seen[strings.ToLower(e.Text)] = true
				cleaned[key] = append(cleaned[key], e)
			}
		}
		for key, list := range cleaned {
			if len(list) == 0 {
				delete(cleaned, key)
			}
		}
		r.Entities = cleaned
	}

	timeline := r.Timeline[:0]
	for _, t := range r.Timeline {
		t.Date = strings.TrimSpace(t.Date)
		t.Context = strings.TrimSpace(t.Context)
		if t.Date == "" && t.Context == "" {
			continue
		}
		timeline = append(timeline, t)
	}
	r.Timeline = timeline

	rels := r.Relationships[:0]
	for _, rel := range r.Relationships {
		rel.Entity1 = strings.TrimSpace(rel.Entity1)
		rel.Entity2 = strings.TrimSpace(rel.Entity2)
		if rel.Entity1 == "" || rel.Entity2 == "" {
			continue
		}
		rels = append(rels, rel)
	}
	r.Relationships = rels

	if f := r.KeyFacts; f != nil {
		for _, n := range []*int{
			&f.PeopleMentioned, &f.Organizations, &f.Locations,
			&f.DatesMentioned, &f.NumbersMentioned, &f.QuestionsAsked,
		} {
			if *n < 0 {
				*n = 0
			}
		}
		insights := f.SmartInsights[:0]
		for _, s := range f.SmartInsights {
			if s = strings.TrimSpace(s); s != "" {
				insights = append(insights, s)
			}
		}
		f.SmartInsights = insights
		f.TopPeople = cleanCounts(f.TopPeople)
		f.TopOrganizations = cleanCounts(f.TopOrganizations)
		f.TopLocations = cleanCounts(f.TopLocations)
	}
}

func cleanCounts(in []NamedCount) []NamedCount {
	out := in[:0]
	for _, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if c.Mentions < 0 {
			c.Mentions = 0
		}
		out = append(out, c)
	}
	return out
}
