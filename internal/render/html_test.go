package render

import (
	"strings"
	"testing"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/parser"
	"github.com/dgallion1/vidbrief/internal/report"
)

func TestHTML_Blocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "## Title", "<h2>Title</h2>\n"},
		{"subheading", "### Details", "<h3>Details</h3>\n"},
		{"roman heading", "I. Introduction", `<h2 class="roman-heading">I. Introduction</h2>` + "\n"},
		{"shout heading", "KEY POINTS:", `<h4 class="shout-heading">KEY POINTS:</h4>` + "\n"},
		{"numbered entry", "1. First", `<p class="numbered-entry"><strong>1.</strong> First</p>` + "\n"},
		{"list then paragraph", "* one\n* two\n\nSome text", "<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n<p>Some text</p>\n"},
		{"inline emphasis", "**bold** and *italic*", "<p><strong>bold</strong> and <em>italic</em></p>\n"},
		{"line breaks", "first\nsecond", "<p>first<br>\nsecond</p>\n"},
		{"break after emphasis", "*lead*\nnext", "<p><em>lead</em><br>\nnext</p>\n"},
		{"escaping", "a <b> & c", "<p>a &lt;b&gt; &amp; c</p>\n"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HTML(parser.Structure(tc.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHTML_NilDocument(t *testing.T) {
	got, err := HTML(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestHTML_InsightsFragment(t *testing.T) {
	doc := parser.StructurePayload("<h3>Suggested Questions</h3><ul><li>Why <b>now</b>?</li></ul>")
	got, err := HTML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<h3>Suggested Questions</h3>\n<ul>\n<li>Why <strong>now</strong>?</li>\n</ul>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReportHTML(t *testing.T) {
	l := report.Layout{Sections: []report.Section{
		{
			Kind:   report.SectionEntities,
			Title:  "Entities",
			Groups: []report.Group{{Name: "People", Items: []string{"Ada"}, Remaining: 2}},
		},
		{
			Kind:  report.SectionTimeline,
			Title: "Timeline",
			Rows:  []report.Row{{Label: "1843", Detail: "Notes published."}},
		},
	}}
	got, err := ReportHTML(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h3 class="report-entities">Entities</h3>` + "\n" +
		"<h4>People</h4>\n<ul>\n<li>Ada</li>\n</ul>\n" +
		`<p class="remaining">… and 2 more</p>` + "\n" +
		`<h3 class="report-timeline">Timeline</h3>` + "\n" +
		"<ul>\n<li><strong>1843</strong>: Notes published.</li>\n</ul>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestReportHTML_RawFallback(t *testing.T) {
	l := report.LayoutReport(&backend.EntityReport{Raw: "line one of the text\nline two"})
	got, err := ReportHTML(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `<p class="raw">line one of the text<br>`+"\nline two</p>") {
		t.Errorf("expected raw paragraph with break, got %q", got)
	}
}

func TestSectionHTML_Metrics(t *testing.T) {
	score := 0.5
	got, err := SectionHTML(report.LayoutMetrics(&backend.Metrics{RetrievalScore: &score}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<h3 class="report-metrics">Evaluation metrics</h3>` + "\n" +
		"<ul>\n<li><strong>Retrieval score:</strong> 50.0%</li>\n</ul>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	empty, err := SectionHTML(report.LayoutMetrics(nil))
	if err != nil || empty != "" {
		t.Errorf("expected empty output for nil metrics, got %q, %v", empty, err)
	}
}

func TestHTML_HandBuiltDocument(t *testing.T) {
	doc := &doctree.Document{Blocks: []*doctree.Block{{
		Kind: doctree.KindParagraph,
		Inlines: []doctree.Inline{
			{Kind: doctree.InlineStrong, Text: "a"},
			{Kind: doctree.InlineLineBreak},
			{Kind: doctree.InlineLineBreak},
			{Kind: doctree.InlineText, Text: "b"},
		},
	}}}
	got, err := HTML(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<p><strong>a</strong><br>\n<br>\nb</p>\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
