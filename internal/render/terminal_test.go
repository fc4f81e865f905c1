package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/parser"
	"github.com/dgallion1/vidbrief/internal/report"
)

func TestTerminal_ContainsContent(t *testing.T) {
	out := Terminal(parser.Structure("## Title\n* one\n* two\n\n3. Third\nSome *text*"), 40)
	for _, want := range []string{"Title", "•", "one", "two", "3.", "Third", "Some", "text"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTerminal_WrapsToWidth(t *testing.T) {
	long := strings.Repeat("word ", 40)
	out := Terminal(parser.Structure("* "+long), 30)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("expected lines of at most 30 cells, got %d: %q", w, line)
		}
	}
	if strings.Count(out, "•") != 1 {
		t.Errorf("expected a single bullet for one item, got %q", out)
	}
}

func TestTerminal_Empty(t *testing.T) {
	if out := Terminal(parser.Structure(""), 0); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := Terminal(nil, 0); out != "" {
		t.Errorf("expected empty output for nil document, got %q", out)
	}
}

func TestTerminalReport(t *testing.T) {
	l := report.LayoutReport(&backend.EntityReport{
		Timeline: []backend.TimelineEntry{{Date: "1843", Context: "Notes published."}},
	})
	out := TerminalReport(l, 60)
	for _, want := range []string{"Timeline", "1843", "Notes published."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTerminalSection_Nil(t *testing.T) {
	if out := TerminalSection(nil, 80); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
