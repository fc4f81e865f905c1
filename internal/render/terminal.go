package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/report"
)

// DefaultWidth is the wrap width used when the caller passes zero.
const DefaultWidth = 80

var (
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	subheadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	romanStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	shoutStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	strongStyle     = lipgloss.NewStyle().Bold(true)
	emphasisStyle   = lipgloss.NewStyle().Italic(true)
)

// Terminal renders doc as styled text wrapped to width columns.
func Terminal(doc *doctree.Document, width int) string {
	if doc == nil {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}
	blocks := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		blocks = append(blocks, terminalBlock(b, width))
	}
	return strings.Join(blocks, "\n\n")
}

func terminalBlock(b *doctree.Block, width int) string {
	switch b.Kind {
	case doctree.KindHeading:
		return wrap(headingStyle.Render(doctree.PlainText(b.Inlines)), width)
	case doctree.KindSubheading:
		return wrap(subheadingStyle.Render(doctree.PlainText(b.Inlines)), width)
	case doctree.KindRomanHeading:
		return wrap(romanStyle.Render(b.Label+". "+doctree.PlainText(b.Inlines)), width)
	case doctree.KindShoutHeading:
		return wrap(shoutStyle.Render(doctree.PlainText(b.Inlines)), width)
	case doctree.KindNumberedEntry:
		return hanging(labelStyle.Render(b.Label+"."), styledInlines(b.Inlines), width)
	case doctree.KindList:
		items := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			items = append(items, hanging("•", styledInlines(item.Inlines), width))
		}
		return strings.Join(items, "\n")
	}

	lines := strings.Split(styledInlines(trimTrailingBreaks(b.Inlines)), "\n")
	for i, line := range lines {
		lines[i] = wrap(line, width)
	}
	return strings.Join(lines, "\n")
}

func styledInlines(inl []doctree.Inline) string {
	var sb strings.Builder
	for _, in := range inl {
		switch in.Kind {
		case doctree.InlineStrong:
			sb.WriteString(strongStyle.Render(in.Text))
		case doctree.InlineEmphasis:
			sb.WriteString(emphasisStyle.Render(in.Text))
		case doctree.InlineLineBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteString(in.Text)
		}
	}
	return sb.String()
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// hanging renders marker followed by body, with wrapped body lines indented
// under the first one.
func hanging(marker, body string, width int) string {
	gutter := lipgloss.Width(marker) + 1
	bodyWidth := width - gutter
	if bodyWidth < 10 {
		bodyWidth = 10
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(gutter).Render(marker),
		lipgloss.NewStyle().Width(bodyWidth).Render(body),
	)
}

// TerminalReport renders a report layout for the terminal.
func TerminalReport(l report.Layout, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	parts := make([]string, 0, len(l.Sections))
	for i := range l.Sections {
		parts = append(parts, TerminalSection(&l.Sections[i], width))
	}
	return strings.Join(parts, "\n\n")
}

// TerminalSection renders one section; nil renders as an empty string.
func TerminalSection(s *report.Section, width int) string {
	if s == nil {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}

	out := []string{subheadingStyle.Render(s.Title)}
	for _, st := range s.Stats {
		out = append(out, hanging(labelStyle.Render(st.Label+":"), st.Value, width))
	}
	for _, g := range s.Groups {
		out = append(out, labelStyle.Render(g.Name))
		for _, item := range g.Items {
			out = append(out, hanging("•", item, width))
		}
		if g.Remaining > 0 {
			out = append(out, mutedStyle.Render(fmt.Sprintf("… and %d more", g.Remaining)))
		}
	}
	for _, row := range s.Rows {
		body := strongStyle.Render(row.Label)
		if row.Detail != "" {
			body += ": " + row.Detail
		}
		out = append(out, hanging("•", body, width))
	}
	if s.Remaining > 0 {
		out = append(out, mutedStyle.Render(fmt.Sprintf("… and %d more", s.Remaining)))
	}
	if s.Text != "" {
		out = append(out, wrap(s.Text, width))
	}
	return strings.Join(out, "\n")
}
