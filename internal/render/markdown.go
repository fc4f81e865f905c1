package render

import (
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
)

// Markdown serializes doc back to the line syntax it was structured from.
// Every line is written so that it classifies to the same tag again; blocks
// are separated by blank lines.
func Markdown(doc *doctree.Document) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder
	for i, b := range doc.Blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		writeMarkdownBlock(&sb, b)
	}
	return sb.String()
}

func writeMarkdownBlock(sb *strings.Builder, b *doctree.Block) {
	switch b.Kind {
	case doctree.KindHeading:
		sb.WriteString("## ")
		writeMarkdownInlines(sb, b.Inlines)
	case doctree.KindSubheading:
		sb.WriteString("### ")
		writeMarkdownInlines(sb, b.Inlines)
	case doctree.KindRomanHeading, doctree.KindNumberedEntry:
		sb.WriteString(b.Label)
		sb.WriteString(". ")
		writeMarkdownInlines(sb, b.Inlines)
	case doctree.KindShoutHeading:
		writeMarkdownInlines(sb, b.Inlines)
	case doctree.KindList:
		for i, item := range b.Items {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString("* ")
			writeMarkdownInlines(sb, item.Inlines)
		}
	default:
		writeMarkdownInlines(sb, trimTrailingBreaks(b.Inlines))
	}
}

func writeMarkdownInlines(sb *strings.Builder, inl []doctree.Inline) {
	for _, in := range inl {
		switch in.Kind {
		case doctree.InlineStrong:
			sb.WriteString("**")
			sb.WriteString(in.Text)
			sb.WriteString("**")
		case doctree.InlineEmphasis:
			sb.WriteByte('*')
			sb.WriteString(in.Text)
			sb.WriteByte('*')
		case doctree.InlineLineBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteString(in.Text)
		}
	}
}
