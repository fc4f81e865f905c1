// Package render turns structured documents and report layouts into HTML,
// terminal text and markdown-like text.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/report"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// nodeBuilder assembles a goldmark AST. Text segments point into src, which
// is handed to the renderer together with the tree.
type nodeBuilder struct {
	src bytes.Buffer
}

func (b *nodeBuilder) text(s string) *ast.Text {
	start := b.src.Len()
	b.src.WriteString(s)
	return ast.NewTextSegment(text.NewSegment(start, b.src.Len()))
}

func (b *nodeBuilder) strong(s string) *ast.Emphasis {
	e := ast.NewEmphasis(2)
	e.AppendChild(e, b.text(s))
	return e
}

// inlines appends fragments to parent. A line break becomes a hard break on
// the preceding plain text node, or on an empty one after an emphasis span.
func (b *nodeBuilder) inlines(parent ast.Node, inl []doctree.Inline) {
	var last *ast.Text
	for _, in := range inl {
		switch in.Kind {
		case doctree.InlineText:
			last = b.text(in.Text)
			parent.AppendChild(parent, last)
		case doctree.InlineStrong, doctree.InlineEmphasis:
			level := 1
			if in.Kind == doctree.InlineStrong {
				level = 2
			}
			e := ast.NewEmphasis(level)
			e.AppendChild(e, b.text(in.Text))
			parent.AppendChild(parent, e)
			last = nil
		case doctree.InlineLineBreak:
			if last == nil {
				last = b.text("")
				parent.AppendChild(parent, last)
			}
			last.SetHardLineBreak(true)
			last = nil
		}
	}
}

func (b *nodeBuilder) block(blk *doctree.Block) ast.Node {
	switch blk.Kind {
	case doctree.KindHeading, doctree.KindSubheading:
		level := 2
		if blk.Kind == doctree.KindSubheading {
			level = 3
		}
		h := ast.NewHeading(level)
		b.inlines(h, blk.Inlines)
		return h

	case doctree.KindRomanHeading:
		h := ast.NewHeading(2)
		h.SetAttributeString("class", []byte("roman-heading"))
		h.AppendChild(h, b.text(blk.Label+". "))
		b.inlines(h, blk.Inlines)
		return h

	case doctree.KindShoutHeading:
		h := ast.NewHeading(4)
		h.SetAttributeString("class", []byte("shout-heading"))
		b.inlines(h, blk.Inlines)
		return h

	case doctree.KindNumberedEntry:
		p := ast.NewParagraph()
		p.SetAttributeString("class", []byte("numbered-entry"))
		p.AppendChild(p, b.strong(blk.Label+"."))
		p.AppendChild(p, b.text(" "))
		b.inlines(p, blk.Inlines)
		return p

	case doctree.KindList:
		l := ast.NewList('*')
		l.IsTight = true
		for _, item := range blk.Items {
			li := ast.NewListItem(2)
			tb := ast.NewTextBlock()
			b.inlines(tb, item.Inlines)
			li.AppendChild(li, tb)
			l.AppendChild(l, li)
		}
		return l
	}

	p := ast.NewParagraph()
	b.inlines(p, trimTrailingBreaks(blk.Inlines))
	return p
}

// WriteHTML renders doc as an HTML fragment.
func WriteHTML(w io.Writer, doc *doctree.Document) error {
	b := &nodeBuilder{}
	root := ast.NewDocument()
	if doc != nil {
		for _, blk := range doc.Blocks {
			root.AppendChild(root, b.block(blk))
		}
	}
	return renderTree(w, b, root)
}

// HTML renders doc as an HTML fragment string.
func HTML(doc *doctree.Document) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReportHTML renders a report layout. Each section gets an h3 title and a
// class naming its kind.
func ReportHTML(l report.Layout) (string, error) {
	var buf bytes.Buffer
	if err := writeSections(&buf, l.Sections); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SectionHTML renders a single section, e.g. a metrics layout. A nil
// section renders as an empty string.
func SectionHTML(s *report.Section) (string, error) {
	if s == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := writeSections(&buf, []report.Section{*s}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeSections(w io.Writer, sections []report.Section) error {
	b := &nodeBuilder{}
	root := ast.NewDocument()
	for _, s := range sections {
		h := ast.NewHeading(3)
		h.SetAttributeString("class", []byte("report-"+string(s.Kind)))
		h.AppendChild(h, b.text(s.Title))
		root.AppendChild(root, h)

		if len(s.Stats) > 0 {
			l := newTightList()
			for _, st := range s.Stats {
				tb := listEntry(l)
				tb.AppendChild(tb, b.strong(st.Label+":"))
				tb.AppendChild(tb, b.text(" "+st.Value))
			}
			root.AppendChild(root, l)
		}

		for _, g := range s.Groups {
			gh := ast.NewHeading(4)
			gh.AppendChild(gh, b.text(g.Name))
			root.AppendChild(root, gh)
			l := newTightList()
			for _, item := range g.Items {
				tb := listEntry(l)
				tb.AppendChild(tb, b.text(item))
			}
			root.AppendChild(root, l)
			if g.Remaining > 0 {
				root.AppendChild(root, remainingParagraph(b, g.Remaining))
			}
		}

		if len(s.Rows) > 0 {
			l := newTightList()
			for _, row := range s.Rows {
				tb := listEntry(l)
				tb.AppendChild(tb, b.strong(row.Label))
				if row.Detail != "" {
					tb.AppendChild(tb, b.text(": "+row.Detail))
				}
			}
			root.AppendChild(root, l)
		}
		if s.Remaining > 0 {
			root.AppendChild(root, remainingParagraph(b, s.Remaining))
		}

		if s.Text != "" {
			p := ast.NewParagraph()
			p.SetAttributeString("class", []byte(string(s.Kind)))
			lines := strings.Split(s.Text, "\n")
			for i, line := range lines {
				t := b.text(line)
				t.SetHardLineBreak(i < len(lines)-1)
				p.AppendChild(p, t)
			}
			root.AppendChild(root, p)
		}
	}
	return renderTree(w, b, root)
}

func renderTree(w io.Writer, b *nodeBuilder, root ast.Node) error {
	if err := md.Renderer().Render(w, b.src.Bytes(), root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func newTightList() *ast.List {
	l := ast.NewList('*')
	l.IsTight = true
	return l
}

// listEntry appends an item to l and returns the text block to fill.
func listEntry(l *ast.List) *ast.TextBlock {
	li := ast.NewListItem(2)
	tb := ast.NewTextBlock()
	li.AppendChild(li, tb)
	l.AppendChild(l, li)
	return tb
}

func remainingParagraph(b *nodeBuilder, n int) *ast.Paragraph {
	p := ast.NewParagraph()
	p.SetAttributeString("class", []byte("remaining"))
	p.AppendChild(p, b.text(fmt.Sprintf("… and %d more", n)))
	return p
}

func trimTrailingBreaks(inl []doctree.Inline) []doctree.Inline {
	for len(inl) > 0 && inl[len(inl)-1].Kind == doctree.InlineLineBreak {
		inl = inl[:len(inl)-1]
	}
	return inl
}
