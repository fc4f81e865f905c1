package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
	"golang.org/x/net/html"
)

// InsightsHTMLParser handles model output that is already an HTML fragment,
// e.g. "<h3>Suggested Questions</h3><ul><li>...</li></ul>".
type InsightsHTMLParser struct{}

func (p *InsightsHTMLParser) Parse(r io.Reader) (*doctree.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	out := &doctree.Document{}
	var loose []doctree.Inline

	flushLoose := func() {
		inl := tidyInlines(loose)
		if len(inl) > 0 {
			out.Blocks = append(out.Blocks, &doctree.Block{Kind: doctree.KindParagraph, Inlines: inl})
		}
		loose = nil
	}
	emit := func(b *doctree.Block) {
		flushLoose()
		out.Blocks = append(out.Blocks, b)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			loose = append(loose, doctree.Inline{Kind: doctree.InlineText, Text: n.Data})
			return
		case html.ElementNode:
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			return
		}

		if kind, ok := headingTag(n.Data); ok {
			if inl := inlineContent(n); len(inl) > 0 {
				emit(&doctree.Block{Kind: kind, Inlines: inl})
			}
			return
		}

		switch n.Data {
		case "script", "style", "nav", "footer", "header", "head":
			return
		case "p", "blockquote", "pre":
			if inl := inlineContent(n); len(inl) > 0 {
				emit(&doctree.Block{Kind: doctree.KindParagraph, Inlines: inl})
			} else {
				flushLoose()
			}
			return
		case "ul":
			list := &doctree.Block{Kind: doctree.KindList}
			for _, li := range childElements(n, "li") {
				if inl := inlineContent(li); len(inl) > 0 {
					list.Items = append(list.Items, doctree.ListItem{Inlines: inl})
				}
			}
			if len(list.Items) > 0 {
				emit(list)
			}
			return
		case "ol":
			num := orderedStart(n)
			for _, li := range childElements(n, "li") {
				if inl := inlineContent(li); len(inl) > 0 {
					emit(&doctree.Block{Kind: doctree.KindNumberedEntry, Label: strconv.Itoa(num), Inlines: inl})
					num++
				}
			}
			return
		case "strong", "b", "em", "i", "br", "span", "a", "code":
			loose = appendInline(loose, n, doctree.InlineText)
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		flushLoose()
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	flushLoose()

	return out, nil
}

func headingTag(tag string) (doctree.BlockKind, bool) {
	switch tag {
	case "h1", "h2":
		return doctree.KindHeading, true
	case "h3":
		return doctree.KindSubheading, true
	case "h4", "h5", "h6":
		return doctree.KindShoutHeading, true
	}
	return 0, false
}

// inlineContent flattens the children of n into inline fragments.
func inlineContent(n *html.Node) []doctree.Inline {
	var out []doctree.Inline
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = appendInline(out, c, doctree.InlineText)
	}
	return tidyInlines(out)
}

// appendInline appends the fragments of n, which inherits kind from its parent.
func appendInline(out []doctree.Inline, n *html.Node, kind doctree.InlineKind) []doctree.Inline {
	switch n.Type {
	case html.TextNode:
		return append(out, doctree.Inline{Kind: kind, Text: n.Data})
	case html.ElementNode:
		switch n.Data {
		case "br":
			return append(out, doctree.Inline{Kind: doctree.InlineLineBreak})
		case "script", "style":
			return out
		case "strong", "b":
			kind = doctree.InlineStrong
		case "em", "i":
			if kind == doctree.InlineText {
				kind = doctree.InlineEmphasis
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = appendInline(out, c, kind)
	}
	return out
}

// tidyInlines collapses whitespace, merges neighbouring fragments of the
// same kind and trims the edges of the run.
func tidyInlines(in []doctree.Inline) []doctree.Inline {
	var out []doctree.Inline
	for _, f := range in {
		if f.Kind != doctree.InlineLineBreak {
			f.Text = collapseSpace(f.Text)
			if f.Text == "" {
				continue
			}
		}
		if n := len(out); n > 0 && out[n-1].Kind == f.Kind && f.Kind != doctree.InlineLineBreak {
			out[n-1].Text = collapseSpace(out[n-1].Text + f.Text)
			continue
		}
		out = append(out, f)
	}

	for len(out) > 0 && out[0].Kind != doctree.InlineLineBreak {
		out[0].Text = strings.TrimLeft(out[0].Text, " ")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := &out[len(out)-1]
		if last.Kind == doctree.InlineLineBreak {
			out = out[:len(out)-1]
			continue
		}
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '\f' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

func orderedStart(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "start" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil {
				return v
			}
		}
	}
	return 1
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
