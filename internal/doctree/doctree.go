package doctree

import (
	"fmt"
	"strings"
)

// Document is the structured form of one generated-text payload.
type Document struct {
	Blocks []*Block `json:"blocks" yaml:"blocks"`
}

// BlockKind identifies the structural role of a Block.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindSubheading
	KindRomanHeading
	KindShoutHeading
	KindParagraph
	KindList
	KindNumberedEntry
)

var blockKindNames = [...]string{
	KindHeading:       "heading",
	KindSubheading:    "subheading",
	KindRomanHeading:  "roman_heading",
	KindShoutHeading:  "shout_heading",
	KindParagraph:     "paragraph",
	KindList:          "list",
	KindNumberedEntry: "numbered_entry",
}

func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
	return blockKindNames[k]
}

func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BlockKind) UnmarshalText(b []byte) error {
	for i, name := range blockKindNames {
		if name == string(b) {
			*k = BlockKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", string(b))
}

// IsHeading reports whether the kind is one of the heading variants.
func (k BlockKind) IsHeading() bool {
	switch k {
	case KindHeading, KindSubheading, KindRomanHeading, KindShoutHeading:
		return true
	}
	return false
}

// Block is one structural unit of a Document.
type Block struct {
	Kind    BlockKind  `json:"kind" yaml:"kind"`
	Label   string     `json:"label,omitempty" yaml:"label,omitempty"`     // Roman numeral or entry number
	Inlines []Inline   `json:"inlines,omitempty" yaml:"inlines,omitempty"` // Heading, paragraph and entry content
	Items   []ListItem `json:"items,omitempty" yaml:"items,omitempty"`     // List items (KindList only)
}

// ListItem is one bulleted entry of a List block.
type ListItem struct {
	Inlines []Inline `json:"inlines" yaml:"inlines"`
}

// Text returns the block content with emphasis dropped and line breaks as "\n".
func (b *Block) Text() string {
	if b.Kind == KindList {
		parts := make([]string, 0, len(b.Items))
		for _, it := range b.Items {
			parts = append(parts, PlainText(it.Inlines))
		}
		return strings.Join(parts, "\n")
	}
	return strings.TrimRight(PlainText(b.Inlines), "\n")
}

// InlineKind identifies an inline fragment.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmphasis
	InlineLineBreak
)

var inlineKindNames = [...]string{
	InlineText:      "text",
	InlineStrong:    "strong",
	InlineEmphasis:  "emphasis",
	InlineLineBreak: "line_break",
}

func (k InlineKind) String() string {
	if k < 0 || int(k) >= len(inlineKindNames) {
		return fmt.Sprintf("InlineKind(%d)", int(k))
	}
	return inlineKindNames[k]
}

func (k InlineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *InlineKind) UnmarshalText(b []byte) error {
	for i, name := range inlineKindNames {
		if name == string(b) {
			*k = InlineKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown inline kind %q", string(b))
}

// Inline is a run of text inside a block.
type Inline struct {
	Kind InlineKind `json:"kind" yaml:"kind"`
	Text string     `json:"text,omitempty" yaml:"text,omitempty"`
}

// PlainText flattens inline fragments, rendering line breaks as "\n".
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		if in.Kind == InlineLineBreak {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(in.Text)
	}
	return sb.String()
}

// Len returns the number of top-level blocks.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Blocks)
}
