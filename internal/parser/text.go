package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
)

// GeneratedTextParser structures model-generated prose: markdown-like
// headings, numbered, roman and bulleted lists, and inline emphasis.
type GeneratedTextParser struct{}

func (p *GeneratedTextParser) Parse(r io.Reader) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Structure(string(src)), nil
}

// Structure converts raw generated text into a Document. It never fails:
// empty or unrecognised input yields a document with no blocks.
func Structure(raw string) *doctree.Document {
	normalized := NormalizeEmphasis(strings.ReplaceAll(raw, "\r\n", "\n"))

	a := newAssembler()
	for _, line := range strings.Split(normalized, "\n") {
		a.feed(Classify(line))
	}
	return a.finish()
}

// ClassifyText tags each line of raw text, in order.
func ClassifyText(raw string) []LineTag {
	normalized := NormalizeEmphasis(strings.ReplaceAll(raw, "\r\n", "\n"))
	lines := strings.Split(normalized, "\n")
	tags := make([]LineTag, 0, len(lines))
	for _, line := range lines {
		tags = append(tags, Classify(line))
	}
	return tags
}
