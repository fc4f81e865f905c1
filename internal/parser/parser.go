package parser

import (
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/vidbrief/internal/doctree"
)

// Parser converts a generated-text payload into a Document.
type Parser interface {
	Parse(r io.Reader) (*doctree.Document, error)
}

var (
	codeFenceRe = regexp.MustCompile("(?s)^```(?:html|markdown|md|text)?\\s*(.*?)\\s*```$")
	htmlStartRe = regexp.MustCompile(`(?i)^<(h[1-6]|ul|ol|p|div|section|article|body|html|!doctype)[\s>]`)
)

// ForPayload returns the parser suited to a payload, along with the payload
// stripped of any surrounding code fence.
func ForPayload(payload string) (Parser, string) {
	body := StripCodeFence(payload)
	if htmlStartRe.MatchString(body) {
		return &InsightsHTMLParser{}, body
	}
	return &GeneratedTextParser{}, body
}

// StructurePayload structures text or HTML payloads. Like Structure it
// never fails; an HTML payload that cannot be parsed is treated as text.
func StructurePayload(payload string) *doctree.Document {
	p, body := ForPayload(payload)
	doc, err := p.Parse(strings.NewReader(body))
	if err != nil {
		return Structure(body)
	}
	return doc
}

// StripCodeFence removes a ``` fence wrapping the whole payload.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}
