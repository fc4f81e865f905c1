package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagKind is the category assigned to one line.
type TagKind int

const (
	TagBlank TagKind = iota
	TagHeading
	TagSubheading
	TagRomanHeading
	TagNumberedItem
	TagBulletItem
	TagShoutHeading
	TagPlain
)

var tagKindNames = [...]string{
	TagBlank:        "blank",
	TagHeading:      "heading",
	TagSubheading:   "subheading",
	TagRomanHeading: "roman_heading",
	TagNumberedItem: "numbered_item",
	TagBulletItem:   "bullet_item",
	TagShoutHeading: "shout_heading",
	TagPlain:        "plain",
}

func (k TagKind) String() string {
	if k < 0 || int(k) >= len(tagKindNames) {
		return fmt.Sprintf("TagKind(%d)", int(k))
	}
	return tagKindNames[k]
}

// LineTag is the classification of a single normalized line.
// Text is the line content with its structural marker removed; it still
// carries normalized emphasis spans.
type LineTag struct {
	Kind  TagKind
	Label string // Roman numeral or item number
	Text  string
}

// maxShoutLen bounds the all-caps heading heuristic, in characters.
const maxShoutLen = 60

var (
	headingRe    = regexp.MustCompile(`^##\s+(.*\S)`)
	subheadingRe = regexp.MustCompile(`^###\s+(.*\S)`)
	romanRe      = regexp.MustCompile(`^([IVXivx]+)\.\s+(.*\S)`)
	numberedRe   = regexp.MustCompile(`^(\d+)\.\s+(.*\S)`)
	starBulletRe = regexp.MustCompile(`^\*\s+(.*\S)`)
	dashBulletRe = regexp.MustCompile(`^-\s+(.*\S)`)
	boldLabelRe  = regexp.MustCompile(`^\x{E000}[^\x{E000}\x{E001}]+\x{E001}:$`)
)

type rule func(line string) (LineTag, bool)

// rules is evaluated in order; the first match wins.
var rules = []rule{
	blankRule,
	prefixRule(headingRe, TagHeading),
	prefixRule(subheadingRe, TagSubheading),
	labeledRule(romanRe, TagRomanHeading),
	labeledRule(numberedRe, TagNumberedItem),
	prefixRule(starBulletRe, TagBulletItem),
	prefixRule(dashBulletRe, TagBulletItem),
	shoutRule,
}

// Classify assigns exactly one tag to a normalized line. Leading and
// trailing whitespace is ignored.
func Classify(line string) LineTag {
	line = strings.TrimSpace(line)
	for _, r := range rules {
		if tag, ok := r(line); ok {
			return tag
		}
	}
	return LineTag{Kind: TagPlain, Text: line}
}

func blankRule(line string) (LineTag, bool) {
	if line == "" {
		return LineTag{Kind: TagBlank}, true
	}
	return LineTag{}, false
}

func prefixRule(re *regexp.Regexp, kind TagKind) rule {
	return func(line string) (LineTag, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return LineTag{}, false
		}
		return LineTag{Kind: kind, Text: m[1]}, true
	}
}

func labeledRule(re *regexp.Regexp, kind TagKind) rule {
	return func(line string) (LineTag, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return LineTag{}, false
		}
		return LineTag{Kind: kind, Label: m[1], Text: m[2]}, true
	}
}

func shoutRule(line string) (LineTag, bool) {
	if boldLabelRe.MatchString(line) || isShout(line) {
		return LineTag{Kind: TagShoutHeading, Text: line}, true
	}
	return LineTag{}, false
}

// isShout reports whether line is a short run of uppercase letters,
// whitespace and colons containing at least one letter.
func isShout(line string) bool {
	if utf8.RuneCountInString(line) >= maxShoutLen {
		return false
	}
	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsSpace(r), r == ':':
		default:
			return false
		}
	}
	return letters > 0
}
