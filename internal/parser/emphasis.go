package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/vidbrief/internal/doctree"
)

// Normalized text marks emphasis spans with private-use runes so that the
// classifier can see span boundaries without re-parsing markers.
const (
	strongOpen  = '\uE000'
	strongClose = '\uE001'
	emOpen      = '\uE002'
	emClose     = '\uE003'
)

var strongRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// NormalizeEmphasis rewrites **strong** and *light* markers into normalized
// spans, line by line. The result has the same number of lines as raw.
// Unmatched markers are left as literal characters.
func NormalizeEmphasis(raw string) string {
	raw = stripSentinels(raw)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func normalizeLine(line string) string {
	if !strings.Contains(line, "*") {
		return line
	}
	line = strongRe.ReplaceAllString(line, string(strongOpen)+"${1}"+string(strongClose))

	// Strong spans are opaque to the light-emphasis pass.
	var sb strings.Builder
	rest := line
	for {
		i := strings.IndexRune(rest, strongOpen)
		if i < 0 {
			sb.WriteString(normalizeLight(rest))
			break
		}
		j := strings.IndexRune(rest[i:], strongClose)
		if j < 0 {
			sb.WriteString(normalizeLight(rest))
			break
		}
		j += i + len(string(strongClose))
		sb.WriteString(normalizeLight(rest[:i]))
		sb.WriteString(rest[i:j])
		rest = rest[j:]
	}
	return sb.String()
}

// normalizeLight converts *x* runs whose markers have no neighbouring '*'.
func normalizeLight(s string) string {
	rs := []rune(s)
	isLone := func(i int) bool {
		if rs[i] != '*' {
			return false
		}
		if i > 0 && rs[i-1] == '*' {
			return false
		}
		if i+1 < len(rs) && rs[i+1] == '*' {
			return false
		}
		return true
	}

	var out []rune
	for i := 0; i < len(rs); i++ {
		if !isLone(i) {
			out = append(out, rs[i])
			continue
		}
		end := -1
		for j := i + 2; j < len(rs); j++ {
			if isLone(j) {
				end = j
				break
			}
		}
		if end < 0 || unicode.IsSpace(rs[i+1]) || unicode.IsSpace(rs[end-1]) {
			out = append(out, rs[i])
			continue
		}
		out = append(out, emOpen)
		out = append(out, rs[i+1:end]...)
		out = append(out, emClose)
		i = end
	}
	return string(out)
}

func stripSentinels(s string) string {
	if !strings.ContainsAny(s, string([]rune{strongOpen, strongClose, emOpen, emClose})) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isSentinel(r) {
			return -1
		}
		return r
	}, s)
}

func isSentinel(r rune) bool {
	return r >= strongOpen && r <= emClose
}

// Inlines decodes one normalized line into inline fragments.
func Inlines(normalized string) []doctree.Inline {
	var out []doctree.Inline
	var cur strings.Builder
	kind := doctree.InlineText

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, doctree.Inline{Kind: kind, Text: cur.String()})
			cur.Reset()
		}
	}

	for _, r := range normalized {
		switch r {
		case strongOpen:
			flush()
			kind = doctree.InlineStrong
		case emOpen:
			flush()
			kind = doctree.InlineEmphasis
		case strongClose, emClose:
			flush()
			kind = doctree.InlineText
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
