package doctree

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBlockKind_TextRoundTrip(t *testing.T) {
	for k := KindHeading; k <= KindNumberedEntry; k++ {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", k, err)
		}
		var got BlockKind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal %q: %v", b, err)
		}
		if got != k {
			t.Errorf("expected %s, got %s", k, got)
		}
	}

	var k BlockKind
	if err := k.UnmarshalText([]byte("table")); err == nil {
		t.Error("expected error for unknown kind")
	}
	if s := BlockKind(42).String(); s != "BlockKind(42)" {
		t.Errorf("expected BlockKind(42), got %s", s)
	}
}

func TestDocument_JSON(t *testing.T) {
	doc := &Document{Blocks: []*Block{
		{Kind: KindRomanHeading, Label: "II", Inlines: []Inline{{Kind: InlineText, Text: "Scope"}}},
		{Kind: KindList, Items: []ListItem{{Inlines: []Inline{{Kind: InlineStrong, Text: "a"}}}}},
	}}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"kind":"roman_heading"`, `"label":"II"`, `"kind":"strong"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}

	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Len() != 2 || back.Blocks[1].Kind != KindList {
		t.Errorf("unexpected decoded document %+v", back)
	}
}

func TestBlock_Text(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			"paragraph drops trailing break",
			Block{Kind: KindParagraph, Inlines: []Inline{
				{Kind: InlineText, Text: "a"}, {Kind: InlineLineBreak},
				{Kind: InlineEmphasis, Text: "b"}, {Kind: InlineLineBreak},
			}},
			"a\nb",
		},
		{
			"list joins items",
			Block{Kind: KindList, Items: []ListItem{
				{Inlines: []Inline{{Kind: InlineText, Text: "x"}}},
				{Inlines: []Inline{{Kind: InlineStrong, Text: "y"}}},
			}},
			"x\ny",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsHeading(t *testing.T) {
	if !KindShoutHeading.IsHeading() || KindNumberedEntry.IsHeading() || KindList.IsHeading() {
		t.Error("unexpected IsHeading classification")
	}
	var nilDoc *Document
	if nilDoc.Len() != 0 {
		t.Error("expected nil document length 0")
	}
}
