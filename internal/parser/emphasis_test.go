package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/vidbrief/internal/doctree"
)

func TestNormalizeEmphasis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strong", "**bold**", "\uE000bold\uE001"},
		{"light", "*it*", "\uE002it\uE003"},
		{"both", "**a** and *b*", "\uE000a\uE001 and \uE002b\uE003"},
		{"non greedy strong", "**a** x **b**", "\uE000a\uE001 x \uE000b\uE001"},
		{"bullet marker kept", "* item", "* item"},
		{"bullet with emphasis", "* item *x*", "* item \uE002x\uE003"},
		{"unmatched strong", "**open", "**open"},
		{"unmatched light", "a * b", "a * b"},
		{"spaced light markers", "a * b * c", "a * b * c"},
		{"nested markers verbatim", "**a *b* c**", "\uE000a *b* c\uE001"},
		{"no markers", "plain text", "plain text"},
		{"sentinels stripped", "a\uE000b\uE003c", "abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeEmphasis(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeEmphasis_LineLocal(t *testing.T) {
	input := "**start\nend**\n*a\nb*"
	got := NormalizeEmphasis(input)
	if got != input {
		t.Errorf("expected markers spanning lines to stay literal, got %q", got)
	}
	if strings.Count(got, "\n") != strings.Count(input, "\n") {
		t.Errorf("expected line count to be preserved")
	}
}

func TestInlines(t *testing.T) {
	got := Inlines(NormalizeEmphasis("Watch **this** part, *carefully*."))
	want := []doctree.Inline{
		{Kind: doctree.InlineText, Text: "Watch "},
		{Kind: doctree.InlineStrong, Text: "this"},
		{Kind: doctree.InlineText, Text: " part, "},
		{Kind: doctree.InlineEmphasis, Text: "carefully"},
		{Kind: doctree.InlineText, Text: "."},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d inlines, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("inline[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestInlines_Empty(t *testing.T) {
	if got := Inlines(""); len(got) != 0 {
		t.Errorf("expected no inlines, got %+v", got)
	}
}
