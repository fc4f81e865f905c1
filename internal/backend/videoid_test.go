package backend

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ExtractVideoID(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExtractVideoID_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/watch?v=tooShort",
		"https://www.youtube.com/channel/UC1234567890",
		"https://www.youtube.com/embed/",
	}
	for _, in := range inputs {
		if _, err := ExtractVideoID(in); !errors.Is(err, ErrInvalidVideo) {
			t.Errorf("ExtractVideoID(%q): expected ErrInvalidVideo, got %v", in, err)
		}
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("unexpected watch url %q", got)
	}
}
