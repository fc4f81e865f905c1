package backend

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID returns the 11-character video ID from a watch URL, a
// youtu.be short link, an /embed/, /shorts/, /live/ or /v/ link, or a bare ID.
func ExtractVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if videoIDRe.MatchString(s) {
		return s, nil
	}
	if s == "" {
		return "", ErrInvalidVideo
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVideo, err)
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "youtube-nocookie.com":
		switch segments[0] {
		case "watch":
			id = u.Query().Get("v")
		case "embed", "shorts", "live", "v":
			if len(segments) > 1 {
				id = segments[1]
			}
		}
	}

	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideo, input)
	}
	return id, nil
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}
