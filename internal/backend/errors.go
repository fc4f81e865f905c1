package backend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the backend could not be reached.
	ErrNetwork = errors.New("backend unreachable")
	// ErrTimeout means the per-action deadline fired before the backend answered.
	ErrTimeout = errors.New("backend request timed out")
	// ErrMalformed means the backend answered with something that is not the
	// expected JSON envelope.
	ErrMalformed = errors.New("malformed backend response")
	// ErrInvalidVideo means no video ID could be extracted from the input.
	ErrInvalidVideo = errors.New("invalid video url or id")
)

// ServerError is returned when the backend answers with an error envelope.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
	}
	return "backend error: " + truncate(e.Message, 200)
}

// UserMessage maps an orchestration error to the text shown to a user.
func UserMessage(err error) string {
	var srvErr *ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "The request took too long. Please try again."
	case errors.Is(err, ErrNetwork):
		return "Could not reach the summarization service. Check that it is running."
	case errors.Is(err, ErrInvalidVideo):
		return "Please enter a valid YouTube URL or video ID."
	case errors.Is(err, ErrMalformed):
		return "The server returned an unexpected response."
	case errors.As(err, &srvErr):
		if srvErr.Message != "" {
			return srvErr.Message
		}
		return "The server returned an error."
	}
	return "Something went wrong."
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
