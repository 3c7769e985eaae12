// Package validate checks user-submitted video URLs.
//
// The check is a plain substring match for the two YouTube host forms, not
// URL parsing: a URL carrying "youtu.be/" inside its query string is accepted.
package validate

import (
	"errors"
	"strings"
)

// ErrInvalidURL is matched by every *ValidationError.
var ErrInvalidURL = errors.New("invalid video url")

// Message is the user-facing text for a rejected URL.
const Message = "Please provide a valid YouTube URL"

var hostMarkers = []string{"youtube.com/", "youtu.be/"}

type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid url " + quote(e.Input) + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidURL }

// URL returns the trimmed input when it looks like a supported video URL.
func URL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", &ValidationError{Input: raw, Reason: "empty"}
	}
	for _, m := range hostMarkers {
		if strings.Contains(u, m) {
			return u, nil
		}
	}
	return "", &ValidationError{Input: u, Reason: "unsupported host"}
}

func quote(s string) string {
	const max = 80
	if len(s) > max {
		s = s[:max] + "..."
	}
	return `"` + s + `"`
}
