package utils

import (
	"regexp"

	"github.com/google/uuid"
)

var (
	videoURLRe = regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?(?:youtube|youtu|youtube-nocookie)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/)?([^&=%\?/]{11})`)
	bareIDRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID pulls the 11-character video id out of a YouTube URL, or
// returns "" when none is found. Used for log fields and title lookups only;
// URL acceptance is decided by package validate.
func ExtractVideoID(input string) string {
	if m := videoURLRe.FindStringSubmatch(input); len(m) >= 2 {
		return m[1]
	}
	if bareIDRe.MatchString(input) {
		return input
	}
	return ""
}

// NewRequestID returns a random id for one form submission.
func NewRequestID() string {
	return uuid.NewString()
}
