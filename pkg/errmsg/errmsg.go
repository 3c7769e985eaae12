package errmsg

import "strings"

// Fallback is returned when no marker matches.
const Fallback = "Error downloading video - please check the URL"

type rule struct {
	markers []string
	message string
}

// rules are checked in order; the first rule whose markers all occur wins.
var rules = []rule{
	{[]string{"unable to download webpage"}, "Video not found or unavailable"},
	{[]string{"ffmpeg", "not installed"}, "System configuration issue - using basic download mode"},
	{[]string{"private video"}, "This video is private and cannot be downloaded"},
	{[]string{"age restricted"}, "Age-restricted content requires YouTube login"},
	{[]string{"copyright"}, "Copyright protected content cannot be downloaded"},
	{[]string{"unavailable"}, "Video is unavailable in your region"},
}

// Translate maps raw engine output to a user-facing message.
func Translate(raw string) string {
	lower := strings.ToLower(raw)
	for _, r := range rules {
		if containsAll(lower, r.markers) {
			return r.message
		}
	}
	return Fallback
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
