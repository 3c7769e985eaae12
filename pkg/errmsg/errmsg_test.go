package errmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"webpage", "ERROR: [youtube] abc: Unable to download webpage: HTTP Error 404", "Video not found or unavailable"},
		{"ffmpeg missing", "ERROR: ffmpeg is not installed. Merging not possible", "System configuration issue - using basic download mode"},
		{"ffmpeg mentioned alone", "WARNING: ffmpeg exited with code 1", Fallback},
		{"private", "ERROR: [youtube] abc: Private video. Sign in if you've been granted access", "This video is private and cannot be downloaded"},
		{"age", "ERROR: This video is AGE RESTRICTED", "Age-restricted content requires YouTube login"},
		{"copyright", "ERROR: blocked on copyright grounds", "Copyright protected content cannot be downloaded"},
		{"unavailable", "ERROR: [youtube] abc: Video unavailable", "Video is unavailable in your region"},
		{"empty", "", Fallback},
		{"unrelated", "connection reset by peer", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Translate(tt.raw))
		})
	}
}

func TestTranslate_OrderMatters(t *testing.T) {
	assert.Equal(t, "This video is private and cannot be downloaded",
		Translate("Private video, also a copyright claim"))
	assert.Equal(t, "Video not found or unavailable",
		Translate("unable to download webpage: video unavailable"))
	assert.Equal(t, "Copyright protected content cannot be downloaded",
		Translate("unavailable due to a copyright claim"))
}

func TestTranslate_Deterministic(t *testing.T) {
	in := "Private Video"
	first := Translate(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Translate(in))
	}
}
