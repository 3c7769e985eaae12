package models

import "time"

// DownloadRequest is built per form submission and discarded with the response.
type DownloadRequest struct {
	URL         string
	MaxDuration time.Duration
	// RequestID identifies the submission in logs and progress events.
	RequestID string
}

// VideoMetadata is what the engine reports from a metadata-only probe.
type VideoMetadata struct {
	ID       string
	Title    string
	Duration time.Duration
}

// DisplayTitle returns the title or "Video" when the engine gave none.
func (m *VideoMetadata) DisplayTitle() string {
	if m == nil || m.Title == "" {
		return "Video"
	}
	return m.Title
}
