// Package engine drives yt-dlp through github.com/lrstanley/go-ytdlp.
//
// Two calls are exposed: a metadata-only Probe and a full Download. Engine
// failures come back as *Error so callers can tell process failures apart
// from output they could not interpret.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Options is the full option set handed to the engine for one attempt.
type Options struct {
	// OutputTemplate is a yt-dlp output template, e.g. "/dl/%(title)s.%(ext)s".
	OutputTemplate string
	// Format is a yt-dlp format selector.
	Format string
	// MergeFormat is the container used when merging streams. Empty disables merging.
	MergeFormat string
	// FFmpegLocation points yt-dlp at a specific ffmpeg. Empty uses yt-dlp's lookup.
	FFmpegLocation string
}

// ProgressEvent is one status report from a running download.
type ProgressEvent struct {
	// Phase is the engine status, e.g. "downloading" or "finished".
	Phase           string
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
}

// ProgressFunc receives progress events. It must not block for long.
type ProgressFunc func(ProgressEvent)

// Kind classifies engine failures.
type Kind int

const (
	// KindDownload means yt-dlp itself reported a failure.
	KindDownload Kind = iota + 1
	// KindExtraction means yt-dlp succeeded but its metadata was unusable.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindDownload:
		return "download"
	case KindExtraction:
		return "extraction"
	default:
		return "unknown"
	}
}

// Error is an engine-layer failure.
type Error struct {
	Kind Kind
	// Op is "probe" or "download".
	Op string
	// Output is the engine's stderr, if any was captured.
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ytdlp %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Text returns everything the engine said about the failure, for message
// translation.
func (e *Error) Text() string {
	parts := make([]string, 0, 2)
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n")
}

// IsKind reports whether err is an engine *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
