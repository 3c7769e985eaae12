package downloader

import (
	"path/filepath"

	"github.com/imbecility/yt-webdl/pkg/engine"
)

const (
	// FormatMerged asks for separate mp4 video and m4a audio, merged by ffmpeg.
	FormatMerged = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	// FormatBasic avoids the m4a-specific audio pick when ffmpeg is missing.
	FormatBasic = "bestvideo[ext=mp4]+bestaudio/best[ext=mp4]/best"

	MergeFormatMP4 = "mp4"

	// TitleTemplate names files after the video title. Equal titles overwrite
	// each other.
	TitleTemplate = "%(title)s.%(ext)s"

	DegradedNotice = "Using basic download mode - some HD formats might not be available"
)

// BuildOptions derives the engine options from the ffmpeg probe result.
// A merge format is only ever set when ffmpeg is available.
func BuildOptions(outputDir string, binaryAvailable bool, binaryPath string) engine.Options {
	opts := engine.Options{
		OutputTemplate: filepath.Join(outputDir, TitleTemplate),
		FFmpegLocation: binaryPath,
	}
	if binaryAvailable {
		opts.Format = FormatMerged
		opts.MergeFormat = MergeFormatMP4
	} else {
		opts.Format = FormatBasic
	}
	return opts
}

// Degraded reports whether opts were built without a merge step.
func Degraded(opts engine.Options) bool {
	return opts.MergeFormat == ""
}
