package downloader

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOptions_WithFFmpeg(t *testing.T) {
	opts := BuildOptions("/srv/dl", true, "/usr/local/bin/ffmpeg")

	assert.Equal(t, FormatMerged, opts.Format)
	assert.Equal(t, "mp4", opts.MergeFormat)
	assert.Equal(t, "/usr/local/bin/ffmpeg", opts.FFmpegLocation)
	assert.Equal(t, filepath.Join("/srv/dl", "%(title)s.%(ext)s"), opts.OutputTemplate)
	assert.False(t, Degraded(opts))
}

func TestBuildOptions_WithoutFFmpeg(t *testing.T) {
	opts := BuildOptions("/srv/dl", false, "")

	assert.Empty(t, opts.MergeFormat)
	assert.Equal(t, FormatBasic, opts.Format)
	assert.NotContains(t, opts.Format, "bestaudio[ext=m4a]")
	assert.True(t, strings.HasSuffix(opts.Format, "/best[ext=mp4]/best"))
	assert.True(t, Degraded(opts))
}

func TestBuildOptions_Deterministic(t *testing.T) {
	assert.Equal(t, BuildOptions("/a", true, "x"), BuildOptions("/a", true, "x"))
	assert.Equal(t, BuildOptions("/a", false, ""), BuildOptions("/a", false, ""))
}
