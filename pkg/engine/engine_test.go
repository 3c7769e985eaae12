package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Text(t *testing.T) {
	e := &Error{Kind: KindDownload, Op: "download", Output: "  ERROR: Private video\n", Err: errors.New("exit status 1")}
	assert.Equal(t, "exit status 1\nERROR: Private video", e.Text())
	assert.Equal(t, "ytdlp download (download): exit status 1", e.Error())

	bare := &Error{Kind: KindExtraction, Op: "probe", Err: errors.New("bad json")}
	assert.Equal(t, "bad json", bare.Text())
}

func TestIsKind(t *testing.T) {
	err := errors.Join(errors.New("ctx"), &Error{Kind: KindExtraction, Op: "probe", Err: errors.New("x")})
	assert.True(t, IsKind(err, KindExtraction))
	assert.False(t, IsKind(err, KindDownload))
	assert.False(t, IsKind(errors.New("plain"), KindDownload))
}

func TestToEvent(t *testing.T) {
	ev := toEvent(ytdlp.ProgressUpdate{
		Filename:        "/dl/clip.mp4",
		DownloadedBytes: 512,
		TotalBytes:      2048,
	})
	assert.Equal(t, "/dl/clip.mp4", ev.Filename)
	assert.Equal(t, int64(512), ev.DownloadedBytes)
	assert.Equal(t, int64(2048), ev.TotalBytes)
}

func TestSafeProgress_Recovers(t *testing.T) {
	assert.NotPanics(t, func() {
		safeProgress(func(ProgressEvent) { panic("boom") }, ProgressEvent{Phase: "downloading"})
	})

	var got ProgressEvent
	safeProgress(func(ev ProgressEvent) { got = ev }, ProgressEvent{Phase: "finished"})
	assert.Equal(t, "finished", got.Phase)
}

func TestYTDLP_FailingExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	script := "#!/bin/sh\necho 'ERROR: [youtube] abc123: Private video' 1>&2\nexit 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	y := &YTDLP{Executable: path}

	_, err := y.Probe(context.Background(), "https://youtu.be/abc123", Options{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDownload))

	err = y.Download(context.Background(), "https://youtu.be/abc123", Options{Format: "best"}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDownload))
}

func TestFailure_ContextWins(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := failure(ctx, "probe", nil, errors.New("killed"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, IsKind(err, KindDownload))
}
