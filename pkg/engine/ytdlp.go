package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/imbecility/yt-webdl/pkg/models"
	"github.com/imbecility/yt-webdl/pkg/utils"
)

const progressInterval = 500 * time.Millisecond

// YTDLP runs the yt-dlp executable.
type YTDLP struct {
	// Executable overrides the yt-dlp binary. Empty resolves "yt-dlp" through PATH.
	Executable string
}

func (y *YTDLP) command(opts Options) *ytdlp.Command {
	cmd := ytdlp.New().NoPlaylist()
	if y.Executable != "" {
		cmd = cmd.SetExecutable(y.Executable)
	}
	if opts.OutputTemplate != "" {
		cmd = cmd.Output(opts.OutputTemplate)
	}
	if opts.Format != "" {
		cmd = cmd.Format(opts.Format)
	}
	if opts.MergeFormat != "" {
		cmd = cmd.MergeOutputFormat(opts.MergeFormat)
	}
	if opts.FFmpegLocation != "" {
		cmd = cmd.FFmpegLocation(opts.FFmpegLocation)
	}
	return cmd
}

// Probe fetches metadata without downloading media.
func (y *YTDLP) Probe(ctx context.Context, url string, opts Options) (*models.VideoMetadata, error) {
	res, err := y.command(opts).SkipDownload().PrintJSON().Run(ctx, url)
	if err != nil {
		return nil, failure(ctx, "probe", res, err)
	}

	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, &Error{Kind: KindExtraction, Op: "probe", Err: err}
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, &Error{Kind: KindExtraction, Op: "probe", Err: errors.New("no video information returned")}
	}

	info := infos[0]
	meta := &models.VideoMetadata{ID: utils.ExtractVideoID(url)}
	if info.ID != "" {
		meta.ID = info.ID
	}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if info.Duration != nil {
		meta.Duration = time.Duration(*info.Duration * float64(time.Second))
	}
	return meta, nil
}

// Download fetches the media into opts.OutputTemplate. progress may be nil.
func (y *YTDLP) Download(ctx context.Context, url string, opts Options, progress ProgressFunc) error {
	cmd := y.command(opts)
	if progress != nil {
		cmd = cmd.ProgressFunc(progressInterval, func(u ytdlp.ProgressUpdate) {
			safeProgress(progress, toEvent(u))
		})
	}

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return failure(ctx, "download", res, err)
	}
	return nil
}

func failure(ctx context.Context, op string, res *ytdlp.Result, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("ytdlp %s: %w", op, ctxErr)
	}
	e := &Error{Kind: KindDownload, Op: op, Err: err}
	if res != nil {
		e.Output = res.Stderr
	}
	return e
}

func toEvent(u ytdlp.ProgressUpdate) ProgressEvent {
	return ProgressEvent{
		Phase:           string(u.Status),
		Filename:        u.Filename,
		DownloadedBytes: int64(u.DownloadedBytes),
		TotalBytes:      int64(u.TotalBytes),
	}
}

// safeProgress shields the running download from a panicking callback.
func safeProgress(fn ProgressFunc, ev ProgressEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Progress callback panicked", "panic", r, "phase", ev.Phase)
		}
	}()
	fn(ev)
}
