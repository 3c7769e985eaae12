package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imbecility/yt-webdl/pkg/engine"
	"github.com/imbecility/yt-webdl/pkg/models"
)

// DefaultMaxDuration is used when a request carries no limit.
const DefaultMaxDuration = 2 * time.Hour

// ErrDurationExceeded matches every *DurationExceededError.
var ErrDurationExceeded = errors.New("video duration exceeds limit")

// DurationExceededError is returned before any download is attempted.
type DurationExceededError struct {
	Duration time.Duration
	Limit    time.Duration
}

func (e *DurationExceededError) Error() string {
	return fmt.Sprintf("video is %s long, limit is %s", e.Duration, e.Limit)
}

func (e *DurationExceededError) Is(target error) bool { return target == ErrDurationExceeded }

// UserMessage phrases the limit for the person who submitted the video.
func (e *DurationExceededError) UserMessage() string {
	if e.Limit >= time.Hour {
		return fmt.Sprintf("Videos longer than %d hours are not supported", int(e.Limit/time.Hour))
	}
	return fmt.Sprintf("Videos longer than %d minutes are not supported", int(e.Limit/time.Minute))
}

// Engine is the extraction engine as seen by the orchestrator.
type Engine interface {
	Probe(ctx context.Context, url string, opts engine.Options) (*models.VideoMetadata, error)
	Download(ctx context.Context, url string, opts engine.Options, progress engine.ProgressFunc) error
}

// Downloader probes a video, enforces the duration limit, then downloads it.
type Downloader struct {
	Engine Engine
	// ProbeTimeout bounds the metadata call. Zero leaves it unbounded.
	ProbeTimeout time.Duration
	// DownloadTimeout bounds the download call. Zero leaves it unbounded.
	DownloadTimeout time.Duration
	// Observe, when set, receives the wall time of each engine call.
	Observe func(op string, took time.Duration)
}

// Run performs at most one probe and at most one download. The returned
// metadata is always the probe's, even if the downloaded file ends up named
// differently.
func (d *Downloader) Run(ctx context.Context, req models.DownloadRequest, opts engine.Options) (*models.VideoMetadata, error) {
	limit := req.MaxDuration
	if limit <= 0 {
		limit = DefaultMaxDuration
	}

	var meta *models.VideoMetadata
	err := d.timed(ctx, "probe", d.ProbeTimeout, func(ctx context.Context) error {
		var perr error
		meta, perr = d.Engine.Probe(ctx, req.URL, opts)
		return perr
	})
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, &engine.Error{Kind: engine.KindExtraction, Op: "probe", Err: errors.New("engine returned no metadata")}
	}

	if meta.Duration > limit {
		slog.Info("Video exceeds duration limit", "req", req.RequestID, "vid", meta.ID, "duration", meta.Duration, "limit", limit)
		return nil, &DurationExceededError{Duration: meta.Duration, Limit: limit}
	}

	hook := ProgressHook{RequestID: req.RequestID}
	err = d.timed(ctx, "download", d.DownloadTimeout, func(ctx context.Context) error {
		return d.Engine.Download(ctx, req.URL, opts, hook.OnProgress)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Download finished", "req", req.RequestID, "vid", meta.ID, "title", meta.Title)
	return meta, nil
}

func (d *Downloader) timed(ctx context.Context, op string, timeout time.Duration, fn func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	if d.Observe != nil {
		d.Observe(op, time.Since(start))
	}
	return err
}
