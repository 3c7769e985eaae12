package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imbecility/yt-webdl/pkg/downloader"
	"github.com/imbecility/yt-webdl/pkg/engine"
	"github.com/imbecility/yt-webdl/pkg/errmsg"
	"github.com/imbecility/yt-webdl/pkg/flash"
	"github.com/imbecility/yt-webdl/pkg/metrics"
	"github.com/imbecility/yt-webdl/pkg/models"
	"github.com/imbecility/yt-webdl/pkg/utils"
	"github.com/imbecility/yt-webdl/pkg/validate"
)

const (
	MsgExtraction = "Error extracting video information"
	MsgTimeout    = "The video service took too long to respond - please try again"
	MsgCanceled   = "Download was cancelled before it finished"

	titleLookupTimeout = 5 * time.Second
)

// Capability reports whether merged (video+audio) downloads are possible.
type Capability interface {
	Available(ctx context.Context) bool
}

// TitleFunc resolves a title for a video id when the engine reported none.
type TitleFunc func(ctx context.Context, videoID string) (string, error)

type Service struct {
	Downloader *downloader.Downloader
	FFmpeg     Capability
	OutputDir  string
	// FFmpegLocation is passed to the engine verbatim; empty means the
	// engine finds ffmpeg itself.
	FFmpegLocation string
	MaxDuration    time.Duration
	// Debug makes unexpected faults propagate instead of being shown as a
	// generic message.
	Debug   bool
	Metrics *metrics.Metrics
	Title   TitleFunc
}

// Outcome is what the user sees after one submission.
type Outcome struct {
	Messages []flash.Message
	Meta     *models.VideoMetadata
	// Fault is set only in debug mode for errors nobody anticipated. The
	// caller is expected to let it propagate.
	Fault error
}

// SupportsMergedFormats probes ffmpeg for the home page flag.
func (s *Service) SupportsMergedFormats(ctx context.Context) bool {
	return s.FFmpeg.Available(ctx)
}

// Process validates, configures and runs one download. It never returns an
// error: every failure becomes a user notification.
func (s *Service) Process(ctx context.Context, rawURL string, requestID string) Outcome {
	var out Outcome

	url, err := validate.URL(rawURL)
	if err != nil {
		slog.Info("Rejected submission", "req", requestID, "err", err)
		s.record(metrics.OutcomeInvalid)
		out.add(flash.LevelWarning, validate.Message)
		return out
	}

	vid := utils.ExtractVideoID(url)
	slog.Info("Download requested", "req", requestID, "vid", vid)

	available := s.FFmpeg.Available(ctx)
	opts := downloader.BuildOptions(s.OutputDir, available, s.FFmpegLocation)
	if downloader.Degraded(opts) {
		out.add(flash.LevelInfo, downloader.DegradedNotice)
	}

	req := models.DownloadRequest{URL: url, MaxDuration: s.MaxDuration, RequestID: requestID}
	meta, err := s.Downloader.Run(ctx, req, opts)
	if err != nil {
		s.fail(&out, requestID, vid, err)
		return out
	}

	if meta.Title == "" {
		meta.Title = s.lookupTitle(ctx, meta.ID)
	}
	s.record(metrics.OutcomeSuccess)
	out.Meta = meta
	out.add(flash.LevelSuccess, fmt.Sprintf("'%s' downloaded successfully!", meta.DisplayTitle()))
	return out
}

func (s *Service) fail(out *Outcome, requestID, vid string, err error) {
	var tooLong *downloader.DurationExceededError
	var engErr *engine.Error

	switch {
	case errors.As(err, &tooLong):
		s.record(metrics.OutcomeTooLong)
		out.add(flash.LevelWarning, tooLong.UserMessage())

	case errors.As(err, &engErr) && engErr.Kind == engine.KindExtraction:
		slog.Warn("Extraction failed", "req", requestID, "vid", vid, "err", err)
		s.record(metrics.OutcomeExtraction)
		out.add(flash.LevelError, MsgExtraction)

	case errors.As(err, &engErr):
		slog.Warn("Engine failed", "req", requestID, "vid", vid, "err", err)
		s.record(metrics.OutcomeEngine)
		out.add(flash.LevelError, errmsg.Translate(engErr.Text()))

	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Engine timed out", "req", requestID, "vid", vid, "err", err)
		s.record(metrics.OutcomeTimeout)
		out.add(flash.LevelError, MsgTimeout)

	case errors.Is(err, context.Canceled):
		slog.Info("Request cancelled", "req", requestID, "vid", vid, "err", err)
		s.record(metrics.OutcomeCanceled)
		out.add(flash.LevelWarning, MsgCanceled)

	default:
		slog.Error("Unexpected failure", "req", requestID, "vid", vid, "err", err)
		s.record(metrics.OutcomeUnexpected)
		out.add(flash.LevelError, "Unexpected error: "+err.Error())
		if s.Debug {
			out.Fault = err
		}
	}
}

func (s *Service) lookupTitle(ctx context.Context, videoID string) string {
	if s.Title == nil || videoID == "" {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, titleLookupTimeout)
	defer cancel()

	title, err := s.Title(ctx, videoID)
	if err != nil {
		slog.Debug("Title lookup failed", "vid", videoID, "err", err)
		return ""
	}
	return title
}

func (s *Service) record(outcome string) {
	if s.Metrics != nil {
		s.Metrics.RecordOutcome(outcome)
	}
}

func (o *Outcome) add(level flash.Level, text string) {
	o.Messages = append(o.Messages, flash.Message{Level: level, Text: text})
}
