package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imbecility/yt-webdl/pkg/client"
	"github.com/imbecility/yt-webdl/pkg/config"
	"github.com/imbecility/yt-webdl/pkg/downloader"
	"github.com/imbecility/yt-webdl/pkg/engine"
	"github.com/imbecility/yt-webdl/pkg/ffmpeg"
	"github.com/imbecility/yt-webdl/pkg/logger"
	"github.com/imbecility/yt-webdl/pkg/metadata"
	"github.com/imbecility/yt-webdl/pkg/metrics"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "ytwebdl"

// New wires a Service from cfg. The output directory is created here, once,
// and never re-checked per request.
func New(ctx context.Context, cfg config.Config) (*Service, error) {
	logger.SetupGlobal(cfg.Debug, cfg.LogJSON)

	absOutDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("invalid output dir: %w", err)
	}
	if err := os.MkdirAll(absOutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	m := metrics.New(MetricsNamespace)

	httpClient, err := client.NewHTTPClient(120)
	if err != nil {
		return nil, fmt.Errorf("failed to init http client: %w", err)
	}

	prober := &ffmpeg.Prober{
		BinaryPath: cfg.FFmpegPath,
		OnResult:   m.SetFFmpegAvailable,
	}
	ffmpegLocation := cfg.FFmpegPath

	if cfg.FFmpegAutoFetch {
		cwd, _ := os.Getwd()
		path, ferr := ffmpeg.EnsureBinary(ctx, httpClient, prober, cwd)
		if ferr != nil {
			slog.Warn("FFmpeg unavailable, continuing in basic download mode", "err", ferr)
		} else if path != ffmpeg.DefaultBinary {
			ffmpegLocation = path
		}
	}

	dl := &downloader.Downloader{
		Engine:          &engine.YTDLP{Executable: cfg.YTDLPPath},
		ProbeTimeout:    cfg.ProbeTimeout,
		DownloadTimeout: cfg.DownloadTimeout,
		Observe:         m.ObserveEngine,
	}

	slog.Info("Gateway ready",
		"out", absOutDir,
		"ffmpeg", prober.BinaryPath,
		"max_duration", cfg.MaxDuration,
		"debug", cfg.Debug)

	return &Service{
		Downloader:     dl,
		FFmpeg:         prober,
		OutputDir:      absOutDir,
		FFmpegLocation: ffmpegLocation,
		MaxDuration:    cfg.MaxDuration,
		Debug:          cfg.Debug,
		Metrics:        m,
		Title: func(ctx context.Context, videoID string) (string, error) {
			return metadata.Title(ctx, httpClient, videoID)
		},
	}, nil
}
