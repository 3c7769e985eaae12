package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

const (
	DefaultOutputDir       = "./downloads"
	DefaultPort            = 8080
	DefaultMaxDuration     = 7200 * time.Second
	DefaultProbeTimeout    = 60 * time.Second
	DefaultDownloadTimeout = 30 * time.Minute
	DefaultFlashCookie     = "yt_webdl_flash"
)

// Config holds everything the service reads at startup.
type Config struct {
	// OutputDir is the folder downloads are written to. Created at startup.
	OutputDir string
	// FFmpegPath is the muxing binary. Empty means "ffmpeg" from PATH and no
	// explicit location passed to the engine.
	FFmpegPath string
	// YTDLPPath overrides the yt-dlp executable.
	YTDLPPath string
	// MaxDuration is the longest video accepted for download.
	MaxDuration time.Duration
	// Debug enables verbose logging and lets unexpected faults propagate.
	Debug bool
	// LogJSON switches the log handler to JSON.
	LogJSON bool
	// Port for the HTTP server.
	Port int
	// FFmpegAutoFetch downloads a static ffmpeg build when the configured one is missing.
	FFmpegAutoFetch bool
	// ProbeTimeout bounds the metadata-only engine call.
	ProbeTimeout time.Duration
	// DownloadTimeout bounds the download call. Zero disables the bound.
	DownloadTimeout time.Duration
	// FlashCookie is the cookie name used for one-shot notifications.
	FlashCookie string
}

// Load reads .env files, then the environment, then command-line flags.
// Later sources win.
func Load(args []string) (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir:       GetEnv("DOWNLOAD_DIR", DefaultOutputDir),
		FFmpegPath:      GetEnv("FFMPEG_PATH", ""),
		YTDLPPath:       GetEnv("YTDLP_PATH", ""),
		MaxDuration:     time.Duration(GetEnvInt("MAX_VIDEO_DURATION", int(DefaultMaxDuration/time.Second))) * time.Second,
		Debug:           GetEnvBool("DEBUG", false),
		LogJSON:         GetEnvBool("LOG_JSON", false),
		Port:            GetEnvInt("PORT", DefaultPort),
		FFmpegAutoFetch: GetEnvBool("FFMPEG_AUTOFETCH", false),
		ProbeTimeout:    GetEnvDuration("PROBE_TIMEOUT", DefaultProbeTimeout),
		DownloadTimeout: GetEnvDuration("DOWNLOAD_TIMEOUT", DefaultDownloadTimeout),
		FlashCookie:     GetEnv("FLASH_COOKIE", DefaultFlashCookie),
	}

	fs := flag.NewFlagSet("yt-webdl", flag.ContinueOnError)
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "Path to ffmpeg binary")
	fs.StringVar(&cfg.YTDLPPath, "ytdlp", cfg.YTDLPPath, "Path to yt-dlp binary")
	maxSec := fs.Int("max-duration", int(cfg.MaxDuration/time.Second), "Longest accepted video in seconds")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging and fault propagation")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Log as JSON")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Port for the web server")
	fs.BoolVar(&cfg.FFmpegAutoFetch, "ffmpeg-autofetch", cfg.FFmpegAutoFetch, "Download a static ffmpeg when none works")
	fs.DurationVar(&cfg.ProbeTimeout, "probe-timeout", cfg.ProbeTimeout, "Timeout for the metadata probe")
	fs.DurationVar(&cfg.DownloadTimeout, "download-timeout", cfg.DownloadTimeout, "Timeout for a download (0 = none)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.MaxDuration = time.Duration(*maxSec) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output dir is empty"))
	}
	if c.MaxDuration <= 0 {
		errs = append(errs, errors.New("max duration must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.ProbeTimeout <= 0 {
		errs = append(errs, errors.New("probe timeout must be positive"))
	}
	if c.DownloadTimeout < 0 {
		errs = append(errs, errors.New("download timeout must not be negative"))
	}
	if c.FlashCookie == "" {
		errs = append(errs, errors.New("flash cookie name is empty"))
	}
	return errors.Join(errs...)
}
