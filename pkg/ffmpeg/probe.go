package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"
)

const (
	DefaultBinary       = "ffmpeg"
	DefaultProbeTimeout = 5 * time.Second

	versionMarker = "ffmpeg version"
)

// Prober reports whether the ffmpeg binary is installed and runnable.
// It keeps no state between calls, so installing or removing ffmpeg is
// picked up by the next request.
type Prober struct {
	// BinaryPath defaults to "ffmpeg" resolved through PATH.
	BinaryPath string
	// Timeout bounds the version query. Defaults to DefaultProbeTimeout.
	Timeout time.Duration
	// OnResult, when set, receives every probe outcome.
	OnResult func(available bool)
}

func (p *Prober) binary() string {
	if p.BinaryPath == "" {
		return DefaultBinary
	}
	return p.BinaryPath
}

// Available runs "<binary> -version" and looks for the version banner on
// stdout, whatever the exit code. A launch failure, a timeout or a missing
// banner yields false.
func (p *Prober) Available(ctx context.Context) bool {
	ok := p.run(ctx)
	if p.OnResult != nil {
		p.OnResult(ok)
	}
	return ok
}

func (p *Prober) run(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary(), "-version")
	cmd.Stdout = &stdout
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		// A non-zero exit still counts if the banner was printed.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			slog.Debug("FFmpeg probe failed", "path", p.binary(), "err", err)
			return false
		}
		slog.Debug("FFmpeg probe exited non-zero", "path", p.binary(), "err", err)
	}

	if !bytes.Contains(stdout.Bytes(), []byte(versionMarker)) {
		slog.Debug("FFmpeg probe: unexpected output", "path", p.binary())
		return false
	}
	return true
}
