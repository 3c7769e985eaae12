package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/imbecility/yt-webdl/pkg/client"
)

const (
	UrlNanoLinux   = "https://github.com/imbecility/yt-gateway/releases/download/ffmpeg_git-2025-12-18-78c75d5/ffmpeg_nano"
	UrlNanoWindows = "https://github.com/imbecility/yt-gateway/releases/download/ffmpeg_git-2025-12-18-78c75d5/ffmpeg_nano.exe"
)

// EnsureBinary returns a working ffmpeg path. When the prober's binary does
// not answer, a static nano build is looked up in dir and fetched there if
// missing. On success the prober is repointed at the returned path.
func EnsureBinary(ctx context.Context, c client.HTTPClient, p *Prober, dir string) (string, error) {
	if p.Available(ctx) {
		slog.Debug("FFmpeg found and working", "path", p.binary())
		return p.binary(), nil
	}

	slog.Warn("FFmpeg not found or invalid. Attempting to download nano build...", "path", p.binary())

	var downloadUrl, fileName string
	switch runtime.GOOS {
	case "windows":
		downloadUrl = UrlNanoWindows
		fileName = "ffmpeg_nano.exe"
	case "linux", "darwin":
		downloadUrl = UrlNanoLinux
		fileName = "ffmpeg_nano"
	default:
		return "", fmt.Errorf("auto-download not supported for OS: %s", runtime.GOOS)
	}

	localPath, err := filepath.Abs(filepath.Join(dir, fileName))
	if err != nil {
		return "", fmt.Errorf("invalid ffmpeg dir: %w", err)
	}
	candidate := &Prober{BinaryPath: localPath, Timeout: p.Timeout}

	if _, err := os.Stat(localPath); err == nil {
		if candidate.Available(ctx) {
			slog.Info("Found local nano ffmpeg", "path", localPath)
			p.BinaryPath = localPath
			return localPath, nil
		}
		if remferr := os.Remove(localPath); remferr != nil {
			slog.Warn("Failed to delete a broken ffmpeg executable", "path", localPath, "err", remferr)
		}
	}

	slog.Info("Downloading ffmpeg nano...", "url", downloadUrl)
	if err := downloadFile(ctx, c, downloadUrl, localPath); err != nil {
		return "", fmt.Errorf("failed to download ffmpeg: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(localPath, 0o755); err != nil {
			return "", fmt.Errorf("failed to chmod ffmpeg: %w", err)
		}
	}

	if !candidate.Available(ctx) {
		return "", fmt.Errorf("downloaded ffmpeg is not working")
	}

	slog.Info("FFmpeg installed successfully", "path", localPath)
	p.BinaryPath = localPath
	return localPath, nil
}

func downloadFile(ctx context.Context, c client.HTTPClient, url string, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			slog.Warn("Failed to close response body", "error", cerr)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
