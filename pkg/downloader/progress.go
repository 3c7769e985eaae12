package downloader

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/imbecility/yt-webdl/pkg/engine"
)

// ProgressHook is registered with the engine for each download. It carries
// only the request id and does nothing beyond a debug line yet.
// TODO: push events to the browser once the home page grows a live channel.
type ProgressHook struct {
	RequestID string
}

func (h ProgressHook) OnProgress(ev engine.ProgressEvent) {
	if ev.Phase != "downloading" {
		return
	}
	if ev.TotalBytes > 0 {
		slog.Debug("Download progress", "req", h.RequestID,
			"done", humanize.IBytes(uint64(max(ev.DownloadedBytes, 0))),
			"total", humanize.IBytes(uint64(ev.TotalBytes)))
		return
	}
	slog.Debug("Download progress", "req", h.RequestID, "done", humanize.IBytes(uint64(max(ev.DownloadedBytes, 0))))
}
