package downloader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imbecility/yt-webdl/pkg/engine"
	"github.com/imbecility/yt-webdl/pkg/models"
)

type fakeEngine struct {
	meta        *models.VideoMetadata
	probeErr    error
	downloadErr error
	events      []engine.ProgressEvent

	probeCalls    int
	downloadCalls int
	lastOpts      engine.Options
	probeDeadline bool
}

func (f *fakeEngine) Probe(ctx context.Context, url string, opts engine.Options) (*models.VideoMetadata, error) {
	f.probeCalls++
	_, f.probeDeadline = ctx.Deadline()
	return f.meta, f.probeErr
}

func (f *fakeEngine) Download(ctx context.Context, url string, opts engine.Options, progress engine.ProgressFunc) error {
	f.downloadCalls++
	f.lastOpts = opts
	for _, ev := range f.events {
		progress(ev)
	}
	return f.downloadErr
}

func request(max time.Duration) models.DownloadRequest {
	return models.DownloadRequest{URL: "https://youtu.be/abc123", MaxDuration: max, RequestID: "req-1"}
}

func TestRun_DurationLimit(t *testing.T) {
	tests := []struct {
		name          string
		duration      time.Duration
		limit         time.Duration
		wantDownloads int
	}{
		{"well under", 300 * time.Second, 7200 * time.Second, 1},
		{"exactly at limit", 7200 * time.Second, 7200 * time.Second, 1},
		{"one second over", 7201 * time.Second, 7200 * time.Second, 0},
		{"far over", 10000 * time.Second, 7200 * time.Second, 0},
		{"default limit applies", 3 * time.Hour, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := &fakeEngine{meta: &models.VideoMetadata{Title: "clip", Duration: tt.duration}}
			d := &Downloader{Engine: fe}

			meta, err := d.Run(context.Background(), request(tt.limit), BuildOptions("/dl", true, ""))

			assert.Equal(t, 1, fe.probeCalls)
			assert.Equal(t, tt.wantDownloads, fe.downloadCalls)
			if tt.wantDownloads == 0 {
				assert.ErrorIs(t, err, ErrDurationExceeded)
				assert.Nil(t, meta)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "clip", meta.Title)
			}
		})
	}
}

func TestRun_ReturnsProbeMetadata(t *testing.T) {
	fe := &fakeEngine{meta: &models.VideoMetadata{Title: "Probe Title", Duration: time.Minute}}
	d := &Downloader{Engine: fe}
	opts := BuildOptions("/dl", true, "/opt/ffmpeg")

	meta, err := d.Run(context.Background(), request(time.Hour), opts)
	require.NoError(t, err)
	assert.Same(t, fe.meta, meta)
	assert.Equal(t, opts, fe.lastOpts)
}

func TestRun_ProbeFailure(t *testing.T) {
	probeErr := &engine.Error{Kind: engine.KindDownload, Op: "probe", Err: errors.New("exit status 1")}
	fe := &fakeEngine{probeErr: probeErr}
	d := &Downloader{Engine: fe}

	_, err := d.Run(context.Background(), request(time.Hour), engine.Options{})
	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, 0, fe.downloadCalls)
}

func TestRun_NilMetadataIsExtractionError(t *testing.T) {
	fe := &fakeEngine{}
	d := &Downloader{Engine: fe}

	_, err := d.Run(context.Background(), request(time.Hour), engine.Options{})
	assert.True(t, engine.IsKind(err, engine.KindExtraction))
	assert.Equal(t, 0, fe.downloadCalls)
}

func TestRun_DownloadFailure(t *testing.T) {
	dlErr := &engine.Error{Kind: engine.KindDownload, Op: "download", Output: "ERROR: Private video"}
	fe := &fakeEngine{meta: &models.VideoMetadata{Duration: time.Minute}, downloadErr: dlErr}
	d := &Downloader{Engine: fe}

	_, err := d.Run(context.Background(), request(time.Hour), engine.Options{})
	assert.ErrorIs(t, err, dlErr)
	assert.Equal(t, 1, fe.downloadCalls)
}

func TestRun_TimeoutsAndObserve(t *testing.T) {
	fe := &fakeEngine{meta: &models.VideoMetadata{Duration: time.Minute}}
	var ops []string
	d := &Downloader{
		Engine:       fe,
		ProbeTimeout: time.Minute,
		Observe:      func(op string, _ time.Duration) { ops = append(ops, op) },
	}

	_, err := d.Run(context.Background(), request(time.Hour), engine.Options{})
	require.NoError(t, err)
	assert.True(t, fe.probeDeadline)
	assert.Equal(t, []string{"probe", "download"}, ops)
}

func TestRun_ProgressHookReceivesEvents(t *testing.T) {
	fe := &fakeEngine{
		meta: &models.VideoMetadata{Duration: time.Minute},
		events: []engine.ProgressEvent{
			{Phase: "downloading", DownloadedBytes: 1 << 20, TotalBytes: 4 << 20},
			{Phase: "downloading", DownloadedBytes: 2 << 20},
			{Phase: "finished"},
		},
	}
	d := &Downloader{Engine: fe}

	assert.NotPanics(t, func() {
		_, err := d.Run(context.Background(), request(time.Hour), engine.Options{})
		require.NoError(t, err)
	})
}

func TestDurationExceededError_UserMessage(t *testing.T) {
	assert.Equal(t, "Videos longer than 2 hours are not supported",
		(&DurationExceededError{Limit: 7200 * time.Second}).UserMessage())
	assert.Equal(t, "Videos longer than 30 minutes are not supported",
		(&DurationExceededError{Limit: 30 * time.Minute}).UserMessage())
}
