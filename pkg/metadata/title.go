// Package metadata looks up video titles without going through the
// extraction engine. The gateway uses it when the engine probe reports an
// empty title.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/imbecility/yt-webdl/pkg/client"
)

// OembedEndpoint is YouTube's public oEmbed endpoint.
var OembedEndpoint = "https://www.youtube.com/oembed"

// Title fetches the title of videoID via oEmbed.
func Title(ctx context.Context, c client.HTTPClient, videoID string) (string, error) {
	if videoID == "" {
		return "", errors.New("empty video id")
	}

	q := url.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, OembedEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer func(Body io.ReadCloser) {
		if bcerr := Body.Close(); bcerr != nil {
			slog.Warn("failed to close response body", "err", bcerr)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var data struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&data); err != nil {
		return "", fmt.Errorf("decode oembed: %w", err)
	}
	if data.Title == "" {
		return "", errors.New("oembed returned no title")
	}
	return data.Title, nil
}
