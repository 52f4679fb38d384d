// ingest/downloader.go
package ingest

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/yataco/dashboard/backend/config"
	"github.com/yataco/dashboard/backend/utils"
)

// FetchRemote downloads a report file and returns its file name and content.
// Timeouts, retries and the size cap come from config.AppConfig.
func FetchRemote(ctx context.Context, rawURL string) (string, []byte, error) {
	utils.Log.Infof("Ingest: downloading report from %s", rawURL)

	client := retryablehttp.NewClient()
	client.RetryMax = config.AppConfig.Remote.RetryMax
	client.HTTPClient.Timeout = config.AppConfig.Remote.Timeout
	client.Logger = utils.Log

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to make GET request to %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("failed to download file from %s: received status code %d", rawURL, resp.StatusCode)
	}

	limit := config.AppConfig.Server.MaxUploadMB << 20
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read body from %s: %w", rawURL, err)
	}
	if int64(len(data)) > limit {
		return "", nil, fmt.Errorf("file at %s exceeds %d MB", rawURL, config.AppConfig.Server.MaxUploadMB)
	}

	name := remoteFileName(rawURL, resp.Header.Get("Content-Disposition"))
	utils.Log.Infof("Ingest: downloaded %s (%d bytes)", name, len(data))
	return name, data, nil
}

// remoteFileName prefers the Content-Disposition filename over the URL path.
func remoteFileName(rawURL, disposition string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return path.Base(params["filename"])
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" {
			return base
		}
	}
	return "download"
}
