package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxDocumentBytes = 8 << 20

// loadHTTP returns the body and its Content-Type.
func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, string, error) {
	if client == nil {
		return nil, "", errors.New("loader: http client is not configured")
	}
	if url == "" {
		return nil, "", errors.New("loader: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("loader: fetch %q: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errors.New("loader: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, "", fmt.Errorf("loader: read body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
