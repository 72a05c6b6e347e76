package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"artifex/internal/services"
)

// maxBodyBytes caps any single download.
const maxBodyBytes = 64 << 20

// Fetcher performs GET requests with a shared timeout and user agent.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher returns a fetcher with the given timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: timeout}, UserAgent: userAgent}
}

// Get downloads url. Non-2xx responses are external tool errors.
func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if f.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "http", "get", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, services.Wrap(services.ErrExternalTool, "http", "get", fmt.Sprintf("%s returned %d", url, resp.StatusCode), nil)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "http", "read body", url, err)
	}
	return data, nil
}
