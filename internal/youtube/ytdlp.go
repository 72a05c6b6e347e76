package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"

	"artifex/internal/deps"
	"artifex/internal/logging"
	"artifex/internal/services"
)

// Client runs yt-dlp. Info results are memoized per video so commands that
// need metadata, captions and storyboards spawn yt-dlp once.
type Client struct {
	Binary string
	Logger *slog.Logger

	mu    sync.Mutex
	cache map[string]Info
}

// NewClient returns a client for binary, defaulting to "yt-dlp" on PATH.
func NewClient(binary string, logger *slog.Logger) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Client{Binary: binary, Logger: logging.NewComponentLogger(logger, "yt-dlp")}
}

// Info runs "yt-dlp --dump-single-json" for videoID and decodes the result.
func (c *Client) Info(ctx context.Context, videoID string) (Info, error) {
	c.mu.Lock()
	if info, ok := c.cache[videoID]; ok {
		c.mu.Unlock()
		return info, nil
	}
	c.mu.Unlock()

	binary, err := deps.Require("yt-dlp", c.Binary)
	if err != nil {
		return Info{}, err
	}

	args := []string{"--dump-single-json", "--no-warnings", "--skip-download", "--", WatchURL(videoID)}
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.WithContext(ctx, c.Logger).Debug("running yt-dlp", logging.String("video_id", videoID))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Info{}, ctxErr
		}
		return Info{}, services.Wrap(services.ErrExternalTool, "yt-dlp", "info", strings.TrimSpace(stderr.String()), err)
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return Info{}, services.Wrap(services.ErrExternalTool, "yt-dlp", "parse info", fmt.Sprintf("video %s", videoID), err)
	}

	c.mu.Lock()
	if c.cache == nil {
		c.cache = make(map[string]Info)
	}
	c.cache[videoID] = info
	c.mu.Unlock()
	return info, nil
}
