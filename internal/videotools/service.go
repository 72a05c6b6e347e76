// Package videotools implements the yttool sub-commands: extract, transcript,
// metadata, thumbnail and storyboard. Video details come from yt-dlp; captions,
// thumbnails and storyboard sprites are fetched over HTTP.
package videotools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"artifex/internal/artifacts"
	"artifex/internal/config"
	"artifex/internal/logging"
	"artifex/internal/storyboard"
	"artifex/internal/youtube"
)

// InfoSource returns yt-dlp video info.
type InfoSource interface {
	Info(ctx context.Context, videoID string) (youtube.Info, error)
}

// Common holds the arguments shared by every command.
type Common struct {
	URL          string
	OutDir       string
	ProjectRoot  string
	ArtifactsDir string
	Overwrite    bool
}

// Service runs yttool commands. Out receives user-facing progress lines.
type Service struct {
	Out           io.Writer
	Logger        *slog.Logger
	Info          InfoSource
	Getter        youtube.Getter
	ThumbnailBase string
	FrameQuality  int
}

// NewService wires yt-dlp and the HTTP fetcher from cfg.
func NewService(out io.Writer, logger *slog.Logger, cfg *config.Config) *Service {
	timeout := time.Duration(cfg.YouTube.HTTPTimeoutSeconds) * time.Second
	return &Service{
		Out:           out,
		Logger:        logging.NewComponentLogger(logger, "videotools"),
		Info:          youtube.NewClient(cfg.YouTube.YtdlpBinary, logger),
		Getter:        youtube.NewFetcher(timeout, cfg.HTTPUserAgent()),
		ThumbnailBase: cfg.YouTube.ThumbnailBaseURL,
		FrameQuality:  cfg.YouTube.FrameQuality,
	}
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.Logger)
}

func (s *Service) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s *Service) printf(format string, args ...any) {
	fmt.Fprintf(s.out(), format, args...)
}

// quietWriter writes artifacts without announcing them; commands print their
// own progress lines.
func quietWriter() *artifacts.Writer {
	return &artifacts.Writer{}
}

func (s *Service) savedWriter() *artifacts.Writer {
	return &artifacts.Writer{Out: s.out(), Label: "Saved:"}
}

func (s *Service) extractor() *storyboard.Extractor {
	return &storyboard.Extractor{Getter: s.Getter, Quality: s.FrameQuality, Logger: s.Logger}
}

// resolve parses the video ID and returns the artifact directory.
func resolve(c Common) (string, string, error) {
	id, err := youtube.ParseVideoID(c.URL)
	if err != nil {
		return "", "", err
	}
	base := c.ArtifactsDir
	if base == "" {
		base = artifacts.YouTubeBaseDir
	}
	dir, err := artifacts.ResolveOutDir(id, c.OutDir, c.ProjectRoot, base)
	if err != nil {
		return "", "", err
	}
	return id, dir, nil
}

// open creates the artifact directory and locks it.
func open(command, dir string) (*artifacts.Lock, error) {
	if err := artifacts.Ensure(dir); err != nil {
		return nil, err
	}
	return artifacts.Acquire(command, dir)
}
