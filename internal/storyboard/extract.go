package storyboard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"artifex/internal/logging"
	"artifex/internal/services"
	"artifex/internal/youtube"
)

// FramesDir is the sub-directory that receives extracted frames.
const FramesDir = "frames"

// DefaultQuality is the JPEG quality used for frames.
const DefaultQuality = 90

// Frame describes one extracted frame.
type Frame struct {
	Index        int     `json:"index"`
	Timestamp    float64 `json:"timestamp"`
	TimestampStr string  `json:"timestamp_str"`
	Path         string  `json:"path"`
}

// RemoveFrames deletes previously extracted frame_*.jpg files under
// outDir/frames and returns how many were removed. Other files are kept.
func RemoveFrames(outDir string) (int, error) {
	existing, err := filepath.Glob(filepath.Join(outDir, FramesDir, "frame_*.jpg"))
	if err != nil {
		return 0, err
	}
	for _, path := range existing {
		if err := os.Remove(path); err != nil {
			return 0, fmt.Errorf("remove stale frame: %w", err)
		}
	}
	return len(existing), nil
}

// Extractor downloads sprites and slices them into frames.
type Extractor struct {
	Getter  youtube.Getter
	Quality int
	Logger  *slog.Logger
}

// Extract fetches every sprite of spec in order and writes the planned cells
// as JPEG files under outDir/frames. Sprites are fetched with the format's
// HTTP headers.
func (e *Extractor) Extract(ctx context.Context, spec Spec, outDir string, interval float64) ([]Frame, error) {
	framesDir := filepath.Join(outDir, FramesDir)
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}
	quality := e.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	logger := logging.WithContext(ctx, logging.NewComponentLogger(e.Logger, "storyboard"))

	var frames []Frame
	next := 0
	for n, url := range spec.Fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := e.Getter.Get(ctx, url, spec.Headers)
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "storyboard", "download sprite", fmt.Sprintf("fragment %d", n+1), err)
		}
		sprite, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "storyboard", "decode sprite", fmt.Sprintf("fragment %d", n+1), err)
		}

		var cells []Cell
		cells, next = Plan(spec, sprite.Bounds(), next, interval)
		logger.Debug("slicing sprite",
			logging.Int("fragment", n+1),
			logging.String("format", format),
			logging.Int("cells", len(cells)),
		)
		for _, cell := range cells {
			path := filepath.Join(framesDir, FrameName(cell.Index, cell.Timestamp))
			if err := writeCell(path, sprite, cell.Rect, quality); err != nil {
				return nil, err
			}
			frames = append(frames, Frame{
				Index:        cell.Index,
				Timestamp:    cell.Timestamp,
				TimestampStr: TimestampString(cell.Timestamp),
				Path:         path,
			})
		}
	}
	return frames, nil
}

func writeCell(path string, sprite image.Image, rect image.Rectangle, quality int) error {
	frame := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(frame, frame.Bounds(), sprite, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
