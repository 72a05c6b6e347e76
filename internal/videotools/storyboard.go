package videotools

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/services"
	"artifex/internal/storyboard"
)

// StoryboardManifestFile is the storyboard manifest name.
const StoryboardManifestFile = "storyboard_manifest.json"

// StoryboardOptions configures the storyboard command.
type StoryboardOptions struct {
	Common
	WithTranscript bool
	Lang           string

	// Interval keeps roughly one frame per Interval seconds when positive.
	Interval float64

	// Level pins a storyboard format (sb0..sb3).
	Level string
}

// Storyboard extracts frames into frames/ and writes the manifest, aligning
// caption segments to frames when requested.
func (s *Service) Storyboard(ctx context.Context, opts StoryboardOptions) (storyboard.Manifest, error) {
	const command = "storyboard"
	logger := s.logger(ctx)

	if opts.Interval < 0 {
		return storyboard.Manifest{}, services.Wrap(services.ErrValidation, command, "interval", fmt.Sprintf("interval must not be negative, got %g", opts.Interval), nil)
	}
	if _, err := storyboard.NormalizeLevel(opts.Level); err != nil {
		return storyboard.Manifest{}, err
	}
	id, dir, err := resolve(opts.Common)
	if err != nil {
		return storyboard.Manifest{}, err
	}
	manifestPath := filepath.Join(dir, StoryboardManifestFile)
	framesDir := filepath.Join(dir, storyboard.FramesDir)
	if err := artifacts.EnsureWritable(command, []string{manifestPath}, opts.Overwrite); err != nil {
		return storyboard.Manifest{}, err
	}
	if !opts.Overwrite {
		if existing, _ := filepath.Glob(filepath.Join(framesDir, "frame_*.jpg")); len(existing) > 0 {
			return storyboard.Manifest{}, artifacts.EnsureWritable(command, existing[:1], false)
		}
	}

	s.printf("Extracting storyboard for: %s\n", id)
	info, err := s.Info.Info(ctx, id)
	if err != nil {
		return storyboard.Manifest{}, err
	}
	spec, ok, err := storyboard.SelectFormat(info, opts.Level)
	if err != nil {
		return storyboard.Manifest{}, err
	}
	if !ok {
		s.printf("No storyboard available for this video.\n")
		return storyboard.Manifest{}, services.Wrap(services.ErrNoData, command, "select format", fmt.Sprintf("no storyboard for %s", id), nil)
	}
	logger.Debug("storyboard format selected",
		logging.String("format_id", spec.FormatID),
		logging.Int("columns", spec.Columns),
		logging.Int("rows", spec.Rows),
		logging.Int("fragments", len(spec.Fragments)),
	)

	lock, err := open(command, dir)
	if err != nil {
		return storyboard.Manifest{}, err
	}
	defer lock.Release()

	if opts.Overwrite {
		removed, err := storyboard.RemoveFrames(dir)
		if err != nil {
			return storyboard.Manifest{}, err
		}
		if removed > 0 {
			logger.Debug("removed previous frames", logging.Int("count", removed))
		}
	}

	frames, err := s.extractor().Extract(ctx, spec, dir, opts.Interval)
	if err != nil {
		return storyboard.Manifest{}, err
	}
	if len(frames) == 0 {
		s.printf("No storyboard available for this video.\n")
		return storyboard.Manifest{}, services.Wrap(services.ErrNoData, command, "extract frames", "sprites contained no complete frames", nil)
	}
	s.printf("Extracted %d frames to %s/\n", len(frames), framesDir)

	manifest := storyboard.Manifest{VideoID: id, FrameCount: len(frames), Frames: frames}
	if opts.WithTranscript {
		s.printf("Fetching transcript (lang=%s)...\n", opts.Lang)
		segments, err := s.fetchTranscript(ctx, id, opts.Lang)
		switch {
		case errors.Is(err, services.ErrNoData):
			s.printf("No transcript available.\n")
			logging.WarnWithContext(logger, "transcript unavailable", "transcript_missing",
				logging.String("video_id", id),
				logging.String(logging.FieldImpact, "manifest written without transcript"),
			)
		case err != nil:
			return storyboard.Manifest{}, err
		default:
			manifest.Transcript = storyboard.Align(segments, frames)
			s.printf("Aligned %d transcript segments with frames.\n", len(segments))
		}
	}

	if err := quietWriter().WriteJSON(manifestPath, manifest); err != nil {
		return storyboard.Manifest{}, err
	}
	s.printf("Saved manifest: %s\n", manifestPath)
	logger.Info("storyboard finished", logging.String("video_id", id), logging.Int("frames", len(frames)), logging.String("format_id", spec.FormatID))
	return manifest, nil
}
