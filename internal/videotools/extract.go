package videotools

import (
	"context"
	"errors"
	"path/filepath"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/services"
	"artifex/internal/youtube"
)

// ExtractOptions configures the extract command. SkipExisting keeps
// artifacts that already exist instead of refusing; an empty
// ThumbnailQuality means "best".
type ExtractOptions struct {
	Common
	Lang             string
	NoTranscript     bool
	NoThumbnail      bool
	ThumbnailQuality string
	SkipExisting     bool
}

// ExtractResult lists what an extract run produced.
type ExtractResult struct {
	VideoID   string
	OutDir    string
	Written   []string
	Skipped   []string
	Segments  int
	Thumbnail string
}

// Extract writes metadata, transcript and thumbnail for one video. Missing
// captions or thumbnails are reported and skipped.
func (s *Service) Extract(ctx context.Context, opts ExtractOptions) (ExtractResult, error) {
	const command = "extract"
	logger := s.logger(ctx)

	id, dir, err := resolve(opts.Common)
	if err != nil {
		return ExtractResult{}, err
	}
	metadataPath := filepath.Join(dir, MetadataFile)
	jsonPath := filepath.Join(dir, TranscriptJSONFile)
	textPath := filepath.Join(dir, TranscriptTextFile)
	thumbnailPath := filepath.Join(dir, ThumbnailFile)

	planned := []string{metadataPath}
	if !opts.NoTranscript {
		planned = append(planned, jsonPath, textPath)
	}
	if !opts.NoThumbnail {
		planned = append(planned, thumbnailPath)
	}
	if !opts.SkipExisting {
		if err := artifacts.EnsureWritable(command, planned, opts.Overwrite); err != nil {
			return ExtractResult{}, err
		}
	}
	keep := func(path string) bool {
		return opts.SkipExisting && !opts.Overwrite && len(artifacts.Existing([]string{path})) > 0
	}

	s.printf("Extracting video: %s\n", id)
	s.printf("Output directory: %s\n", dir)

	lock, err := open(command, dir)
	if err != nil {
		return ExtractResult{}, err
	}
	defer lock.Release()

	result := ExtractResult{VideoID: id, OutDir: dir}
	w := quietWriter()

	if keep(metadataPath) {
		s.printf("Metadata already exists, skipping.\n")
		result.Skipped = append(result.Skipped, metadataPath)
	} else {
		s.printf("Fetching metadata...\n")
		info, err := s.Info.Info(ctx, id)
		if err != nil {
			return result, err
		}
		meta := youtube.MetadataFromInfo(id, info)
		if err := w.WriteJSON(metadataPath, meta); err != nil {
			return result, err
		}
		result.Written = append(result.Written, metadataPath)
		s.printf("  Title: %s\n", meta.Title)
	}

	if !opts.NoTranscript {
		if keep(jsonPath) {
			s.printf("Transcript already exists, skipping.\n")
			result.Skipped = append(result.Skipped, jsonPath)
		} else {
			s.printf("Fetching transcript (lang=%s)...\n", opts.Lang)
			segments, err := s.fetchTranscript(ctx, id, opts.Lang)
			switch {
			case errors.Is(err, services.ErrNoData):
				s.printf("  No transcript available.\n")
				logging.WarnWithContext(logger, "transcript unavailable", "transcript_missing",
					logging.String("video_id", id),
					logging.String(logging.FieldImpact, "transcript files not written"),
				)
			case err != nil:
				return result, err
			default:
				if err := w.WriteJSON(jsonPath, segments); err != nil {
					return result, err
				}
				if err := w.WriteText(textPath, youtube.PlainText(segments)); err != nil {
					return result, err
				}
				result.Written = append(result.Written, jsonPath, textPath)
				result.Segments = len(segments)
				s.printf("  Transcript: %d segments\n", len(segments))
			}
		}
	}

	if !opts.NoThumbnail {
		if keep(thumbnailPath) {
			s.printf("Thumbnail already exists, skipping.\n")
			result.Skipped = append(result.Skipped, thumbnailPath)
		} else {
			s.printf("Downloading thumbnail...\n")
			data, _, err := youtube.DownloadThumbnail(ctx, s.Getter, logger, s.ThumbnailBase, id, opts.ThumbnailQuality)
			switch {
			case errors.Is(err, services.ErrNoData):
				s.printf("  Could not download thumbnail.\n")
				logging.WarnWithContext(logger, "thumbnail unavailable", "thumbnail_missing",
					logging.String("video_id", id),
					logging.String(logging.FieldImpact, "thumbnail.jpg not written"),
				)
			case err != nil:
				return result, err
			default:
				if err := w.WriteBytes(thumbnailPath, data); err != nil {
					return result, err
				}
				result.Written = append(result.Written, thumbnailPath)
				result.Thumbnail = thumbnailPath
				s.printf("  Saved: %s\n", thumbnailPath)
			}
		}
	}

	s.printf("Done. Files saved to: %s\n", dir)
	logger.Info("extract finished",
		logging.String("video_id", id),
		logging.Int("written", len(result.Written)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (s *Service) fetchTranscript(ctx context.Context, id, lang string) ([]youtube.Segment, error) {
	info, err := s.Info.Info(ctx, id)
	if err != nil {
		return nil, err
	}
	return youtube.FetchTranscript(ctx, s.Getter, info, lang)
}
