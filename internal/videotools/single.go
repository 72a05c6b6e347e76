package videotools

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/services"
	"artifex/internal/youtube"
)

// Fixed artifact names.
const (
	MetadataFile       = "metadata.json"
	TranscriptJSONFile = "transcript.json"
	TranscriptTextFile = "transcript.txt"
	ThumbnailFile      = "thumbnail.jpg"
)

// Transcript formats accepted by the transcript command.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatBoth = "both"
)

// TranscriptOptions configures the transcript command.
type TranscriptOptions struct {
	Common
	Lang   string
	Format string
}

// Transcript writes transcript.json and/or transcript.txt. It fails with
// ErrNoData when the video has no captions.
func (s *Service) Transcript(ctx context.Context, opts TranscriptOptions) ([]youtube.Segment, error) {
	const command = "transcript"
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = FormatBoth
	}
	if format != FormatJSON && format != FormatText && format != FormatBoth {
		return nil, services.Wrap(services.ErrValidation, command, "format", fmt.Sprintf("unknown format %q (want json, txt or both)", opts.Format), nil)
	}
	id, dir, err := resolve(opts.Common)
	if err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, TranscriptJSONFile)
	textPath := filepath.Join(dir, TranscriptTextFile)
	var planned []string
	if format != FormatText {
		planned = append(planned, jsonPath)
	}
	if format != FormatJSON {
		planned = append(planned, textPath)
	}
	if err := artifacts.EnsureWritable(command, planned, opts.Overwrite); err != nil {
		return nil, err
	}

	s.printf("Fetching transcript for: %s\n", id)
	info, err := s.Info.Info(ctx, id)
	if err != nil {
		return nil, err
	}
	segments, err := youtube.FetchTranscript(ctx, s.Getter, info, opts.Lang)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			s.printf("No transcript available for this video.\n")
		}
		return nil, err
	}

	lock, err := open(command, dir)
	if err != nil {
		return nil, err
	}
	defer lock.Release()

	w := s.savedWriter()
	if format != FormatText {
		if err := w.WriteJSON(jsonPath, segments); err != nil {
			return nil, err
		}
	}
	if format != FormatJSON {
		if err := w.WriteText(textPath, youtube.PlainText(segments)); err != nil {
			return nil, err
		}
	}
	s.printf("Extracted %d segments.\n", len(segments))
	s.logger(ctx).Info("transcript saved", logging.String("video_id", id), logging.Int("segments", len(segments)))
	return segments, nil
}

// MetadataOptions configures the metadata command.
type MetadataOptions struct {
	Common
}

// Metadata writes metadata.json.
func (s *Service) Metadata(ctx context.Context, opts MetadataOptions) (youtube.Metadata, error) {
	const command = "metadata"
	id, dir, err := resolve(opts.Common)
	if err != nil {
		return youtube.Metadata{}, err
	}
	path := filepath.Join(dir, MetadataFile)
	if err := artifacts.EnsureWritable(command, []string{path}, opts.Overwrite); err != nil {
		return youtube.Metadata{}, err
	}

	s.printf("Fetching metadata for: %s\n", id)
	info, err := s.Info.Info(ctx, id)
	if err != nil {
		return youtube.Metadata{}, err
	}
	meta := youtube.MetadataFromInfo(id, info)

	lock, err := open(command, dir)
	if err != nil {
		return youtube.Metadata{}, err
	}
	defer lock.Release()

	if err := quietWriter().WriteJSON(path, meta); err != nil {
		return youtube.Metadata{}, err
	}
	s.printf("Title: %s\n", meta.Title)
	s.printf("Channel: %s\n", meta.Channel)
	s.printf("Duration: %s\n", meta.DurationString)
	s.printf("Saved: %s\n", path)
	return meta, nil
}

// ThumbnailOptions configures the thumbnail command.
type ThumbnailOptions struct {
	Common
	Quality string
}

// Thumbnail downloads thumbnail.jpg. It fails with ErrNoData when no
// candidate URL yields an image.
func (s *Service) Thumbnail(ctx context.Context, opts ThumbnailOptions) (string, error) {
	const command = "thumbnail"
	id, dir, err := resolve(opts.Common)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ThumbnailFile)
	if err := artifacts.EnsureWritable(command, []string{path}, opts.Overwrite); err != nil {
		return "", err
	}

	s.printf("Downloading thumbnail for: %s\n", id)
	data, url, err := youtube.DownloadThumbnail(ctx, s.Getter, s.logger(ctx), s.ThumbnailBase, id, opts.Quality)
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			s.printf("Could not download thumbnail.\n")
		}
		return "", err
	}

	lock, err := open(command, dir)
	if err != nil {
		return "", err
	}
	defer lock.Release()

	if err := s.savedWriter().WriteBytes(path, data); err != nil {
		return "", err
	}
	s.logger(ctx).Info("thumbnail saved", logging.String("video_id", id), logging.String("url", url))
	return path, nil
}
