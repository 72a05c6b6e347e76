package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"artifex/internal/logging"
	"artifex/internal/services"
)

// DefaultThumbnailBase is the public thumbnail host.
const DefaultThumbnailBase = "https://img.youtube.com/vi"

// minThumbnailBytes separates real thumbnails from the grey placeholder
// served for missing resolutions.
const minThumbnailBytes = 1000

var thumbnailQualities = map[string][]string{
	"best":   {"maxresdefault", "sddefault", "hqdefault"},
	"high":   {"hqdefault"},
	"medium": {"mqdefault"},
	"low":    {"default"},
}

// ThumbnailCandidates lists the URLs tried for quality, best first. Unknown
// qualities behave as "best".
func ThumbnailCandidates(base, videoID, quality string) []string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultThumbnailBase
	}
	names, ok := thumbnailQualities[strings.ToLower(strings.TrimSpace(quality))]
	if !ok {
		names = thumbnailQualities["best"]
	}
	urls := make([]string, 0, len(names))
	for _, name := range names {
		urls = append(urls, fmt.Sprintf("%s/%s/%s.jpg", base, videoID, name))
	}
	return urls
}

// DownloadThumbnail tries each candidate in order and returns the first body
// larger than the placeholder size along with its URL. Failures fall through
// to the next candidate; ErrNoData is returned when none succeeds.
func DownloadThumbnail(ctx context.Context, getter Getter, logger *slog.Logger, base, videoID, quality string) ([]byte, string, error) {
	for _, url := range ThumbnailCandidates(base, videoID, quality) {
		data, err := getter.Get(ctx, url, nil)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, "", ctxErr
			}
			if logger != nil {
				logger.Debug("thumbnail candidate failed", logging.String("url", url), logging.Error(err))
			}
			continue
		}
		if len(data) > minThumbnailBytes {
			return data, url, nil
		}
		if logger != nil {
			logger.Debug("thumbnail candidate is a placeholder", logging.String("url", url), logging.Int("bytes", len(data)))
		}
	}
	return nil, "", services.Wrap(services.ErrNoData, "thumbnail", "download", fmt.Sprintf("no thumbnail available for %s", videoID), nil)
}
