package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

var (
	rasterFormats     = []string{"jpg", "jpeg", "png", "tif", "tiff"}
	ocrEngines        = []string{"auto", "text", "tesseract"}
	thumbnailQualities = []string{"best", "high", "medium", "low"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePDF(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePDF() error {
	if err := ensurePositiveMap(map[string]int{
		"pdf.dpi":     c.PDF.DPI,
		"pdf.ocr_dpi": c.PDF.OCRDPI,
	}); err != nil {
		return err
	}
	if c.PDF.Quality < 1 || c.PDF.Quality > 100 {
		return errors.New("pdf.quality must be between 1 and 100")
	}
	if !ValidRasterFormat(c.PDF.Format) {
		return fmt.Errorf("pdf.format %q is not supported (use one of %v)", c.PDF.Format, rasterFormats)
	}
	if !slices.Contains(ocrEngines, c.PDF.OCREngine) {
		return fmt.Errorf("pdf.ocr_engine %q is not supported (use one of %v)", c.PDF.OCREngine, ocrEngines)
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.HTTPTimeoutSeconds <= 0 {
		return errors.New("youtube.http_timeout_seconds must be positive")
	}
	if c.YouTube.FrameQuality < 1 || c.YouTube.FrameQuality > 100 {
		return errors.New("youtube.frame_quality must be between 1 and 100")
	}
	if !slices.Contains(thumbnailQualities, c.YouTube.ThumbnailQuality) {
		return fmt.Errorf("youtube.thumbnail_quality %q is not supported (use one of %v)", c.YouTube.ThumbnailQuality, thumbnailQualities)
	}
	parsed, err := url.Parse(c.YouTube.ThumbnailBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("youtube.thumbnail_base_url %q must be an absolute URL", c.YouTube.ThumbnailBaseURL)
	}
	return nil
}

// ValidRasterFormat reports whether pdftool can rasterize to the given format.
func ValidRasterFormat(format string) bool {
	return slices.Contains(rasterFormats, format)
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
