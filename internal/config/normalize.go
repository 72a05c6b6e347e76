package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePDF()
	c.normalizeYouTube()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv("ARTIFEX_PROJECT_ROOT"); ok {
		c.Paths.ProjectRoot = value
	}
	c.Paths.ProjectRoot = strings.TrimSpace(c.Paths.ProjectRoot)
	if c.Paths.ProjectRoot != "" {
		root, err := expandPath(c.Paths.ProjectRoot)
		if err != nil {
			return fmt.Errorf("paths.project_root: %w", err)
		}
		c.Paths.ProjectRoot = root
	}
	// Artifact directories stay relative so they resolve against the project root.
	c.Paths.PDFArtifactsDir = strings.TrimSpace(c.Paths.PDFArtifactsDir)
	if c.Paths.PDFArtifactsDir == "" {
		c.Paths.PDFArtifactsDir = defaultPDFArtifactsDir
	}
	c.Paths.YouTubeArtifactsDir = strings.TrimSpace(c.Paths.YouTubeArtifactsDir)
	if c.Paths.YouTubeArtifactsDir == "" {
		c.Paths.YouTubeArtifactsDir = defaultYouTubeArtifactsDir
	}
	return nil
}

func (c *Config) normalizePDF() {
	if value, ok := lookupEnv("ARTIFEX_PDFTOPPM"); ok {
		c.PDF.PdftoppmBinary = value
	}
	c.PDF.PdftoppmBinary = strings.TrimSpace(c.PDF.PdftoppmBinary)
	if c.PDF.PdftoppmBinary == "" {
		c.PDF.PdftoppmBinary = defaultPdftoppmBinary
	}
	c.PDF.Format = strings.ToLower(strings.TrimSpace(c.PDF.Format))
	if c.PDF.Format == "" {
		c.PDF.Format = defaultRasterFormat
	}
	if c.PDF.DPI == 0 {
		c.PDF.DPI = defaultRasterDPI
	}
	if c.PDF.Quality == 0 {
		c.PDF.Quality = defaultRasterQuality
	}
	c.PDF.OCREngine = strings.ToLower(strings.TrimSpace(c.PDF.OCREngine))
	if c.PDF.OCREngine == "" {
		c.PDF.OCREngine = defaultOCREngine
	}
	if c.PDF.OCRDPI == 0 {
		c.PDF.OCRDPI = defaultOCRDPI
	}
	langs := make([]string, 0, len(c.PDF.OCRLanguages))
	seen := make(map[string]struct{}, len(c.PDF.OCRLanguages))
	for _, lang := range c.PDF.OCRLanguages {
		normalized := strings.TrimSpace(lang)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		langs = append(langs, normalized)
	}
	if len(langs) == 0 {
		langs = []string{defaultOCRLanguage}
	}
	c.PDF.OCRLanguages = langs
}

func (c *Config) normalizeYouTube() {
	if value, ok := lookupEnv("ARTIFEX_YTDLP"); ok {
		c.YouTube.YtdlpBinary = value
	}
	c.YouTube.YtdlpBinary = strings.TrimSpace(c.YouTube.YtdlpBinary)
	if c.YouTube.YtdlpBinary == "" {
		c.YouTube.YtdlpBinary = defaultYtdlpBinary
	}
	c.YouTube.Language = strings.TrimSpace(c.YouTube.Language)
	if c.YouTube.Language == "" {
		c.YouTube.Language = defaultLanguage
	}
	c.YouTube.ThumbnailQuality = strings.ToLower(strings.TrimSpace(c.YouTube.ThumbnailQuality))
	if c.YouTube.ThumbnailQuality == "" {
		c.YouTube.ThumbnailQuality = defaultThumbnailQuality
	}
	c.YouTube.ThumbnailBaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.ThumbnailBaseURL), "/")
	if c.YouTube.ThumbnailBaseURL == "" {
		c.YouTube.ThumbnailBaseURL = defaultThumbnailBaseURL
	}
	if c.YouTube.HTTPTimeoutSeconds == 0 {
		c.YouTube.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	c.YouTube.UserAgent = strings.TrimSpace(c.YouTube.UserAgent)
	if c.YouTube.FrameQuality == 0 {
		c.YouTube.FrameQuality = defaultFrameQuality
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := lookupEnv("ARTIFEX_LOG_LEVEL"); ok {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
