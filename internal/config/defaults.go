package config

const (
	defaultConfigPath          = "~/.config/artifex/config.toml"
	projectConfigName          = "artifex.toml"
	defaultPDFArtifactsDir     = ".pdf-artifacts"
	defaultYouTubeArtifactsDir = ".youtube-artifacts"
	defaultPdftoppmBinary      = "pdftoppm"
	defaultRasterDPI           = 200
	defaultRasterFormat        = "jpg"
	defaultRasterQuality       = 85
	defaultOCREngine           = "auto"
	defaultOCRDPI              = 300
	defaultOCRLanguage         = "eng"
	defaultYtdlpBinary         = "yt-dlp"
	defaultLanguage            = "en"
	defaultThumbnailQuality    = "best"
	defaultThumbnailBaseURL    = "https://img.youtube.com/vi"
	defaultHTTPTimeoutSeconds  = 30
	defaultUserAgent           = "artifex/1.0"
	defaultFrameQuality        = 90
	defaultLogFormat           = "console"
	defaultLogLevel            = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PDFArtifactsDir:     defaultPDFArtifactsDir,
			YouTubeArtifactsDir: defaultYouTubeArtifactsDir,
		},
		PDF: PDF{
			PdftoppmBinary: defaultPdftoppmBinary,
			CopyPDF:        true,
			DPI:            defaultRasterDPI,
			Format:         defaultRasterFormat,
			Quality:        defaultRasterQuality,
			OCREngine:      defaultOCREngine,
			OCRDPI:         defaultOCRDPI,
			OCRLanguages:   []string{defaultOCRLanguage},
		},
		YouTube: YouTube{
			YtdlpBinary:        defaultYtdlpBinary,
			Language:           defaultLanguage,
			ThumbnailQuality:   defaultThumbnailQuality,
			ThumbnailBaseURL:   defaultThumbnailBaseURL,
			HTTPTimeoutSeconds: defaultHTTPTimeoutSeconds,
			UserAgent:          defaultUserAgent,
			FrameQuality:       defaultFrameQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
