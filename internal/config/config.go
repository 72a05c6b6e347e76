package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains artifact directory configuration.
type Paths struct {
	ProjectRoot         string `toml:"project_root"`
	PDFArtifactsDir     string `toml:"pdf_artifacts_dir"`
	YouTubeArtifactsDir string `toml:"youtube_artifacts_dir"`
}

// PDF contains defaults for the PDF tool.
type PDF struct {
	PdftoppmBinary string   `toml:"pdftoppm_binary"`
	CopyPDF        bool     `toml:"copy_pdf"`
	DPI            int      `toml:"dpi"`
	Format         string   `toml:"format"`
	Quality        int      `toml:"quality"`
	OCREngine      string   `toml:"ocr_engine"`
	OCRDPI         int      `toml:"ocr_dpi"`
	OCRLanguages   []string `toml:"ocr_languages"`
}

// YouTube contains defaults for the video tool.
type YouTube struct {
	YtdlpBinary        string `toml:"ytdlp_binary"`
	Language           string `toml:"language"`
	ThumbnailQuality   string `toml:"thumbnail_quality"`
	ThumbnailBaseURL   string `toml:"thumbnail_base_url"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`
	UserAgent          string `toml:"user_agent"`
	FrameQuality       int    `toml:"frame_quality"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values shared by pdftool and yttool.
//
// Configuration sections by subsystem:
//   - Paths: project root and per-tool artifact directories
//   - PDF: rasterization and OCR defaults
//   - YouTube: yt-dlp location, caption language, thumbnail and HTTP settings
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	PDF     PDF     `toml:"pdf"`
	YouTube YouTube `toml:"youtube"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ProjectRoot returns the directory artifact paths are resolved against.
// An empty project root means the current working directory.
func (c *Config) ProjectRoot() (string, error) {
	if strings.TrimSpace(c.Paths.ProjectRoot) != "" {
		return c.Paths.ProjectRoot, nil
	}
	return os.Getwd()
}

// HTTPUserAgent returns the user agent sent with thumbnail, caption and sprite requests.
func (c *Config) HTTPUserAgent() string {
	if ua := strings.TrimSpace(c.YouTube.UserAgent); ua != "" {
		return ua
	}
	return defaultUserAgent
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
