package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"artifex/internal/config"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "artifex", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Paths.ProjectRoot != "" {
		t.Fatalf("expected empty project root, got %q", cfg.Paths.ProjectRoot)
	}
	if cfg.Paths.PDFArtifactsDir != ".pdf-artifacts" {
		t.Fatalf("unexpected pdf artifacts dir: %q", cfg.Paths.PDFArtifactsDir)
	}
	if cfg.Paths.YouTubeArtifactsDir != ".youtube-artifacts" {
		t.Fatalf("unexpected youtube artifacts dir: %q", cfg.Paths.YouTubeArtifactsDir)
	}
	if cfg.PDF.DPI != 200 || cfg.PDF.Quality != 85 || cfg.PDF.Format != "jpg" {
		t.Fatalf("unexpected raster defaults: %+v", cfg.PDF)
	}
	if !cfg.PDF.CopyPDF {
		t.Fatal("expected copy_pdf enabled by default")
	}
	if cfg.PDF.OCREngine != "auto" {
		t.Fatalf("unexpected ocr engine: %q", cfg.PDF.OCREngine)
	}
	if len(cfg.PDF.OCRLanguages) != 1 || cfg.PDF.OCRLanguages[0] != "eng" {
		t.Fatalf("unexpected ocr languages: %v", cfg.PDF.OCRLanguages)
	}
	if cfg.YouTube.YtdlpBinary != "yt-dlp" {
		t.Fatalf("unexpected yt-dlp binary: %q", cfg.YouTube.YtdlpBinary)
	}
	if cfg.YouTube.ThumbnailBaseURL != "https://img.youtube.com/vi" {
		t.Fatalf("unexpected thumbnail base url: %q", cfg.YouTube.ThumbnailBaseURL)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	root, err := cfg.ProjectRoot()
	if err != nil {
		t.Fatalf("ProjectRoot: %v", err)
	}
	wd, _ := os.Getwd()
	if root != wd {
		t.Fatalf("expected project root to default to cwd %q, got %q", wd, root)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "artifex.toml")

	type payload struct {
		Paths struct {
			ProjectRoot string `toml:"project_root"`
		} `toml:"paths"`
		PDF struct {
			DPI          int      `toml:"dpi"`
			Format       string   `toml:"format"`
			OCRLanguages []string `toml:"ocr_languages"`
		} `toml:"pdf"`
		YouTube struct {
			Language         string `toml:"language"`
			ThumbnailBaseURL string `toml:"thumbnail_base_url"`
		} `toml:"youtube"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.ProjectRoot = filepath.Join(tempDir, "project")
	custom.PDF.DPI = 150
	custom.PDF.Format = "PNG"
	custom.PDF.OCRLanguages = []string{"eng", " deu ", "eng", ""}
	custom.YouTube.Language = "de"
	custom.YouTube.ThumbnailBaseURL = "http://127.0.0.1:9999/vi/"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.ProjectRoot != filepath.Join(tempDir, "project") {
		t.Fatalf("unexpected project root: %q", cfg.Paths.ProjectRoot)
	}
	if cfg.PDF.DPI != 150 {
		t.Fatalf("expected dpi 150, got %d", cfg.PDF.DPI)
	}
	if cfg.PDF.Format != "png" {
		t.Fatalf("expected lower-cased format, got %q", cfg.PDF.Format)
	}
	if strings.Join(cfg.PDF.OCRLanguages, ",") != "eng,deu" {
		t.Fatalf("expected deduplicated languages, got %v", cfg.PDF.OCRLanguages)
	}
	if cfg.YouTube.Language != "de" {
		t.Fatalf("unexpected language: %q", cfg.YouTube.Language)
	}
	if cfg.YouTube.ThumbnailBaseURL != "http://127.0.0.1:9999/vi" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.YouTube.ThumbnailBaseURL)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "artifex.toml")
	content := "[pdf]\npdftoppm_binary = \"/opt/poppler/pdftoppm\"\n\n[youtube]\nytdlp_binary = \"/opt/yt-dlp\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := filepath.Join(tempDir, "root")
	t.Setenv("ARTIFEX_YTDLP", "/usr/local/bin/yt-dlp")
	t.Setenv("ARTIFEX_PDFTOPPM", "/usr/local/bin/pdftoppm")
	t.Setenv("ARTIFEX_PROJECT_ROOT", root)
	t.Setenv("ARTIFEX_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.YouTube.YtdlpBinary != "/usr/local/bin/yt-dlp" {
		t.Errorf("expected yt-dlp from env, got %q", cfg.YouTube.YtdlpBinary)
	}
	if cfg.PDF.PdftoppmBinary != "/usr/local/bin/pdftoppm" {
		t.Errorf("expected pdftoppm from env, got %q", cfg.PDF.PdftoppmBinary)
	}
	if cfg.Paths.ProjectRoot != root {
		t.Errorf("expected project root from env, got %q", cfg.Paths.ProjectRoot)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "ytdlp_binary") {
		t.Fatalf("sample config missing yt-dlp setting: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.PDF.DPI != 200 {
		t.Fatalf("expected sample dpi 200, got %d", cfg.PDF.DPI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.PDF.DPI = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative dpi")
	}

	cfg = config.Default()
	cfg.PDF.Quality = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for quality above 100")
	}

	cfg = config.Default()
	cfg.PDF.Format = "webp"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported raster format")
	}

	cfg = config.Default()
	cfg.PDF.OCREngine = "docling"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown ocr engine")
	}

	cfg = config.Default()
	cfg.YouTube.ThumbnailQuality = "ultra"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown thumbnail quality")
	}

	cfg = config.Default()
	cfg.YouTube.ThumbnailBaseURL = "img.youtube.com/vi"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for relative thumbnail base url")
	}

	cfg = config.Default()
	cfg.YouTube.HTTPTimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero http timeout")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
