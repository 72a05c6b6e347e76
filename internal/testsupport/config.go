package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"artifex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose project root is a fresh temp directory.
// External binaries point at names that never resolve unless an option
// installs a stub.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ProjectRoot = filepath.Join(base, "project")
	cfgVal.PDF.PdftoppmBinary = filepath.Join(base, "bin", "missing-pdftoppm")
	cfgVal.YouTube.YtdlpBinary = filepath.Join(base, "bin", "missing-yt-dlp")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubPdftoppm installs FakePdftoppm as the configured renderer.
func WithStubPdftoppm() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.PDF.PdftoppmBinary = WriteScript(b.t, filepath.Join(b.baseDir, "bin", "pdftoppm"), FakePdftoppm)
	}
}

// WithStubYtdlp installs a yt-dlp stub that prints the JSON document at infoPath.
func WithStubYtdlp(infoPath string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.YtdlpBinary = WriteScript(b.t, filepath.Join(b.baseDir, "bin", "yt-dlp"), FakeYtdlp(infoPath))
	}
}

// WithThumbnailBase points thumbnail downloads at a test server.
func WithThumbnailBase(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.YouTube.ThumbnailBaseURL = url
	}
}

// WriteConfig marshals cfg to a TOML file in a temp directory and returns its
// path, for tests that drive the CLIs through --config.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
