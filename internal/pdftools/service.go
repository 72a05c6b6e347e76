// Package pdftools implements the pdftool sub-commands: ocr, rasterize,
// inspect and clean. Each command resolves an artifact directory, plans every
// output, refuses to overwrite existing files unless asked, and records a
// manifest describing the run.
package pdftools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/ocr"
	"artifex/internal/pdftoppm"
	"artifex/internal/services"
)

// ToolName is recorded in every manifest written by this package.
const ToolName = "pdftool"

// Renderer rasterizes single pages.
type Renderer interface {
	Render(ctx context.Context, req pdftoppm.Request) (string, error)
	RenderPNG(ctx context.Context, input string, page, dpi int) ([]byte, error)
	Available() error
}

// Common holds the flags shared by the writing commands. ArtifactsDir
// replaces .pdf-artifacts as the per-document parent under the project root.
type Common struct {
	PDFPath      string
	OutDir       string
	ProjectRoot  string
	ArtifactsDir string
	Manifest     string
	Overwrite    bool
	DryRun       bool
}

// Service runs pdftool commands. Out receives user-facing progress lines.
type Service struct {
	Out       io.Writer
	Logger    *slog.Logger
	Renderer  Renderer
	NewEngine func() (ocr.Engine, error)
}

// NewService wires the default pdftoppm renderer and Tesseract engine.
func NewService(out io.Writer, logger *slog.Logger, pdftoppmBinary string) *Service {
	return &Service{
		Out:      out,
		Logger:   logging.NewComponentLogger(logger, "pdftools"),
		Renderer: pdftoppm.New(pdftoppmBinary),
		NewEngine: func() (ocr.Engine, error) {
			return ocr.NewTesseract()
		},
	}
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.Logger)
}

func (s *Service) writer(dryRun bool) *artifacts.Writer {
	return &artifacts.Writer{Out: s.out(), DryRun: dryRun}
}

func (s *Service) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s *Service) printf(format string, args ...any) {
	fmt.Fprintf(s.out(), format, args...)
}

// resolveInput returns the absolute path of an existing, regular PDF file.
func resolveInput(command, path string) (string, error) {
	if path == "" {
		return "", services.Wrap(services.ErrValidation, command, "input", "pdf path is required", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, command, "input", fmt.Sprintf("%s does not exist", abs), nil)
		}
		return "", services.Wrap(services.ErrNotFound, command, "input", abs, err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrValidation, command, "input", fmt.Sprintf("%s is a directory", abs), nil)
	}
	return abs, nil
}

func outputDir(input string, c Common) (string, error) {
	return artifacts.ResolveOutDir(artifacts.Stem(input), c.OutDir, c.ProjectRoot, nameOrDefault(c.ArtifactsDir, artifacts.PDFBaseDir))
}

func nameOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// prepare creates the output directory and takes its lock. Dry runs touch
// nothing and return a nil lock.
func prepare(command, dir string, dryRun bool) (*artifacts.Lock, error) {
	if dryRun {
		return nil, nil
	}
	if err := artifacts.Ensure(dir); err != nil {
		return nil, err
	}
	return artifacts.Acquire(command, dir)
}
