// Package pdftoppm renders single PDF pages to images with poppler's pdftoppm.
package pdftoppm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"artifex/internal/deps"
	"artifex/internal/services"
)

// Request describes one page render.
type Request struct {
	Input   string
	Page    int
	DPI     int
	Format  string
	Quality int
	// OutPath is the final image location; its extension is kept even when
	// pdftoppm picks a different one (".jpeg" vs ".jpg").
	OutPath string
}

// Runner invokes the pdftoppm binary.
type Runner struct {
	Binary string
}

// New returns a runner for binary, defaulting to "pdftoppm" on PATH.
func New(binary string) Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "pdftoppm"
	}
	return Runner{Binary: binary}
}

// Available reports a missing-dependency error when the binary cannot be found.
func (r Runner) Available() error {
	_, err := deps.Require("pdftoppm", r.Binary)
	return err
}

// NormalizeFormat maps a user format to the file extension pdftoppm produces
// and the flags selecting it.
func NormalizeFormat(format string, quality int) (string, []string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpg", "jpeg":
		flags := []string{"-jpeg"}
		if quality > 0 {
			flags = append(flags, "-jpegopt", "quality="+strconv.Itoa(quality))
		}
		return "jpg", flags, nil
	case "png":
		return "png", []string{"-png"}, nil
	case "tif", "tiff":
		return "tif", []string{"-tiff"}, nil
	default:
		return "", nil, services.Wrap(services.ErrValidation, "rasterize", "format", fmt.Sprintf("unsupported image format %q (use jpg, png or tiff)", format), nil)
	}
}

// Render produces req.OutPath and returns it.
func (r Runner) Render(ctx context.Context, req Request) (string, error) {
	if req.Page < 1 {
		return "", services.Wrap(services.ErrValidation, "pdftoppm", "render", fmt.Sprintf("invalid page %d", req.Page), nil)
	}
	if req.DPI <= 0 {
		return "", services.Wrap(services.ErrValidation, "pdftoppm", "render", fmt.Sprintf("invalid dpi %d", req.DPI), nil)
	}
	ext, formatFlags, err := NormalizeFormat(req.Format, req.Quality)
	if err != nil {
		return "", err
	}
	binary, err := deps.Require("pdftoppm", r.Binary)
	if err != nil {
		return "", err
	}

	prefix := strings.TrimSuffix(req.OutPath, filepath.Ext(req.OutPath))
	page := strconv.Itoa(req.Page)
	args := []string{"-f", page, "-l", page, "-r", strconv.Itoa(req.DPI), "-singlefile"}
	args = append(args, formatFlags...)
	args = append(args, req.Input, prefix)

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", services.Wrap(services.ErrExternalTool, "pdftoppm", fmt.Sprintf("render page %d", req.Page), strings.TrimSpace(string(output)), err)
	}

	produced := prefix + "." + ext
	if produced != req.OutPath {
		if err := os.Rename(produced, req.OutPath); err != nil {
			return "", fmt.Errorf("pdftoppm: rename output: %w", err)
		}
	}
	if _, err := os.Stat(req.OutPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrExternalTool, "pdftoppm", fmt.Sprintf("render page %d", req.Page), "no image produced", nil)
		}
		return "", err
	}
	return req.OutPath, nil
}

// RenderPNG renders page into a temporary file and returns the PNG bytes.
// Used to feed OCR without leaving intermediate files behind.
func (r Runner) RenderPNG(ctx context.Context, input string, page, dpi int) ([]byte, error) {
	dir, err := os.MkdirTemp("", "artifex-page-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out, err := r.Render(ctx, Request{
		Input:   input,
		Page:    page,
		DPI:     dpi,
		Format:  "png",
		OutPath: filepath.Join(dir, fmt.Sprintf("page-%04d.png", page)),
	})
	if err != nil {
		return nil, err
	}
	return os.ReadFile(out)
}
