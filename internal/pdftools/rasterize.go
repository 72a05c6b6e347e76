package pdftools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/pages"
	"artifex/internal/pdfdoc"
	"artifex/internal/pdftoppm"
	"artifex/internal/services"
)

// RasterizeOptions configures the rasterize command.
type RasterizeOptions struct {
	Common
	CopyPDF        bool
	Pages          string
	DPI            int
	Format         string
	Quality        int
	ImagesDir      string
	ImagesManifest string
}

// RasterizeManifest records a rasterize run.
type RasterizeManifest struct {
	artifacts.Base
	Pages          []int  `json:"pages"`
	DPI            int    `json:"dpi"`
	Format         string `json:"format"`
	Quality        int    `json:"quality"`
	ImagesDir      string `json:"images_dir"`
	ImagesManifest string `json:"images_manifest"`
}

// ImageName returns the file name of a rendered page.
func ImageName(page int, format string) string {
	return fmt.Sprintf("page-%04d.%s", page, format)
}

// Rasterize renders the selected pages into the images directory and writes
// images.json plus the manifest.
func (s *Service) Rasterize(ctx context.Context, opts RasterizeOptions) (RasterizeManifest, error) {
	const command = "rasterize"
	logger := s.logger(ctx)

	input, err := resolveInput(command, opts.PDFPath)
	if err != nil {
		return RasterizeManifest{}, err
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if _, _, err := pdftoppm.NormalizeFormat(format, opts.Quality); err != nil {
		return RasterizeManifest{}, err
	}
	if opts.DPI <= 0 {
		return RasterizeManifest{}, services.Wrap(services.ErrValidation, command, "dpi", fmt.Sprintf("dpi must be positive, got %d", opts.DPI), nil)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return RasterizeManifest{}, services.Wrap(services.ErrValidation, command, "quality", fmt.Sprintf("quality must be between 1 and 100, got %d", opts.Quality), nil)
	}
	selection, err := pages.ParseRanges(opts.Pages)
	if err != nil {
		return RasterizeManifest{}, err
	}
	dir, err := outputDir(input, opts.Common)
	if err != nil {
		return RasterizeManifest{}, err
	}

	doc, err := pdfdoc.Open(input)
	if err != nil {
		return RasterizeManifest{}, services.Wrap(services.ErrExternalTool, command, "open pdf", input, err)
	}
	total, err := doc.NumPage()
	_ = doc.Close()
	if err != nil {
		return RasterizeManifest{}, services.Wrap(services.ErrExternalTool, command, "count pages", input, err)
	}
	selected := pages.Select(selection, total)

	imagesDir := filepath.Join(dir, nameOrDefault(opts.ImagesDir, "images"))
	imagesManifest := filepath.Join(dir, nameOrDefault(opts.ImagesManifest, "images.json"))
	manifestPath := filepath.Join(dir, nameOrDefault(opts.Manifest, "manifest.json"))

	imagePaths := make([]string, 0, len(selected))
	for _, page := range selected {
		imagePaths = append(imagePaths, filepath.Join(imagesDir, ImageName(page, format)))
	}
	planned := append([]string{imagesManifest, manifestPath}, imagePaths...)
	var copyPlan artifacts.CopyPlan
	if opts.CopyPDF {
		if copyPlan, err = artifacts.PlanCopy(input, dir); err != nil {
			return RasterizeManifest{}, err
		}
		planned = append(planned, copyPlan.Outputs()...)
	}
	if err := artifacts.EnsureWritable(command, planned, opts.Overwrite); err != nil {
		return RasterizeManifest{}, err
	}
	if !opts.DryRun {
		if err := s.Renderer.Available(); err != nil {
			return RasterizeManifest{}, err
		}
	}

	lock, err := prepare(command, dir, opts.DryRun)
	if err != nil {
		return RasterizeManifest{}, err
	}
	defer lock.Release()

	w := s.writer(opts.DryRun)
	copied := ""
	if opts.CopyPDF {
		if err := copyPlan.Execute(w); err != nil {
			return RasterizeManifest{}, err
		}
		copied = copyPlan.Dest
	}

	if !opts.DryRun {
		if err := artifacts.Ensure(imagesDir); err != nil {
			return RasterizeManifest{}, err
		}
	}
	for i, page := range selected {
		if opts.DryRun {
			w.Planned(imagePaths[i])
			continue
		}
		if _, err := s.Renderer.Render(ctx, pdftoppm.Request{
			Input:   input,
			Page:    page,
			DPI:     opts.DPI,
			Format:  format,
			Quality: opts.Quality,
			OutPath: imagePaths[i],
		}); err != nil {
			return RasterizeManifest{}, err
		}
		logger.Debug("page rendered", logging.Int("page", page), logging.String("path", imagePaths[i]))
	}

	if err := w.WriteJSON(imagesManifest, imagePaths); err != nil {
		return RasterizeManifest{}, err
	}
	if !opts.DryRun {
		s.printf("Rasterized %d pages to %s\n", len(imagePaths), imagesDir)
	}

	base, err := artifacts.NewBase(ctx, ToolName, command, input, copied)
	if err != nil {
		return RasterizeManifest{}, err
	}
	manifest := RasterizeManifest{
		Base:           base,
		Pages:          append(make([]int, 0, len(selected)), selected...),
		DPI:            opts.DPI,
		Format:         format,
		Quality:        opts.Quality,
		ImagesDir:      imagesDir,
		ImagesManifest: imagesManifest,
	}
	if err := w.WriteJSON(manifestPath, manifest); err != nil {
		return RasterizeManifest{}, err
	}
	logger.Info("rasterize finished", logging.Int("pages", len(selected)), logging.String("format", format), logging.Int("dpi", opts.DPI))
	return manifest, nil
}
