package pdftools

import (
	"context"
	"path/filepath"

	"artifex/internal/artifacts"
	"artifex/internal/pdfdoc"
	"artifex/internal/services"
)

// inspectedPages is how many leading pages report their size.
const inspectedPages = 3

// InspectOptions configures the inspect command.
type InspectOptions struct {
	Common
	NoManifest bool
	// Print renders the payload before the manifest is written. Nil prints
	// nothing.
	Print func(InspectManifest) error
}

// InspectManifest is both the printed payload and the manifest content.
type InspectManifest struct {
	artifacts.Base
	PageCount int               `json:"page_count"`
	PageSizes []pdfdoc.PageSize `json:"page_sizes"`
	Metadata  map[string]string `json:"metadata"`
}

// Inspect reports page count, leading page sizes and document metadata.
func (s *Service) Inspect(ctx context.Context, opts InspectOptions) (InspectManifest, error) {
	const command = "inspect"

	input, err := resolveInput(command, opts.PDFPath)
	if err != nil {
		return InspectManifest{}, err
	}
	manifestPath := ""
	if !opts.NoManifest {
		dir, err := outputDir(input, opts.Common)
		if err != nil {
			return InspectManifest{}, err
		}
		manifestPath = filepath.Join(dir, nameOrDefault(opts.Manifest, "manifest.json"))
		if err := artifacts.EnsureWritable(command, []string{manifestPath}, opts.Overwrite); err != nil {
			return InspectManifest{}, err
		}
	}

	doc, err := pdfdoc.Open(input)
	if err != nil {
		return InspectManifest{}, services.Wrap(services.ErrExternalTool, command, "open pdf", input, err)
	}
	defer doc.Close()

	total, err := doc.NumPage()
	if err != nil {
		return InspectManifest{}, services.Wrap(services.ErrExternalTool, command, "count pages", input, err)
	}
	sizes := make([]pdfdoc.PageSize, 0, min(total, inspectedPages))
	for page := 1; page <= min(total, inspectedPages); page++ {
		size, err := doc.PageSize(page)
		if err != nil {
			return InspectManifest{}, services.Wrap(services.ErrExternalTool, command, "page size", input, err)
		}
		sizes = append(sizes, size)
	}
	meta, err := doc.Metadata()
	if err != nil {
		return InspectManifest{}, services.Wrap(services.ErrExternalTool, command, "metadata", input, err)
	}

	base, err := artifacts.NewBase(ctx, ToolName, command, input, "")
	if err != nil {
		return InspectManifest{}, err
	}
	payload := InspectManifest{Base: base, PageCount: total, PageSizes: sizes, Metadata: meta}

	if opts.Print != nil {
		if err := opts.Print(payload); err != nil {
			return InspectManifest{}, err
		}
	}
	if opts.NoManifest {
		return payload, nil
	}

	lock, err := prepare(command, filepath.Dir(manifestPath), opts.DryRun)
	if err != nil {
		return InspectManifest{}, err
	}
	defer lock.Release()
	if err := s.writer(opts.DryRun).WriteJSON(manifestPath, payload); err != nil {
		return InspectManifest{}, err
	}
	return payload, nil
}
