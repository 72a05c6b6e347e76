package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/config"
	"artifex/internal/pdftools"
)

// commonFlags are the output flags shared by ocr, rasterize and inspect.
type commonFlags struct {
	outDir      string
	projectRoot string
	manifest    string
	overwrite   bool
	dryRun      bool
}

func (f *commonFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "Output directory (default <project-root>/.pdf-artifacts/<pdf stem>)")
	cmd.Flags().StringVar(&f.projectRoot, "project-root", "", "Project root for the default output directory")
	cmd.Flags().StringVar(&f.manifest, "manifest", "manifest.json", "Manifest file name")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace existing outputs")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print planned outputs without writing")
}

func (f *commonFlags) common(cfg *config.Config, pdfPath string) pdftools.Common {
	root := f.projectRoot
	if root == "" {
		root = cfg.Paths.ProjectRoot
	}
	return pdftools.Common{
		PDFPath:      pdfPath,
		OutDir:       f.outDir,
		ProjectRoot:  root,
		ArtifactsDir: cfg.Paths.PDFArtifactsDir,
		Manifest:     f.manifest,
		Overwrite:    f.overwrite,
		DryRun:       f.dryRun,
	}
}

// copyFlags resolves --copy-pdf/--no-copy-pdf against the configured default.
type copyFlags struct {
	copyPDF   bool
	noCopyPDF bool
}

func (f *copyFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.copyPDF, "copy-pdf", false, "Copy the source PDF into the output directory (default from config)")
	cmd.Flags().BoolVar(&f.noCopyPDF, "no-copy-pdf", false, "Do not copy the source PDF")
	cmd.MarkFlagsMutuallyExclusive("copy-pdf", "no-copy-pdf")
}

func (f *copyFlags) enabled(cmd *cobra.Command, cfg *config.Config) bool {
	switch {
	case cmd.Flags().Changed("no-copy-pdf"):
		return !f.noCopyPDF
	case cmd.Flags().Changed("copy-pdf"):
		return f.copyPDF
	default:
		return cfg.PDF.CopyPDF
	}
}

func intFlagOr(cmd *cobra.Command, name string, value, fallback int) int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func stringFlagOr(cmd *cobra.Command, name string, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

func newService(cmd *cobra.Command, ctx *cli.Context, cfg *config.Config) *pdftools.Service {
	return pdftools.NewService(cmd.OutOrStdout(), ctx.Logger(), cfg.PDF.PdftoppmBinary)
}
