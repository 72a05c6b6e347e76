package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/pdftools"
)

func newOCRCommand(ctx *cli.Context) *cobra.Command {
	var common commonFlags
	var copying copyFlags
	var pagesExpr, pagesJSON, pagesText, engine string
	var languages []string
	var dpi int

	cmd := &cobra.Command{
		Use:   "ocr <pdf_path>",
		Short: "Extract per-page text using the text layer and OCR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			langs := cfg.PDF.OCRLanguages
			if cmd.Flags().Changed("lang") {
				langs = languages
			}
			svc := newService(cmd, ctx, cfg)
			_, err = svc.OCR(cmd.Context(), pdftools.OCROptions{
				Common:    common.common(cfg, args[0]),
				CopyPDF:   copying.enabled(cmd, cfg),
				Pages:     pagesExpr,
				PagesJSON: pagesJSON,
				PagesText: pagesText,
				Engine:    stringFlagOr(cmd, "engine", engine, cfg.PDF.OCREngine),
				Languages: langs,
				DPI:       intFlagOr(cmd, "dpi", dpi, cfg.PDF.OCRDPI),
			})
			return err
		},
	}

	common.bind(cmd)
	copying.bind(cmd)
	cmd.Flags().StringVar(&pagesExpr, "pages", "", "Page ranges such as 1-3,5 (default all pages)")
	cmd.Flags().StringVar(&pagesJSON, "pages-json", "ocr-pages.json", "Per-page JSON file name")
	cmd.Flags().StringVar(&pagesText, "pages-text", "ocr-pages.txt", "Per-page text file name")
	cmd.Flags().StringVar(&engine, "engine", pdftools.EngineAuto, "OCR engine: auto, text or tesseract")
	cmd.Flags().StringSliceVar(&languages, "lang", nil, "OCR languages (BCP 47 or Tesseract codes)")
	cmd.Flags().IntVar(&dpi, "dpi", 300, "Rendering DPI for OCR")
	return cmd
}
