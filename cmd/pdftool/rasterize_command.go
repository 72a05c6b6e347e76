package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/pdftools"
)

func newRasterizeCommand(ctx *cli.Context) *cobra.Command {
	var common commonFlags
	var copying copyFlags
	var pagesExpr, format, imagesDir, imagesManifest string
	var dpi, quality int

	cmd := &cobra.Command{
		Use:   "rasterize <pdf_path>",
		Short: "Render pages to images with pdftoppm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			svc := newService(cmd, ctx, cfg)
			_, err = svc.Rasterize(cmd.Context(), pdftools.RasterizeOptions{
				Common:         common.common(cfg, args[0]),
				CopyPDF:        copying.enabled(cmd, cfg),
				Pages:          pagesExpr,
				DPI:            intFlagOr(cmd, "dpi", dpi, cfg.PDF.DPI),
				Format:         stringFlagOr(cmd, "format", format, cfg.PDF.Format),
				Quality:        intFlagOr(cmd, "quality", quality, cfg.PDF.Quality),
				ImagesDir:      imagesDir,
				ImagesManifest: imagesManifest,
			})
			return err
		},
	}

	common.bind(cmd)
	copying.bind(cmd)
	cmd.Flags().StringVar(&pagesExpr, "pages", "", "Page ranges such as 1-3,5 (default all pages)")
	cmd.Flags().IntVar(&dpi, "dpi", 200, "Rendering DPI")
	cmd.Flags().StringVar(&format, "format", "jpg", "Image format: jpg, png or tif")
	cmd.Flags().IntVar(&quality, "quality", 85, "JPEG quality (1-100)")
	cmd.Flags().StringVar(&imagesDir, "images-dir", "images", "Image sub-directory name")
	cmd.Flags().StringVar(&imagesManifest, "images-manifest", "images.json", "Image list file name")
	return cmd
}
