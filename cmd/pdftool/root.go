package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/preflight"
)

func newRootCommand() *cobra.Command {
	rootCmd, ctx := cli.NewRoot(preflight.ToolPDF, "Convert PDFs into OCR text and page images")

	rootCmd.AddCommand(newOCRCommand(ctx))
	rootCmd.AddCommand(newRasterizeCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))

	return rootCmd
}
