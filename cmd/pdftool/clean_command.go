package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/pdftools"
)

func newCleanCommand(ctx *cli.Context) *cobra.Command {
	var outDir, projectRoot string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean <pdf_path>",
		Short: "Remove the artifact directory of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			root := projectRoot
			if root == "" {
				root = cfg.Paths.ProjectRoot
			}
			svc := newService(cmd, ctx, cfg)
			_, err = svc.Clean(cmd.Context(), pdftools.CleanOptions{
				PDFPath:      args[0],
				OutDir:       outDir,
				ProjectRoot:  root,
				ArtifactsDir: cfg.Paths.PDFArtifactsDir,
				DryRun:       dryRun,
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Artifact directory to remove")
	cmd.Flags().StringVar(&projectRoot, "project-root", "", "Project root for the default artifact directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be removed")
	return cmd
}
