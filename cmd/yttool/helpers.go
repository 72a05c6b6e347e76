package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/config"
	"artifex/internal/videotools"
)

// videoFlags are the output flags every command accepts.
type videoFlags struct {
	outDir      string
	projectRoot string
	overwrite   bool
}

func (f *videoFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "Output directory (default <project-root>/.youtube-artifacts/<video id>)")
	cmd.Flags().StringVar(&f.projectRoot, "project-root", "", "Project root for the default output directory")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace existing outputs")
}

func (f *videoFlags) common(cfg *config.Config, url string) videotools.Common {
	root := f.projectRoot
	if root == "" {
		root = cfg.Paths.ProjectRoot
	}
	return videotools.Common{
		URL:          url,
		OutDir:       f.outDir,
		ProjectRoot:  root,
		ArtifactsDir: cfg.Paths.YouTubeArtifactsDir,
		Overwrite:    f.overwrite,
	}
}

// bindLang registers --lang/-l; the configured language applies when unset.
func bindLang(cmd *cobra.Command, lang *string) {
	cmd.Flags().StringVarP(lang, "lang", "l", "en", "Preferred transcript language")
}

func langOrDefault(cmd *cobra.Command, lang string, cfg *config.Config) string {
	if cmd.Flags().Changed("lang") {
		return lang
	}
	return cfg.YouTube.Language
}

func newService(cmd *cobra.Command, ctx *cli.Context, cfg *config.Config) *videotools.Service {
	return videotools.NewService(cmd.OutOrStdout(), ctx.Logger(), cfg)
}
