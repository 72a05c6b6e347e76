package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/videotools"
)

func newExtractCommand(ctx *cli.Context) *cobra.Command {
	var flags videoFlags
	var lang string
	var noThumbnail, noTranscript, skipExisting bool

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract metadata, transcript and thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			_, err = newService(cmd, ctx, cfg).Extract(cmd.Context(), videotools.ExtractOptions{
				Common:           flags.common(cfg, args[0]),
				Lang:             langOrDefault(cmd, lang, cfg),
				NoTranscript:     noTranscript,
				NoThumbnail:      noThumbnail,
				ThumbnailQuality: cfg.YouTube.ThumbnailQuality,
				SkipExisting:     skipExisting,
			})
			return err
		},
	}

	flags.bind(cmd)
	bindLang(cmd, &lang)
	cmd.Flags().BoolVar(&noThumbnail, "no-thumbnail", false, "Skip thumbnail download")
	cmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "Skip transcript extraction")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Keep existing files and fetch only what is missing")
	cmd.MarkFlagsMutuallyExclusive("overwrite", "skip-existing")
	return cmd
}

func newTranscriptCommand(ctx *cli.Context) *cobra.Command {
	var flags videoFlags
	var lang, format string

	cmd := &cobra.Command{
		Use:   "transcript <url>",
		Short: "Extract only the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			_, err = newService(cmd, ctx, cfg).Transcript(cmd.Context(), videotools.TranscriptOptions{
				Common: flags.common(cfg, args[0]),
				Lang:   langOrDefault(cmd, lang, cfg),
				Format: format,
			})
			return err
		},
	}

	flags.bind(cmd)
	bindLang(cmd, &lang)
	cmd.Flags().StringVarP(&format, "format", "f", videotools.FormatBoth, "Output format: json, txt or both")
	return cmd
}

func newMetadataCommand(ctx *cli.Context) *cobra.Command {
	var flags videoFlags

	cmd := &cobra.Command{
		Use:   "metadata <url>",
		Short: "Extract only the metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			_, err = newService(cmd, ctx, cfg).Metadata(cmd.Context(), videotools.MetadataOptions{
				Common: flags.common(cfg, args[0]),
			})
			return err
		},
	}

	flags.bind(cmd)
	return cmd
}

func newThumbnailCommand(ctx *cli.Context) *cobra.Command {
	var flags videoFlags
	var quality string

	cmd := &cobra.Command{
		Use:   "thumbnail <url>",
		Short: "Download only the thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("quality") {
				quality = cfg.YouTube.ThumbnailQuality
			}
			_, err = newService(cmd, ctx, cfg).Thumbnail(cmd.Context(), videotools.ThumbnailOptions{
				Common:  flags.common(cfg, args[0]),
				Quality: quality,
			})
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&quality, "quality", "q", "best", "Quality: best, high, medium or low")
	return cmd
}
