package main

import (
	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/preflight"
)

func newRootCommand() *cobra.Command {
	rootCmd, ctx := cli.NewRoot(preflight.ToolYouTube, "Extract transcripts, metadata, thumbnails and storyboards from YouTube videos")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newTranscriptCommand(ctx))
	rootCmd.AddCommand(newMetadataCommand(ctx))
	rootCmd.AddCommand(newThumbnailCommand(ctx))
	rootCmd.AddCommand(newStoryboardCommand(ctx))

	return rootCmd
}
