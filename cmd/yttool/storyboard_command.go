package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/storyboard"
	"artifex/internal/videotools"
)

func newStoryboardCommand(ctx *cli.Context) *cobra.Command {
	var flags videoFlags
	var lang, level string
	var withTranscript bool
	var interval float64

	cmd := &cobra.Command{
		Use:   "storyboard <url>",
		Short: "Extract timestamped frames from the storyboard sprites",
		Long: "Downloads the preview sprites YouTube shows on the scrubber bar and splits\n" +
			"them into timestamped JPEG frames, optionally aligning transcript segments\n" +
			"with the nearest frame.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			manifest, err := newService(cmd, ctx, cfg).Storyboard(cmd.Context(), videotools.StoryboardOptions{
				Common:         flags.common(cfg, args[0]),
				WithTranscript: withTranscript,
				Lang:           langOrDefault(cmd, lang, cfg),
				Interval:       interval,
				Level:          level,
			})
			if err != nil {
				return err
			}
			if cli.IsTerminal(cmd.OutOrStdout()) {
				fmt.Fprintln(cmd.OutOrStdout(), frameTable(manifest.Frames))
			}
			return nil
		},
	}

	flags.bind(cmd)
	bindLang(cmd, &lang)
	cmd.Flags().BoolVarP(&withTranscript, "with-transcript", "t", false, "Also fetch the transcript and align it with frames")
	cmd.Flags().Float64Var(&interval, "interval", 0, "Keep roughly one frame every N seconds")
	cmd.Flags().StringVar(&level, "level", "", "Storyboard level sb0 (largest) to sb3 (default best available)")
	return cmd
}

func frameTable(frames []storyboard.Frame) string {
	rows := make([][]string, 0, len(frames))
	for _, frame := range frames {
		rows = append(rows, []string{strconv.Itoa(frame.Index), frame.TimestampStr, filepath.Base(frame.Path)})
	}
	return cli.RenderTable([]string{"Index", "Time", "File"}, rows, []cli.Align{cli.AlignRight})
}
