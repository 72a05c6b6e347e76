package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"artifex/internal/preflight"
	"artifex/internal/services"
)

func newDoctorCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and the artifact directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			results := preflight.RunAll(cfg, ctx.Tool)
			for _, line := range doctorLines(string(ctx.Tool), results, colorize) {
				fmt.Fprintln(out, line)
			}
			if preflight.Failed(results) {
				return services.Wrap(services.ErrDependencyMissing, "doctor", "", "required checks failed", nil)
			}
			return nil
		},
	}
}

func doctorLines(title string, results []preflight.Result, colorize bool) []string {
	lines := renderSectionHeader(title+" doctor", colorize)
	var missing []string
	for _, r := range results {
		kind := statusOK
		switch {
		case r.Passed:
		case r.Optional:
			kind = statusWarn
		default:
			kind = statusError
			missing = append(missing, r.Name)
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Summary", statusError, "Missing: "+strings.Join(missing, ", "), colorize))
	} else {
		lines = append(lines, renderStatusLine("Summary", statusOK, "All required checks passed", colorize))
	}
	return lines
}
