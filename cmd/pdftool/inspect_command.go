package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"artifex/internal/cli"
	"artifex/internal/pdftools"
	"artifex/internal/services"
)

func newInspectCommand(ctx *cli.Context) *cobra.Command {
	var common commonFlags
	var noManifest bool
	var output string

	cmd := &cobra.Command{
		Use:   "inspect <pdf_path>",
		Short: "Print page count, page sizes and document metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.EnsureConfig()
			if err != nil {
				return err
			}
			var printFn func(pdftools.InspectManifest) error
			switch output {
			case "json":
				printFn = func(m pdftools.InspectManifest) error { return cli.WriteJSON(cmd, m) }
			case "table":
				printFn = func(m pdftools.InspectManifest) error {
					fmt.Fprintln(cmd.OutOrStdout(), inspectTable(m))
					return nil
				}
			default:
				return services.Wrap(services.ErrValidation, "inspect", "output", fmt.Sprintf("unknown output %q (want json or table)", output), nil)
			}
			svc := newService(cmd, ctx, cfg)
			_, err = svc.Inspect(cmd.Context(), pdftools.InspectOptions{
				Common:     common.common(cfg, args[0]),
				NoManifest: noManifest,
				Print:      printFn,
			})
			return err
		},
	}

	common.bind(cmd)
	cmd.Flags().BoolVar(&noManifest, "no-manifest", false, "Print only; do not write the manifest")
	cmd.Flags().StringVar(&output, "output", "json", "Output format: json or table")
	return cmd
}

func inspectTable(m pdftools.InspectManifest) string {
	rows := [][]string{
		{"file", m.InputPath},
		{"pages", strconv.Itoa(m.PageCount)},
	}
	for _, size := range m.PageSizes {
		rows = append(rows, []string{fmt.Sprintf("page %d", size.Page), fmt.Sprintf("%g x %g", size.Width, size.Height)})
	}
	keys := make([]string, 0, len(m.Metadata))
	for key := range m.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, []string{key, m.Metadata[key]})
	}
	return cli.RenderTable([]string{"Field", "Value"}, rows, nil)
}
