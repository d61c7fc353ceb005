package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tableplan/pkg/render"
	"github.com/matzehuels/tableplan/pkg/store"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string   // output file, or base path when several formats are given
	formats  []string // svg, png, dot, json
	title    string   // drawn above the plan
	detailed bool     // add type, seats and reservation to labels
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var formatsStr string
	var opts exportOpts

	cmd := &cobra.Command{
		Use:               "export [venue]",
		Short:             "Export a layout as SVG, PNG, DOT or JSON",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeVenues,
		RunE: func(cmd *cobra.Command, args []string) error {
			venue, err := c.venueArg(args)
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr)
			return c.runExport(cmd.Context(), venue, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: venue name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "title drawn above the plan")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show type, seats and reservation on each table")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, venue string, opts exportOpts) error {
	formats := make([]render.Format, 0, len(opts.formats))
	for _, f := range opts.formats {
		pf, err := render.ParseFormat(f)
		if err != nil {
			return err
		}
		formats = append(formats, pf)
	}

	tables, err := c.loadLayout(ctx, venue)
	if err != nil {
		return err
	}
	if tables.Len() == 0 {
		printWarning("%s has no tables; exporting an empty plan", venue)
	}

	ropts := render.Options{Title: opts.title, Detailed: opts.detailed}
	for _, f := range formats {
		var buf bytes.Buffer
		if err := render.Export(ctx, &buf, f, store.DefaultLayoutName, tables, ropts); err != nil {
			return err
		}
		path := outputPath(opts.output, venue, f, len(formats) > 1)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printSuccess("Exported %s", venue)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(render.FormatSVG)}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPath derives the file name for one format. With several formats
// the output flag is a base path and each file gets its own extension.
func outputPath(output, venue string, f render.Format, multi bool) string {
	ext := "." + string(f)
	switch {
	case output == "":
		return venue + ext
	case multi:
		return strings.TrimSuffix(output, ext) + ext
	}
	return output
}
