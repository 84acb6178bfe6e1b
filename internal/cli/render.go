package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/io"
	"github.com/matzehuels/meander/pkg/tuning"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // base path for artifacts
	nets    []string // nets to render; all when empty
	formats string   // comma-separated output formats
	render  tuning.RenderOptions
}

// renderCommand creates the render command for saved results.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [results.json]",
		Short: "Render tuned nets to SVG, PDF, PNG or JSON",
		Long: `Render draws nets from a results file written by "tune --output".
Each net is written to <output>_<net>.<format>; the output base defaults to
the results file name without its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path")
	cmd.Flags().StringSliceVarP(&opts.nets, "net", "n", nil, "only render these nets")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.render.ShowBaseline, "baseline", false, "draw the untuned path")
	cmd.Flags().BoolVar(&opts.render.ShowObstacles, "obstacles", false, "draw obstacles and the board outline")
	cmd.Flags().BoolVar(&opts.render.UnitColors, "colors", false, "color meanders by unit type")
	cmd.Flags().Float64Var(&opts.render.Scale, "scale", 1, "PNG scale factor")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	results, err := io.ReadResults(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	selected := results
	if len(opts.nets) > 0 {
		selected = nil
		for _, r := range results {
			if slices.Contains(opts.nets, r.Request.Net) {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("%s has none of the nets %v", input, opts.nets)
		}
	}

	base := opts.output
	if base == "" {
		base = trimExt(input)
	}

	var written int
	for _, res := range selected {
		for _, format := range parseFormats(opts.formats) {
			o := opts.render
			o.Format = format
			o.SetDefaults()
			if err := o.Validate(); err != nil {
				return err
			}

			data, err := tuning.RenderResult(res, o)
			if err != nil {
				return fmt.Errorf("render %s as %s: %w", res.Request.Net, format, err)
			}
			out := outputPath(base, res.Request.Net, format)
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printFile(out)
			written++
		}
	}
	printSuccess("Rendered %d artifacts", written)
	return nil
}
