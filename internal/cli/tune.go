package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/io"
	"github.com/matzehuels/meander/pkg/observability"
	"github.com/matzehuels/meander/pkg/tuning"
)

// tuneOpts holds the command-line flags for the tune command.
type tuneOpts struct {
	backend  backendFlags
	output   string   // results JSON path
	nets     []string // restrict to these nets
	refresh  bool     // bypass cached results
	artifact string   // base path for rendered artifacts
	formats  string   // comma-separated artifact formats
	render   tuning.RenderOptions
}

// tuneCommand creates the tune command.
func (c *CLI) tuneCommand() *cobra.Command {
	var opts tuneOpts

	cmd := &cobra.Command{
		Use:   "tune [job file]",
		Short: "Tune every net of a job file",
		Long: `Tune reads a TOML (or JSON) job file, meanders every net along its path and
trims the meanders to each net's target length. Results are summarized in a
table and can be saved as JSON for the render command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTune(cmd.Context(), args[0], &opts)
		},
	}

	opts.backend.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write results as JSON to this file")
	cmd.Flags().StringSliceVarP(&opts.nets, "net", "n", nil, "only tune these nets")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVarP(&opts.artifact, "render", "r", "", "render each net to <base>_<net>.<format>")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "render format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.render.ShowBaseline, "baseline", false, "draw the untuned path")
	cmd.Flags().BoolVar(&opts.render.ShowObstacles, "obstacles", false, "draw obstacles and the board outline")
	cmd.Flags().BoolVar(&opts.render.UnitColors, "colors", false, "color meanders by unit type")
	cmd.Flags().Float64Var(&opts.render.Scale, "scale", 1, "PNG scale factor")

	return cmd
}

func (c *CLI) runTune(ctx context.Context, path string, opts *tuneOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	reqs, err := loadRequests(path, opts.nets)
	if err != nil {
		return err
	}
	for i := range reqs {
		reqs[i].Refresh = opts.refresh
	}
	logger.Debugf("Loaded %d nets from %s", len(reqs), path)

	runner, err := c.newRunner(ctx, opts.backend, "")
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tuning %d nets...", len(reqs)))
	restore := trackTuning(spinner, len(reqs))
	spinner.Start()
	results, err := runner.TuneAll(ctx, reqs)
	restore()
	if err != nil {
		spinner.StopWithError("Tuning failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Tuned %d nets", len(results)))

	fmt.Println(resultsTable(results))
	printStats(summarize(results))
	for _, r := range results {
		if r.Status == tuning.StatusTooShort || r.Status == tuning.StatusTooLong {
			printWarning("%s is %s by %.0f", r.Request.Net, r.Status, math.Abs(r.Delta()))
		}
	}

	if opts.output != "" {
		if err := io.ExportJSON(results, opts.output); err != nil {
			return err
		}
		printSuccess("Saved results")
		printFile(opts.output)
	}

	if opts.artifact != "" {
		if err := c.writeArtifacts(ctx, runner, results, opts.artifact, parseFormats(opts.formats), opts.render); err != nil {
			return err
		}
	}

	if opts.output != "" && opts.artifact == "" {
		printNewline()
		printNextStep("Render a net", fmt.Sprintf("%s render %s --net %s", appName, opts.output, results[0].Request.Net))
	}
	return nil
}

// summarize totals units and meanders and reports whether every result
// came from the cache.
func summarize(results []*tuning.Result) (units, meanders int, cached bool) {
	cached = len(results) > 0
	for _, r := range results {
		units += len(r.Units)
		meanders += r.Stats.Meanders
		cached = cached && r.CacheInfo.Hit
	}
	return units, meanders, cached
}

// loadRequests imports a job file and keeps only the named nets, if any.
func loadRequests(path string, nets []string) ([]tuning.Request, error) {
	reqs, err := io.ImportFile(path)
	if err != nil {
		return nil, err
	}
	if len(nets) == 0 {
		return reqs, nil
	}

	var kept []tuning.Request
	for _, r := range reqs {
		if slices.Contains(nets, r.Net) {
			kept = append(kept, r)
		}
	}
	if len(kept) != len(nets) {
		return nil, fmt.Errorf("%s does not define all of the nets %v", path, nets)
	}
	return kept, nil
}

// writeArtifacts renders every result in every format next to base.
func (c *CLI) writeArtifacts(ctx context.Context, runner *tuning.Runner, results []*tuning.Result, base string, formats []string, opts tuning.RenderOptions) error {
	for _, f := range formats {
		o := opts
		o.Format = f
		o.SetDefaults()
		if err := o.Validate(); err != nil {
			return err
		}
	}

	var written int
	for _, res := range results {
		for _, f := range formats {
			o := opts
			o.Format = f
			o.SetDefaults()

			data, cached, err := runner.Render(ctx, res, o)
			if err != nil {
				return fmt.Errorf("render %s as %s: %w", res.Request.Net, f, err)
			}
			out := outputPath(base, res.Request.Net, f)
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			loggerFromContext(ctx).Debug("wrote artifact", "path", out, "bytes", len(data), "cached", cached)
			printFile(out)
			written++
		}
	}
	printSuccess("Rendered %d artifacts", written)
	return nil
}

// tuneProgress updates a spinner as nets finish.
type tuneProgress struct {
	observability.TuningHooks
	spinner *Spinner
	total   int
	done    atomic.Int32
}

func (p *tuneProgress) OnTuneComplete(ctx context.Context, net string, units int, d time.Duration, err error) {
	p.TuningHooks.OnTuneComplete(ctx, net, units, d, err)
	n := p.done.Add(1)
	p.spinner.SetMessage("Tuning %d nets... %d done", p.total, n)
}

// trackTuning routes tuning hooks to the spinner until the returned
// function is called.
func trackTuning(s *Spinner, total int) func() {
	prev := observability.Tuning()
	observability.SetTuningHooks(&tuneProgress{TuningHooks: prev, spinner: s, total: total})
	return func() { observability.SetTuningHooks(prev) }
}
