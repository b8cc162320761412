// internal/refineapp/app.go
package refineapp

import (
	"context"
	"fmt"
	"io"

	"peprank/internal/cli"
	"peprank/internal/cmdutil"
	"peprank/internal/logging"
	"peprank/internal/pipeline"
	"peprank/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("peprank-refine", "apply the deterministic refinement adjustment to selected variants")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseRefine(fs, argv)
	if err != nil {
		return cmdutil.HandleParseError(fs, err, stdout, stderr)
	}
	if opts.Version {
		fmt.Fprintf(stdout, "peprank-refine version %s\n", version.Version)
		return cmdutil.ExitOK
	}
	if err := ctx.Err(); err != nil {
		return cmdutil.ExitCancelled
	}

	log := logging.New(stderr, opts.Quiet)
	rec := cmdutil.OpenManifest(log, opts.Manifest)
	defer func() { _ = rec.Close() }()

	p := pipeline.DefaultPaths(opts.DataDir)
	if opts.Selected != "" {
		p.SelectedCSV = opts.Selected
	}
	if opts.Out != "" {
		p.RefinedCSV = opts.Out
	}

	n, err := pipeline.RefineVariants(log, rec, p.SelectedCSV, p.RefinedCSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if n == 0 {
		return cmdutil.ExitEmpty
	}
	return cmdutil.ExitOK
}
