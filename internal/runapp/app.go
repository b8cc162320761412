// internal/runapp/app.go
package runapp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"peprank/internal/cli"
	"peprank/internal/cmdutil"
	"peprank/internal/logging"
	"peprank/internal/pipeline"
	"peprank/internal/version"

	"peprank-core/pepprop"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext drives the whole pipeline: collect docking scores, rank the
// library, select the top-N and refine it, all over one data directory.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("peprank", "score, rank, select and refine a peptide variant library")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseRun(fs, argv)
	if err != nil {
		return cmdutil.HandleParseError(fs, err, stdout, stderr)
	}
	if opts.Version {
		fmt.Fprintf(stdout, "peprank version %s\n", version.Version)
		return cmdutil.ExitOK
	}

	log := logging.New(stderr, opts.Quiet)
	rec := cmdutil.OpenManifest(log, opts.Manifest)
	defer func() { _ = rec.Close() }()

	p := pipeline.DefaultPaths(opts.DataDir)
	if err := pipeline.Run(ctx, log, rec, p, opts.Top, pepprop.Compute); err != nil {
		if errors.Is(err, context.Canceled) {
			return cmdutil.ExitCancelled
		}
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	fmt.Fprintf(stdout, "pipeline complete: artifacts under %s\n", opts.DataDir)
	return cmdutil.ExitOK
}
