// internal/scoreapp/app.go
package scoreapp

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"peprank/internal/cli"
	"peprank/internal/cmdutil"
	"peprank/internal/logging"
	"peprank/internal/output"
	"peprank/internal/pipeline"
	"peprank/internal/version"
	"peprank/internal/writers"

	"peprank-core/pepprop"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("peprank-score", "composite scoring and ranking of peptide variants")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseScore(fs, argv)
	if err != nil {
		return cmdutil.HandleParseError(fs, err, stdout, stderr)
	}
	if opts.Version {
		fmt.Fprintf(stdout, "peprank-score version %s\n", version.Version)
		return cmdutil.ExitOK
	}
	if err := ctx.Err(); err != nil {
		return cmdutil.ExitCancelled
	}

	log := logging.New(stderr, opts.Quiet)
	rec := cmdutil.OpenManifest(log, opts.Manifest)
	defer func() { _ = rec.Close() }()

	p := pipeline.DefaultPaths(opts.DataDir)
	if opts.Library != "" {
		p.Library = opts.Library
	}
	if opts.Docking != "" {
		p.DockingCSV = opts.Docking
	}
	if opts.Out != "" {
		p.ScoredCSV = opts.Out
	}

	ranked, err := pipeline.ScoreVariants(log, rec, p.Library, p.DockingCSV, p.ScoredCSV, pepprop.Compute)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if len(ranked) == 0 {
		return cmdutil.ExitEmpty
	}

	outw := bufio.NewWriter(stdout)
	write := output.WriteSummaryFunc(opts.Output)
	if err := write(outw, ranked); err != nil && !writers.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	return cmdutil.ExitOK
}
