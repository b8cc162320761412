// internal/selectapp/app.go
package selectapp

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
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("peprank-select", "select the top-N ranked variants for synthesis")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseSelect(fs, argv)
	if err != nil {
		return cmdutil.HandleParseError(fs, err, stdout, stderr)
	}
	if opts.Version {
		fmt.Fprintf(stdout, "peprank-select version %s\n", version.Version)
		return cmdutil.ExitOK
	}
	if err := ctx.Err(); err != nil {
		return cmdutil.ExitCancelled
	}

	log := logging.New(stderr, opts.Quiet)
	rec := cmdutil.OpenManifest(log, opts.Manifest)
	defer func() { _ = rec.Close() }()

	p := pipeline.DefaultPaths(opts.DataDir)
	if opts.Scored != "" {
		p.ScoredCSV = opts.Scored
	}
	if opts.OutCSV != "" {
		p.SelectedCSV = opts.OutCSV
	}
	if opts.OutFASTA != "" {
		p.SelectedFASTA = opts.OutFASTA
	}

	selected, err := pipeline.SelectVariants(log, rec, p.ScoredCSV, opts.Top, p.SelectedCSV, p.SelectedFASTA)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if len(selected) == 0 {
		return cmdutil.ExitEmpty
	}

	outw := bufio.NewWriter(stdout)
	write := output.WriteSummaryFunc(opts.Output)
	if err := write(outw, selected); err != nil && !writers.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	return cmdutil.ExitOK
}
