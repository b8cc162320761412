// internal/dockapp/app.go
package dockapp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"peprank/internal/cli"
	"peprank/internal/cmdutil"
	"peprank/internal/dockrun"
	"peprank/internal/logging"
	"peprank/internal/pipeline"
	"peprank/internal/version"
)

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("peprank-dock", "collect docking scores from per-variant engine logs")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseDock(fs, argv)
	if err != nil {
		return cmdutil.HandleParseError(fs, err, stdout, stderr)
	}
	if opts.Version {
		fmt.Fprintf(stdout, "peprank-dock version %s\n", version.Version)
		return cmdutil.ExitOK
	}

	log := logging.New(stderr, opts.Quiet)
	rec := cmdutil.OpenManifest(log, opts.Manifest)
	defer func() { _ = rec.Close() }()

	p := pipeline.DefaultPaths(opts.DataDir)
	if opts.Root != "" {
		p.DockingRoot = opts.Root
	}
	if opts.Out != "" {
		p.DockingCSV = opts.Out
	}

	if opts.ExecVina {
		if !dockrun.Available(ctx, opts.VinaBin) {
			fmt.Fprintf(stderr, "docking engine %q not found\n", opts.VinaBin)
			return cmdutil.ExitFailure
		}
		cfg := opts.Config
		if cfg == "" {
			cfg = filepath.Join(opts.DataDir, "docking_config.txt")
		}
		if _, _, err := dockrun.RunAll(ctx, log, dockrun.Options{
			Root:     p.DockingRoot,
			Receptor: opts.Receptor,
			Config:   cfg,
			Bin:      opts.VinaBin,
			Timeout:  opts.Timeout,
		}); err != nil {
			if ctx.Err() != nil {
				return cmdutil.ExitCancelled
			}
			fmt.Fprintln(stderr, err)
			return cmdutil.ExitFailure
		}
	}

	scores, err := pipeline.CollectDocking(log, rec, p.DockingRoot, p.DockingCSV)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cmdutil.ExitFailure
	}
	if len(scores) == 0 {
		return cmdutil.ExitEmpty
	}
	return cmdutil.ExitOK
}
