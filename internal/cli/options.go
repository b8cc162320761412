// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"peprank/internal/clibase"
	"peprank/internal/version"
)

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `%s: %s

Version: %s

Usage of %s:
`, name, synopsis, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// DockOptions configures the docking-log collection stage.
type DockOptions struct {
	clibase.Common
	Root     string // docking directory root (default <data>/docking)
	Out      string // docking-results CSV (default <data>/docking_results.csv)
	ExecVina bool   // invoke the docking engine before collecting
	VinaBin  string
	Receptor string // receptor file, engine-native format (with -exec-vina)
	Config   string // engine config (default <data>/docking_config.txt)
	Timeout  time.Duration
}

// ParseDock registers and parses the flags for peprank-dock.
func ParseDock(fs *flag.FlagSet, argv []string) (DockOptions, error) {
	var opt DockOptions
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.Root, "root", "", "docking directory root (default <data>/docking)")
	fs.StringVar(&opt.Out, "out", "", "output CSV (default <data>/docking_results.csv)")
	fs.BoolVar(&opt.ExecVina, "exec-vina", false, "run the docking engine per variant before collecting [false]")
	fs.StringVar(&opt.VinaBin, "vina-bin", "vina", "docking engine binary [vina]")
	fs.StringVar(&opt.Receptor, "receptor", "", "prepared receptor file (required with -exec-vina)")
	fs.StringVar(&opt.Config, "config", "", "engine config file (default <data>/docking_config.txt)")
	fs.DurationVar(&opt.Timeout, "timeout", 10*time.Minute, "per-variant engine timeout [10m]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if err := clibase.Validate(&opt.Common); err != nil {
		return opt, err
	}
	if opt.ExecVina && opt.Receptor == "" {
		return opt, errors.New("-exec-vina requires -receptor")
	}
	if opt.Timeout <= 0 {
		return opt, errors.New("-timeout must be positive")
	}
	return opt, nil
}

// ScoreOptions configures the composite-scoring stage.
type ScoreOptions struct {
	clibase.Common
	Library string // library FASTA (default <data>/library.fasta)
	Docking string // docking-results CSV (default <data>/docking_results.csv)
	Out     string // scored CSV (default <data>/scored_variants.csv)
	Output  string // stdout summary format: text | json
}

// ParseScore registers and parses the flags for peprank-score.
func ParseScore(fs *flag.FlagSet, argv []string) (ScoreOptions, error) {
	var opt ScoreOptions
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.Library, "library", "", "library FASTA, '-' for stdin (default <data>/library.fasta)")
	fs.StringVar(&opt.Docking, "docking", "", "docking-results CSV (default <data>/docking_results.csv)")
	fs.StringVar(&opt.Out, "out", "", "output CSV (default <data>/scored_variants.csv)")
	fs.StringVar(&opt.Output, "output", "text", "stdout summary format: text | json [text]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if err := clibase.Validate(&opt.Common); err != nil {
		return opt, err
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// SelectOptions configures the synthesis-selection stage.
type SelectOptions struct {
	clibase.Common
	Scored   string
	Top      int
	OutCSV   string
	OutFASTA string
	Output   string // stdout summary format: text | json
}

// ParseSelect registers and parses the flags for peprank-select.
func ParseSelect(fs *flag.FlagSet, argv []string) (SelectOptions, error) {
	var opt SelectOptions
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.Scored, "scored", "", "scored-variants CSV (default <data>/scored_variants.csv)")
	fs.IntVar(&opt.Top, "top", 10, "number of top variants to select (<=0 selects none) [10]")
	fs.StringVar(&opt.OutCSV, "out-csv", "", "selected CSV (default <data>/selected_variants.csv)")
	fs.StringVar(&opt.OutFASTA, "out-fasta", "", "selected FASTA (default <data>/selected_variants.fasta)")
	fs.StringVar(&opt.Output, "output", "text", "stdout summary format: text | json [text]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if err := clibase.Validate(&opt.Common); err != nil {
		return opt, err
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// RefineOptions configures the refinement stage.
type RefineOptions struct {
	clibase.Common
	Selected string
	Out      string
}

// ParseRefine registers and parses the flags for peprank-refine.
func ParseRefine(fs *flag.FlagSet, argv []string) (RefineOptions, error) {
	var opt RefineOptions
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.StringVar(&opt.Selected, "selected", "", "selected-variants CSV (default <data>/selected_variants.csv)")
	fs.StringVar(&opt.Out, "out", "", "refined CSV (default <data>/refined_variants.csv)")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	return opt, clibase.Validate(&opt.Common)
}

// RunOptions configures the all-stages pipeline tool.
type RunOptions struct {
	clibase.Common
	Top int
}

// ParseRun registers and parses the flags for peprank.
func ParseRun(fs *flag.FlagSet, argv []string) (RunOptions, error) {
	var opt RunOptions
	var help bool
	clibase.Register(fs, &opt.Common)
	fs.IntVar(&opt.Top, "top", 10, "number of top variants to select (<=0 selects none) [10]")
	fs.BoolVar(&help, "h", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	return opt, clibase.Validate(&opt.Common)
}
