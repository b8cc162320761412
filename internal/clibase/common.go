// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
)

// Common holds the CLI fields shared by every stage tool.
type Common struct {
	DataDir  string
	Manifest string
	Quiet    bool
	Version  bool
}

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.DataDir, "data", "data", "pipeline data directory [data]")
	fs.StringVar(&c.DataDir, "d", "data", "alias of --data")
	fs.StringVar(&c.Manifest, "manifest", "", "SQLite run-manifest path (empty = no manifest)")
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "alias of --version")
}

// Validate applies the shared CLI invariants.
func Validate(c *Common) error {
	if c.DataDir == "" {
		return errors.New("--data must not be empty")
	}
	return nil
}
