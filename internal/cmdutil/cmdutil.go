// internal/cmdutil/cmdutil.go
package cmdutil

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"peprank/internal/manifest"
)

// Exit codes shared by all stage tools.
const (
	ExitOK        = 0
	ExitEmpty     = 1 // stage ran but produced no variants
	ExitUsage     = 2
	ExitFailure   = 3
	ExitCancelled = 130
)

// HandleParseError maps a flag-parsing error to the right usage output
// and exit code. Help goes to stdout with success; bad flags go to stderr
// with the usage appended.
func HandleParseError(fs *flag.FlagSet, err error, stdout, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		fs.SetOutput(stdout)
		fs.Usage()
		return ExitOK
	}
	fmt.Fprintln(stderr, err)
	fs.SetOutput(stderr)
	fs.Usage()
	return ExitUsage
}

// OpenManifest opens the run ledger when a path is configured. Manifest
// problems are warnings, never tool failures; a nil recorder is a no-op.
func OpenManifest(log *slog.Logger, path string) *manifest.Recorder {
	if path == "" {
		return nil
	}
	rec, err := manifest.Open(path)
	if err != nil {
		log.Warn("run manifest disabled", "path", path, "err", err)
		return nil
	}
	return rec
}
