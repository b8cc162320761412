// internal/dockrun/dockrun.go
package dockrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"peprank-core/vina"
)

// Options configures one batch of docking-engine invocations. The engine,
// the receptor and the ligand files are opaque collaborators: this package
// only shells out, enforces a per-variant timeout, and leaves the log
// artifacts for the collector to parse. There is no retry or supervision.
type Options struct {
	Root     string // per-variant directory tree, one subdirectory per variant
	Receptor string // prepared receptor in engine-native format
	Config   string // engine config file; written with defaults when absent
	Bin      string // engine binary, default "vina"
	Timeout  time.Duration
}

const (
	DefaultBin     = "vina"
	DefaultTimeout = 10 * time.Minute
	ligandFile     = "ligand.pdbqt"
	dockedFile     = "docked.pdbqt"
)

// Available probes for the engine binary with a short bounded call.
func Available(ctx context.Context, bin string) bool {
	if bin == "" {
		bin = DefaultBin
	}
	probe, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return exec.CommandContext(probe, bin, "--version").Run() == nil
}

// EnsureConfig writes a default engine configuration when none exists.
// The zero search-box center is a placeholder the operator must replace
// with real binding-site coordinates.
func EnsureConfig(path, receptor string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	body := fmt.Sprintf(`receptor = %s
center_x = 0.0
center_y = 0.0
center_z = 0.0
size_x = 20.0
size_y = 20.0
size_z = 20.0
exhaustiveness = 8
num_modes = 10
`, receptor)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// RunAll docks every variant directory under o.Root that contains a
// prepared ligand, in sorted variant order. Each invocation blocks with a
// bounded timeout; per-variant failures are counted and logged, never
// fatal for the batch. The receptor file must exist.
func RunAll(ctx context.Context, log *slog.Logger, o Options) (ok, failed int, err error) {
	if o.Bin == "" {
		o.Bin = DefaultBin
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if _, err := os.Stat(o.Receptor); err != nil {
		return 0, 0, fmt.Errorf("receptor: %w", err)
	}
	if created, err := EnsureConfig(o.Config, o.Receptor); err != nil {
		return 0, 0, err
	} else if created {
		log.Warn("default docking config created with search box at origin; set real binding-site coordinates", "path", o.Config)
	}

	entries, err := os.ReadDir(o.Root)
	if err != nil {
		return 0, 0, fmt.Errorf("docking root: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if cerr := ctx.Err(); cerr != nil {
			return ok, failed, cerr
		}
		dir := filepath.Join(o.Root, id)
		ligand := filepath.Join(dir, ligandFile)
		if _, err := os.Stat(ligand); err != nil {
			log.Warn("skipping variant without prepared ligand", "variant", id)
			failed++
			continue
		}

		runCtx, cancel := context.WithTimeout(ctx, o.Timeout)
		cmd := exec.CommandContext(runCtx, o.Bin,
			"--receptor", o.Receptor,
			"--ligand", ligand,
			"--config", o.Config,
			"--out", filepath.Join(dir, dockedFile),
			"--log", filepath.Join(dir, vina.LogFileName),
		)
		runErr := cmd.Run()
		cancel()
		if runErr != nil {
			log.Warn("docking failed", "variant", id, "err", runErr)
			failed++
			continue
		}
		log.Info("docking complete", "variant", id)
		ok++
	}
	log.Info("docking batch finished", "succeeded", ok, "failed", failed)
	return ok, failed, nil
}
