// internal/artifact/artifact.go
package artifact

import (
	"errors"
	"io/fs"
)

// NotFoundError reports a missing pipeline artifact. Whether that is fatal
// depends on the artifact: a missing library is a hard failure, a missing
// docking-results file degrades to placeholder scores. Callers branch with
// IsNotFound instead of string-matching messages.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return e.Path + ": artifact not found" }

func (e *NotFoundError) Unwrap() error { return fs.ErrNotExist }

// IsNotFound reports whether err means an input artifact does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
