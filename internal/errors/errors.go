package errors

import (
	"errors"
	"fmt"
)

// Sentinel causes. Wrap them with PipelineError or fmt.Errorf("%w") and
// test with errors.Is.
var (
	// ErrSourceUnreadable marks a raw input that exists but cannot be read.
	ErrSourceUnreadable = errors.New("source file unreadable")

	// ErrOutputUnwritable marks an output path that cannot be written.
	ErrOutputUnwritable = errors.New("output file unwritable")

	// ErrUnsupportedFormat marks an input whose extension has no reader.
	ErrUnsupportedFormat = errors.New("unsupported table format")

	// ErrMasterNotFound marks a missing master table on the consumer side.
	ErrMasterNotFound = errors.New("master table not found")
)

// MasterNotFoundError wraps ErrMasterNotFound with the path that was
// looked up and the command that produces it.
func MasterNotFoundError(path string) error {
	return fmt.Errorf("%w at %s: run the pipeline first (go run ./cmd/pipeline)", ErrMasterNotFound, path)
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers importing this package need not alias the
// standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
