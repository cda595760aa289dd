package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "impactetl/internal/errors"
)

// supportedExtensions are the raw table formats the reader understands.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xlsm": true,
}

// FileValidator checks raw inputs and output directories before the
// pipeline touches them, so failures name the offending path.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInput checks that path is a readable regular file in a supported
// table format.
func (v *FileValidator) ValidateInput(path string) error {
	if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
		return apperrors.NewIOError(path, "unsupported input format", apperrors.ErrUnsupportedFormat)
	}

	info, err := os.Stat(path)
	if err != nil {
		return apperrors.NewIOError(path, "input file not accessible", errors.Join(apperrors.ErrSourceUnreadable, err))
	}
	if info.IsDir() {
		return apperrors.NewIOError(path, "input path is a directory",
			fmt.Errorf("%w: %s is a directory", apperrors.ErrSourceUnreadable, path))
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewIOError(path, "input file not readable", errors.Join(apperrors.ErrSourceUnreadable, err))
	}
	file.Close()

	v.logger.Debug("input validated",
		slog.String("path", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputs checks every path and stops at the first failure
func (v *FileValidator) ValidateInputs(paths []string) error {
	for _, path := range paths {
		if err := v.ValidateInput(path); err != nil {
			v.logger.Error("input validation failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

// ValidateOutputDirectory creates dir when needed and verifies it accepts
// new files.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewIOError(dir, "failed to create output directory",
			errors.Join(apperrors.ErrOutputUnwritable, err))
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		return apperrors.NewIOError(dir, "output directory is not writable",
			errors.Join(apperrors.ErrOutputUnwritable, err))
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("output directory validated", slog.String("dir", dir))
	return nil
}
