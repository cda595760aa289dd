package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	apperrors "impactetl/internal/errors"
	"impactetl/internal/files"
	"impactetl/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	options WriteOptions
	logger  *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(options WriteOptions, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{options: options, logger: logger}
}

// WriteTable replaces the file at path with t in CSV form.
func (w *CSVWriter) WriteTable(path string, t *table.Table) error {
	w.logger.Debug("writing CSV file",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("cols", t.NumCols()))

	err := files.WriteFileAtomic(path, func(out io.Writer) error {
		return EncodeCSV(out, t, w.options)
	})
	if err != nil {
		return apperrors.NewIOError(path, "failed to write table", errors.Join(apperrors.ErrOutputUnwritable, err))
	}
	return nil
}

// EncodeCSV writes the header row and every record of t to out.
func EncodeCSV(out io.Writer, t *table.Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range t.Records() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
