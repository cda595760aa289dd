// Package exporter writes pipeline tables to disk.
//
// CSVWriter persists a table.Table as CSV with a header row, optionally
// prefixed with a UTF-8 byte order mark so Excel detects the encoding. Cells
// are rendered in their canonical text form, so identical tables always
// produce identical bytes. Files are replaced atomically.
//
// WorkbookWriter writes plain rows to a single-sheet .xlsx workbook; the
// sample data generator uses it for the spreadsheet-based raw sources.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(exporter.WriteOptions{BOMPrefix: cfg.Output.ExcelBOM}, logger)
//	if err := w.WriteTable("data_clean/master_dataset.csv", master); err != nil {
//	    return err
//	}
package exporter
