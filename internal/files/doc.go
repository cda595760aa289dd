// Package files reads raw program tables from disk and writes output files
// safely.
//
// Reader: ReadTable loads a .csv or .xlsx file into a table.Table. Every
// non-empty cell is read as text; blank cells and the usual spreadsheet NA
// markers (NA, N/A, NaN, null, None, #N/A, ...) become Null. Typing is left
// to the cleaners.
//
// Master: ReadMaster loads a previously written master dataset and restores
// the numeric and date types of its columns. A missing file yields an error
// wrapping errors.ErrMasterNotFound with a hint on how to produce it.
//
// Discovery: Stat and FindTables describe the files of a raw directory so a
// run can log what it is about to read.
//
// Writing: WriteFileAtomic writes through a temporary file in the target
// directory and renames it into place, so readers never see a half-written
// output.
//
// Example usage:
//
//	t, err := files.ReadTable("data_raw/attendance.xlsx")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.NumRows(), t.Columns())
package files
