package files

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "impactetl/internal/errors"
	"impactetl/internal/table"
)

// naTokens are the cell contents read as missing, in addition to the empty
// string.
var naTokens = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable loads a raw table, dispatching on the file extension.
func ReadTable(path string) (*table.Table, error) {
	var (
		t   *table.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err = readCSVFile(path)
	case ".xlsx", ".xlsm":
		t, err = readXLSXFile(path)
	default:
		return nil, apperrors.NewIOError(path, "failed to read table", apperrors.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, apperrors.NewIOError(path, "failed to read table", errors.Join(apperrors.ErrSourceUnreadable, err))
	}
	return t, nil
}

func readCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses CSV data whose first record is the header. A leading UTF-8
// byte order mark is ignored and ragged records are padded with Null.
func ReadCSV(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRecords(records), nil
}

func readXLSXFile(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table.New(), nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRecords(rows), nil
}

// fromRecords builds a table from a header row and data rows. A repeated
// header keeps the cells of its last column.
func fromRecords(records [][]string) *table.Table {
	if len(records) == 0 {
		return table.New()
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("unnamed_%d", i)
		}
		header[i] = name
	}

	rows := make([][]table.Value, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make([]table.Value, len(header))
		for i := range values {
			if i < len(record) {
				values[i] = parseCell(record[i])
			}
		}
		rows = append(rows, values)
	}
	return table.FromRows(header, rows)
}

func parseCell(s string) table.Value {
	if s == "" || naTokens[strings.TrimSpace(s)] {
		return table.Null
	}
	return table.String(s)
}
