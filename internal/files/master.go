package files

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	apperrors "impactetl/internal/errors"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// ReadMaster loads the master dataset written by the pipeline and restores
// the types of its numeric and date columns. The result always carries the
// master columns in canonical order; unknown columns are dropped and absent
// ones are all-Null.
func ReadMaster(path string) (*table.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.MasterNotFoundError(path)
	}

	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	t = t.Select(domain.MasterColumns...)
	for _, col := range domain.MasterNumericColumns {
		t = t.Apply(col, parseNumber)
	}
	for _, col := range domain.MasterDateColumns {
		t = t.Apply(col, parseDate)
	}
	return t, nil
}

func parseNumber(v table.Value) table.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.Float(f)
	}
	return table.Null
}

func parseDate(v table.Value) table.Value {
	s, ok := v.AsString()
	if !ok {
		return v
	}
	t, err := time.Parse(table.DateLayout, s)
	if err != nil {
		return table.Null
	}
	return table.Date(t)
}
