package dataprocessing

import (
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// NamedTable pairs a produced table with its output name.
type NamedTable struct {
	Name  string
	Table *table.Table
}

// AssessQuality measures one table. It never modifies t.
func AssessQuality(name string, t *table.Table) domain.QualityReport {
	return domain.QualityReport{
		Table:         name,
		Rows:          t.NumRows(),
		Cols:          t.NumCols(),
		MissingValues: t.MissingCount(),
		DuplicateRows: t.DuplicateCount(),
	}
}

// QualityReport measures every table, in the order given, and returns the
// reports together with their tabular form.
func QualityReport(tables ...NamedTable) ([]domain.QualityReport, *table.Table) {
	reports := make([]domain.QualityReport, len(tables))
	out := table.New(domain.QualityColumns...)
	for i, nt := range tables {
		r := AssessQuality(nt.Name, nt.Table)
		reports[i] = r
		out.AppendRow(
			table.String(r.Table),
			table.Int(int64(r.Rows)),
			table.Int(int64(r.Cols)),
			table.Int(int64(r.MissingValues)),
			table.Int(int64(r.DuplicateRows)),
		)
	}
	return reports, out
}
