package domain

// Quality report columns.
const (
	QualityColTable         = "table"
	QualityColRows          = "rows"
	QualityColCols          = "cols"
	QualityColMissingValues = "missing_values"
	QualityColDuplicateRows = "duplicate_rows"
)

// QualityColumns lists the quality report columns in output order.
var QualityColumns = []string{
	QualityColTable,
	QualityColRows,
	QualityColCols,
	QualityColMissingValues,
	QualityColDuplicateRows,
}

// QualityReport summarizes one produced table.
type QualityReport struct {
	Table         string `json:"table"`
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	MissingValues int    `json:"missing_values"`
	DuplicateRows int    `json:"duplicate_rows"`
}
