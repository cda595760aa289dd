package dataprocessing

import (
	"time"

	"impactetl/internal/table"
)

// rawTable builds a text table the way the file reader would: every cell a
// string, empty cells Null.
func rawTable(columns []string, rows ...[]string) *table.Table {
	t := table.New(columns...)
	for _, row := range rows {
		values := make([]table.Value, len(row))
		for i, cell := range row {
			if cell != "" {
				values[i] = table.String(cell)
			}
		}
		t.AppendRow(values...)
	}
	return t
}

func day(y int, m time.Month, d int) table.Value {
	return table.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

var (
	contactHeaders    = []string{"ParticipantID", "City", "Email", "Phone", "Birthdate"}
	surveyHeaders     = []string{"student_id", "Program", "Date", "Satisfaction", "NPS"}
	attendanceHeaders = []string{"ID", "ProgramID", "Session Date", "Present", "Site"}
	outcomeHeaders    = []string{"Participant Id", "program_id", "outcome_score_pre", "outcome_score_post", "location"}
)
