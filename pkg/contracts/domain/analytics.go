package domain

// ImpactSummary holds the headline figures computed over the master table.
// Pointer fields are nil when no row carries a value for the metric.
type ImpactSummary struct {
	Rows              int              `json:"rows"`
	Participants      int              `json:"participants"`
	Programs          int              `json:"programs"`
	AvgAttendanceRate *float64         `json:"avg_attendance_rate"`
	AvgSatisfaction   *float64         `json:"avg_satisfaction"`
	AvgOutcomeDelta   *float64         `json:"avg_outcome_delta"`
	ByProgram         []ProgramSummary `json:"by_program"`
	ByCity            []CitySummary    `json:"by_city"`
}

// ProgramSummary aggregates master rows sharing a program_id.
type ProgramSummary struct {
	ProgramID         string   `json:"program_id"`
	Participants      int      `json:"participants"`
	AvgAttendanceRate *float64 `json:"avg_attendance_rate"`
	SessionsTotal     int64    `json:"sessions_total"`
}

// CitySummary aggregates master rows sharing a resolved city.
type CitySummary struct {
	City            string   `json:"city"`
	Participants    int      `json:"participants"`
	AvgOutcomeDelta *float64 `json:"avg_outcome_delta"`
	AvgSatisfaction *float64 `json:"avg_satisfaction"`
}

// UnknownCity labels master rows whose city could not be resolved.
const UnknownCity = "Unknown"
