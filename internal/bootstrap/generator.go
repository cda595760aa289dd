package bootstrap

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"impactetl/internal/config"
	apperrors "impactetl/internal/errors"
	"impactetl/internal/exporter"
	"impactetl/internal/table"
)

// Row counts of the generated tables.
const (
	ContactRows    = 500
	SurveyRows     = 800
	AttendanceRows = 1200
	OutcomeRows    = 400
)

// Sheet names of the generated workbooks.
const (
	AttendanceSheet = "attendance"
	OutcomesSheet   = "outcomes"
)

// Sheet is one generated raw table. A nil cell is written as an empty cell.
type Sheet struct {
	Headers []string
	Rows    [][]any
}

// Dataset holds the four generated raw tables.
type Dataset struct {
	Contacts   Sheet
	Surveys    Sheet
	Attendance Sheet
	Outcomes   Sheet
}

// Sample builds the messy dataset for seed.
func Sample(seed uint64) *Dataset {
	r := rand.New(rand.NewPCG(seed, seed^0x5deece66d))
	return &Dataset{
		Contacts:   contacts(r),
		Surveys:    surveys(r),
		Attendance: attendance(r),
		Outcomes:   outcomes(r),
	}
}

// Generate writes the sample dataset for seed to the raw input paths,
// replacing any file already there.
func Generate(paths *config.Paths, seed uint64, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	ds := Sample(seed)

	csvWriter := exporter.NewCSVWriter(exporter.WriteOptions{}, logger)
	workbooks := exporter.NewWorkbookWriter(logger)

	if err := csvWriter.WriteTable(paths.Contacts, ds.Contacts.Table()); err != nil {
		return apperrors.NewBootstrapError(paths.Contacts, err)
	}
	if err := csvWriter.WriteTable(paths.Surveys, ds.Surveys.Table()); err != nil {
		return apperrors.NewBootstrapError(paths.Surveys, err)
	}
	if err := workbooks.WriteSheet(paths.Attendance, AttendanceSheet, ds.Attendance.Headers, ds.Attendance.Rows); err != nil {
		return apperrors.NewBootstrapError(paths.Attendance, err)
	}
	if err := workbooks.WriteSheet(paths.Outcomes, OutcomesSheet, ds.Outcomes.Headers, ds.Outcomes.Rows); err != nil {
		return apperrors.NewBootstrapError(paths.Outcomes, err)
	}

	logger.Info("generated sample raw data",
		slog.String("dir", paths.RawDir),
		slog.Uint64("seed", seed),
		slog.Int("contacts", len(ds.Contacts.Rows)),
		slog.Int("surveys", len(ds.Surveys.Rows)),
		slog.Int("attendance", len(ds.Attendance.Rows)),
		slog.Int("outcomes", len(ds.Outcomes.Rows)))
	return nil
}

// Table renders the sheet as a text table, the way it lands in a CSV file.
func (s Sheet) Table() *table.Table {
	t := table.New(s.Headers...)
	for _, row := range s.Rows {
		values := make([]table.Value, len(row))
		for i, cell := range row {
			if cell != nil {
				values[i] = table.String(fmt.Sprint(cell))
			}
		}
		t.AppendRow(values...)
	}
	return t
}

func contacts(r *rand.Rand) Sheet {
	cities := []any{"New York", "NYC", "Chicago", "chicago", "Bk", "Boston", nil}
	cityWeights := []float64{0.25, 0.1, 0.2, 0.1, 0.05, 0.25, 0.05}
	dobs := []any{"2005-01-10", "01/10/2005", "Jan 10 2005", nil}
	dobWeights := []float64{0.4, 0.3, 0.2, 0.1}

	rows := make([][]any, ContactRows)
	for i := range rows {
		// Ids repeat on purpose: 500 rows over 259 participants.
		id := between(r, 1, 260)

		var email any
		if r.Float64() > 0.08 {
			email = fmt.Sprintf("user%d@example.org", id)
		}
		var phone any
		if r.Float64() > 0.12 {
			phone = fmt.Sprintf("(%d)-%d-%d", between(r, 200, 999), between(r, 200, 999), between(r, 1000, 9999))
		}

		rows[i] = []any{id, choose(r, cities, cityWeights), email, phone, choose(r, dobs, dobWeights)}
	}
	return Sheet{
		Headers: []string{"ParticipantID", "City", "Email", "Phone", "Birthdate"},
		Rows:    rows,
	}
}

func surveys(r *rand.Rand) Sheet {
	programs := []any{"Program 1", "PRG1", "1", "2", "Program 2", "PRG-003"}
	dates := []any{"2026-02-01", "02/03/2026", "Feb 5 2026", "2026/02/07", nil}
	dateWeights := []float64{0.25, 0.25, 0.25, 0.15, 0.10}

	rows := make([][]any, SurveyRows)
	for i := range rows {
		rows[i] = []any{
			between(r, 1, 320),
			choose(r, programs, nil),
			choose(r, dates, dateWeights),
			between(r, 1, 6),
			between(r, 0, 11),
		}
	}
	for _, i := range sampleIndexes(r, SurveyRows, 35) {
		rows[i][3] = nil
	}
	return Sheet{
		Headers: []string{"student_id", "Program", "Date", "Satisfaction", "NPS"},
		Rows:    rows,
	}
}

func attendance(r *rand.Rand) Sheet {
	programs := []any{"1", "2", "3", "PRG-001", "PRG-002", "Program 3"}
	dates := []any{"2026-01-15", "01/20/2026", "Jan 25 2026", "2026/01/30"}
	flags := []any{1, 0, "Yes", "No", "Y", "N", nil}
	flagWeights := []float64{0.35, 0.25, 0.15, 0.12, 0.05, 0.05, 0.03}
	sites := []any{"New York", "NYC", "Boston", "Chicago", "Bk"}

	rows := make([][]any, AttendanceRows)
	for i := range rows {
		rows[i] = []any{
			between(r, 1, 320),
			choose(r, programs, nil),
			choose(r, dates, nil),
			choose(r, flags, flagWeights),
			choose(r, sites, nil),
		}
	}
	return Sheet{
		Headers: []string{"ID", "ProgramID", "Session Date", "Present", "Site"},
		Rows:    rows,
	}
}

func outcomes(r *rand.Rand) Sheet {
	programs := []any{"1", "2", "3"}
	locations := []any{"New York City", "Boston", "Chicago", "NYC", nil}
	locationWeights := []float64{0.2, 0.3, 0.3, 0.15, 0.05}

	rows := make([][]any, OutcomeRows)
	for i := range rows {
		rows[i] = []any{
			between(r, 1, 320),
			choose(r, programs, nil),
			normal(r, 50, 10),
			normal(r, 55, 10),
			choose(r, locations, locationWeights),
		}
	}
	for _, i := range sampleIndexes(r, OutcomeRows, 20) {
		rows[i][3] = nil
	}
	return Sheet{
		Headers: []string{"Participant Id", "program_id", "outcome_score_pre", "outcome_score_post", "location"},
		Rows:    rows,
	}
}

// between returns an int in [lo, hi).
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}

// choose picks one of values; nil weights mean uniform.
func choose(r *rand.Rand, values []any, weights []float64) any {
	if weights == nil {
		return values[r.IntN(len(values))]
	}
	x := r.Float64()
	for i, w := range weights {
		if x < w {
			return values[i]
		}
		x -= w
	}
	return values[len(values)-1]
}

// normal draws from N(mean, sd) rounded to one decimal.
func normal(r *rand.Rand, mean, sd float64) float64 {
	return math.Round((mean+sd*r.NormFloat64())*10) / 10
}

// sampleIndexes returns k distinct indexes in [0, n).
func sampleIndexes(r *rand.Rand, n, k int) []int {
	return r.Perm(n)[:k]
}
