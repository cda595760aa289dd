package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

func cleanAll(contacts, surveys, attendance, outcomes *table.Table) CleanTables {
	return CleanTables{
		Contacts:   CleanContacts(contacts),
		Surveys:    CleanSurveys(surveys),
		Attendance: CleanAttendance(attendance),
		Outcomes:   CleanOutcomes(outcomes),
	}
}

func findRow(t *testing.T, master *table.Table, pid, prg string) table.Row {
	t.Helper()
	for i := 0; i < master.NumRows(); i++ {
		r := master.Row(i)
		if r.Get(domain.ColParticipantID).String() == pid && r.Get(domain.ColProgramID).String() == prg {
			return r
		}
	}
	t.Fatalf("no master row for (%s, %s)", pid, prg)
	return table.Row{}
}

func TestBuildMaster_EndToEndScenario(t *testing.T) {
	in := cleanAll(
		rawTable([]string{"ParticipantID", "City"}, []string{"7", "NYC"}),
		rawTable(surveyHeaders),
		rawTable(attendanceHeaders, []string{"7", "1", "01/05/2026", "Yes", ""}),
		rawTable(outcomeHeaders),
	)

	master := BuildMaster(in)

	assert.Equal(t, domain.MasterColumns, master.Columns())
	require.Equal(t, 1, master.NumRows())

	r := master.Row(0)
	assert.Equal(t, table.String("P-000007"), r.Get(domain.ColParticipantID))
	assert.Equal(t, table.String("PRG-001"), r.Get(domain.ColProgramID))
	assert.Equal(t, table.String("New York"), r.Get(domain.ColCity))
	assert.Equal(t, table.Int(1), r.Get(domain.ColSessionsTotal))
	assert.Equal(t, table.Int(1), r.Get(domain.ColSessionsAttended))
	assert.Equal(t, table.Float(1.0), r.Get(domain.ColAttendanceRate))
	assert.Equal(t, day(2026, time.January, 5), r.Get(domain.ColFirstSession))
	assert.Equal(t, day(2026, time.January, 5), r.Get(domain.ColLastSession))
	assert.True(t, r.Get(domain.ColAvgSatisfaction).IsNull())
	assert.True(t, r.Get(domain.ColSurveyResponses).IsNull())
	assert.True(t, r.Get(domain.ColOutcomeDelta).IsNull())
}

func TestBuildMaster_OutcomeTieBreak(t *testing.T) {
	in := cleanAll(
		rawTable(contactHeaders),
		rawTable(surveyHeaders),
		rawTable(attendanceHeaders, []string{"7", "1", "2026-01-15", "1", "Boston"}),
		rawTable(outcomeHeaders,
			[]string{"7", "1", "50", "80", "Chicago"},
			[]string{"7", "1", "60", "95", "Boston"},
			[]string{"7", "1", "70", "", "Denver"},
		),
	)

	r := BuildMaster(in).Row(0)

	assert.Equal(t, table.Float(95), r.Get(domain.ColPostScore))
	assert.Equal(t, table.Float(60), r.Get(domain.ColPreScore))
	assert.Equal(t, table.Float(35), r.Get(domain.ColOutcomeDelta))
	assert.Equal(t, table.String("Boston"), r.Get(domain.ColCity))
}

func TestRepresentativeOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		wantPre  table.Value
		wantPost table.Value
	}{
		{
			name:     "missing post loses to present",
			rows:     [][]string{{"1", "1", "10", "", ""}, {"1", "1", "20", "30", ""}},
			wantPre:  table.Float(20),
			wantPost: table.Float(30),
		},
		{
			name:     "ties keep the first row",
			rows:     [][]string{{"1", "1", "10", "90", ""}, {"1", "1", "20", "90", ""}},
			wantPre:  table.Float(10),
			wantPost: table.Float(90),
		},
		{
			name:     "all missing keeps the first row",
			rows:     [][]string{{"1", "1", "10", "", ""}, {"1", "1", "20", "", ""}},
			wantPre:  table.Float(10),
			wantPost: table.Null,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps := representativeOutcomes(CleanOutcomes(rawTable(outcomeHeaders, tt.rows...)))
			require.Len(t, reps, 1)
			rep := reps[masterKey{participant: "P-000001", program: "PRG-001"}]
			assert.Equal(t, tt.wantPre, rep.Get(domain.ColPreScore))
			assert.Equal(t, tt.wantPost, rep.Get(domain.ColPostScore))
		})
	}
}

func TestBuildMaster_CityPrecedence(t *testing.T) {
	in := cleanAll(
		rawTable(contactHeaders,
			[]string{"7", "Chicago", "seven@example.org", "", ""},
			[]string{"8", "chicago", "eight@example.org", "", ""},
		),
		rawTable(surveyHeaders),
		rawTable(attendanceHeaders,
			[]string{"7", "1", "2026-01-15", "1", "Denver"},
			[]string{"8", "1", "2026-01-15", "1", "Denver"},
			[]string{"9", "1", "2026-01-15", "1", "Denver"},
		),
		rawTable(outcomeHeaders,
			[]string{"7", "1", "50", "60", "Boston"},
			[]string{"8", "1", "50", "60", ""},
		),
	)

	master := BuildMaster(in)
	require.Equal(t, 3, master.NumRows())

	assert.Equal(t, table.String("Boston"), findRow(t, master, "P-000007", "PRG-001").Get(domain.ColCity), "outcome city wins")
	assert.Equal(t, table.String("seven@example.org"), findRow(t, master, "P-000007", "PRG-001").Get(domain.ColEmail))
	assert.Equal(t, table.String("Chicago"), findRow(t, master, "P-000008", "PRG-001").Get(domain.ColCity), "contact city backfills")
	assert.True(t, findRow(t, master, "P-000009", "PRG-001").Get(domain.ColCity).IsNull(), "attendance city is not used")
}

func TestBuildMaster_JoinCompleteness(t *testing.T) {
	in := cleanAll(
		rawTable(contactHeaders, []string{"50", "Boston", "", "", ""}),
		rawTable(surveyHeaders,
			[]string{"2", "1", "2026-02-01", "4", "8"},
			[]string{"2", "1", "2026-02-03", "", "10"},
			[]string{"3", "2", "", "5", ""},
		),
		rawTable(attendanceHeaders,
			[]string{"1", "1", "2026-01-15", "1", ""},
			[]string{"2", "1", "2026-01-20", "No", ""},
			[]string{"2", "1", "2026-01-10", "", ""},
			[]string{"1", "1", "2026-01-16", "Y", ""},
		),
		rawTable(outcomeHeaders, []string{"40", "3", "10", "20", "Boston"}),
	)

	master := BuildMaster(in)

	var keys []string
	for i := 0; i < master.NumRows(); i++ {
		keys = append(keys, master.Get(i, domain.ColParticipantID).String()+"/"+master.Get(i, domain.ColProgramID).String())
	}
	assert.Equal(t, []string{"P-000001/PRG-001", "P-000002/PRG-001", "P-000003/PRG-002"}, keys)

	both := findRow(t, master, "P-000002", "PRG-001")
	assert.Equal(t, table.Int(2), both.Get(domain.ColSessionsTotal))
	assert.Equal(t, table.Int(0), both.Get(domain.ColSessionsAttended), "unknown counts as not attended")
	assert.Equal(t, table.Float(0), both.Get(domain.ColAttendanceRate))
	assert.Equal(t, day(2026, time.January, 10), both.Get(domain.ColFirstSession))
	assert.Equal(t, day(2026, time.January, 20), both.Get(domain.ColLastSession))
	assert.Equal(t, table.Float(4), both.Get(domain.ColAvgSatisfaction), "mean over present values")
	assert.Equal(t, table.Float(9), both.Get(domain.ColAvgNPS))
	assert.Equal(t, table.Int(2), both.Get(domain.ColSurveyResponses))
	assert.Equal(t, day(2026, time.February, 3), both.Get(domain.ColLastSurvey))

	surveyOnly := findRow(t, master, "P-000003", "PRG-002")
	assert.True(t, surveyOnly.Get(domain.ColSessionsTotal).IsNull())
	assert.True(t, surveyOnly.Get(domain.ColAttendanceRate).IsNull(), "no sessions means no rate, not zero")
	assert.True(t, surveyOnly.Get(domain.ColAvgNPS).IsNull(), "all-missing mean is Null")
	assert.True(t, surveyOnly.Get(domain.ColLastSurvey).IsNull())
	assert.Equal(t, table.Int(1), surveyOnly.Get(domain.ColSurveyResponses))

	attOnly := findRow(t, master, "P-000001", "PRG-001")
	assert.Equal(t, table.Float(1), attOnly.Get(domain.ColAttendanceRate))
}

func TestBuildMaster_DerivedFields(t *testing.T) {
	in := cleanAll(
		rawTable(contactHeaders),
		rawTable(surveyHeaders),
		rawTable(attendanceHeaders,
			[]string{"1", "1", "2026-01-15", "1", ""},
			[]string{"1", "1", "2026-01-16", "0", ""},
			[]string{"1", "1", "2026-01-17", "1", ""},
		),
		rawTable(outcomeHeaders, []string{"1", "1", "", "70", ""}),
	)

	r := BuildMaster(in).Row(0)

	rate, ok := r.Get(domain.ColAttendanceRate).AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, rate, 1e-12)
	assert.True(t, r.Get(domain.ColOutcomeDelta).IsNull(), "delta needs both scores")
}

func TestBuildMaster_RowsSortedByKey(t *testing.T) {
	in := cleanAll(
		rawTable(contactHeaders),
		rawTable(surveyHeaders, []string{"2", "12", "2026-02-01", "4", "8"}),
		rawTable(attendanceHeaders,
			[]string{"10", "2", "2026-01-15", "1", ""},
			[]string{"2", "3", "2026-01-20", "1", ""},
			[]string{"10", "1", "2026-01-10", "0", ""},
		),
		rawTable(outcomeHeaders),
	)

	for i := 0; i < 5; i++ {
		master := BuildMaster(in)
		var keys []string
		for r := 0; r < master.NumRows(); r++ {
			keys = append(keys, master.Get(r, domain.ColParticipantID).String()+"/"+master.Get(r, domain.ColProgramID).String())
		}
		assert.Equal(t, []string{"P-000002/PRG-003", "P-000002/PRG-012", "P-000010/PRG-001", "P-000010/PRG-002"}, keys)
	}
}

func TestBuildMaster_Empty(t *testing.T) {
	master := BuildMaster(CleanTables{})
	assert.Equal(t, 0, master.NumRows())
	assert.Equal(t, domain.MasterColumns, master.Columns())
}

func TestCleanTables_GetSet(t *testing.T) {
	var ct CleanTables
	for _, s := range Sources {
		tbl := table.New(s.String())
		ct.Set(s, tbl)
		assert.Same(t, tbl, ct.Get(s))
	}
}
