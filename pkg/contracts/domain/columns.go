package domain

// Canonical column names shared by every clean table and the master table.
// The dashboard and any other consumer of data_clean/ address columns by
// these names only.
const (
	ColParticipantID = "participant_id"
	ColProgramID     = "program_id"
	ColCity          = "city"
	ColEmail         = "email"
	ColPhone         = "phone"
	ColDOB           = "dob"
	ColEventDate     = "event_date"
	ColAttended      = "attended"
	ColSurveyScore   = "survey_score"
	ColNPS           = "nps"
	ColPreScore      = "pre_score"
	ColPostScore     = "post_score"
)

// Master table columns.
const (
	ColSessionsTotal    = "sessions_total"
	ColSessionsAttended = "sessions_attended"
	ColFirstSession     = "first_session"
	ColLastSession      = "last_session"
	ColAvgSatisfaction  = "avg_satisfaction"
	ColAvgNPS           = "avg_nps"
	ColSurveyResponses  = "survey_responses"
	ColLastSurvey       = "last_survey"
	ColAttendanceRate   = "attendance_rate"
	ColOutcomeDelta     = "outcome_delta"
)

// Output table names, as they appear in the quality report and as the
// stem of the persisted file names.
const (
	TableContacts   = "crm_clean"
	TableSurveys    = "surveys_clean"
	TableAttendance = "attendance_clean"
	TableOutcomes   = "outcomes_clean"
	TableMaster     = "master_dataset"
	TableQuality    = "data_quality_report"
)

// MasterKey is the composite key of the master table.
var MasterKey = []string{ColParticipantID, ColProgramID}

// MasterColumns lists the master table columns in output order.
var MasterColumns = []string{
	ColParticipantID,
	ColProgramID,
	ColSessionsTotal,
	ColSessionsAttended,
	ColFirstSession,
	ColLastSession,
	ColAvgSatisfaction,
	ColAvgNPS,
	ColSurveyResponses,
	ColLastSurvey,
	ColPreScore,
	ColPostScore,
	ColCity,
	ColEmail,
	ColAttendanceRate,
	ColOutcomeDelta,
}

// MasterDateColumns are the master columns consumers should parse as dates.
var MasterDateColumns = []string{ColFirstSession, ColLastSession, ColLastSurvey}

// MasterNumericColumns are the master columns consumers should parse as numbers.
var MasterNumericColumns = []string{
	ColSessionsTotal,
	ColSessionsAttended,
	ColAttendanceRate,
	ColAvgSatisfaction,
	ColAvgNPS,
	ColSurveyResponses,
	ColPreScore,
	ColPostScore,
	ColOutcomeDelta,
}

// CleanTables lists the four per-source clean tables in pipeline order.
var CleanTables = []string{TableContacts, TableSurveys, TableAttendance, TableOutcomes}
