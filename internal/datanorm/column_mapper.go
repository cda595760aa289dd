package datanorm

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// canonicalColumns is the set every alias must resolve into.
var canonicalColumns = map[string]bool{
	domain.ColParticipantID: true,
	domain.ColProgramID:     true,
	domain.ColCity:          true,
	domain.ColEventDate:     true,
	domain.ColAttended:      true,
	domain.ColPreScore:      true,
	domain.ColPostScore:     true,
	domain.ColSurveyScore:   true,
	domain.ColNPS:           true,
	domain.ColEmail:         true,
	domain.ColPhone:         true,
	domain.ColDOB:           true,
}

// columnAliases maps snake-cased header names to canonical columns.
// When multiple raw headers mean the same thing, they all map here.
var columnAliases = map[string]string{
	// Participant
	"participant_id": domain.ColParticipantID,
	"participantid":  domain.ColParticipantID,
	"student_id":     domain.ColParticipantID,
	"studentid":      domain.ColParticipantID,
	"id":             domain.ColParticipantID,

	// Program
	"program_id": domain.ColProgramID,
	"programid":  domain.ColProgramID,
	"program":    domain.ColProgramID,

	// Location
	"city":     domain.ColCity,
	"site":     domain.ColCity,
	"location": domain.ColCity,

	// Dates
	"date":            domain.ColEventDate,
	"event_date":      domain.ColEventDate,
	"session_date":    domain.ColEventDate,
	"attendance_date": domain.ColEventDate,

	// Attendance flag
	"attended": domain.ColAttended,
	"present":  domain.ColAttended,

	// Outcomes
	"pre_score":          domain.ColPreScore,
	"post_score":         domain.ColPostScore,
	"outcome_score_pre":  domain.ColPreScore,
	"outcome_score_post": domain.ColPostScore,

	// Surveys
	"survey_score": domain.ColSurveyScore,
	"satisfaction": domain.ColSurveyScore,
	"nps":          domain.ColNPS,

	// Contact details
	"email":     domain.ColEmail,
	"phone":     domain.ColPhone,
	"dob":       domain.ColDOB,
	"birthdate": domain.ColDOB,
}

var (
	nonWord     = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	underscores = regexp.MustCompile(`_+`)
)

// SnakeCase lower-cases a header, turns every run of non-word characters
// into a single underscore and trims leading and trailing underscores.
//
//	"Participant Id" -> "participant_id"
//	"Session Date"   -> "session_date"
func SnakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ColumnMapper renames raw headers onto the canonical schema.
type ColumnMapper struct {
	aliases map[string]string
}

// NewColumnMapper builds a mapper from the built-in synonym table plus
// extra aliases. Extra keys are snake-cased before use and override the
// built-in entries. Every alias must resolve to a canonical column.
func NewColumnMapper(extra map[string]string) (*ColumnMapper, error) {
	aliases := make(map[string]string, len(columnAliases)+len(extra))
	for k, v := range columnAliases {
		aliases[k] = v
	}
	for k, v := range extra {
		aliases[SnakeCase(k)] = v
	}
	if err := validateAliases(aliases); err != nil {
		return nil, err
	}
	return &ColumnMapper{aliases: aliases}, nil
}

// DefaultColumnMapper returns a mapper using only the built-in synonyms.
func DefaultColumnMapper() *ColumnMapper {
	return &ColumnMapper{aliases: columnAliases}
}

func validateAliases(aliases map[string]string) error {
	var bad []string
	for k, v := range aliases {
		if k == "" || !canonicalColumns[v] {
			bad = append(bad, fmt.Sprintf("%q -> %q", k, v))
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("invalid column aliases: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Canonical returns the canonical name for a raw header. Headers without a
// known synonym come back snake-cased.
func (m *ColumnMapper) Canonical(header string) string {
	name := SnakeCase(header)
	if c, ok := m.aliases[name]; ok {
		return c
	}
	return name
}

// Map renames every column of t to its canonical name. Two raw columns
// mapping to the same name are not de-conflicted: the later one wins.
func (m *ColumnMapper) Map(t *table.Table) *table.Table {
	return t.Rename(m.Canonical)
}
