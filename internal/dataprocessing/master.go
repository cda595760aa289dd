package dataprocessing

import (
	"time"

	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// masterKey is the (participant, program) pair the master table is keyed by.
type masterKey struct {
	participant string
	program     string
}

func keyOf(r table.Row) (masterKey, bool) {
	pid, ok1 := r.Get(domain.ColParticipantID).AsString()
	prg, ok2 := r.Get(domain.ColProgramID).AsString()
	return masterKey{participant: pid, program: prg}, ok1 && ok2
}

type attendanceAgg struct {
	total    int64
	attended int64
	first    time.Time
	last     time.Time
}

type surveyAgg struct {
	responses  int64
	scoreSum   float64
	scoreCount int
	npsSum     float64
	npsCount   int
	last       time.Time
}

// CleanTables bundles the four clean tables the master builder joins.
type CleanTables struct {
	Contacts   *table.Table
	Surveys    *table.Table
	Attendance *table.Table
	Outcomes   *table.Table
}

// Get returns the clean table of a source.
func (c CleanTables) Get(source Source) *table.Table {
	switch source {
	case SourceContacts:
		return c.Contacts
	case SourceSurveys:
		return c.Surveys
	case SourceAttendance:
		return c.Attendance
	case SourceOutcomes:
		return c.Outcomes
	}
	return nil
}

// Set stores the clean table of a source.
func (c *CleanTables) Set(source Source, t *table.Table) {
	switch source {
	case SourceContacts:
		c.Contacts = t
	case SourceSurveys:
		c.Surveys = t
	case SourceAttendance:
		c.Attendance = t
	case SourceOutcomes:
		c.Outcomes = t
	}
}

// BuildMaster joins the clean tables into one row per (participant,
// program) pair seen in attendance or surveys. Outcome-only and
// contact-only pairs do not appear. Rows are sorted by key.
func BuildMaster(in CleanTables) *table.Table {
	attendance := aggregateAttendance(in.Attendance)
	surveys := aggregateSurveys(in.Surveys)
	outcomes := representativeOutcomes(in.Outcomes)
	contacts := contactsByParticipant(in.Contacts)

	keys := make([]masterKey, 0, len(attendance)+len(surveys))
	for k := range attendance {
		keys = append(keys, k)
	}
	for k := range surveys {
		if _, ok := attendance[k]; !ok {
			keys = append(keys, k)
		}
	}
	master := table.New(domain.MasterColumns...)
	for _, k := range keys {
		row := map[string]table.Value{
			domain.ColParticipantID: table.String(k.participant),
			domain.ColProgramID:     table.String(k.program),
		}

		if a, ok := attendance[k]; ok {
			row[domain.ColSessionsTotal] = table.Int(a.total)
			row[domain.ColSessionsAttended] = table.Int(a.attended)
			row[domain.ColFirstSession] = table.Date(a.first)
			row[domain.ColLastSession] = table.Date(a.last)
			if a.total > 0 {
				row[domain.ColAttendanceRate] = table.Float(float64(a.attended) / float64(a.total))
			}
		}

		if s, ok := surveys[k]; ok {
			row[domain.ColAvgSatisfaction] = mean(s.scoreSum, s.scoreCount)
			row[domain.ColAvgNPS] = mean(s.npsSum, s.npsCount)
			row[domain.ColSurveyResponses] = table.Int(s.responses)
			row[domain.ColLastSurvey] = table.Date(s.last)
		}

		var city table.Value
		if o, ok := outcomes[k]; ok {
			pre := o.Get(domain.ColPreScore)
			post := o.Get(domain.ColPostScore)
			row[domain.ColPreScore] = pre
			row[domain.ColPostScore] = post
			city = o.Get(domain.ColCity)

			preF, ok1 := pre.AsFloat()
			postF, ok2 := post.AsFloat()
			if ok1 && ok2 {
				row[domain.ColOutcomeDelta] = table.Float(postF - preF)
			}
		}

		if c, ok := contacts[k.participant]; ok {
			if city.IsNull() {
				city = c.Get(domain.ColCity)
			}
			row[domain.ColEmail] = c.Get(domain.ColEmail)
		}
		row[domain.ColCity] = city

		values := make([]table.Value, len(domain.MasterColumns))
		for i, col := range domain.MasterColumns {
			values[i] = row[col]
		}
		master.AppendRow(values...)
	}
	return master.SortStable(func(a, b table.Row) bool {
		if c := table.Compare(a.Get(domain.ColParticipantID), b.Get(domain.ColParticipantID)); c != 0 {
			return c < 0
		}
		return table.Compare(a.Get(domain.ColProgramID), b.Get(domain.ColProgramID)) < 0
	})
}

func aggregateAttendance(t *table.Table) map[masterKey]*attendanceAgg {
	out := map[masterKey]*attendanceAgg{}
	if t == nil {
		return out
	}
	for i := 0; i < t.NumRows(); i++ {
		r := t.Row(i)
		k, ok := keyOf(r)
		if !ok {
			continue
		}
		a := out[k]
		if a == nil {
			a = &attendanceAgg{}
			out[k] = a
		}

		date, hasDate := r.Get(domain.ColEventDate).AsDate()
		if !hasDate {
			continue
		}
		a.total++
		// Unknown attendance counts as not attended.
		if attended, ok := r.Get(domain.ColAttended).AsBool(); ok && attended {
			a.attended++
		}
		if a.first.IsZero() || date.Before(a.first) {
			a.first = date
		}
		if date.After(a.last) {
			a.last = date
		}
	}
	return out
}

func aggregateSurveys(t *table.Table) map[masterKey]*surveyAgg {
	out := map[masterKey]*surveyAgg{}
	if t == nil {
		return out
	}
	for i := 0; i < t.NumRows(); i++ {
		r := t.Row(i)
		k, ok := keyOf(r)
		if !ok {
			continue
		}
		s := out[k]
		if s == nil {
			s = &surveyAgg{}
			out[k] = s
		}

		s.responses++
		if score, ok := r.Get(domain.ColSurveyScore).AsFloat(); ok {
			s.scoreSum += score
			s.scoreCount++
		}
		if nps, ok := r.Get(domain.ColNPS).AsFloat(); ok {
			s.npsSum += nps
			s.npsCount++
		}
		if date, ok := r.Get(domain.ColEventDate).AsDate(); ok && date.After(s.last) {
			s.last = date
		}
	}
	return out
}

// representativeOutcomes keeps, per key, the row with the highest
// post_score. A missing post_score loses to any present one; among equal
// scores the earliest row wins.
func representativeOutcomes(t *table.Table) map[masterKey]table.Row {
	out := map[masterKey]table.Row{}
	if t == nil {
		return out
	}
	for i := 0; i < t.NumRows(); i++ {
		r := t.Row(i)
		k, ok := keyOf(r)
		if !ok {
			continue
		}
		cur, seen := out[k]
		if !seen {
			out[k] = r
			continue
		}
		post, ok := r.Get(domain.ColPostScore).AsFloat()
		if !ok {
			continue
		}
		best, hasBest := cur.Get(domain.ColPostScore).AsFloat()
		if !hasBest || post > best {
			out[k] = r
		}
	}
	return out
}

// contactsByParticipant indexes contacts by id; a repeated id resolves to
// its last row.
func contactsByParticipant(t *table.Table) map[string]table.Row {
	out := map[string]table.Row{}
	if t == nil {
		return out
	}
	for i := 0; i < t.NumRows(); i++ {
		r := t.Row(i)
		if pid, ok := r.Get(domain.ColParticipantID).AsString(); ok {
			out[pid] = r
		}
	}
	return out
}

func mean(sum float64, n int) table.Value {
	if n == 0 {
		return table.Null
	}
	return table.Float(sum / float64(n))
}
