package dataprocessing

import (
	"slices"
	"sort"
	"strings"
	"time"

	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// SummaryFilter narrows the master rows a summary is computed over. Zero
// fields do not filter.
type SummaryFilter struct {
	Cities          []string
	Programs        []string
	From            time.Time // keep rows whose last session is on or after From
	To              time.Time // keep rows whose first session is on or before To
	MinAttendance   float64
	MinSatisfaction float64
}

// FilterMaster returns the master rows matching f. Rows without session
// dates pass the date range; a missing rate or satisfaction counts as zero
// against the minimums.
func FilterMaster(master *table.Table, f SummaryFilter) *table.Table {
	return master.Filter(func(r table.Row) bool {
		if len(f.Cities) > 0 && !slices.Contains(f.Cities, cityLabel(r.Get(domain.ColCity))) {
			return false
		}
		if len(f.Programs) > 0 {
			prg, _ := r.Get(domain.ColProgramID).AsString()
			if !slices.Contains(f.Programs, prg) {
				return false
			}
		}
		if !f.To.IsZero() {
			if first, ok := r.Get(domain.ColFirstSession).AsDate(); ok && first.After(f.To) {
				return false
			}
		}
		if !f.From.IsZero() {
			if last, ok := r.Get(domain.ColLastSession).AsDate(); ok && last.Before(f.From) {
				return false
			}
		}
		if f.MinAttendance > 0 && floatOrZero(r.Get(domain.ColAttendanceRate)) < f.MinAttendance {
			return false
		}
		if f.MinSatisfaction > 0 && floatOrZero(r.Get(domain.ColAvgSatisfaction)) < f.MinSatisfaction {
			return false
		}
		return true
	})
}

// Summarize computes the headline KPIs and per-program and per-city
// breakdowns of a master table. Means skip missing values.
func Summarize(master *table.Table) domain.ImpactSummary {
	participants := map[string]bool{}
	programs := map[string]*programAcc{}
	cities := map[string]*cityAcc{}
	var rate, satisfaction, delta meanAcc

	for i := 0; i < master.NumRows(); i++ {
		r := master.Row(i)
		pid, _ := r.Get(domain.ColParticipantID).AsString()
		prg, _ := r.Get(domain.ColProgramID).AsString()
		participants[pid] = true

		rate.add(r.Get(domain.ColAttendanceRate))
		satisfaction.add(r.Get(domain.ColAvgSatisfaction))
		delta.add(r.Get(domain.ColOutcomeDelta))

		p := programs[prg]
		if p == nil {
			p = &programAcc{participants: map[string]bool{}}
			programs[prg] = p
		}
		p.participants[pid] = true
		p.rate.add(r.Get(domain.ColAttendanceRate))
		if n, ok := r.Get(domain.ColSessionsTotal).AsInt(); ok {
			p.sessions += n
		}

		label := cityLabel(r.Get(domain.ColCity))
		c := cities[label]
		if c == nil {
			c = &cityAcc{participants: map[string]bool{}}
			cities[label] = c
		}
		c.participants[pid] = true
		c.delta.add(r.Get(domain.ColOutcomeDelta))
		c.satisfaction.add(r.Get(domain.ColAvgSatisfaction))
	}

	summary := domain.ImpactSummary{
		Rows:              master.NumRows(),
		Participants:      len(participants),
		Programs:          len(programs),
		AvgAttendanceRate: rate.value(),
		AvgSatisfaction:   satisfaction.value(),
		AvgOutcomeDelta:   delta.value(),
		ByProgram:         []domain.ProgramSummary{},
		ByCity:            []domain.CitySummary{},
	}

	for id, p := range programs {
		summary.ByProgram = append(summary.ByProgram, domain.ProgramSummary{
			ProgramID:         id,
			Participants:      len(p.participants),
			AvgAttendanceRate: p.rate.value(),
			SessionsTotal:     p.sessions,
		})
	}
	sort.Slice(summary.ByProgram, func(i, j int) bool {
		return summary.ByProgram[i].ProgramID < summary.ByProgram[j].ProgramID
	})

	for name, c := range cities {
		summary.ByCity = append(summary.ByCity, domain.CitySummary{
			City:            name,
			Participants:    len(c.participants),
			AvgOutcomeDelta: c.delta.value(),
			AvgSatisfaction: c.satisfaction.value(),
		})
	}
	sort.Slice(summary.ByCity, func(i, j int) bool {
		return summary.ByCity[i].City < summary.ByCity[j].City
	})

	return summary
}

type programAcc struct {
	participants map[string]bool
	rate         meanAcc
	sessions     int64
}

type cityAcc struct {
	participants map[string]bool
	delta        meanAcc
	satisfaction meanAcc
}

type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v table.Value) {
	if f, ok := v.AsFloat(); ok {
		m.sum += f
		m.n++
	}
}

func (m *meanAcc) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

func cityLabel(v table.Value) string {
	s, ok := v.AsString()
	if !ok || strings.TrimSpace(s) == "" {
		return domain.UnknownCity
	}
	return strings.TrimSpace(s)
}

func floatOrZero(v table.Value) float64 {
	f, _ := v.AsFloat()
	return f
}
