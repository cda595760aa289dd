package dataprocessing

import (
	"impactetl/internal/datanorm"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// Surveys cleans survey responses. Out-of-range scores become Null but the
// row is kept; rows missing either id are dropped.
func (c *Cleaner) Surveys(raw *table.Table) *table.Table {
	t := c.prepare(raw,
		domain.ColParticipantID,
		domain.ColProgramID,
		domain.ColEventDate,
		domain.ColSurveyScore,
		domain.ColNPS,
	)

	t = t.Apply(domain.ColParticipantID, datanorm.ParticipantID)
	t = t.Apply(domain.ColProgramID, datanorm.ProgramID)
	t = t.Apply(domain.ColEventDate, datanorm.Date)
	t = t.Apply(domain.ColSurveyScore, func(v table.Value) table.Value {
		return datanorm.BoundedScore(v, MinSurveyScore, MaxSurveyScore)
	})
	t = t.Apply(domain.ColNPS, func(v table.Value) table.Value {
		return datanorm.BoundedScore(v, MinNPS, MaxNPS)
	})

	return t.DropMissing(domain.ColParticipantID, domain.ColProgramID)
}
