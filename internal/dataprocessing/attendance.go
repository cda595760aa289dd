package dataprocessing

import (
	"impactetl/internal/datanorm"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// Attendance cleans session attendance. A session without a resolvable
// date cannot be counted, so such rows are dropped with the id-less ones.
func (c *Cleaner) Attendance(raw *table.Table) *table.Table {
	t := c.prepare(raw,
		domain.ColParticipantID,
		domain.ColProgramID,
		domain.ColEventDate,
		domain.ColAttended,
		domain.ColCity,
	)

	t = t.Apply(domain.ColParticipantID, datanorm.ParticipantID)
	t = t.Apply(domain.ColProgramID, datanorm.ProgramID)
	t = t.Apply(domain.ColEventDate, datanorm.Date)
	t = t.Apply(domain.ColAttended, datanorm.Attended)
	t = t.Apply(domain.ColCity, datanorm.City)

	return t.DropMissing(domain.ColParticipantID, domain.ColProgramID, domain.ColEventDate)
}
