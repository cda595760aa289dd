package dataprocessing

import (
	"impactetl/internal/datanorm"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// Outcomes cleans program outcome scores. Unparseable scores become Null;
// only rows missing an id are dropped.
func (c *Cleaner) Outcomes(raw *table.Table) *table.Table {
	t := c.prepare(raw,
		domain.ColParticipantID,
		domain.ColProgramID,
		domain.ColPreScore,
		domain.ColPostScore,
		domain.ColCity,
	)

	t = t.Apply(domain.ColParticipantID, datanorm.ParticipantID)
	t = t.Apply(domain.ColProgramID, datanorm.ProgramID)
	t = t.Apply(domain.ColPreScore, datanorm.Number)
	t = t.Apply(domain.ColPostScore, datanorm.Number)
	t = t.Apply(domain.ColCity, datanorm.City)

	return t.DropMissing(domain.ColParticipantID, domain.ColProgramID)
}
