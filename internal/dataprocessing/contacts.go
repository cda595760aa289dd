package dataprocessing

import (
	"impactetl/internal/datanorm"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// Contacts cleans the CRM export. Rows without a participant id are
// dropped and repeated ids collapse to their last occurrence.
func (c *Cleaner) Contacts(raw *table.Table) *table.Table {
	t := c.prepare(raw,
		domain.ColParticipantID,
		domain.ColCity,
		domain.ColEmail,
		domain.ColPhone,
		domain.ColDOB,
	)

	t = t.Apply(domain.ColParticipantID, datanorm.ParticipantID)
	t = t.Apply(domain.ColCity, datanorm.City)
	t = t.Apply(domain.ColDOB, datanorm.Date)
	t = t.Apply(domain.ColEmail, datanorm.Text)
	t = t.Apply(domain.ColPhone, datanorm.Text)

	return t.DropMissing(domain.ColParticipantID).DedupLast(domain.ColParticipantID)
}
