// Package datanorm canonicalizes raw program-record fields.
//
// It holds the three leaf normalizers every table cleaner relies on:
//
//   - ColumnMapper renames arbitrary headers ("Participant Id", "Site",
//     "Present") onto the canonical schema in pkg/contracts/domain.
//   - ParticipantID and ProgramID collapse identifier variants into the
//     padded P-###### and PRG-### forms.
//   - City, Date, Attended, Number, BoundedScore and Text turn messy cell
//     values into typed table values, degrading to Null instead of failing.
//
// Nothing in this package returns an error for bad data.
package datanorm
