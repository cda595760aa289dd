package dataprocessing

import (
	"io"
	"log/slog"

	"impactetl/internal/datanorm"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// Score ranges accepted by the survey cleaner; values outside become Null.
const (
	MinSurveyScore = 1
	MaxSurveyScore = 5
	MinNPS         = 0
	MaxNPS         = 10
)

// Source identifies one of the four raw program tables.
type Source int

const (
	SourceContacts Source = iota
	SourceSurveys
	SourceAttendance
	SourceOutcomes
)

// Sources lists every source in pipeline order.
var Sources = []Source{SourceContacts, SourceSurveys, SourceAttendance, SourceOutcomes}

// TableName returns the name of the clean table produced from the source.
func (s Source) TableName() string {
	switch s {
	case SourceContacts:
		return domain.TableContacts
	case SourceSurveys:
		return domain.TableSurveys
	case SourceAttendance:
		return domain.TableAttendance
	case SourceOutcomes:
		return domain.TableOutcomes
	}
	return "unknown"
}

// String implements fmt.Stringer
func (s Source) String() string {
	switch s {
	case SourceContacts:
		return "contacts"
	case SourceSurveys:
		return "surveys"
	case SourceAttendance:
		return "attendance"
	case SourceOutcomes:
		return "outcomes"
	}
	return "unknown"
}

// Cleaner turns raw source tables into clean tables. It holds no state
// besides its column mapper and is safe for concurrent use.
type Cleaner struct {
	mapper *datanorm.ColumnMapper
	logger *slog.Logger
}

// NewCleaner creates a cleaner using mapper for header canonicalization.
// A nil mapper means the built-in synonym table.
func NewCleaner(mapper *datanorm.ColumnMapper, logger *slog.Logger) *Cleaner {
	if mapper == nil {
		mapper = datanorm.DefaultColumnMapper()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{mapper: mapper, logger: logger}
}

var defaultCleaner = NewCleaner(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

// Clean dispatches raw to the cleaner of its source.
func (c *Cleaner) Clean(source Source, raw *table.Table) *table.Table {
	var out *table.Table
	switch source {
	case SourceContacts:
		out = c.Contacts(raw)
	case SourceSurveys:
		out = c.Surveys(raw)
	case SourceAttendance:
		out = c.Attendance(raw)
	case SourceOutcomes:
		out = c.Outcomes(raw)
	default:
		return raw.Clone()
	}

	c.logger.Debug("cleaned table",
		slog.String("table", source.TableName()),
		slog.Int("rows_in", raw.NumRows()),
		slog.Int("rows_out", out.NumRows()))
	return out
}

// prepare maps headers to canonical names and adds any missing required
// columns as all-Null.
func (c *Cleaner) prepare(raw *table.Table, columns ...string) *table.Table {
	return c.mapper.Map(raw).EnsureColumns(columns...)
}

// CleanContacts cleans a raw contacts table with the built-in synonyms.
func CleanContacts(raw *table.Table) *table.Table { return defaultCleaner.Contacts(raw) }

// CleanSurveys cleans a raw surveys table with the built-in synonyms.
func CleanSurveys(raw *table.Table) *table.Table { return defaultCleaner.Surveys(raw) }

// CleanAttendance cleans a raw attendance table with the built-in synonyms.
func CleanAttendance(raw *table.Table) *table.Table { return defaultCleaner.Attendance(raw) }

// CleanOutcomes cleans a raw outcomes table with the built-in synonyms.
func CleanOutcomes(raw *table.Table) *table.Table { return defaultCleaner.Outcomes(raw) }
