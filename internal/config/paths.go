package config

import (
	"os"
	"path/filepath"

	"impactetl/pkg/contracts/domain"
)

// Raw input file names, relative to the raw directory.
const (
	ContactsFile   = "crm_export.csv"
	SurveysFile    = "survey_responses.csv"
	AttendanceFile = "attendance.xlsx"
	OutcomesFile   = "program_outcomes.xlsx"
)

// Paths holds every file location a run touches.
type Paths struct {
	RawDir   string
	CleanDir string

	// Raw inputs
	Contacts   string
	Surveys    string
	Attendance string
	Outcomes   string
}

// NewPaths resolves the file layout under the configured directories
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		RawDir:     cfg.RawDir,
		CleanDir:   cfg.CleanDir,
		Contacts:   filepath.Join(cfg.RawDir, ContactsFile),
		Surveys:    filepath.Join(cfg.RawDir, SurveysFile),
		Attendance: filepath.Join(cfg.RawDir, AttendanceFile),
		Outcomes:   filepath.Join(cfg.RawDir, OutcomesFile),
	}
}

// RawInputs returns the four raw input paths in source order.
func (p *Paths) RawInputs() []string {
	return []string{p.Contacts, p.Surveys, p.Attendance, p.Outcomes}
}

// MissingInputs returns the raw inputs that do not exist.
func (p *Paths) MissingInputs() []string {
	var missing []string
	for _, path := range p.RawInputs() {
		if !FileExists(path) {
			missing = append(missing, path)
		}
	}
	return missing
}

// OutputPath returns the CSV path of a clean output table
func (p *Paths) OutputPath(table string) string {
	return filepath.Join(p.CleanDir, table+".csv")
}

// MasterPath returns the path of the master dataset
func (p *Paths) MasterPath() string {
	return p.OutputPath(domain.TableMaster)
}

// QualityReportPath returns the path of the data quality report
func (p *Paths) QualityReportPath() string {
	return p.OutputPath(domain.TableQuality)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
