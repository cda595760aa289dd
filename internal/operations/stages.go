package operations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"impactetl/internal/bootstrap"
	"impactetl/internal/config"
	"impactetl/internal/dataprocessing"
	apperrors "impactetl/internal/errors"
	"impactetl/internal/exporter"
	"impactetl/internal/files"
	"impactetl/internal/infrastructure"
	"impactetl/internal/table"
	"impactetl/internal/validation"
	"impactetl/pkg/contracts/domain"
)

// Row count phases reported to the table rows gauge.
const (
	phaseRaw   = "raw"
	phaseClean = "clean"
)

// sourcePath returns the raw input file of a source
func sourcePath(paths *config.Paths, source dataprocessing.Source) string {
	switch source {
	case dataprocessing.SourceContacts:
		return paths.Contacts
	case dataprocessing.SourceSurveys:
		return paths.Surveys
	case dataprocessing.SourceAttendance:
		return paths.Attendance
	case dataprocessing.SourceOutcomes:
		return paths.Outcomes
	}
	return ""
}

// BootstrapStep generates sample raw data when any raw input is missing
type BootstrapStep struct {
	BaseStep
	paths   *config.Paths
	enabled bool
	seed    uint64
	logger  *slog.Logger
}

// NewBootstrapStep creates the bootstrap step
func NewBootstrapStep(paths *config.Paths, cfg config.PipelineConfig, logger *slog.Logger) *BootstrapStep {
	return &BootstrapStep{
		BaseStep: NewBaseStep(StepBootstrap, "Bootstrap raw data"),
		paths:    paths,
		enabled:  cfg.Bootstrap,
		seed:     cfg.Seed,
		logger:   logger,
	}
}

// Execute implements Step
func (s *BootstrapStep) Execute(ctx context.Context, state *RunState) error {
	missing := s.paths.MissingInputs()
	if len(missing) == 0 {
		s.logger.DebugContext(ctx, "all raw inputs present", slog.String("dir", s.paths.RawDir))
		return nil
	}
	if !s.enabled {
		return apperrors.NewIOError(missing[0],
			fmt.Sprintf("%d raw input(s) missing and bootstrap is disabled", len(missing)),
			errors.Join(apperrors.ErrSourceUnreadable, fs.ErrNotExist))
	}

	s.logger.WarnContext(ctx, "raw inputs missing, generating sample data",
		slog.Any("missing", missing),
		slog.Uint64("seed", s.seed))
	if err := bootstrap.Generate(s.paths, s.seed, s.logger); err != nil {
		return err
	}
	state.Bootstrapped = true
	return nil
}

// LoadStep reads the four raw tables
type LoadStep struct {
	BaseStep
	paths     *config.Paths
	validator *validation.FileValidator
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
}

// NewLoadStep creates the load step
func NewLoadStep(paths *config.Paths, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *LoadStep {
	return &LoadStep{
		BaseStep:  NewBaseStep(StepLoad, "Load raw tables"),
		paths:     paths,
		validator: validation.NewFileValidator(logger),
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute implements Step
func (s *LoadStep) Execute(ctx context.Context, state *RunState) error {
	if err := s.validator.ValidateInputs(s.paths.RawInputs()); err != nil {
		return err
	}
	if found, err := files.FindTables(s.paths.RawDir); err == nil {
		s.logger.DebugContext(ctx, "raw directory scanned",
			slog.String("dir", s.paths.RawDir),
			slog.Int("tables", len(found)))
	}

	for _, source := range dataprocessing.Sources {
		path := sourcePath(s.paths, source)
		t, err := files.ReadTable(path)
		if err != nil {
			return err
		}
		state.Raw[source] = t
		state.setStepMetadata(s.ID(), source.String()+"_rows", t.NumRows())
		s.metrics.RecordTableRows(ctx, source.String(), phaseRaw, t.NumRows())

		attrs := []any{
			slog.String("source", source.String()),
			slog.String("path", path),
			slog.Int("rows", t.NumRows()),
			slog.Int("cols", t.NumCols()),
		}
		if info, err := files.Stat(path); err == nil {
			attrs = append(attrs, slog.Int64("bytes", info.Size))
		}
		s.logger.InfoContext(ctx, "raw table loaded", attrs...)
	}
	return nil
}

// CleanStep runs the four table cleaners, concurrently when configured
type CleanStep struct {
	BaseStep
	cleaner  *dataprocessing.Cleaner
	parallel bool
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// NewCleanStep creates the clean step
func NewCleanStep(cleaner *dataprocessing.Cleaner, parallel bool, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *CleanStep {
	return &CleanStep{
		BaseStep: NewBaseStep(StepClean, "Clean tables"),
		cleaner:  cleaner,
		parallel: parallel,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute implements Step
func (s *CleanStep) Execute(ctx context.Context, state *RunState) error {
	results := make([]*table.Table, len(dataprocessing.Sources))

	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, source := range dataprocessing.Sources {
			raw := state.Raw[source]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = s.cleaner.Clean(source, raw)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i, source := range dataprocessing.Sources {
			results[i] = s.cleaner.Clean(source, state.Raw[source])
		}
	}

	for i, source := range dataprocessing.Sources {
		out := results[i]
		state.Clean.Set(source, out)
		state.setStepMetadata(s.ID(), source.TableName(), map[string]int{
			"rows_in":  state.Raw[source].NumRows(),
			"rows_out": out.NumRows(),
		})
		s.metrics.RecordTableRows(ctx, source.TableName(), phaseClean, out.NumRows())
		s.logger.InfoContext(ctx, "table cleaned",
			slog.String("table", source.TableName()),
			slog.Int("rows_in", state.Raw[source].NumRows()),
			slog.Int("rows_out", out.NumRows()))
	}
	return nil
}

// MasterStep joins the clean tables into the master table
type MasterStep struct {
	BaseStep
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewMasterStep creates the master step
func NewMasterStep(metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *MasterStep {
	return &MasterStep{
		BaseStep: NewBaseStep(StepMaster, "Build master table"),
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute implements Step
func (s *MasterStep) Execute(ctx context.Context, state *RunState) error {
	state.Master = dataprocessing.BuildMaster(state.Clean)
	state.setStepMetadata(s.ID(), "rows", state.Master.NumRows())
	state.setStepMetadata(s.ID(), "cols", state.Master.NumCols())
	s.metrics.RecordTableRows(ctx, domain.TableMaster, phaseClean, state.Master.NumRows())
	s.logger.InfoContext(ctx, "master table built",
		slog.Int("rows", state.Master.NumRows()),
		slog.Int("cols", state.Master.NumCols()))
	return nil
}

// QualityStep measures the clean tables and the master table
type QualityStep struct {
	BaseStep
	logger *slog.Logger
}

// NewQualityStep creates the quality step
func NewQualityStep(logger *slog.Logger) *QualityStep {
	return &QualityStep{
		BaseStep: NewBaseStep(StepQuality, "Assess data quality"),
		logger:   logger,
	}
}

// Execute implements Step
func (s *QualityStep) Execute(ctx context.Context, state *RunState) error {
	named := make([]dataprocessing.NamedTable, 0, len(dataprocessing.Sources)+1)
	for _, source := range dataprocessing.Sources {
		named = append(named, dataprocessing.NamedTable{Name: source.TableName(), Table: state.Clean.Get(source)})
	}
	named = append(named, dataprocessing.NamedTable{Name: domain.TableMaster, Table: state.Master})

	state.Quality, state.QualityTable = dataprocessing.QualityReport(named...)
	for _, r := range state.Quality {
		s.logger.DebugContext(ctx, "quality assessed",
			slog.String("table", r.Table),
			slog.Int("rows", r.Rows),
			slog.Int("missing_values", r.MissingValues),
			slog.Int("duplicate_rows", r.DuplicateRows))
	}
	return nil
}

// PersistStep writes every clean table, the master table and the quality
// report to the clean directory
type PersistStep struct {
	BaseStep
	paths     *config.Paths
	validator *validation.FileValidator
	writer    *exporter.CSVWriter
	logger    *slog.Logger
}

// NewPersistStep creates the persist step
func NewPersistStep(paths *config.Paths, cfg config.OutputConfig, logger *slog.Logger) *PersistStep {
	return &PersistStep{
		BaseStep:  NewBaseStep(StepPersist, "Persist outputs"),
		paths:     paths,
		validator: validation.NewFileValidator(logger),
		writer:    exporter.NewCSVWriter(exporter.WriteOptions{BOMPrefix: cfg.ExcelBOM}, logger),
		logger:    logger,
	}
}

// Execute implements Step
func (s *PersistStep) Execute(ctx context.Context, state *RunState) error {
	if err := s.validator.ValidateOutputDirectory(s.paths.CleanDir); err != nil {
		return err
	}

	outputs := make([]dataprocessing.NamedTable, 0, len(dataprocessing.Sources)+2)
	for _, source := range dataprocessing.Sources {
		outputs = append(outputs, dataprocessing.NamedTable{Name: source.TableName(), Table: state.Clean.Get(source)})
	}
	outputs = append(outputs,
		dataprocessing.NamedTable{Name: domain.TableMaster, Table: state.Master},
		dataprocessing.NamedTable{Name: domain.TableQuality, Table: state.QualityTable},
	)

	for _, out := range outputs {
		path := s.paths.OutputPath(out.Name)
		if err := s.writer.WriteTable(path, out.Table); err != nil {
			return err
		}
		state.setStepMetadata(s.ID(), out.Name, path)
		s.logger.InfoContext(ctx, "output written",
			slog.String("table", out.Name),
			slog.String("path", path),
			slog.Int("rows", out.Table.NumRows()))
	}
	return nil
}
