package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"impactetl/internal/config"
	"impactetl/internal/datanorm"
	"impactetl/internal/dataprocessing"
	apperrors "impactetl/internal/errors"
	"impactetl/internal/infrastructure"
)

// Manager runs the pipeline steps in order against one configuration
type Manager struct {
	paths   *config.Paths
	steps   []Step
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewManager wires the pipeline steps from cfg. A nil telemetry falls back
// to the global OpenTelemetry providers.
func NewManager(cfg *config.Config, logger *slog.Logger, tel *infrastructure.Telemetry) (*Manager, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigError("configuration is required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "pipeline")

	tracer := otel.Tracer(infrastructure.InstrumentationName)
	meter := otel.Meter(infrastructure.InstrumentationName)
	if tel != nil {
		tracer = tel.Tracer
		meter = tel.Meter
	}
	metrics, err := infrastructure.NewPipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	mapper, err := datanorm.NewColumnMapper(cfg.Pipeline.ColumnAliases)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid column aliases", err)
	}

	paths := config.NewPaths(cfg.Paths)
	cleaner := dataprocessing.NewCleaner(mapper, logger)

	return &Manager{
		paths: paths,
		steps: []Step{
			NewBootstrapStep(paths, cfg.Pipeline, logger),
			NewLoadStep(paths, metrics, logger),
			NewCleanStep(cleaner, cfg.Pipeline.ParallelClean, metrics, logger),
			NewMasterStep(metrics, logger),
			NewQualityStep(logger),
			NewPersistStep(paths, cfg.Output, logger),
		},
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}, nil
}

// Paths returns the resolved input and output paths
func (m *Manager) Paths() *config.Paths {
	return m.paths
}

// Steps returns the steps in execution order
func (m *Manager) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Run executes one pipeline run. The returned state is never nil and
// describes how far the run got, also when an error is returned.
func (m *Manager) Run(ctx context.Context) (*RunState, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	state := NewRunState(runID, m.steps)

	ctx, span := m.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("paths.raw", m.paths.RawDir),
			attribute.String("paths.clean", m.paths.CleanDir),
		),
	)
	defer span.End()

	state.Start()
	m.logger.InfoContext(ctx, "pipeline started",
		slog.String("raw_dir", m.paths.RawDir),
		slog.String("clean_dir", m.paths.CleanDir),
		slog.Int("steps", len(m.steps)))

	err := m.executeSequential(ctx, state)
	duration := time.Since(state.StartTime)
	m.metrics.RecordRun(ctx, duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		if apperrors.TypeOf(err) == apperrors.ErrTypeCancelled {
			state.Cancel(err)
			m.logger.WarnContext(ctx, "pipeline cancelled",
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
		} else {
			state.Fail(err)
			m.logger.ErrorContext(ctx, "pipeline failed",
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
		}
		return state, err
	}

	state.Complete()
	span.SetStatus(codes.Ok, "")
	m.logger.InfoContext(ctx, "pipeline completed",
		slog.Duration("duration", duration),
		slog.Int("master_rows", state.Master.NumRows()),
		slog.Bool("bootstrapped", state.Bootstrapped))
	return state, nil
}

// executeSequential runs the steps in order. Cancellation is honoured
// between steps; a failed or cancelled step skips everything after it.
func (m *Manager) executeSequential(ctx context.Context, state *RunState) error {
	for i, step := range m.steps {
		if err := ctx.Err(); err != nil {
			m.skipRemaining(state, i, "run cancelled")
			return apperrors.NewCancellationError(step.ID(), err)
		}
		if err := m.executeStep(ctx, state, step); err != nil {
			m.skipRemaining(state, i+1, fmt.Sprintf("step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStep runs a single step inside its own span
func (m *Manager) executeStep(ctx context.Context, state *RunState, step Step) error {
	stepState := state.GetStep(step.ID())
	ctx, span := m.tracer.Start(ctx, "pipeline.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
	defer span.End()

	m.logger.DebugContext(ctx, "step started", slog.String("step", step.ID()))
	stepState.Start()
	start := time.Now()
	err := step.Execute(ctx, state)
	duration := time.Since(start)
	m.metrics.RecordStep(ctx, step.ID(), duration, err)

	if err != nil {
		err = attributeToStep(step.ID(), err)
		stepState.Fail(err)
		infrastructure.RecordError(ctx, err)
		m.logger.ErrorContext(ctx, "step failed",
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return err
	}

	stepState.Complete()
	span.SetStatus(codes.Ok, "")
	m.logger.InfoContext(ctx, "step completed",
		slog.String("step", step.ID()),
		slog.Duration("duration", duration))
	return nil
}

func (m *Manager) skipRemaining(state *RunState, from int, reason string) {
	for _, step := range m.steps[from:] {
		state.GetStep(step.ID()).Skip(reason)
	}
}

// attributeToStep tags err with the step it came from
func attributeToStep(step string, err error) error {
	var pe *apperrors.PipelineError
	if errors.As(err, &pe) {
		return pe.WithStep(step)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewCancellationError(step, err)
	}
	return fmt.Errorf("step %s: %w", step, err)
}
