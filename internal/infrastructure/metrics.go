package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics groups the instruments a run records.
type PipelineMetrics struct {
	RunsTotal    metric.Int64Counter
	RunDuration  metric.Float64Histogram
	StepsTotal   metric.Int64Counter
	StepDuration metric.Float64Histogram
	TableRows    metric.Int64Gauge
	HeapAlloc    metric.Int64Gauge
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	runsTotal, err := meter.Int64Counter(
		"impactetl_runs",
		metric.WithDescription("Pipeline runs by status"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"impactetl_run_duration",
		metric.WithDescription("Wall time of a pipeline run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stepsTotal, err := meter.Int64Counter(
		"impactetl_steps",
		metric.WithDescription("Pipeline steps executed by step and status"),
	)
	if err != nil {
		return nil, err
	}

	stepDuration, err := meter.Float64Histogram(
		"impactetl_step_duration",
		metric.WithDescription("Wall time of a pipeline step"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	tableRows, err := meter.Int64Gauge(
		"impactetl_table_rows",
		metric.WithDescription("Row count of a table at a pipeline phase"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"impactetl_heap_alloc",
		metric.WithDescription("Heap bytes allocated at the end of a run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RunsTotal:    runsTotal,
		RunDuration:  runDuration,
		StepsTotal:   stepsTotal,
		StepDuration: stepDuration,
		TableRows:    tableRows,
		HeapAlloc:    heapAlloc,
	}, nil
}

// RecordStep records the outcome and duration of one step
func (m *PipelineMetrics) RecordStep(ctx context.Context, step string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status(err)),
	)
	m.StepsTotal.Add(ctx, 1, attrs)
	m.StepDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordTableRows records the size of a table; phase is "raw" or "clean".
func (m *PipelineMetrics) RecordTableRows(ctx context.Context, table, phase string, rows int) {
	m.TableRows.Record(ctx, int64(rows), metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("phase", phase),
	))
}

// RecordRun records the outcome of a run and a heap snapshot
func (m *PipelineMetrics) RecordRun(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("status", status(err)))
	m.RunsTotal.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, duration.Seconds(), attrs)

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.HeapAlloc.Record(ctx, int64(ms.HeapAlloc))
}

func status(err error) string {
	if err != nil {
		return "failed"
	}
	return "completed"
}
