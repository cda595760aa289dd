package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "impactetl/internal/errors"
	"impactetl/pkg/contracts"
)

func writeConfig(t *testing.T, dir string, bootstrap bool) string {
	t.Helper()
	content := fmt.Sprintf(`paths:
  raw_dir: %s
  clean_dir: %s
logging:
  level: debug
  output: file
  file_path: %s
pipeline:
  bootstrap: %t
  seed: 7
telemetry:
  service_name: impactetl-test
  metrics_file: %s
`,
		filepath.Join(dir, "raw"),
		filepath.Join(dir, "clean"),
		filepath.Join(dir, "logs", "pipeline.log"),
		bootstrap,
		filepath.Join(dir, "metrics", "impactetl.prom"),
	)
	path := filepath.Join(dir, "impactetl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-version"}, &out))
	assert.Contains(t, out.String(), contracts.Version)
}

func TestRun_MissingConfigFile(t *testing.T) {
	err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
}

func TestRun_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, true)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath}, &out))

	assert.Contains(t, out.String(), "master table written to")
	assert.Contains(t, out.String(), "data_quality_report")
	assert.FileExists(t, filepath.Join(dir, "clean", "master_dataset.csv"))
	assert.FileExists(t, filepath.Join(dir, "raw", "crm_export.csv"))
	metrics, err := os.ReadFile(filepath.Join(dir, "metrics", "impactetl.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "# TYPE impactetl_runs_total counter")
	assert.Contains(t, string(metrics), `impactetl_runs_total{status="completed"} 1`)

	logData, err := os.ReadFile(filepath.Join(dir, "logs", "pipeline.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), `"msg":"pipeline completed"`)
	assert.Contains(t, string(logData), `"trace_id"`)
}

func TestRun_MissingInputsFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, false)

	err := run(context.Background(), []string{"-config", cfgPath}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeIO, apperrors.TypeOf(err))
	assert.NoFileExists(t, filepath.Join(dir, "clean", "master_dataset.csv"))
}
