package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "impactetl/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "impactetl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data_raw", cfg.Paths.RawDir)
	assert.Equal(t, "data_clean", cfg.Paths.CleanDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.True(t, cfg.Pipeline.ParallelClean)
	assert.True(t, cfg.Pipeline.Bootstrap)
	assert.Equal(t, uint64(42), cfg.Pipeline.Seed)
	assert.False(t, cfg.Output.ExcelBOM)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "file overrides defaults",
			file: `
paths:
  raw_dir: in
  clean_dir: out
pipeline:
  parallel_clean: false
  column_aliases:
    learner_id: participant_id
output:
  excel_bom: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "in", cfg.Paths.RawDir)
				assert.Equal(t, "out", cfg.Paths.CleanDir)
				assert.False(t, cfg.Pipeline.ParallelClean)
				assert.True(t, cfg.Pipeline.Bootstrap, "unset keys keep defaults")
				assert.Equal(t, map[string]string{"learner_id": "participant_id"}, cfg.Pipeline.ColumnAliases)
				assert.True(t, cfg.Output.ExcelBOM)
			},
		},
		{
			name: "env overrides file",
			file: "paths:\n  raw_dir: from_file\nlogging:\n  level: warn\n",
			env: map[string]string{
				"IMPACT_PATHS_RAW_DIR": "from_env",
				"IMPACT_PIPELINE_SEED": "7",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from_env", cfg.Paths.RawDir)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, uint64(7), cfg.Pipeline.Seed)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"IMPACT_LOGGING_LEVEL": "chatty"},
			wantErr: true,
		},
		{
			name:    "file output requires a path",
			file:    "logging:\n  output: file\n  file_path: \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "paths: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Point at an empty file so a stray impactetl.yaml is never picked up.
			path := writeConfigFile(t, tt.file)
			cfg, err := Load(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeConfig, apperrors.TypeOf(err))
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := writeConfigFile(t, "paths:\n  clean_dir: via_env_file\n")
	t.Setenv("IMPACT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "via_env_file", cfg.Paths.CleanDir)
}

func TestValidate_EmptyAlias(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.ColumnAliases = map[string]string{"venue": ""}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "venue")
}
