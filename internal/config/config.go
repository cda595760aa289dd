package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "impactetl/internal/errors"
)

// EnvPrefix namespaces every environment override (IMPACT_PATHS_RAW_DIR, ...).
const EnvPrefix = "IMPACT"

// Config represents the complete pipeline configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PathsConfig names the raw input and clean output directories
type PathsConfig struct {
	RawDir   string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	CleanDir string `yaml:"clean_dir" envconfig:"CLEAN_DIR" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PipelineConfig tunes how a run is executed
type PipelineConfig struct {
	// ParallelClean runs the four cleaners concurrently.
	ParallelClean bool `yaml:"parallel_clean" envconfig:"PARALLEL_CLEAN"`
	// Bootstrap writes sample raw files when any input is missing.
	Bootstrap bool `yaml:"bootstrap" envconfig:"BOOTSTRAP"`
	// Seed drives the sample data generator.
	Seed uint64 `yaml:"seed" envconfig:"SEED"`
	// ColumnAliases extends the header synonym table (raw name -> canonical).
	ColumnAliases map[string]string `yaml:"column_aliases" envconfig:"COLUMN_ALIASES"`
}

// OutputConfig controls how clean tables are written
type OutputConfig struct {
	// ExcelBOM prefixes every CSV with a UTF-8 byte order mark.
	ExcelBOM bool `yaml:"excel_bom" envconfig:"EXCEL_BOM"`
}

// TelemetryConfig controls traces and metrics
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			RawDir:   "data_raw",
			CleanDir: "data_clean",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/pipeline.log",
		},
		Pipeline: PipelineConfig{
			ParallelClean: true,
			Bootstrap:     true,
			Seed:          42,
		},
		Output: OutputConfig{
			ExcelBOM: false,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "impactetl",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// IMPACT_* environment variables, in increasing order of precedence.
// An empty configFile falls back to the well-known locations; an explicit
// path that does not exist is an error.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, apperrors.NewConfigError("config file not found", err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from %s", configFile), err)
		}
	}

	// Fields without a matching variable keep their file or default value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and the column alias table.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	for raw, canonical := range c.Pipeline.ColumnAliases {
		if raw == "" || canonical == "" {
			return apperrors.NewConfigError(fmt.Sprintf("invalid column alias %q -> %q", raw, canonical), nil)
		}
	}
	return nil
}

// getConfigFilePath returns the first config file found, or ""
func getConfigFilePath() string {
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env
	}

	locations := []string{
		"impactetl.yaml",
		"configs/impactetl.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}
