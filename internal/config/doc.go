// Package config provides configuration for the impact ETL pipeline.
// It loads settings from multiple sources, validates them and resolves the
// file layout a run reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// The YAML file is taken from IMPACT_CONFIG, or from impactetl.yaml or
// configs/impactetl.yaml in the working directory when present.
//
// # Environment Variables
//
// All environment variables follow the pattern IMPACT_<SECTION>_<FIELD>:
//
//	IMPACT_PATHS_RAW_DIR=data_raw
//	IMPACT_PATHS_CLEAN_DIR=data_clean
//	IMPACT_LOGGING_LEVEL=debug
//	IMPACT_PIPELINE_PARALLEL_CLEAN=false
//	IMPACT_PIPELINE_COLUMN_ALIASES=learner_id:participant_id,venue:city
//	IMPACT_OUTPUT_EXCEL_BOM=true
//	IMPACT_TELEMETRY_METRICS_FILE=metrics/impactetl.prom
//
// # Path Management
//
// Paths resolves every raw input and clean output location from PathsConfig:
//
//	cfg, err := config.Load("")
//	paths := config.NewPaths(cfg.Paths)
//	master := paths.MasterPath() // data_clean/master_dataset.csv
//
// There is no package-level configuration; callers pass the Config they
// loaded to the components that need it.
package config
