package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"impactetl/internal/config"
	"impactetl/internal/infrastructure"
	"impactetl/internal/operations"
	"impactetl/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("pipeline failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run executes one pipeline run with the configuration named by args
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	configFile := flags.String("config", "", "YAML config file (defaults to $IMPACT_CONFIG, impactetl.yaml or configs/impactetl.yaml)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closeLog()

	tel, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting pipeline",
		slog.String("version", contracts.Version),
		slog.String("schema", contracts.SchemaVersion))

	manager, err := operations.NewManager(cfg, logger, tel)
	if err != nil {
		return err
	}

	state, runErr := manager.Run(ctx)
	if err := tel.WriteMetrics(); err != nil {
		logger.Warn("failed to write metrics", slog.String("error", err.Error()))
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(stdout, "master table written to %s (%d rows)\n",
		manager.Paths().MasterPath(), state.Master.NumRows())
	for _, r := range state.Quality {
		fmt.Fprintf(stdout, "  %-18s rows=%-5d cols=%-3d missing=%-5d duplicates=%d\n",
			r.Table, r.Rows, r.Cols, r.MissingValues, r.DuplicateRows)
	}
	return nil
}
