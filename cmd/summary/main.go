package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"impactetl/internal/config"
	"impactetl/internal/dataprocessing"
	"impactetl/internal/files"
	"impactetl/internal/infrastructure"
	"impactetl/internal/table"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run prints the KPIs of the master table as JSON
func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("summary", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configFile := flags.String("config", "", "YAML config file locating the clean directory")
	masterPath := flags.String("master", "", "master table to read (overrides the configured clean directory)")
	cities := flags.String("city", "", "comma separated cities to keep")
	programs := flags.String("program", "", "comma separated program ids to keep")
	from := flags.String("from", "", "keep participants with a session on or after this date (YYYY-MM-DD)")
	to := flags.String("to", "", "keep participants with a session on or before this date (YYYY-MM-DD)")
	minAttendance := flags.Float64("min-attendance", 0, "minimum attendance rate (0-1)")
	minSatisfaction := flags.Float64("min-satisfaction", 0, "minimum average satisfaction (1-5)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	logger := infrastructure.NewLogger(stderr, cfg.Logging.Level)

	path := *masterPath
	if path == "" {
		path = config.NewPaths(cfg.Paths).MasterPath()
	}

	filter := dataprocessing.SummaryFilter{
		Cities:          splitList(*cities),
		Programs:        splitList(*programs),
		MinAttendance:   *minAttendance,
		MinSatisfaction: *minSatisfaction,
	}
	if filter.From, err = parseDay(*from); err != nil {
		return fmt.Errorf("invalid -from: %w", err)
	}
	if filter.To, err = parseDay(*to); err != nil {
		return fmt.Errorf("invalid -to: %w", err)
	}

	master, err := files.ReadMaster(path)
	if err != nil {
		return err
	}
	filtered := dataprocessing.FilterMaster(master, filter)
	logger.Debug("master table loaded",
		slog.String("path", path),
		slog.Int("rows", master.NumRows()),
		slog.Int("rows_selected", filtered.NumRows()))

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dataprocessing.Summarize(filtered))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(table.DateLayout, s)
}
