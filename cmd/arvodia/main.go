// Command arvodia validates an uploaded personnel or compensation spreadsheet
// from the command line and reports what a bulk import would accept.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/arvodia/arvodia/internal/domain/fees"
	"github.com/arvodia/arvodia/internal/domain/ingest/service"
	"github.com/arvodia/arvodia/pkg/config"
)

func main() {
	kind := flag.String("kind", "personnel", "record kind: personnel or compensation")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: arvodia [-kind personnel|compensation] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)

	if cfg.Import.FeeTablePath != "" {
		reportFeeTable(logger, cfg.Import.FeeTablePath)
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("open file", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	svc := service.New(staticCostCenters(cfg.Import.CostCenters), logger)
	svc.ScanLimit = cfg.Import.ScanLimit
	if cfg.Import.CSVDelimiter != "" {
		svc.CSVDelimiter = rune(cfg.Import.CSVDelimiter[0])
	}

	switch *kind {
	case "personnel":
		result, err := svc.ImportPersonnel(f, path)
		if err != nil {
			logger.Error("import failed", slog.Any("error", err))
			os.Exit(1)
		}
		reportRejections(logger, result.Rejected)
	case "compensation":
		result, err := svc.ImportCompensation(f, path)
		if err != nil {
			logger.Error("import failed", slog.Any("error", err))
			os.Exit(1)
		}
		reportRejections(logger, result.Rejected)
	default:
		fmt.Fprintln(os.Stderr, "unknown kind:", *kind)
		os.Exit(2)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func reportRejections(logger *slog.Logger, rejected []service.RowIssues) {
	for _, issue := range rejected {
		for _, w := range issue.Warnings {
			logger.Warn("row rejected",
				slog.Int("row", issue.Row),
				slog.String("field", w.Field),
				slog.String("severity", string(w.Severity)),
				slog.String("message", w.Message))
		}
	}
}

func reportFeeTable(logger *slog.Logger, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read fee table", slog.String("path", path), slog.Any("error", err))
		return
	}
	var table fees.Table
	if err := json.Unmarshal(data, &table); err != nil {
		logger.Error("parse fee table", slog.String("path", path), slog.Any("error", err))
		return
	}
	res := fees.Validate(table)
	for _, msg := range res.Errors {
		logger.Error("fee table", slog.String("problem", msg))
	}
	for _, msg := range res.Warnings {
		logger.Warn("fee table", slog.String("problem", msg))
	}
	if res.Valid {
		logger.Info("fee table valid", slog.Int("rules", len(table)))
	}
}

// staticCostCenters resolves cost centers against a fixed code list, the CLI
// stand-in for the real lookup collaborator.
type staticCostCenters []string

func (s staticCostCenters) IsValidCostCenter(text string) bool {
	if len(s) == 0 {
		return true
	}
	for _, code := range s {
		if code == text {
			return true
		}
	}
	return false
}

func (s staticCostCenters) ResolveDisplayText(code string) string { return code }
