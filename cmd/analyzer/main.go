package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tradebook-analyzer/internal/export"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/runlog"
	"tradebook-analyzer/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer trace.Shutdown(ctx)

	compressOldLogs(ctx)

	if err := run(ctx, *configPath); err != nil {
		logger.ErrorWithErr(ctx, "Analysis run failed", err)
		os.Exit(1)
	}
}

// compressOldLogs compresses old run logs if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("ANALYZER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := runlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old run logs", "error", err)
		}
	}
}

func run(ctx context.Context, configPath string) error {
	start := time.Now()

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	source := initializeSource(ctx, cfg)
	executions, err := source.Executions(ctx)
	if err != nil {
		return err
	}
	if len(executions) == 0 {
		logger.Warn(ctx, "Tradebook is empty, writing empty outputs")
	}

	sectors := resolveSectors(ctx, cfg, executions)
	benchmark := fetchBenchmark(ctx, cfg, executions)

	analyzer := initializeAnalyzer(cfg, sectors, benchmark)
	report, err := analyzer.Analyze(ctx, executions)
	if err != nil {
		return err
	}

	csvPath, err := export.WriteDaysCSV(cfg.OutputDir, report.Days)
	if err != nil {
		return fmt.Errorf("failed to write daily CSV: %w", err)
	}
	jsonPath, err := export.WriteReportJSON(cfg.OutputDir, report)
	if err != nil {
		return fmt.Errorf("failed to write report JSON: %w", err)
	}

	if err := runlog.Append(runlog.Entry{
		Source:      cfg.Source,
		Fingerprint: report.Fingerprint,
		Executions:  len(executions),
		Positions:   len(report.Positions),
		Days:        len(report.Days),
		NetPnL:      report.Summary.NetPnL,
		DurationMs:  time.Since(start).Milliseconds(),
	}); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}

	logger.Info(ctx, "Analysis complete",
		"positions", report.Summary.TotalPositions,
		"closed", report.Summary.ClosedPositions,
		"win_rate", fmt.Sprintf("%.1f%%", report.Summary.WinRate),
		"net_pnl", fmt.Sprintf("%.2f", report.Summary.NetPnL),
		"max_drawdown", fmt.Sprintf("%.2f", report.Drawdown.MaxDrawdown),
		"daily_csv", csvPath,
		"report_json", jsonPath,
	)
	return nil
}
