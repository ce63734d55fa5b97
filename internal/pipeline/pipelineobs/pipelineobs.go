package pipelineobs

import (
	"context"
	"time"

	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/trace"
	"tradebook-analyzer/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(analyzer interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: analyzer,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, executions []types.Execution) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.Analyze")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting tradebook analysis",
		"executions", len(executions),
	)

	report, err := oa.analyzer.Analyze(ctx, executions)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Tradebook analysis failed", err,
			"executions", len(executions),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Tradebook analysis completed",
		"executions", len(executions),
		"positions", len(report.Positions),
		"days", len(report.Days),
		"net_pnl", report.Summary.NetPnL,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
