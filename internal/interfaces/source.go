package interfaces

import (
	"context"

	"tradebook-analyzer/internal/types"
)

// TradebookSource supplies the validated execution history. Implementations
// own parsing and schema validation; the analytics core performs none.
type TradebookSource interface {
	Executions(ctx context.Context) ([]types.Execution, error)
}

// BenchmarkSource supplies benchmark index closes for the comparison report.
type BenchmarkSource interface {
	BenchmarkSeries(ctx context.Context, from, to string) ([]types.BenchmarkPoint, error)
}
