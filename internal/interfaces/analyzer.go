package interfaces

import (
	"context"

	"tradebook-analyzer/internal/types"
)

// Analyzer runs the full batch transform over an execution history. Calls
// are pure with respect to their input: the same execution set always yields
// an identical report.
type Analyzer interface {
	Analyze(ctx context.Context, executions []types.Execution) (*types.Report, error)
}
