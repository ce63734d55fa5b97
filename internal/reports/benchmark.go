package reports

import (
	"sort"

	"tradebook-analyzer/internal/stats"
	"tradebook-analyzer/internal/types"
)

// Benchmark compares the daily net P&L series against a benchmark index
// close series. Returns nil when fewer than MinOverlapDays dates overlap.
// An outperforming day is one where the account made money while the index
// closed down.
func Benchmark(days []types.DayRecord, index []types.BenchmarkPoint, symbol string) *types.BenchmarkReport {
	closes := make(map[string]float64, len(index))
	for _, p := range index {
		closes[p.Date] = p.Close
	}

	// Benchmark daily change needs the previous session's close.
	indexDates := make([]string, 0, len(closes))
	for d := range closes {
		indexDates = append(indexDates, d)
	}
	sort.Strings(indexDates)
	changes := make(map[string]float64)
	for i := 1; i < len(indexDates); i++ {
		changes[indexDates[i]] = closes[indexDates[i]] - closes[indexDates[i-1]]
	}

	var pnls, moves []float64
	report := &types.BenchmarkReport{Symbol: symbol}
	var firstClose, lastClose float64
	for _, d := range days {
		move, ok := changes[d.Date]
		if !ok {
			continue
		}
		pnls = append(pnls, d.NetPnL)
		moves = append(moves, move)
		report.CumulativePnL += d.NetPnL
		if d.NetPnL > 0 && move < 0 {
			report.OutperformingDays++
		}
		if firstClose == 0 {
			firstClose = closes[d.Date]
		}
		lastClose = closes[d.Date]
	}

	if len(pnls) < MinOverlapDays {
		return nil
	}

	report.Overlap = len(pnls)
	report.Correlation = stats.Correlation(pnls, moves)
	if firstClose != 0 {
		report.BenchmarkReturn = (lastClose - firstClose) / firstClose * 100
	}
	return report
}
