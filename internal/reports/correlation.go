package reports

import (
	"sort"

	"tradebook-analyzer/internal/stats"
	"tradebook-analyzer/internal/types"
)

// MinOverlapDays is the minimum number of shared observation days required
// before a correlation is reported at all. Pairs below it are omitted, not
// reported as 0.
const MinOverlapDays = 5

// Correlations computes pairwise Pearson correlations between the per-symbol
// daily realized P&L series. Multi-day positions apportion their P&L evenly
// across spanned dates, mirroring the day-record policy.
func Correlations(positions []*types.Position) []types.CorrelationPair {
	series := symbolDailyPnL(positions)

	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var pairs []types.CorrelationPair
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			a, b := series[symbols[i]], series[symbols[j]]

			dates := make([]string, 0)
			for d := range a {
				if _, ok := b[d]; ok {
					dates = append(dates, d)
				}
			}
			if len(dates) < MinOverlapDays {
				continue
			}
			sort.Strings(dates)

			xs := make([]float64, len(dates))
			ys := make([]float64, len(dates))
			for k, d := range dates {
				xs[k] = a[d]
				ys[k] = b[d]
			}
			pairs = append(pairs, types.CorrelationPair{
				SymbolA:     symbols[i],
				SymbolB:     symbols[j],
				Correlation: stats.Correlation(xs, ys),
				Overlap:     len(dates),
			})
		}
	}
	return pairs
}

func symbolDailyPnL(positions []*types.Position) map[string]map[string]float64 {
	series := make(map[string]map[string]float64)
	for _, p := range positions {
		if p.Status != types.StatusClosed || p.RealizedPnL == 0 {
			continue
		}
		dates := p.TradeDates()
		if len(dates) == 0 {
			continue
		}
		days := series[p.Symbol]
		if days == nil {
			days = make(map[string]float64)
			series[p.Symbol] = days
		}
		share := p.RealizedPnL / float64(len(dates))
		for _, d := range dates {
			days[d] += share
		}
	}
	return series
}
