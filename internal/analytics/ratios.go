package analytics

import (
	"math"

	"tradebook-analyzer/internal/stats"
	"tradebook-analyzer/internal/types"
)

// Trading days per year, used to annualize daily figures.
const tradingDays = 252

// Ratios derives the risk-adjusted return measures from the daily net P&L
// series. Every ratio resolves to 0 when its denominator is 0.
func Ratios(days []types.DayRecord, maxDrawdown float64) types.Ratios {
	series := make([]float64, len(days))
	for i, d := range days {
		series[i] = d.NetPnL
	}

	mean := stats.Mean(series)
	stdDev := stats.StdDev(series)
	downside := stats.DownsideDeviation(series)
	annualized := mean * tradingDays

	r := types.Ratios{
		MeanDailyPnL:     mean,
		DailyStdDev:      stdDev,
		AnnualizedReturn: annualized,
	}
	if stdDev > 0 {
		r.Sharpe = annualized / (stdDev * math.Sqrt(tradingDays))
	}
	if downside > 0 {
		r.Sortino = annualized / (downside * math.Sqrt(tradingDays))
	}
	if maxDrawdown > 0 {
		r.Calmar = annualized / maxDrawdown
	}
	return r
}
