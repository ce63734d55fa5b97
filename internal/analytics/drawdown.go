package analytics

import (
	"math"
	"time"

	"tradebook-analyzer/internal/types"
)

// Drawdown reconstructs the drawdown path over the day-ordered cumulative
// net P&L series. A period opens on the first day cumulative P&L sits below
// the running peak and closes (recovered) on the first day it reaches the
// peak again; a trailing period is emitted unrecovered if the series ends
// below its peak.
func Drawdown(days []types.DayRecord) types.DrawdownReport {
	report := types.DrawdownReport{Periods: []types.DrawdownPeriod{}}
	if len(days) == 0 {
		return report
	}

	cumulative := 0.0
	peak := math.Inf(-1)
	var current *types.DrawdownPeriod

	for i, d := range days {
		cumulative += d.NetPnL
		if i == 0 {
			peak = cumulative
			continue
		}

		if cumulative >= peak {
			if current != nil {
				current.RecoveryDate = d.Date
				current.RecoveryDays = daysBetween(current.StartDate, d.Date)
				current.Recovered = true
				report.Periods = append(report.Periods, *current)
				current = nil
			}
			if cumulative > peak {
				peak = cumulative
			}
			continue
		}

		if current == nil {
			current = &types.DrawdownPeriod{
				StartDate: d.Date,
				EndDate:   d.Date,
				Peak:      peak,
				Trough:    cumulative,
			}
		} else {
			current.EndDate = d.Date
			if cumulative < current.Trough {
				current.Trough = cumulative
			}
		}
		current.Amount = current.Peak - current.Trough
		current.Percent = percentOf(current.Amount, current.Peak)
		current.DurationDays = daysBetween(current.StartDate, current.EndDate) + 1
	}

	if current != nil {
		report.Periods = append(report.Periods, *current)
		report.CurrentDrawdown = peak - cumulative
	}

	for _, p := range report.Periods {
		if p.Amount > report.MaxDrawdown {
			report.MaxDrawdown = p.Amount
		}
	}
	return report
}

func percentOf(amount, peak float64) float64 {
	if peak == 0 {
		return 0
	}
	return amount / math.Abs(peak) * 100
}

func daysBetween(from, to string) int {
	a, errA := time.Parse(types.DateLayout, from)
	b, errB := time.Parse(types.DateLayout, to)
	if errA != nil || errB != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
