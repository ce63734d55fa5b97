package analytics

import (
	"sort"

	"tradebook-analyzer/internal/types"
)

// Streaks run-length encodes the win/loss outcomes of closed positions
// ordered by open time. The final run is reported as "current" since it is
// still extendable by the next closed trade.
func Streaks(positions []*types.Position) types.StreakReport {
	report := types.StreakReport{Streaks: []types.Streak{}}

	outcomes := make([]*types.Position, 0, len(positions))
	for _, p := range positions {
		if p.Status == types.StatusClosed && p.RealizedPnL != 0 {
			outcomes = append(outcomes, p)
		}
	}
	if len(outcomes) == 0 {
		return report
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].OpenedAt.Before(outcomes[j].OpenedAt)
	})

	var runs []types.Streak
	for _, p := range outcomes {
		outcome := types.StreakLoss
		if p.RealizedPnL > 0 {
			outcome = types.StreakWin
		}
		if n := len(runs); n > 0 && runs[n-1].Type == outcome {
			runs[n-1].Length++
		} else {
			runs = append(runs, types.Streak{Type: outcome, Length: 1})
		}
	}

	report.Streaks = runs
	report.Current = runs[len(runs)-1]

	var winRuns, lossRuns, winTotal, lossTotal int
	for _, r := range runs {
		if r.Type == types.StreakWin {
			winRuns++
			winTotal += r.Length
			if r.Length > report.LongestWinStreak {
				report.LongestWinStreak = r.Length
			}
		} else {
			lossRuns++
			lossTotal += r.Length
			if r.Length > report.LongestLossStreak {
				report.LongestLossStreak = r.Length
			}
		}
	}
	if winRuns > 0 {
		report.AvgWinStreak = float64(winTotal) / float64(winRuns)
	}
	if lossRuns > 0 {
		report.AvgLossStreak = float64(lossTotal) / float64(lossRuns)
	}
	return report
}
