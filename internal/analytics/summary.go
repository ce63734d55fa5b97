package analytics

import (
	"math"

	"tradebook-analyzer/internal/types"
)

// Summarize computes the aggregate statistics block from the position ledger
// and the day series. Wins and losses count closed positions with nonzero
// realized P&L; profit factor resolves to +Inf when there are wins and no
// losses, and to 0 when there are no wins.
func Summarize(positions []*types.Position, days []types.DayRecord) types.Summary {
	s := types.Summary{TotalPositions: len(positions)}

	var grossWin, grossLoss float64
	for _, p := range positions {
		if p.Status != types.StatusClosed {
			continue
		}
		s.ClosedPositions++
		if p.RealizedPnL == 0 {
			continue
		}
		if p.RealizedPnL > 0 {
			s.Wins++
			grossWin += p.RealizedPnL
			if p.RealizedPnL > s.MaxWin {
				s.MaxWin = p.RealizedPnL
			}
		} else {
			s.Losses++
			grossLoss += -p.RealizedPnL
			if p.RealizedPnL < s.MaxLoss {
				s.MaxLoss = p.RealizedPnL
			}
		}
	}

	if s.Wins+s.Losses > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Wins+s.Losses) * 100
	}
	if s.Wins > 0 {
		s.AvgWin = grossWin / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = -grossLoss / float64(s.Losses)
	}

	switch {
	case grossLoss > 0:
		s.ProfitFactor = grossWin / grossLoss
	case grossWin > 0:
		s.ProfitFactor = math.Inf(1)
	}

	for _, d := range days {
		s.GrossTurnover += d.Turnover
		s.TotalBrokerage += d.Brokerage
		s.NetPnL += d.NetPnL
	}
	return s
}
