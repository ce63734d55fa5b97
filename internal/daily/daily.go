package daily

import (
	"sort"

	"tradebook-analyzer/internal/types"
)

// Build buckets orders and matched positions into calendar-day records.
//
// Two passes, both keyed by IST trade date:
//
//  1. Turnover pass over orders: value, charges, order and execution counts.
//  2. P&L pass over closed positions with nonzero realized P&L: a position
//     spanning a single date books its full P&L and its win/loss flags
//     there; a multi-day position has its P&L apportioned evenly across the
//     spanned dates while the win/loss flags land only on the last date, so
//     one holding never counts as two outcomes.
//
// orderCharges maps order ID to its charge breakdown; missing entries count
// as zero charges.
func Build(orders []*types.Order, positions []*types.Position, orderCharges map[string]types.Charges) []types.DayRecord {
	days := make(map[string]*types.DayRecord)

	record := func(date string) *types.DayRecord {
		d := days[date]
		if d == nil {
			d = &types.DayRecord{Date: date}
			days[date] = d
		}
		return d
	}

	for _, o := range orders {
		d := record(o.TradeDate)
		d.Turnover += o.Value
		d.Brokerage += orderCharges[o.ID].Total
		d.OrderCount++
		d.ExecutionCount += len(o.Executions)
	}

	for _, p := range positions {
		if p.Status != types.StatusClosed || p.RealizedPnL == 0 {
			continue
		}

		dates := p.TradeDates()
		if len(dates) == 0 {
			continue
		}

		share := p.RealizedPnL / float64(len(dates))
		for _, date := range dates {
			record(date).RealizedPnL += share
		}

		last := record(dates[len(dates)-1])
		if p.RealizedPnL > 0 {
			last.WinningOrders++
			last.WinningExecutions += p.ExecCount()
		} else {
			last.LosingOrders++
			last.LosingExecutions += p.ExecCount()
		}
	}

	out := make([]types.DayRecord, 0, len(days))
	for _, d := range days {
		d.NetPnL = d.RealizedPnL - d.Brokerage
		d.OrderWinRate = winRate(d.WinningOrders, d.LosingOrders)
		d.ExecutionWinRate = winRate(d.WinningExecutions, d.LosingExecutions)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func winRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}
