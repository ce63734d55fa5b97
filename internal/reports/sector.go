package reports

import (
	"sort"

	"tradebook-analyzer/internal/types"
)

// SectorUnknown buckets symbols with no classification.
const SectorUnknown = "UNKNOWN"

// SectorBreakdown is a one-pass map-reduce over the closed-position ledger,
// grouped by the sector of each position's symbol. Rows come back sorted by
// realized P&L, best first.
func SectorBreakdown(positions []*types.Position, sectors map[string]string) []types.SectorStat {
	bySector := make(map[string]*types.SectorStat)

	for _, p := range positions {
		if p.Status != types.StatusClosed {
			continue
		}
		sector := sectors[p.Symbol]
		if sector == "" {
			sector = SectorUnknown
		}
		row := bySector[sector]
		if row == nil {
			row = &types.SectorStat{Sector: sector}
			bySector[sector] = row
		}
		row.Positions++
		row.RealizedPnL += p.RealizedPnL
		row.Turnover += p.BuyValue + p.SellValue
		if p.RealizedPnL > 0 {
			row.Wins++
		} else if p.RealizedPnL < 0 {
			row.Losses++
		}
	}

	out := make([]types.SectorStat, 0, len(bySector))
	for _, row := range bySector {
		if total := row.Wins + row.Losses; total > 0 {
			row.WinRate = float64(row.Wins) / float64(total) * 100
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RealizedPnL == out[j].RealizedPnL {
			return out[i].Sector < out[j].Sector
		}
		return out[i].RealizedPnL > out[j].RealizedPnL
	})
	return out
}
