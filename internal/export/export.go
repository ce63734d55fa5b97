package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tradebook-analyzer/internal/types"
)

// WriteDaysCSV writes the per-day aggregate series to outDir/daily.csv with a
// trailing TOTAL row, and returns the written path.
func WriteDaysCSV(outDir string, days []types.DayRecord) (string, error) {
	outPath := filepath.Join(outDir, "daily.csv")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()

	headers := []string{"date", "turnover", "charges", "orders", "executions", "realized_pnl", "net_pnl", "winning_orders", "losing_orders", "order_win_rate"}
	if err := w.Write(headers); err != nil {
		return "", err
	}

	var totalTurnover, totalCharges, totalRealized, totalNet float64
	var totalOrders int
	for _, d := range days {
		rec := []string{
			d.Date,
			fmt.Sprintf("%.2f", d.Turnover),
			fmt.Sprintf("%.2f", d.Brokerage),
			strconv.Itoa(d.OrderCount),
			strconv.Itoa(d.ExecutionCount),
			fmt.Sprintf("%.2f", d.RealizedPnL),
			fmt.Sprintf("%.2f", d.NetPnL),
			strconv.Itoa(d.WinningOrders),
			strconv.Itoa(d.LosingOrders),
			fmt.Sprintf("%.2f", d.OrderWinRate),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalTurnover += d.Turnover
		totalCharges += d.Brokerage
		totalRealized += d.RealizedPnL
		totalNet += d.NetPnL
		totalOrders += d.OrderCount
	}
	totals := []string{
		"TOTAL",
		fmt.Sprintf("%.2f", totalTurnover),
		fmt.Sprintf("%.2f", totalCharges),
		strconv.Itoa(totalOrders),
		"",
		fmt.Sprintf("%.2f", totalRealized),
		fmt.Sprintf("%.2f", totalNet),
		"", "", "",
	}
	if err := w.Write(totals); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteReportJSON writes the full report to outDir/report.json, indented, and
// returns the written path.
func WriteReportJSON(outDir string, report *types.Report) (string, error) {
	outPath := filepath.Join(outDir, "report.json")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, append(b, '\n'), 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}
