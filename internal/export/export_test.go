package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"testing"

	"tradebook-analyzer/internal/types"
)

func TestWriteDaysCSV(t *testing.T) {
	days := []types.DayRecord{
		{Date: "2024-08-14", Turnover: 10000, Brokerage: 45.5, OrderCount: 2, ExecutionCount: 3, RealizedPnL: 500, NetPnL: 454.5, WinningOrders: 1, OrderWinRate: 100},
		{Date: "2024-08-16", Turnover: 5000, Brokerage: 21.25, OrderCount: 1, ExecutionCount: 1, RealizedPnL: -200, NetPnL: -221.25, LosingOrders: 1},
	}

	path, err := WriteDaysCSV(t.TempDir(), days)
	if err != nil {
		t.Fatalf("WriteDaysCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	// header, two days, TOTAL
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[1][0] != "2024-08-14" || records[1][6] != "454.50" {
		t.Errorf("unexpected first day row: %v", records[1])
	}
	total := records[3]
	if total[0] != "TOTAL" {
		t.Fatalf("expected TOTAL row, got %v", total)
	}
	if total[6] != "233.25" {
		t.Errorf("expected total net 233.25, got %s", total[6])
	}
}

func TestWriteReportJSON(t *testing.T) {
	report := &types.Report{
		Fingerprint: "abc123",
		Summary:     types.Summary{TotalPositions: 1, NetPnL: 42},
	}

	path, err := WriteReportJSON(t.TempDir(), report)
	if err != nil {
		t.Fatalf("WriteReportJSON failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var decoded types.Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Fingerprint != "abc123" || decoded.Summary.NetPnL != 42 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
