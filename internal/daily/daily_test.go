package daily

import (
	"math"
	"testing"
	"time"

	"tradebook-analyzer/internal/types"
)

var ist = types.IST()

func order(id, date, side string, qty int, price float64) *types.Order {
	day, _ := time.ParseInLocation(types.DateLayout, date, ist)
	at := day.Add(10 * time.Hour)
	return &types.Order{
		ID:         id,
		Symbol:     "NIFTY",
		Instrument: types.InstrumentFuture,
		Expiry:     "2025-01-30",
		Side:       side,
		Qty:        qty,
		Value:      float64(qty) * price,
		AvgPrice:   price,
		ExecutedAt: at,
		TradeDate:  date,
		Executions: []types.Execution{{ID: id + "-e1", OrderID: id, Qty: qty, Price: price, TradeDate: date, ExecutedAt: at}},
	}
}

func closedPosition(pnl float64, orders ...*types.Order) *types.Position {
	return &types.Position{
		ID:          "P-000001",
		Symbol:      "NIFTY",
		Instrument:  types.InstrumentFuture,
		Status:      types.StatusClosed,
		RealizedPnL: pnl,
		Orders:      orders,
	}
}

func TestTurnoverPass(t *testing.T) {
	o1 := order("A", "2025-01-06", types.SideBuy, 10, 100)
	o2 := order("B", "2025-01-06", types.SideSell, 10, 110)
	charges := map[string]types.Charges{
		"A": {Total: 25},
		"B": {Total: 30},
	}

	days := Build([]*types.Order{o1, o2}, nil, charges)
	if len(days) != 1 {
		t.Fatalf("expected 1 day record, got %d", len(days))
	}
	d := days[0]
	if d.Date != "2025-01-06" {
		t.Errorf("date = %s, want 2025-01-06", d.Date)
	}
	if d.Turnover != 1000+1100 {
		t.Errorf("turnover = %f, want 2100", d.Turnover)
	}
	if d.Brokerage != 55 {
		t.Errorf("brokerage = %f, want 55", d.Brokerage)
	}
	if d.OrderCount != 2 || d.ExecutionCount != 2 {
		t.Errorf("counts = %d/%d, want 2/2", d.OrderCount, d.ExecutionCount)
	}
}

func TestSingleDayPnLAndWinRate(t *testing.T) {
	o1 := order("A", "2025-01-06", types.SideBuy, 10, 100)
	o2 := order("B", "2025-01-06", types.SideSell, 10, 110)
	pos := closedPosition(1000, o1, o2)

	days := Build([]*types.Order{o1, o2}, []*types.Position{pos}, map[string]types.Charges{"A": {Total: 25}, "B": {Total: 25}})
	d := days[0]

	if math.Abs(d.RealizedPnL-1000) > 1e-9 {
		t.Errorf("realized = %f, want 1000", d.RealizedPnL)
	}
	if math.Abs(d.NetPnL-950) > 1e-9 {
		t.Errorf("net = %f, want 950", d.NetPnL)
	}
	if d.WinningOrders != 1 || d.LosingOrders != 0 {
		t.Errorf("win/loss orders = %d/%d, want 1/0", d.WinningOrders, d.LosingOrders)
	}
	if d.WinningExecutions != 2 {
		t.Errorf("winning executions = %d, want 2 (position exec count)", d.WinningExecutions)
	}
	if d.OrderWinRate != 100 || d.ExecutionWinRate != 100 {
		t.Errorf("win rates = %f/%f, want 100/100", d.OrderWinRate, d.ExecutionWinRate)
	}
}

func TestMultiDayApportionment(t *testing.T) {
	o1 := order("A", "2025-01-06", types.SideBuy, 30, 100)
	o2 := order("B", "2025-01-07", types.SideSell, 10, 110)
	o3 := order("C", "2025-01-08", types.SideSell, 20, 110)
	pos := closedPosition(300, o1, o2, o3)

	days := Build([]*types.Order{o1, o2, o3}, []*types.Position{pos}, nil)
	if len(days) != 3 {
		t.Fatalf("expected 3 day records, got %d", len(days))
	}

	for _, d := range days {
		if math.Abs(d.RealizedPnL-100) > 1e-9 {
			t.Errorf("day %s realized = %f, want even share 100", d.Date, d.RealizedPnL)
		}
	}

	// Win attribution lands only on the last spanned date.
	for _, d := range days[:2] {
		if d.WinningOrders != 0 || d.LosingOrders != 0 {
			t.Errorf("day %s should carry no outcome flags", d.Date)
		}
	}
	last := days[2]
	if last.Date != "2025-01-08" || last.WinningOrders != 1 {
		t.Errorf("last day %s winning orders = %d, want 1", last.Date, last.WinningOrders)
	}
	if last.WinningExecutions != 3 {
		t.Errorf("last day winning executions = %d, want 3", last.WinningExecutions)
	}
}

func TestLosingPositionClassification(t *testing.T) {
	o1 := order("A", "2025-01-06", types.SideBuy, 10, 110)
	o2 := order("B", "2025-01-06", types.SideSell, 10, 100)
	pos := closedPosition(-100, o1, o2)

	days := Build([]*types.Order{o1, o2}, []*types.Position{pos}, nil)
	d := days[0]
	if d.LosingOrders != 1 || d.WinningOrders != 0 {
		t.Errorf("win/loss = %d/%d, want 0/1", d.WinningOrders, d.LosingOrders)
	}
	if d.OrderWinRate != 0 {
		t.Errorf("order win rate = %f, want 0", d.OrderWinRate)
	}
}

func TestOpenAndZeroPnLPositionsSkipped(t *testing.T) {
	o1 := order("A", "2025-01-06", types.SideBuy, 10, 100)
	open := &types.Position{Status: types.StatusOpen, RealizedPnL: 50, Orders: []*types.Order{o1}}
	flat := closedPosition(0, o1)

	days := Build([]*types.Order{o1}, []*types.Position{open, flat}, nil)
	d := days[0]
	if d.RealizedPnL != 0 || d.WinningOrders != 0 || d.LosingOrders != 0 {
		t.Errorf("open/zero-pnl positions must not contribute, got %+v", d)
	}
}

func TestEmptyInput(t *testing.T) {
	if days := Build(nil, nil, nil); len(days) != 0 {
		t.Errorf("expected no day records, got %d", len(days))
	}
}
