package tradebook

import (
	"strings"
	"testing"

	"tradebook-analyzer/internal/types"
)

const sampleCSV = `symbol,isin,trade_date,exchange,segment,series,trade_type,auction,quantity,price,trade_id,order_id,order_execution_time,expiry_date
NIFTY24AUG24400CE,,2024-08-14,NSE,FO,,buy,false,50,125.50,200001,110000001,2024-08-14T09:30:15,2024-08-29
NIFTY24AUG24400CE,,2024-08-14,NSE,FO,,sell,false,50,140.00,200002,110000002,2024-08-14T14:45:03,2024-08-29
BANKNIFTY2481451000PE,,2024-08-14,NSE,FO,,buy,false,15,310.25,200003,110000003,2024-08-14T10:05:44,2024-08-14
RELIANCE24AUGFUT,,2024-08-14,NSE,FO,,sell,false,250,2955.00,200004,110000004,2024-08-14T11:20:00,2024-08-29
RELIANCE,INE002A01018,2024-08-14,NSE,EQ,EQ,buy,false,10,2950.00,200005,110000005,2024-08-14T12:00:00,
`

func TestParseTradebook(t *testing.T) {
	executions, skipped, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped equity row, got %d", skipped)
	}
	if len(executions) != 4 {
		t.Fatalf("expected 4 executions, got %d", len(executions))
	}

	first := executions[0]
	if first.Symbol != "NIFTY" || first.Instrument != types.InstrumentCall {
		t.Errorf("expected NIFTY CE, got %s %s", first.Symbol, first.Instrument)
	}
	if first.Strike != 24400 {
		t.Errorf("expected strike 24400, got %g", first.Strike)
	}
	if first.Expiry != "2024-08-29" {
		t.Errorf("expected expiry 2024-08-29, got %s", first.Expiry)
	}
	if first.Side != types.SideBuy || first.Qty != 50 || first.Price != 125.50 {
		t.Errorf("unexpected fill: %+v", first)
	}
	if first.TradeDate != "2024-08-14" {
		t.Errorf("expected trade date 2024-08-14, got %s", first.TradeDate)
	}
	if got := first.ExecutedAt.In(types.IST()).Format("15:04:05"); got != "09:30:15" {
		t.Errorf("expected execution time 09:30:15 IST, got %s", got)
	}

	weekly := executions[2]
	if weekly.Symbol != "BANKNIFTY" || weekly.Instrument != types.InstrumentPut {
		t.Errorf("expected BANKNIFTY PE, got %s %s", weekly.Symbol, weekly.Instrument)
	}
	if weekly.Strike != 51000 {
		t.Errorf("expected weekly strike 51000, got %g", weekly.Strike)
	}

	fut := executions[3]
	if fut.Symbol != "RELIANCE" || fut.Instrument != types.InstrumentFuture {
		t.Errorf("expected RELIANCE FUT, got %s %s", fut.Symbol, fut.Instrument)
	}
	if fut.Strike != 0 {
		t.Errorf("expected zero strike on future, got %g", fut.Strike)
	}
	if fut.Side != types.SideSell {
		t.Errorf("expected sell side, got %s", fut.Side)
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	bad := `symbol,isin,trade_date,exchange,segment,series,trade_type,auction,quantity,price,trade_id,order_id,order_execution_time,expiry_date
NIFTY24AUG24400CE,,2024-08-14,NSE,FO,,short,false,50,125.50,200001,110000001,2024-08-14T09:30:15,2024-08-29
`
	if _, _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for unknown trade_type")
	}

	badQty := `symbol,isin,trade_date,exchange,segment,series,trade_type,auction,quantity,price,trade_id,order_id,order_execution_time,expiry_date
NIFTY24AUG24400CE,,2024-08-14,NSE,FO,,buy,false,0,125.50,200001,110000001,2024-08-14T09:30:15,2024-08-29
`
	if _, _, err := Parse(strings.NewReader(badQty)); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestParseSkipsTruncatedContractCode(t *testing.T) {
	// a garbage symbol with a short contract code must be skipped like any
	// other non-derivative row, not take down the whole parse
	csv := `symbol,isin,trade_date,exchange,segment,series,trade_type,auction,quantity,price,trade_id,order_id,order_execution_time,expiry_date
A2481CE,,2024-08-14,NSE,FO,,buy,false,50,125.50,200001,110000001,2024-08-14T09:30:15,2024-08-29
NIFTY24AUG24400CE,,2024-08-14,NSE,FO,,buy,false,50,125.50,200002,110000002,2024-08-14T09:31:00,2024-08-29
`
	executions, skipped, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
	if len(executions) != 1 || executions[0].ID != "200002" {
		t.Errorf("expected only the valid row to survive, got %+v", executions)
	}
}

func TestSplitContract(t *testing.T) {
	cases := []struct {
		symbol     string
		underlying string
		instrument string
		strike     float64
		wantErr    bool
	}{
		{"NIFTY24AUG24400CE", "NIFTY", types.InstrumentCall, 24400, false},
		{"NIFTY24O0824500PE", "NIFTY", types.InstrumentPut, 24500, false},
		{"BANKNIFTY2481451000PE", "BANKNIFTY", types.InstrumentPut, 51000, false},
		{"RELIANCE24AUGFUT", "RELIANCE", types.InstrumentFuture, 0, false},
		{"RELIANCE", "", "", 0, true},
		{"NIFTYCE", "", "", 0, true},
		// truncated contract codes must error, never panic
		{"A2481CE", "", "", 0, true},
		{"NIFTY24CE", "", "", 0, true},
		{"NIFTY24AUGCE", "", "", 0, true},
	}
	for _, c := range cases {
		underlying, instrument, strike, err := splitContract(c.symbol)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", c.symbol)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.symbol, err)
			continue
		}
		if underlying != c.underlying || instrument != c.instrument || strike != c.strike {
			t.Errorf("%s: got (%s, %s, %g), want (%s, %s, %g)",
				c.symbol, underlying, instrument, strike, c.underlying, c.instrument, c.strike)
		}
	}
}
