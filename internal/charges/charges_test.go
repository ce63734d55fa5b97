package charges

import (
	"math"
	"testing"

	"tradebook-analyzer/internal/types"
)

func futOrder(side string, value float64) *types.Order {
	return &types.Order{
		ID:         "ORD1",
		Symbol:     "NIFTY",
		Instrument: types.InstrumentFuture,
		Expiry:     "2025-01-30",
		Side:       side,
		Qty:        50,
		Value:      value,
		AvgPrice:   value / 50,
	}
}

func optOrder(side string, value float64) *types.Order {
	o := futOrder(side, value)
	o.Instrument = types.InstrumentCall
	o.Strike = 21500
	return o
}

func TestFuturesBrokerageCeiling(t *testing.T) {
	// 0.03% of 10,00,000 is 300, well above the 20 cap.
	c := Compute(futOrder(types.SideBuy, 1_000_000), "NSE")
	if c.Brokerage != 20 {
		t.Errorf("brokerage = %f, want capped 20", c.Brokerage)
	}
}

func TestFuturesBrokerageBelowCap(t *testing.T) {
	c := Compute(futOrder(types.SideBuy, 10_000), "NSE")
	want := 10_000 * 0.0003
	if math.Abs(c.Brokerage-want) > 1e-9 {
		t.Errorf("brokerage = %f, want %f", c.Brokerage, want)
	}
}

func TestOptionsFlatBrokerage(t *testing.T) {
	c := Compute(optOrder(types.SideBuy, 5_000), "NSE")
	if c.Brokerage != 20 {
		t.Errorf("options brokerage = %f, want flat 20", c.Brokerage)
	}
}

func TestSTTSellSideOnly(t *testing.T) {
	buy := Compute(futOrder(types.SideBuy, 500_000), "NSE")
	if buy.STT != 0 {
		t.Errorf("buy-side STT = %f, want 0", buy.STT)
	}

	sell := Compute(futOrder(types.SideSell, 500_000), "NSE")
	want := 500_000 * 0.0002
	if math.Abs(sell.STT-want) > 1e-9 {
		t.Errorf("futures sell STT = %f, want %f", sell.STT, want)
	}

	optSell := Compute(optOrder(types.SideSell, 50_000), "NSE")
	wantOpt := 50_000 * 0.001
	if math.Abs(optSell.STT-wantOpt) > 1e-9 {
		t.Errorf("options sell STT = %f, want %f", optSell.STT, wantOpt)
	}
}

func TestStampBuySideOnly(t *testing.T) {
	sell := Compute(futOrder(types.SideSell, 500_000), "NSE")
	if sell.StampCharges != 0 {
		t.Errorf("sell-side stamp = %f, want 0", sell.StampCharges)
	}

	buy := Compute(futOrder(types.SideBuy, 500_000), "NSE")
	want := math.Min(500_000*0.00002, 200.0*500_000/1e7)
	if math.Abs(buy.StampCharges-want) > 1e-9 {
		t.Errorf("buy-side stamp = %f, want %f", buy.StampCharges, want)
	}
}

func TestSEBIChargesSideIndependent(t *testing.T) {
	buy := Compute(futOrder(types.SideBuy, 1e7), "NSE")
	sell := Compute(futOrder(types.SideSell, 1e7), "NSE")
	if buy.SEBICharges != 10 || sell.SEBICharges != 10 {
		t.Errorf("SEBI charges = %f/%f, want 10 per crore both sides", buy.SEBICharges, sell.SEBICharges)
	}
}

func TestGSTAndTotal(t *testing.T) {
	c := Compute(futOrder(types.SideSell, 1_000_000), "NSE")

	wantGST := 0.18 * (c.Brokerage + c.SEBICharges + c.TransactionCharges)
	if math.Abs(c.GST-wantGST) > 1e-9 {
		t.Errorf("GST = %f, want %f", c.GST, wantGST)
	}

	wantTotal := c.Brokerage + c.STT + c.TransactionCharges + c.SEBICharges + c.StampCharges + c.GST
	if math.Abs(c.Total-wantTotal) > 1e-9 {
		t.Errorf("total = %f, want %f", c.Total, wantTotal)
	}
}

func TestUnknownInstrumentDefaultsToZeroBrokerage(t *testing.T) {
	o := futOrder(types.SideSell, 100_000)
	o.Instrument = "EQ"
	c := Compute(o, "NSE")
	if c.Brokerage != 0 || c.STT != 0 {
		t.Errorf("unknown instrument brokerage/STT = %f/%f, want 0/0", c.Brokerage, c.STT)
	}
	if c.SEBICharges == 0 {
		t.Errorf("SEBI charges should still apply to unknown instruments")
	}
}

func TestUnknownExchangeHasNoTransactionCharges(t *testing.T) {
	c := Compute(futOrder(types.SideBuy, 100_000), "MCX")
	if c.TransactionCharges != 0 {
		t.Errorf("transaction charges = %f, want 0 for unlisted exchange", c.TransactionCharges)
	}
}
