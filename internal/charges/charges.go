package charges

import (
	"math"

	"tradebook-analyzer/internal/types"
)

// India F&O fee schedule (discount-broker flat fee model).
const (
	futBrokerageRate = 0.0003 // 0.03% of value
	brokerageCap     = 20.0   // flat/ceiling per order, INR

	futSTTRate = 0.0002 // 0.02% on sell value
	optSTTRate = 0.001  // 0.1% on sell premium

	sebiRatePerCrore = 10.0 // INR 10 per crore of value
	crore            = 1e7

	futStampRate     = 0.00002 // 0.002% on buy value
	futStampCapCrore = 200.0
	optStampRate     = 0.00003 // 0.003% on buy premium
	optStampCapCrore = 300.0

	gstRate = 0.18
)

// Exchange transaction charges, fraction of order value, keyed by exchange
// then instrument. Options trade on premium so their rates look much higher.
var txnRates = map[string]map[string]float64{
	"NSE": {
		types.InstrumentFuture: 0.0000188,
		types.InstrumentCall:   0.0003503,
		types.InstrumentPut:    0.0003503,
	},
	"BSE": {
		types.InstrumentFuture: 0,
		types.InstrumentCall:   0.000325,
		types.InstrumentPut:    0.000325,
	},
}

// Compute evaluates the full charge breakdown for one order. It is a pure
// formula with no error conditions: instrument types outside the F&O schedule
// fall through to the zero-brokerage, zero-STT default.
func Compute(order *types.Order, exchange string) types.Charges {
	var c types.Charges
	value := order.Value

	isOption := order.Instrument == types.InstrumentCall || order.Instrument == types.InstrumentPut
	isFuture := order.Instrument == types.InstrumentFuture

	switch {
	case isFuture:
		c.Brokerage = math.Min(value*futBrokerageRate, brokerageCap)
	case isOption:
		c.Brokerage = brokerageCap
	}

	if order.Side == types.SideSell {
		switch {
		case isFuture:
			c.STT = value * futSTTRate
		case isOption:
			c.STT = value * optSTTRate
		}
	}

	if rates, ok := txnRates[exchange]; ok {
		c.TransactionCharges = value * rates[order.Instrument]
	}

	c.SEBICharges = value / crore * sebiRatePerCrore

	if order.Side == types.SideBuy {
		switch {
		case isFuture:
			c.StampCharges = math.Min(value*futStampRate, futStampCapCrore*value/crore)
		case isOption:
			c.StampCharges = math.Min(value*optStampRate, optStampCapCrore*value/crore)
		}
	}

	c.GST = gstRate * (c.Brokerage + c.SEBICharges + c.TransactionCharges)

	c.Total = c.Brokerage + c.STT + c.TransactionCharges + c.SEBICharges + c.StampCharges + c.GST
	return c
}

// Total is a convenience wrapper for callers that only need the sum.
func Total(order *types.Order, exchange string) float64 {
	return Compute(order, exchange).Total
}
