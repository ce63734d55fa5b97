package analytics

import (
	"math"
	"testing"

	"tradebook-analyzer/internal/stats"
	"tradebook-analyzer/internal/types"
)

func netDays(pnls ...float64) []types.DayRecord {
	days := make([]types.DayRecord, len(pnls))
	for i, p := range pnls {
		days[i] = types.DayRecord{NetPnL: p}
	}
	return days
}

func TestSharpeFormula(t *testing.T) {
	series := []float64{100, -50, 200, 30, -10}
	r := Ratios(netDays(series...), 0)

	mean := stats.Mean(series)
	sd := stats.StdDev(series)
	want := mean * 252 / (sd * math.Sqrt(252))
	if math.Abs(r.Sharpe-want) > 1e-9 {
		t.Errorf("sharpe = %f, want %f", r.Sharpe, want)
	}
	if math.Abs(r.AnnualizedReturn-mean*252) > 1e-9 {
		t.Errorf("annualized = %f, want %f", r.AnnualizedReturn, mean*252)
	}
}

func TestSortinoUsesDownsideOnly(t *testing.T) {
	series := []float64{100, -50, 200, 30, -10}
	r := Ratios(netDays(series...), 0)

	downside := stats.DownsideDeviation(series)
	want := stats.Mean(series) * 252 / (downside * math.Sqrt(252))
	if math.Abs(r.Sortino-want) > 1e-9 {
		t.Errorf("sortino = %f, want %f", r.Sortino, want)
	}
	if r.Sortino <= r.Sharpe {
		t.Errorf("with mild downside, sortino (%f) should exceed sharpe (%f)", r.Sortino, r.Sharpe)
	}
}

func TestCalmar(t *testing.T) {
	days := netDays(100, 100, 100)
	r := Ratios(days, 150)
	want := 100.0 * 252 / 150
	if math.Abs(r.Calmar-want) > 1e-9 {
		t.Errorf("calmar = %f, want %f", r.Calmar, want)
	}
}

func TestRatiosZeroDenominators(t *testing.T) {
	// Flat series: zero stddev, zero downside; no drawdown.
	r := Ratios(netDays(50, 50, 50), 0)
	if r.Sharpe != 0 || r.Sortino != 0 || r.Calmar != 0 {
		t.Errorf("flat series ratios = %f/%f/%f, want all 0", r.Sharpe, r.Sortino, r.Calmar)
	}
	if math.IsNaN(r.Sharpe) || math.IsInf(r.Sharpe, 0) {
		t.Error("ratios must never be NaN or Inf")
	}

	empty := Ratios(nil, 0)
	if empty.Sharpe != 0 || empty.MeanDailyPnL != 0 {
		t.Errorf("empty series must resolve to zeros, got %+v", empty)
	}
}
