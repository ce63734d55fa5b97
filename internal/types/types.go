package types

import (
	"sort"
	"time"
)

// Order/execution side.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Instrument classification, Zerodha tradebook convention.
const (
	InstrumentCall   = "CE"
	InstrumentPut    = "PE"
	InstrumentFuture = "FUT"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Dates are IST calendar days formatted as 2006-01-02.
const DateLayout = "2006-01-02"

// IST returns the exchange-local timezone used for all trade dates.
func IST() *time.Location {
	return time.FixedZone("IST", 19800)
}

// Execution is one raw fill as reported by the broker. Immutable once ingested.
type Execution struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Symbol     string    `json:"symbol"`
	Instrument string    `json:"instrument"` // CE, PE or FUT
	Strike     float64   `json:"strike,omitempty"`
	Expiry     string    `json:"expiry,omitempty"` // 2006-01-02, empty for non-derivatives
	Side       string    `json:"side"`
	Qty        int       `json:"qty"`
	Price      float64   `json:"price"`
	ExecutedAt time.Time `json:"executed_at"`
	TradeDate  string    `json:"trade_date"`
}

// Order is the set of executions sharing one order ID, merged into a single
// record with a quantity-weighted average price.
type Order struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Instrument string      `json:"instrument"`
	Strike     float64     `json:"strike,omitempty"`
	Expiry     string      `json:"expiry,omitempty"`
	Side       string      `json:"side"`
	Qty        int         `json:"qty"`
	Value      float64     `json:"value"` // sum of qty*price over executions
	AvgPrice   float64     `json:"avg_price"`
	ExecutedAt time.Time   `json:"executed_at"` // earliest fill time
	TradeDate  string      `json:"trade_date"`
	Executions []Execution `json:"executions"`
}

// Key returns the inventory bucket this order trades in.
func (o *Order) Key() InstrumentKey {
	return InstrumentKey{Symbol: o.Symbol, Instrument: o.Instrument, Strike: o.Strike, Expiry: o.Expiry}
}

// InstrumentKey identifies one fungible matching bucket. All FIFO matching
// happens within a single key.
type InstrumentKey struct {
	Symbol     string  `json:"symbol"`
	Instrument string  `json:"instrument"`
	Strike     float64 `json:"strike,omitempty"`
	Expiry     string  `json:"expiry,omitempty"`
}

// Position is a matched inventory lot produced by the matching engine.
// It is created by an opening order, mutated as later opposing orders close
// it, and never deleted, only marked closed.
type Position struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Instrument    string  `json:"instrument"`
	Strike        float64 `json:"strike,omitempty"`
	Expiry        string  `json:"expiry,omitempty"`
	Qty           int     `json:"qty"`           // signed net, positive = long; 0 once closed
	MaxQty        int     `json:"max_qty"`       // unsigned quantity at open
	RemainingQty  int     `json:"remaining_qty"` // unsigned open quantity left to match
	AvgEntryPrice float64 `json:"avg_entry_price"`
	ExitPrice     float64 `json:"exit_price,omitempty"`
	BuyValue      float64 `json:"buy_value"`
	SellValue     float64 `json:"sell_value"`
	RealizedPnL   float64 `json:"realized_pnl"`
	Status        string  `json:"status"`

	OpenedAt time.Time `json:"opened_at"`
	ClosedAt time.Time `json:"closed_at,omitempty"` // zero while open

	Orders []*Order `json:"orders"` // contributing orders, opening order first
}

// Key returns the inventory bucket this position belongs to.
func (p *Position) Key() InstrumentKey {
	return InstrumentKey{Symbol: p.Symbol, Instrument: p.Instrument, Strike: p.Strike, Expiry: p.Expiry}
}

// IsOpen reports whether the position can still absorb opposing orders.
func (p *Position) IsOpen() bool {
	return p.Status == StatusOpen
}

// ExecCount is the number of raw fills behind this position.
func (p *Position) ExecCount() int {
	n := 0
	for _, o := range p.Orders {
		n += len(o.Executions)
	}
	return n
}

// TradeDates returns the sorted distinct trade dates spanned by the
// position's contributing orders.
func (p *Position) TradeDates() []string {
	seen := map[string]bool{}
	dates := make([]string, 0, 2)
	for _, o := range p.Orders {
		if !seen[o.TradeDate] {
			seen[o.TradeDate] = true
			dates = append(dates, o.TradeDate)
		}
	}
	sort.Strings(dates)
	return dates
}

// Charges is the regulatory/brokerage cost breakdown for one order.
type Charges struct {
	Brokerage          float64 `json:"brokerage"`
	STT                float64 `json:"stt"`
	TransactionCharges float64 `json:"transaction_charges"`
	SEBICharges        float64 `json:"sebi_charges"`
	StampCharges       float64 `json:"stamp_charges"`
	GST                float64 `json:"gst"`
	Total              float64 `json:"total"`
}

// DayRecord is the per-trade-date aggregate bucket.
type DayRecord struct {
	Date           string  `json:"date"`
	Turnover       float64 `json:"turnover"`
	Brokerage      float64 `json:"brokerage"` // total charges, not just broker fee
	OrderCount     int     `json:"order_count"`
	ExecutionCount int     `json:"execution_count"`
	RealizedPnL    float64 `json:"realized_pnl"`
	NetPnL         float64 `json:"net_pnl"` // realized - brokerage

	WinningOrders     int `json:"winning_orders"`
	LosingOrders      int `json:"losing_orders"`
	WinningExecutions int `json:"winning_executions"`
	LosingExecutions  int `json:"losing_executions"`

	OrderWinRate     float64 `json:"order_win_rate"`     // percent
	ExecutionWinRate float64 `json:"execution_win_rate"` // percent
}

// DrawdownPeriod is a maximal interval where cumulative net P&L sits below a
// running peak. Recovered becomes terminal once a new peak is reached.
type DrawdownPeriod struct {
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Peak         float64 `json:"peak"`
	Trough       float64 `json:"trough"`
	Amount       float64 `json:"amount"`
	Percent      float64 `json:"percent"`
	DurationDays int     `json:"duration_days"`
	RecoveryDate string  `json:"recovery_date,omitempty"`
	RecoveryDays int     `json:"recovery_days,omitempty"`
	Recovered    bool    `json:"recovered"`
}

// DrawdownReport is the reconstructed drawdown path over the day series.
type DrawdownReport struct {
	Periods         []DrawdownPeriod `json:"periods"`
	MaxDrawdown     float64          `json:"max_drawdown"`
	CurrentDrawdown float64          `json:"current_drawdown"`
}

// Streak outcome types.
const (
	StreakWin  = "WIN"
	StreakLoss = "LOSS"
)

// Streak is a maximal run of same-outcome closed positions ordered by open
// time.
type Streak struct {
	Type   string `json:"type"`
	Length int    `json:"length"`
}

// StreakReport summarizes win/loss run lengths.
type StreakReport struct {
	Streaks           []Streak `json:"streaks"`
	LongestWinStreak  int      `json:"longest_win_streak"`
	LongestLossStreak int      `json:"longest_loss_streak"`
	AvgWinStreak      float64  `json:"avg_win_streak"`
	AvgLossStreak     float64  `json:"avg_loss_streak"`
	Current           Streak   `json:"current"`
}

// Ratios holds the risk-adjusted return measures over the daily net series.
type Ratios struct {
	Sharpe           float64 `json:"sharpe"`
	Sortino          float64 `json:"sortino"`
	Calmar           float64 `json:"calmar"`
	MeanDailyPnL     float64 `json:"mean_daily_pnl"`
	DailyStdDev      float64 `json:"daily_std_dev"`
	AnnualizedReturn float64 `json:"annualized_return"`
}

// Summary is the aggregate statistics block of the output contract.
type Summary struct {
	TotalPositions  int     `json:"total_positions"`
	ClosedPositions int     `json:"closed_positions"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"` // percent
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"`
	MaxWin          float64 `json:"max_win"`
	MaxLoss         float64 `json:"max_loss"`
	ProfitFactor    float64 `json:"profit_factor"` // +Inf with wins and no losses
	GrossTurnover   float64 `json:"gross_turnover"`
	TotalBrokerage  float64 `json:"total_brokerage"`
	NetPnL          float64 `json:"net_pnl"`
}

// SectorStat is one row of the sector breakdown report.
type SectorStat struct {
	Sector      string  `json:"sector"`
	Positions   int     `json:"positions"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	RealizedPnL float64 `json:"realized_pnl"`
	Turnover    float64 `json:"turnover"`
}

// CorrelationPair is the Pearson correlation between two symbols' daily
// realized P&L series. Pairs below the overlap minimum are never emitted.
type CorrelationPair struct {
	SymbolA     string  `json:"symbol_a"`
	SymbolB     string  `json:"symbol_b"`
	Correlation float64 `json:"correlation"`
	Overlap     int     `json:"overlap_days"`
}

// BenchmarkPoint is one benchmark index close, supplied by the importer.
type BenchmarkPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// BenchmarkReport compares the daily net P&L curve against an index series.
type BenchmarkReport struct {
	Symbol            string  `json:"symbol"`
	Correlation       float64 `json:"correlation"`
	Overlap           int     `json:"overlap_days"`
	OutperformingDays int     `json:"outperforming_days"`
	CumulativePnL     float64 `json:"cumulative_pnl"`
	BenchmarkReturn   float64 `json:"benchmark_return_pct"`
}

// Report is the full output contract of one pipeline run.
type Report struct {
	Fingerprint  string            `json:"fingerprint"`
	Positions    []*Position       `json:"positions"`
	Days         []DayRecord       `json:"days"`
	Summary      Summary           `json:"summary"`
	Drawdown     DrawdownReport    `json:"drawdown"`
	Streaks      StreakReport      `json:"streaks"`
	Ratios       Ratios            `json:"ratios"`
	Sectors      []SectorStat      `json:"sectors,omitempty"`
	Correlations []CorrelationPair `json:"correlations,omitempty"`
	Benchmark    *BenchmarkReport  `json:"benchmark,omitempty"`
}
