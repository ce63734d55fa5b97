package kite

import (
	"context"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/types"
)

// candleInterval for benchmark series. Daily closes are all the benchmark
// report consumes.
const candleInterval = "day"

// Source pulls the day's executions and benchmark candles from the Kite
// Connect REST API.
type Source struct {
	kc             *kiteconnect.Client
	benchmarkToken int

	// derivative contract metadata keyed by instrument token, loaded
	// lazily from the NFO instrument master
	contracts map[uint32]kiteconnect.Instrument
}

var (
	_ interfaces.TradebookSource = (*Source)(nil)
	_ interfaces.BenchmarkSource = (*Source)(nil)
)

func New(apiKey, accessToken string, benchmarkToken int) *Source {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return &Source{
		kc:             kc,
		benchmarkToken: benchmarkToken,
	}
}

// Executions fetches today's trades and resolves each against the NFO
// instrument master. Trades on instruments missing from the master are
// dropped with a warning rather than failing the batch.
func (s *Source) Executions(ctx context.Context) ([]types.Execution, error) {
	if err := s.loadContracts(ctx); err != nil {
		return nil, err
	}

	trades, err := s.kc.GetTrades()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades: %w", err)
	}

	executions := make([]types.Execution, 0, len(trades))
	for _, tr := range trades {
		contract, ok := s.contracts[tr.InstrumentToken]
		if !ok {
			logger.Warn(ctx, "Trade on unknown instrument, skipping",
				"tradingsymbol", tr.TradingSymbol,
				"instrument_token", tr.InstrumentToken,
			)
			continue
		}

		executedAt := tr.FillTimestamp.Time.In(types.IST())
		executions = append(executions, types.Execution{
			ID:         tr.TradeID,
			OrderID:    tr.OrderID,
			Symbol:     contract.Name,
			Instrument: contract.InstrumentType,
			Strike:     contract.StrikePrice,
			Expiry:     contract.Expiry.Time.In(types.IST()).Format(types.DateLayout),
			Side:       tr.TransactionType,
			Qty:        int(tr.Quantity),
			Price:      tr.AveragePrice,
			ExecutedAt: executedAt,
			TradeDate:  executedAt.Format(types.DateLayout),
		})
	}

	logger.Info(ctx, "Trades fetched from Kite",
		"trades", len(trades),
		"executions", len(executions),
	)
	return executions, nil
}

// BenchmarkSeries fetches daily index closes between from and to, both
// inclusive IST calendar dates.
func (s *Source) BenchmarkSeries(ctx context.Context, from, to string) ([]types.BenchmarkPoint, error) {
	fromDate, err := time.ParseInLocation(types.DateLayout, from, types.IST())
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark from date '%s': %w", from, err)
	}
	toDate, err := time.ParseInLocation(types.DateLayout, to, types.IST())
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark to date '%s': %w", to, err)
	}
	// push the upper bound to end of day so the last session is included
	toDate = toDate.Add(24*time.Hour - time.Second)

	candles, err := s.kc.GetHistoricalData(s.benchmarkToken, candleInterval, fromDate, toDate, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch benchmark candles: %w", err)
	}

	points := make([]types.BenchmarkPoint, 0, len(candles))
	for _, c := range candles {
		points = append(points, types.BenchmarkPoint{
			Date:  c.Date.Time.In(types.IST()).Format(types.DateLayout),
			Close: c.Close,
		})
	}

	logger.Info(ctx, "Benchmark series fetched",
		"token", s.benchmarkToken,
		"points", len(points),
	)
	return points, nil
}

func (s *Source) loadContracts(ctx context.Context) error {
	if s.contracts != nil {
		return nil
	}

	instruments, err := s.kc.GetInstrumentsByExchange(kiteconnect.ExchangeNFO)
	if err != nil {
		return fmt.Errorf("failed to fetch NFO instrument master: %w", err)
	}

	contracts := make(map[uint32]kiteconnect.Instrument, len(instruments))
	for _, in := range instruments {
		contracts[uint32(in.InstrumentToken)] = in
	}
	s.contracts = contracts

	logger.Debug(ctx, "Instrument master loaded", "contracts", len(contracts))
	return nil
}
