package tradebook

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/types"
)

// execTimeLayout is the order_execution_time format in Console exports. The
// timestamp carries no zone; it is exchange local time.
const execTimeLayout = "2006-01-02T15:04:05"

// row mirrors one line of a Zerodha Console F&O tradebook CSV.
type row struct {
	Symbol             string  `csv:"symbol"`
	ISIN               string  `csv:"isin"`
	TradeDate          string  `csv:"trade_date"`
	Exchange           string  `csv:"exchange"`
	Segment            string  `csv:"segment"`
	Series             string  `csv:"series"`
	TradeType          string  `csv:"trade_type"`
	Auction            string  `csv:"auction"`
	Quantity           int     `csv:"quantity"`
	Price              float64 `csv:"price"`
	TradeID            string  `csv:"trade_id"`
	OrderID            string  `csv:"order_id"`
	OrderExecutionTime string  `csv:"order_execution_time"`
	ExpiryDate         string  `csv:"expiry_date"`
}

// Source reads executions from a tradebook CSV export on disk.
type Source struct {
	path string
}

var _ interfaces.TradebookSource = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

// Executions parses the tradebook file. Rows that are not derivative
// contracts (equity series, auctions) are skipped, not errors.
func (s *Source) Executions(ctx context.Context) ([]types.Execution, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tradebook: %w", err)
	}
	defer f.Close()

	executions, skipped, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tradebook %s: %w", s.path, err)
	}
	if skipped > 0 {
		logger.Warn(ctx, "Skipped non-derivative tradebook rows",
			"path", s.path,
			"skipped", skipped,
		)
	}
	logger.Info(ctx, "Tradebook loaded",
		"path", s.path,
		"executions", len(executions),
	)
	return executions, nil
}

// Parse decodes a tradebook CSV stream into executions. It returns the count
// of rows skipped because they were not recognizable F&O contracts.
func Parse(r io.Reader) ([]types.Execution, int, error) {
	var rows []row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, 0, err
	}

	executions := make([]types.Execution, 0, len(rows))
	skipped := 0
	for i, rw := range rows {
		symbol, instrument, strike, err := splitContract(rw.Symbol)
		if err != nil {
			skipped++
			continue
		}

		side, err := parseSide(rw.TradeType)
		if err != nil {
			return nil, skipped, fmt.Errorf("row %d: %w", i+1, err)
		}
		if rw.Quantity <= 0 {
			return nil, skipped, fmt.Errorf("row %d: invalid quantity %d", i+1, rw.Quantity)
		}

		executedAt, err := time.ParseInLocation(execTimeLayout, rw.OrderExecutionTime, types.IST())
		if err != nil {
			return nil, skipped, fmt.Errorf("row %d: invalid order_execution_time '%s': %w", i+1, rw.OrderExecutionTime, err)
		}
		if _, err := time.Parse(types.DateLayout, rw.TradeDate); err != nil {
			return nil, skipped, fmt.Errorf("row %d: invalid trade_date '%s': %w", i+1, rw.TradeDate, err)
		}

		executions = append(executions, types.Execution{
			ID:         rw.TradeID,
			OrderID:    rw.OrderID,
			Symbol:     symbol,
			Instrument: instrument,
			Strike:     strike,
			Expiry:     rw.ExpiryDate,
			Side:       side,
			Qty:        rw.Quantity,
			Price:      rw.Price,
			ExecutedAt: executedAt,
			TradeDate:  rw.TradeDate,
		})
	}
	return executions, skipped, nil
}

func parseSide(tradeType string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(tradeType)) {
	case types.SideBuy:
		return types.SideBuy, nil
	case types.SideSell:
		return types.SideSell, nil
	default:
		return "", fmt.Errorf("unknown trade_type '%s'", tradeType)
	}
}

// splitContract decomposes a trading symbol like NIFTY24AUG24400CE or
// BANKNIFTY2481451000PE or RELIANCE24AUGFUT into underlying, instrument type
// and strike. Weekly option codes use a one-character month (1-9, O, N, D)
// followed by a two-digit day.
func splitContract(symbol string) (underlying, instrument string, strike float64, err error) {
	symbol = strings.TrimSpace(symbol)

	switch {
	case strings.HasSuffix(symbol, types.InstrumentFuture):
		base := strings.TrimSuffix(symbol, types.InstrumentFuture)
		i := firstDigit(base)
		if i <= 0 {
			return "", "", 0, fmt.Errorf("not a derivative symbol: '%s'", symbol)
		}
		return base[:i], types.InstrumentFuture, 0, nil

	case strings.HasSuffix(symbol, types.InstrumentCall),
		strings.HasSuffix(symbol, types.InstrumentPut):
		instrument = symbol[len(symbol)-2:]
		base := symbol[:len(symbol)-2]
		i := firstDigit(base)
		if i <= 0 {
			return "", "", 0, fmt.Errorf("not a derivative symbol: '%s'", symbol)
		}
		underlying = base[:i]
		rest := base[i:]
		// shortest legal code: two-digit year, three code characters, one
		// strike digit
		if len(rest) < 6 {
			return "", "", 0, fmt.Errorf("malformed contract code in '%s'", symbol)
		}
		// both expiry styles spend three characters after the year: a
		// three-letter month (monthly) or a one-character month plus
		// two-digit day (weekly)
		strikeStr := rest[5:]

		var v float64
		if _, err := fmt.Sscanf(strikeStr, "%g", &v); err != nil || v <= 0 {
			return "", "", 0, fmt.Errorf("invalid strike '%s' in '%s'", strikeStr, symbol)
		}
		return underlying, instrument, v, nil

	default:
		return "", "", 0, fmt.Errorf("not a derivative symbol: '%s'", symbol)
	}
}

func firstDigit(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return i
		}
	}
	return -1
}
