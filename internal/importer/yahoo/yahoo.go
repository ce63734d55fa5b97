package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"tradebook-analyzer/internal/api"
	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/types"
)

const baseURL = "https://query1.finance.yahoo.com"

// Source fetches benchmark index closes from the Yahoo Finance chart API.
// It needs no credentials, which makes it the default benchmark source for
// CSV-driven runs. NIFTY 50 is ^NSEI, SENSEX is ^BSESN.
type Source struct {
	client *api.Client
	symbol string
}

var _ interfaces.BenchmarkSource = (*Source)(nil)

func New(symbol string) *Source {
	opts := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(15 * time.Second),
		api.WithLogging(true),
	}
	for key, value := range api.YahooFinanceHeaders() {
		opts = append(opts, api.WithHeader(key, value))
	}
	return &Source{
		client: api.NewClient(opts...),
		symbol: symbol,
	}
}

// chartResponse mirrors the subset of the Yahoo chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// BenchmarkSeries fetches daily closes between from and to, both inclusive
// IST calendar dates. Sessions with a null close (holidays) are skipped.
func (s *Source) BenchmarkSeries(ctx context.Context, from, to string) ([]types.BenchmarkPoint, error) {
	fromDate, err := time.ParseInLocation(types.DateLayout, from, types.IST())
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark from date '%s': %w", from, err)
	}
	toDate, err := time.ParseInLocation(types.DateLayout, to, types.IST())
	if err != nil {
		return nil, fmt.Errorf("invalid benchmark to date '%s': %w", to, err)
	}
	toDate = toDate.Add(24 * time.Hour)

	path := fmt.Sprintf("/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		url.PathEscape(s.symbol), fromDate.Unix(), toDate.Unix())

	resp, err := s.client.GETWithRetry(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch benchmark chart: %w", err)
	}

	points, err := parseChart(resp, s.symbol)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Benchmark series fetched",
		"symbol", s.symbol,
		"points", len(points),
	)
	return points, nil
}

func parseChart(resp *api.Response, symbol string) ([]types.BenchmarkPoint, error) {
	var chart chartResponse
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for '%s'", symbol)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]types.BenchmarkPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, types.BenchmarkPoint{
			Date:  time.Unix(ts, 0).In(types.IST()).Format(types.DateLayout),
			Close: *closes[i],
		})
	}
	return points, nil
}
