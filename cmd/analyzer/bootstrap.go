package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"tradebook-analyzer/internal/importer/kite"
	"tradebook-analyzer/internal/importer/tradebook"
	"tradebook-analyzer/internal/importer/yahoo"
	"tradebook-analyzer/internal/interfaces"
	"tradebook-analyzer/internal/logger"
	"tradebook-analyzer/internal/pipeline"
	"tradebook-analyzer/internal/pipeline/pipelineobs"
	"tradebook-analyzer/internal/refdata"
	"tradebook-analyzer/internal/store"
	"tradebook-analyzer/internal/trace"
	"tradebook-analyzer/internal/types"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeSource selects the tradebook source based on config
func initializeSource(ctx context.Context, cfg *store.Config) interfaces.TradebookSource {
	if cfg.Source == "KITE" {
		logger.Info(ctx, "Using live tradebook from Kite Connect")
		return newKiteSource(cfg)
	}

	logger.Info(ctx, "Using tradebook CSV", "path", cfg.TradebookPath)
	return tradebook.New(cfg.TradebookPath)
}

func newKiteSource(cfg *store.Config) *kite.Source {
	return kite.New(
		os.Getenv("KITE_API_KEY"),
		os.Getenv("KITE_ACCESS_TOKEN"),
		cfg.Benchmark.Token,
	)
}

// resolveSectors maps the traded symbols to sectors, either from the static
// config map or by live lookup with the static map as fallback.
func resolveSectors(ctx context.Context, cfg *store.Config, executions []types.Execution) map[string]string {
	symbols := distinctSymbols(executions)
	if len(symbols) == 0 {
		return nil
	}

	var provider interfaces.SectorProvider
	if cfg.Sectors.Live {
		provider = refdata.NewScraper(30*time.Second, cfg.Sectors.Static)
	} else {
		provider = refdata.NewStatic(cfg.Sectors.Static)
	}

	sectors, err := provider.Sectors(ctx, symbols)
	if err != nil {
		logger.Warn(ctx, "Sector resolution failed, sector report will be skipped", "error", err)
		return nil
	}
	return sectors
}

// fetchBenchmark pulls the benchmark index series for the traded date range.
// Failures degrade to no benchmark report rather than aborting the run.
func fetchBenchmark(ctx context.Context, cfg *store.Config, executions []types.Execution) []types.BenchmarkPoint {
	if !cfg.Benchmark.Enabled || len(executions) == 0 {
		return nil
	}

	from, to := cfg.Benchmark.From, cfg.Benchmark.To
	if from == "" || to == "" {
		from, to = tradeDateRange(executions)
	}

	var source interfaces.BenchmarkSource
	if cfg.Benchmark.Source == "KITE" {
		source = newKiteSource(cfg)
	} else {
		source = yahoo.New(cfg.Benchmark.Symbol)
	}

	points, err := source.BenchmarkSeries(ctx, from, to)
	if err != nil {
		logger.Warn(ctx, "Benchmark fetch failed, benchmark report will be skipped",
			"source", cfg.Benchmark.Source,
			"symbol", cfg.Benchmark.Symbol,
			"error", err,
		)
		return nil
	}
	return points
}

// initializeAnalyzer builds the pipeline with observability
func initializeAnalyzer(cfg *store.Config, sectors map[string]string, benchmark []types.BenchmarkPoint) interfaces.Analyzer {
	p := pipeline.New(pipeline.Options{
		Exchange:        cfg.Exchange,
		Workers:         cfg.Workers,
		Sectors:         sectors,
		Benchmark:       benchmark,
		BenchmarkSymbol: cfg.Benchmark.Symbol,
	})

	// Wrap with observability middleware
	return pipelineobs.Wrap(p)
}

func distinctSymbols(executions []types.Execution) []string {
	seen := map[string]bool{}
	symbols := []string{}
	for _, e := range executions {
		if !seen[e.Symbol] {
			seen[e.Symbol] = true
			symbols = append(symbols, e.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

func tradeDateRange(executions []types.Execution) (from, to string) {
	from, to = executions[0].TradeDate, executions[0].TradeDate
	for _, e := range executions[1:] {
		if e.TradeDate < from {
			from = e.TradeDate
		}
		if e.TradeDate > to {
			to = e.TradeDate
		}
	}
	return from, to
}
