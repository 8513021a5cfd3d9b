package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/backtest"
	"equity-strategy-lab/internal/config"
	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/marketdata"
	"equity-strategy-lab/internal/series"
	"equity-strategy-lab/internal/storage"
	"equity-strategy-lab/internal/storage/memory"
	"equity-strategy-lab/internal/storage/migrations"
	pgstore "equity-strategy-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	symbol := flag.String("symbol", "", "Symbol to backtest (overrides config)")
	csvPath := flag.String("csv", "", "Load closes from a CSV file instead of HTTP")
	strategyType := flag.String("strategy", domain.StrategyTypeMomentumReversal,
		"Strategy: MOMENTUM_REVERSAL, PROFIT_TAKING")

	lotSize := flag.Float64("lot", 0, "Lot size (0 = config/default)")
	profitMargin := flag.Float64("margin", 0, "Profit margin for PROFIT_TAKING (0 = config/default)")
	startDate := flag.String("start", "", "Window start (YYYY-MM-DD, overrides config)")
	endDate := flag.String("end", "", "Window end (YYYY-MM-DD, overrides config)")

	outputJSON := flag.Bool("json", false, "Output as JSON")
	persist := flag.Bool("persist", false, "Persist run and trade records to storage")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides config)")

	flag.Parse()

	logger := log.New(os.Stderr, "[backtest] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	if *symbol == "" {
		*symbol = cfg.Symbol
	}
	if *postgresDSN == "" {
		*postgresDSN = cfg.Database.PostgresDSN
	}

	*strategyType = strings.ToUpper(*strategyType)
	if *strategyType != domain.StrategyTypeMomentumReversal &&
		*strategyType != domain.StrategyTypeProfitTaking {
		logger.Fatalf("Invalid strategy: %s. Must be MOMENTUM_REVERSAL or PROFIT_TAKING", *strategyType)
	}

	window, err := cfg.DateWindow()
	if err != nil {
		logger.Fatalf("Config window: %v", err)
	}
	if window, err = overrideWindow(window, *startDate, *endDate); err != nil {
		logger.Fatalf("Parse window flags: %v", err)
	}

	strategyCfg := cfg.StrategyConfig(*strategyType)
	if *lotSize > 0 {
		strategyCfg.LotSize = decimal.NewFromFloat(*lotSize)
	}
	if *profitMargin > 0 {
		strategyCfg.ProfitMargin = decimal.NewFromFloat(*profitMargin)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Create stores
	var priceStore storage.PriceSeriesStore = memory.NewPriceSeriesStore()
	var runStore storage.BacktestRunStore = memory.NewBacktestRunStore()

	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Connect postgres: %v", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("Apply migrations: %v", err)
		}

		priceStore = pgstore.NewPriceSeriesStore(pool)
		runStore = pgstore.NewBacktestRunStore(pool)
	}

	// Load the price series into the store
	points, err := loadSeries(ctx, cfg, *csvPath, *symbol, window)
	if err != nil {
		logger.Fatalf("Load series: %v", err)
	}
	logger.Printf("Loaded %d closes for %s", len(points), *symbol)

	if err := seedPriceStore(ctx, priceStore, points); err != nil {
		logger.Fatalf("Seed price store: %v", err)
	}

	runner := backtest.NewRunner(backtest.RunnerOptions{
		PriceStore: priceStore,
		RunStore:   runStore,
	})

	start := time.Now()
	result, err := runner.Run(ctx, backtest.RunRequest{
		Symbol:   *symbol,
		Window:   window,
		Strategy: strategyCfg,
		Persist:  *persist,
	})
	if err != nil {
		logger.Fatalf("Run backtest: %v", err)
	}
	logger.Printf("Completed %s in %v", result.Run.StrategyID, time.Since(start))

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatalf("Encode result: %v", err)
		}
		return
	}

	printResult(result)
}

func printResult(result *backtest.RunResult) {
	fmt.Printf("Run:      %s\n", result.Run.RunID)
	fmt.Printf("Strategy: %s\n", result.Run.StrategyID)
	fmt.Printf("Symbol:   %s\n\n", result.Run.Symbol)

	fmt.Printf("%-12s %-6s %14s %14s\n", "DATE", "ACTION", "CASH FLOW", "SHARES")
	for _, t := range result.Trades {
		fmt.Printf("%-12s %-6s %14s %14s\n",
			t.Date.Format("2006-01-02"),
			t.Action,
			t.CashFlow.StringFixed(2),
			t.SharesHeld.String(),
		)
	}

	fmt.Printf("\nTotal P/L:        %s\n", result.Run.Summary.TotalProfitLoss.StringFixed(2))
	fmt.Printf("Invested capital: %s\n", result.Run.Summary.InvestedCapital.StringFixed(2))
	fmt.Printf("ROI:              %s%%\n", result.Run.Summary.ROIPct.StringFixed(2))
}

// loadSeries reads closes from a CSV file when given, otherwise fetches them
// over HTTP. The window is applied in both cases.
func loadSeries(ctx context.Context, cfg *config.Config, csvPath, symbol string, w domain.DateWindow) ([]domain.PricePoint, error) {
	if csvPath == "" {
		csvPath = cfg.DataSource.CSVPath
	}
	if csvPath != "" {
		points, err := series.LoadCSVFile(csvPath, symbol)
		if err != nil {
			return nil, err
		}
		return series.Window(points, w), nil
	}

	client := marketdata.NewClient(cfg.DataSource.BaseURL)
	return client.DailyCloses(ctx, symbol, w)
}

func seedPriceStore(ctx context.Context, store storage.PriceSeriesStore, points []domain.PricePoint) error {
	err := store.InsertBulk(ctx, points)
	if errors.Is(err, storage.ErrDuplicateKey) {
		// Series already present from a previous invocation.
		return nil
	}
	return err
}

func overrideWindow(w domain.DateWindow, start, end string) (domain.DateWindow, error) {
	const layout = "2006-01-02"
	if start != "" {
		t, err := time.ParseInLocation(layout, start, time.UTC)
		if err != nil {
			return w, fmt.Errorf("parse -start: %w", err)
		}
		w.Start = t
	}
	if end != "" {
		t, err := time.ParseInLocation(layout, end, time.UTC)
		if err != nil {
			return w, fmt.Errorf("parse -end: %w", err)
		}
		w.End = t
	}
	return w, nil
}
