package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"equity-strategy-lab/internal/backtest"
	"equity-strategy-lab/internal/config"
	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/marketdata"
	"equity-strategy-lab/internal/pricing"
	"equity-strategy-lab/internal/reporting"
	"equity-strategy-lab/internal/series"
	"equity-strategy-lab/internal/storage/memory"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	symbol := flag.String("symbol", "", "Symbol to report on (overrides config)")
	csvPath := flag.String("csv", "", "Load stock closes from a CSV file instead of HTTP")
	marketCSVPath := flag.String("market-csv", "", "Load market index closes from a CSV file instead of HTTP")
	skipPricing := flag.Bool("skip-pricing", false, "Skip the single-factor model section")
	format := flag.String("format", "markdown", "Output format: markdown, csv")
	outPath := flag.String("out", "", "Write report to file instead of stdout")

	flag.Parse()

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	if *symbol == "" {
		*symbol = cfg.Symbol
	}

	*format = strings.ToLower(*format)
	if *format != "markdown" && *format != "csv" {
		logger.Fatalf("Invalid format: %s. Must be markdown or csv", *format)
	}

	window, err := cfg.DateWindow()
	if err != nil {
		logger.Fatalf("Config window: %v", err)
	}

	ctx := context.Background()
	client := marketdata.NewClient(cfg.DataSource.BaseURL)

	stock, err := loadCloses(ctx, client, *csvPath, *symbol, window)
	if err != nil {
		logger.Fatalf("Load %s closes: %v", *symbol, err)
	}
	logger.Printf("Loaded %d closes for %s", len(stock), *symbol)

	// Run every strategy over the same in-memory series.
	priceStore := memory.NewPriceSeriesStore()
	if err := priceStore.InsertBulk(ctx, stock); err != nil {
		logger.Fatalf("Seed price store: %v", err)
	}
	runner := backtest.NewRunner(backtest.RunnerOptions{PriceStore: priceStore})

	strategyTypes := []string{
		domain.StrategyTypeMomentumReversal,
		domain.StrategyTypeProfitTaking,
	}

	var results []backtest.RunResult
	for _, st := range strategyTypes {
		result, err := runner.Run(ctx, backtest.RunRequest{
			Symbol:   *symbol,
			Window:   window,
			Strategy: cfg.StrategyConfig(st),
		})
		if err != nil {
			logger.Fatalf("Run %s: %v", st, err)
		}
		results = append(results, *result)
	}

	var fit *pricing.ModelFit
	if !*skipPricing {
		fit, err = fitPricingModel(ctx, cfg, client, stock, *marketCSVPath, window)
		if err != nil {
			// The comparison table is still worth emitting on its own.
			logger.Printf("Pricing model skipped: %v", err)
		}
	}

	report := reporting.BuildReport(results, fit)

	var rendered string
	switch *format {
	case "markdown":
		rendered = reporting.RenderMarkdown(report)
	case "csv":
		rendered = reporting.RenderCSV(report)
	}

	if *outPath == "" {
		fmt.Print(rendered)
		return
	}
	if err := os.WriteFile(*outPath, []byte(rendered), 0o644); err != nil {
		logger.Fatalf("Write report: %v", err)
	}
	logger.Printf("Report written to %s", *outPath)
}

func loadCloses(ctx context.Context, client *marketdata.Client, csvPath, symbol string, w domain.DateWindow) ([]domain.PricePoint, error) {
	if csvPath != "" {
		points, err := series.LoadCSVFile(csvPath, symbol)
		if err != nil {
			return nil, err
		}
		return series.Window(points, w), nil
	}
	return client.DailyCloses(ctx, symbol, w)
}

// fitPricingModel regresses the stock's excess returns on the market
// factor. The risk-free rate is a flat daily rate derived from the
// configured annual rate.
func fitPricingModel(ctx context.Context, cfg *config.Config, client *marketdata.Client, stock []domain.PricePoint, marketCSVPath string, w domain.DateWindow) (*pricing.ModelFit, error) {
	market, err := loadCloses(ctx, client, marketCSVPath, cfg.Pricing.MarketSymbol, w)
	if err != nil {
		return nil, fmt.Errorf("load market series: %w", err)
	}

	stockReturns := series.Returns(stock)
	marketReturns := series.Returns(market)

	var riskFree []domain.ReturnPoint
	if cfg.Pricing.RiskFreeAnnual != 0 {
		daily := cfg.Pricing.RiskFreeAnnual / pricing.TradingDaysPerYear
		riskFree = make([]domain.ReturnPoint, len(stockReturns))
		for i, p := range stockReturns {
			riskFree[i] = domain.ReturnPoint{Date: p.Date, Return: daily}
		}
	}

	return pricing.Fit(stockReturns, marketReturns, riskFree)
}
