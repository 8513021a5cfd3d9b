package backtest

import (
	"context"
	"time"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/idhash"
	"equity-strategy-lab/internal/metrics"
	"equity-strategy-lab/internal/simulator"
	"equity-strategy-lab/internal/storage"
)

// Runner executes backtests over stored price series.
type Runner struct {
	priceStore storage.PriceSeriesStore
	runStore   storage.BacktestRunStore
	now        func() time.Time
}

// RunnerOptions contains configuration for creating a Runner.
// RunStore may be nil; results are then returned without persistence.
type RunnerOptions struct {
	PriceStore storage.PriceSeriesStore
	RunStore   storage.BacktestRunStore

	// Now overrides the clock used for BacktestRun.CreatedAt. Nil means
	// time.Now.
	Now func() time.Time
}

// NewRunner creates a backtest runner.
func NewRunner(opts RunnerOptions) *Runner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		priceStore: opts.PriceStore,
		runStore:   opts.RunStore,
		now:        now,
	}
}

// RunRequest describes one backtest.
type RunRequest struct {
	Symbol   string
	Window   domain.DateWindow
	Strategy domain.StrategyConfig
	Persist  bool
}

// RunResult holds one completed backtest.
type RunResult struct {
	Run    domain.BacktestRun
	Trades []domain.TradeRecord
}

// Run executes a backtest.
// Steps:
//  1. Build strategy via simulator.FromConfig
//  2. Load the price series for the requested window
//  3. Run the simulator (fails fast on an empty series)
//  4. Summarize the trade sequence
//  5. Persist run + trades when requested
func (r *Runner) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	strat, err := simulator.FromConfig(req.Strategy)
	if err != nil {
		return nil, err
	}

	prices, err := r.priceStore.GetByDateWindow(ctx, req.Symbol, req.Window)
	if err != nil {
		return nil, err
	}

	trades, err := strat.Run(prices)
	if err != nil {
		return nil, err
	}

	summary, err := metrics.Summarize(trades)
	if err != nil {
		return nil, err
	}

	run := domain.BacktestRun{
		RunID:      idhash.ComputeRunID(req.Symbol, strat.ID(), req.Window.Start, req.Window.End),
		Symbol:     req.Symbol,
		StrategyID: strat.ID(),
		Window:     req.Window,
		Summary:    *summary,
		TradeCount: len(trades),
		CreatedAt:  r.now().UTC(),
	}

	if req.Persist && r.runStore != nil {
		if err := r.runStore.InsertRun(ctx, run, trades); err != nil {
			return nil, err
		}
	}

	return &RunResult{Run: run, Trades: trades}, nil
}
