package domain

import "time"

// BacktestRun represents one persisted simulation run over a price series.
// Corresponds to the backtest_runs table. The trade records of a run are
// stored separately, keyed by RunID.
type BacktestRun struct {
	RunID      string // deterministic hash, see idhash.ComputeRunID
	Symbol     string
	StrategyID string // strategy identifier including parameters
	Window     DateWindow

	Summary    SummaryMetrics
	TradeCount int

	CreatedAt time.Time
}
