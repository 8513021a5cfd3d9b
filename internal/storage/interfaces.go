package storage

import (
	"context"

	"equity-strategy-lab/internal/domain"
)

// PriceSeriesStore provides access to daily_closes storage.
type PriceSeriesStore interface {
	// InsertBulk adds multiple points. Fails the entire batch on a
	// duplicate (symbol, date).
	InsertBulk(ctx context.Context, points []domain.PricePoint) error

	// GetBySymbol retrieves all points for a symbol, ordered by date ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]domain.PricePoint, error)

	// GetByDateWindow retrieves points for a symbol inside the window,
	// ordered by date ASC. An open window side is unbounded.
	GetByDateWindow(ctx context.Context, symbol string, w domain.DateWindow) ([]domain.PricePoint, error)
}

// BacktestRunStore provides access to backtest_runs and trade_records
// storage. Trade records only exist as part of a run.
type BacktestRunStore interface {
	// InsertRun persists a run together with its trade records.
	// Returns ErrDuplicateKey if run_id exists.
	InsertRun(ctx context.Context, run domain.BacktestRun, trades []domain.TradeRecord) error

	// GetRun retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetRun(ctx context.Context, runID string) (*domain.BacktestRun, error)

	// GetTrades retrieves the trade records of a run, ordered by date ASC.
	// Returns ErrNotFound if the run does not exist.
	GetTrades(ctx context.Context, runID string) ([]domain.TradeRecord, error)

	// ListRuns retrieves all runs for a symbol, ordered by creation time ASC.
	ListRuns(ctx context.Context, symbol string) ([]domain.BacktestRun, error)
}
