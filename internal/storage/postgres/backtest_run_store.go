package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/storage"
)

// BacktestRunStore implements storage.BacktestRunStore using PostgreSQL.
type BacktestRunStore struct {
	pool *Pool
}

// NewBacktestRunStore creates a new BacktestRunStore.
func NewBacktestRunStore(pool *Pool) *BacktestRunStore {
	return &BacktestRunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BacktestRunStore = (*BacktestRunStore)(nil)

// InsertRun persists a run together with its trade records atomically.
// Returns ErrDuplicateKey if run_id exists.
func (s *BacktestRunStore) InsertRun(ctx context.Context, run domain.BacktestRun, trades []domain.TradeRecord) error {
	if run.RunID == "" {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	runQuery := `
		INSERT INTO backtest_runs (
			run_id, symbol, strategy_id, window_start, window_end,
			total_profit_loss, invested_capital, roi_pct, trade_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(ctx, runQuery,
		run.RunID, run.Symbol, run.StrategyID,
		windowBound(run.Window.Start), windowBound(run.Window.End),
		run.Summary.TotalProfitLoss.String(),
		run.Summary.InvestedCapital.String(),
		run.Summary.ROIPct.String(),
		run.TradeCount, run.CreatedAt.UTC(),
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert backtest run: %w", err)
	}

	tradeQuery := `
		INSERT INTO trade_records (run_id, trade_date, action, cash_flow, shares_held)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, t := range trades {
		_, err := tx.Exec(ctx, tradeQuery,
			run.RunID, t.Date.UTC(), string(t.Action),
			t.CashFlow.String(), t.SharesHeld.String(),
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert trade record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *BacktestRunStore) GetRun(ctx context.Context, runID string) (*domain.BacktestRun, error) {
	query := `
		SELECT run_id, symbol, strategy_id, window_start, window_end,
		       total_profit_loss::text, invested_capital::text, roi_pct::text,
		       trade_count, created_at
		FROM backtest_runs
		WHERE run_id = $1
	`

	row := s.pool.QueryRow(ctx, query, runID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get backtest run: %w", err)
	}
	return run, nil
}

// GetTrades retrieves the trade records of a run, ordered by date ASC.
// Returns ErrNotFound if the run does not exist.
func (s *BacktestRunStore) GetTrades(ctx context.Context, runID string) ([]domain.TradeRecord, error) {
	// Distinguish "no run" from "run with zero trades".
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	query := `
		SELECT trade_date, action, cash_flow::text, shares_held::text
		FROM trade_records
		WHERE run_id = $1
		ORDER BY trade_date ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query trade records: %w", err)
	}
	defer rows.Close()

	var result []domain.TradeRecord
	for rows.Next() {
		var t domain.TradeRecord
		var action, cashFlow, sharesHeld string
		if err := rows.Scan(&t.Date, &action, &cashFlow, &sharesHeld); err != nil {
			return nil, fmt.Errorf("scan trade record: %w", err)
		}
		t.Date = t.Date.UTC()
		t.Action = domain.Action(action)
		if t.CashFlow, err = decimal.NewFromString(cashFlow); err != nil {
			return nil, fmt.Errorf("parse cash flow %q: %w", cashFlow, err)
		}
		if t.SharesHeld, err = decimal.NewFromString(sharesHeld); err != nil {
			return nil, fmt.Errorf("parse shares held %q: %w", sharesHeld, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade records: %w", err)
	}

	return result, nil
}

// ListRuns retrieves all runs for a symbol, ordered by creation time ASC.
func (s *BacktestRunStore) ListRuns(ctx context.Context, symbol string) ([]domain.BacktestRun, error) {
	query := `
		SELECT run_id, symbol, strategy_id, window_start, window_end,
		       total_profit_loss::text, invested_capital::text, roi_pct::text,
		       trade_count, created_at
		FROM backtest_runs
		WHERE symbol = $1
		ORDER BY created_at ASC, run_id ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("query backtest runs: %w", err)
	}
	defer rows.Close()

	var result []domain.BacktestRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backtest run: %w", err)
		}
		result = append(result, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backtest runs: %w", err)
	}

	return result, nil
}

// scanRun scans one backtest_runs row.
func scanRun(row pgx.Row) (*domain.BacktestRun, error) {
	var run domain.BacktestRun
	var windowStart, windowEnd *time.Time
	var pl, invested, roi string

	err := row.Scan(
		&run.RunID, &run.Symbol, &run.StrategyID, &windowStart, &windowEnd,
		&pl, &invested, &roi, &run.TradeCount, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if windowStart != nil {
		run.Window.Start = windowStart.UTC()
	}
	if windowEnd != nil {
		run.Window.End = windowEnd.UTC()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	if run.Summary.TotalProfitLoss, err = decimal.NewFromString(pl); err != nil {
		return nil, fmt.Errorf("parse total profit/loss %q: %w", pl, err)
	}
	if run.Summary.InvestedCapital, err = decimal.NewFromString(invested); err != nil {
		return nil, fmt.Errorf("parse invested capital %q: %w", invested, err)
	}
	if run.Summary.ROIPct, err = decimal.NewFromString(roi); err != nil {
		return nil, fmt.Errorf("parse roi %q: %w", roi, err)
	}

	return &run, nil
}
