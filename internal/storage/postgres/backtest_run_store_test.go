package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/storage"
	"equity-strategy-lab/internal/storage/postgres"
)

func testRun(runID, symbol string, createdAt time.Time) domain.BacktestRun {
	return domain.BacktestRun{
		RunID:      runID,
		Symbol:     symbol,
		StrategyID: "MOMENTUM_REVERSAL_lot100",
		Window: domain.DateWindow{
			Start: testDay(1),
			End:   testDay(4),
		},
		Summary: domain.SummaryMetrics{
			TotalProfitLoss: decimal.NewFromInt(-300),
			InvestedCapital: decimal.NewFromInt(1900),
			ROIPct:          decimal.RequireFromString("-15.789474"),
		},
		TradeCount: 2,
		CreatedAt:  createdAt,
	}
}

func testTrades() []domain.TradeRecord {
	return []domain.TradeRecord{
		{
			Date:       testDay(2),
			Action:     domain.ActionHold,
			CashFlow:   decimal.Zero,
			SharesHeld: decimal.NewFromInt(100),
		},
		{
			Date:       testDay(1),
			Action:     domain.ActionBuy,
			CashFlow:   decimal.NewFromInt(-1000),
			SharesHeld: decimal.NewFromInt(100),
		},
	}
}

func TestBacktestRunStore_InsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	created := time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertRun(ctx, testRun("run-1", "amd.us", created), testTrades()))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "amd.us", got.Symbol)
	assert.Equal(t, "MOMENTUM_REVERSAL_lot100", got.StrategyID)
	assert.Equal(t, testDay(1), got.Window.Start)
	assert.Equal(t, testDay(4), got.Window.End)
	assert.True(t, got.Summary.TotalProfitLoss.Equal(decimal.NewFromInt(-300)))
	assert.True(t, got.Summary.InvestedCapital.Equal(decimal.NewFromInt(1900)))
	assert.Equal(t, 2, got.TradeCount)
	assert.Equal(t, created, got.CreatedAt)

	trades, err := store.GetTrades(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	// Ordered by trade_date ASC regardless of insertion order
	assert.Equal(t, domain.ActionBuy, trades[0].Action)
	assert.True(t, trades[0].CashFlow.Equal(decimal.NewFromInt(-1000)))
	assert.Equal(t, domain.ActionHold, trades[1].Action)
	assert.True(t, trades[1].SharesHeld.Equal(decimal.NewFromInt(100)))
}

func TestBacktestRunStore_OpenWindow(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	run := testRun("run-open", "amd.us", testDay(10))
	run.Window = domain.DateWindow{}
	require.NoError(t, store.InsertRun(ctx, run, nil))

	got, err := store.GetRun(ctx, "run-open")
	require.NoError(t, err)
	assert.True(t, got.Window.IsOpen())
}

func TestBacktestRunStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetTrades(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBacktestRunStore_DuplicateRun(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	run := testRun("run-dup", "amd.us", testDay(10))
	require.NoError(t, store.InsertRun(ctx, run, nil))

	err := store.InsertRun(ctx, run, nil)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestBacktestRunStore_InsertRunAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	// Duplicate trade_date within the batch rolls back the run row too.
	trades := []domain.TradeRecord{
		{Date: testDay(1), Action: domain.ActionBuy, CashFlow: decimal.NewFromInt(-1000), SharesHeld: decimal.NewFromInt(100)},
		{Date: testDay(1), Action: domain.ActionHold, CashFlow: decimal.Zero, SharesHeld: decimal.NewFromInt(100)},
	}

	err := store.InsertRun(ctx, testRun("run-atomic", "amd.us", testDay(10)), trades)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	_, err = store.GetRun(ctx, "run-atomic")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBacktestRunStore_ListRuns(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	require.NoError(t, store.InsertRun(ctx, testRun("run-b", "amd.us", testDay(12)), nil))
	require.NoError(t, store.InsertRun(ctx, testRun("run-a", "amd.us", testDay(11)), nil))
	require.NoError(t, store.InsertRun(ctx, testRun("run-c", "intc.us", testDay(10)), nil))

	runs, err := store.ListRuns(ctx, "amd.us")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-a", runs[0].RunID)
	assert.Equal(t, "run-b", runs[1].RunID)
}

func TestBacktestRunStore_ZeroTrades(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := postgres.NewBacktestRunStore(pool)

	require.NoError(t, store.InsertRun(ctx, testRun("run-empty", "amd.us", testDay(10)), nil))

	trades, err := store.GetTrades(ctx, "run-empty")
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestBacktestRunStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := postgres.NewBacktestRunStore(pool)
	err := store.InsertRun(context.Background(), domain.BacktestRun{}, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
