package memory

import (
	"context"
	"sort"
	"sync"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/storage"
)

// BacktestRunStore is an in-memory implementation of storage.BacktestRunStore.
type BacktestRunStore struct {
	mu     sync.RWMutex
	runs   map[string]domain.BacktestRun   // keyed by run_id
	trades map[string][]domain.TradeRecord // keyed by run_id
}

// NewBacktestRunStore creates a new in-memory backtest run store.
func NewBacktestRunStore() *BacktestRunStore {
	return &BacktestRunStore{
		runs:   make(map[string]domain.BacktestRun),
		trades: make(map[string][]domain.TradeRecord),
	}
}

// InsertRun persists a run together with its trade records.
func (s *BacktestRunStore) InsertRun(_ context.Context, run domain.BacktestRun, trades []domain.TradeRecord) error {
	if run.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	tradesCopy := make([]domain.TradeRecord, len(trades))
	copy(tradesCopy, trades)

	s.runs[run.RunID] = run
	s.trades[run.RunID] = tradesCopy
	return nil
}

// GetRun retrieves a run by its ID.
func (s *BacktestRunStore) GetRun(_ context.Context, runID string) (*domain.BacktestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	runCopy := run
	return &runCopy, nil
}

// GetTrades retrieves the trade records of a run, ordered by date ASC.
func (s *BacktestRunStore) GetTrades(_ context.Context, runID string) ([]domain.TradeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades, exists := s.trades[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	result := make([]domain.TradeRecord, len(trades))
	copy(result, trades)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// ListRuns retrieves all runs for a symbol, ordered by creation time ASC.
func (s *BacktestRunStore) ListRuns(_ context.Context, symbol string) ([]domain.BacktestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.BacktestRun
	for _, run := range s.runs {
		if run.Symbol == symbol {
			result = append(result, run)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].RunID < result[j].RunID
	})
	return result, nil
}

var _ storage.BacktestRunStore = (*BacktestRunStore)(nil)
