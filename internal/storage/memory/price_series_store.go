package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/storage"
)

// PriceSeriesStore is an in-memory implementation of storage.PriceSeriesStore.
type PriceSeriesStore struct {
	mu   sync.RWMutex
	data map[string]domain.PricePoint // keyed by (symbol, date)
}

// NewPriceSeriesStore creates a new in-memory price series store.
func NewPriceSeriesStore() *PriceSeriesStore {
	return &PriceSeriesStore{
		data: make(map[string]domain.PricePoint),
	}
}

// closeKey generates a unique key for a daily close.
func closeKey(symbol string, p domain.PricePoint) string {
	return fmt.Sprintf("%s|%s", symbol, p.Date.UTC().Format("2006-01-02"))
}

// InsertBulk adds multiple points. Fails the entire batch on a duplicate.
func (s *PriceSeriesStore) InsertBulk(_ context.Context, points []domain.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(points))

	for _, p := range points {
		if p.Symbol == "" {
			return storage.ErrInvalidInput
		}
		key := closeKey(p.Symbol, p)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		s.data[closeKey(p.Symbol, p)] = p
	}

	return nil
}

// GetBySymbol retrieves all points for a symbol, ordered by date ASC.
func (s *PriceSeriesStore) GetBySymbol(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	return s.GetByDateWindow(ctx, symbol, domain.DateWindow{})
}

// GetByDateWindow retrieves points for a symbol inside the window, ordered
// by date ASC.
func (s *PriceSeriesStore) GetByDateWindow(_ context.Context, symbol string, w domain.DateWindow) ([]domain.PricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.PricePoint
	for _, p := range s.data {
		if p.Symbol == symbol && w.Contains(p.Date) {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

var _ storage.PriceSeriesStore = (*PriceSeriesStore)(nil)
