package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/storage"
)

// PriceSeriesStore implements storage.PriceSeriesStore using PostgreSQL.
type PriceSeriesStore struct {
	pool *Pool
}

// NewPriceSeriesStore creates a new PriceSeriesStore.
func NewPriceSeriesStore(pool *Pool) *PriceSeriesStore {
	return &PriceSeriesStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PriceSeriesStore = (*PriceSeriesStore)(nil)

// InsertBulk adds multiple points atomically. Fails the entire batch on any
// duplicate (symbol, close_date).
func (s *PriceSeriesStore) InsertBulk(ctx context.Context, points []domain.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO daily_closes (symbol, close_date, close)
		VALUES ($1, $2, $3)
	`

	for _, p := range points {
		if p.Symbol == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query, p.Symbol, p.Date.UTC(), p.Close.String())
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert daily close: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetBySymbol retrieves all points for a symbol, ordered by date ASC.
func (s *PriceSeriesStore) GetBySymbol(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	return s.GetByDateWindow(ctx, symbol, domain.DateWindow{})
}

// GetByDateWindow retrieves points for a symbol inside the window, ordered
// by date ASC.
func (s *PriceSeriesStore) GetByDateWindow(ctx context.Context, symbol string, w domain.DateWindow) ([]domain.PricePoint, error) {
	query := `
		SELECT symbol, close_date, close::text
		FROM daily_closes
		WHERE symbol = $1
		  AND ($2::date IS NULL OR close_date >= $2)
		  AND ($3::date IS NULL OR close_date <= $3)
		ORDER BY close_date ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol, windowBound(w.Start), windowBound(w.End))
	if err != nil {
		return nil, fmt.Errorf("query daily closes: %w", err)
	}
	defer rows.Close()

	var result []domain.PricePoint
	for rows.Next() {
		var p domain.PricePoint
		var closeText string
		if err := rows.Scan(&p.Symbol, &p.Date, &closeText); err != nil {
			return nil, fmt.Errorf("scan daily close: %w", err)
		}
		p.Date = p.Date.UTC()
		p.Close, err = decimal.NewFromString(closeText)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", closeText, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily closes: %w", err)
	}

	return result, nil
}

// windowBound converts a window side into a nullable query parameter.
func windowBound(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
