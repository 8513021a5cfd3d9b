package simulator

import (
	"errors"

	"equity-strategy-lab/internal/domain"
)

// Simulator errors.
var (
	ErrEmptySeries = errors.New("empty price series")
)

// Strategy walks a price series day by day and produces one trade record per
// input point. Each call to Run constructs fresh loop-carried state, so
// concurrent callers may run the same Strategy value over identical or
// disjoint series without coordination.
//
// Run takes no context on purpose: a run is a pure in-memory scan over a
// bounded series with no suspension points, always terminating in O(n).
// Each day's decision is a function of cumulative state, so the scan is
// inherently sequential.
type Strategy interface {
	// Run produces a trade record per price point, in input order.
	// Returns ErrEmptySeries for a zero-length series.
	Run(series []domain.PricePoint) ([]domain.TradeRecord, error)

	// ID returns the strategy identifier (includes parameters).
	ID() string
}
