package series

import (
	"errors"
	"fmt"

	"equity-strategy-lab/internal/domain"
)

const dateLayout = "2006-01-02"

// Validation errors.
var (
	ErrNonPositiveClose = errors.New("close price must be positive")
	ErrUnorderedDates   = errors.New("dates must be strictly increasing")
	ErrDuplicateDate    = errors.New("duplicate date in series")
)

// Validate checks the loader invariants the simulator relies on: every close
// is positive and dates are strictly increasing. An empty series passes here;
// the simulator rejects it at run time.
func Validate(points []domain.PricePoint) error {
	for i, p := range points {
		if !p.Close.IsPositive() {
			return fmt.Errorf("point %d (%s): %w", i, p.Date.Format(dateLayout), ErrNonPositiveClose)
		}
		if i == 0 {
			continue
		}
		prev := points[i-1].Date
		if p.Date.Equal(prev) {
			return fmt.Errorf("point %d (%s): %w", i, p.Date.Format(dateLayout), ErrDuplicateDate)
		}
		if p.Date.Before(prev) {
			return fmt.Errorf("point %d (%s): %w", i, p.Date.Format(dateLayout), ErrUnorderedDates)
		}
	}
	return nil
}
