package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint represents one daily adjusted close for a symbol.
// Corresponds to the daily_closes table.
type PricePoint struct {
	Symbol string          // exchange symbol, e.g. "amd.us"
	Date   time.Time       // trading day, UTC midnight
	Close  decimal.Decimal // adjusted close, always > 0
}

// ReturnPoint represents one daily simple return derived from closes.
// Returns are float64 because they feed the pricing regression, not the
// cash-flow accounting.
type ReturnPoint struct {
	Date   time.Time
	Return float64
}

// DateWindow restricts a series to [Start, End] inclusive.
// A zero Start or End leaves that side unbounded.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window.
func (w DateWindow) Contains(d time.Time) bool {
	if !w.Start.IsZero() && d.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && d.After(w.End) {
		return false
	}
	return true
}

// IsOpen reports whether the window places no restriction at all.
func (w DateWindow) IsOpen() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
