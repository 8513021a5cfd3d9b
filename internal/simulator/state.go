package simulator

import (
	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

var two = decimal.NewFromInt(2)

// State is the loop-carried simulator state. A fresh State is built at the
// start of each run and discarded at the end. The per-day step functions
// take it by value and return the successor, which keeps every transition
// independently testable and makes stale-state reuse across runs impossible.
type State struct {
	// PrevClose is the previous day's close, nil on the first day. An
	// explicit absent value rather than a zero sentinel: a zero close is
	// rejected by the loader, but "no prior day" must not be encoded as a
	// price.
	PrevClose *decimal.Decimal

	// Shares is the running total of shares held. Never negative.
	Shares decimal.Decimal

	// CostBasis is the money currently committed to held shares.
	// Maintained by the profit-taking variant only.
	CostBasis decimal.Decimal

	// LastAction is the most recent BUY or SELL. HOLD days leave it
	// untouched. Maintained by the profit-taking variant only.
	LastAction domain.Action
}

func newState() State {
	return State{
		Shares:     decimal.Zero,
		CostBasis:  decimal.Zero,
		LastAction: domain.ActionNone,
	}
}

// averageCost returns CostBasis / Shares, or zero when nothing is held.
func (s State) averageCost() decimal.Decimal {
	if !s.Shares.IsPositive() {
		return decimal.Zero
	}
	return s.CostBasis.Div(s.Shares)
}

// advance records the current close as the next iteration's previous close.
func (s State) advance(close decimal.Decimal) State {
	s.PrevClose = &close
	return s
}

// downDay reports whether the close fell below the previous close. False on
// the first day.
func (s State) downDay(close decimal.Decimal) bool {
	return s.PrevClose != nil && close.LessThan(*s.PrevClose)
}
