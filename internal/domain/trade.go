package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action represents a per-day trade decision.
type Action string

// Action constants.
const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"

	// ActionNone marks the absence of a prior recorded action. It never
	// appears in a TradeRecord, only in loop-carried simulator state.
	ActionNone Action = "NONE"
)

// TradeRecord represents one day of simulator output. Exactly one record is
// produced per input PricePoint.
type TradeRecord struct {
	Date       time.Time
	Action     Action
	CashFlow   decimal.Decimal // negative for purchases, positive for sales, zero for HOLD
	SharesHeld decimal.Decimal // running total after this day's action, never negative
}

// SummaryMetrics holds the derived scalars for a completed run.
type SummaryMetrics struct {
	TotalProfitLoss decimal.Decimal // sum of all cash flows
	InvestedCapital decimal.Decimal // negated sum of BUY cash flows
	ROIPct          decimal.Decimal // profit/loss over invested capital, in percent
}
