package metrics

import (
	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// ActionCounts tallies trade records by action.
type ActionCounts struct {
	Buys  int
	Sells int
	Holds int
}

// CountActions counts BUY/SELL/HOLD records in a trade sequence.
func CountActions(trades []domain.TradeRecord) ActionCounts {
	var c ActionCounts
	for _, t := range trades {
		switch t.Action {
		case domain.ActionBuy:
			c.Buys++
		case domain.ActionSell:
			c.Sells++
		case domain.ActionHold:
			c.Holds++
		}
	}
	return c
}

// CumulativeCashFlow returns the running sum of cash flows, one value per
// trade record, in input order.
func CumulativeCashFlow(trades []domain.TradeRecord) []decimal.Decimal {
	out := make([]decimal.Decimal, len(trades))
	cumulative := decimal.Zero
	for i, t := range trades {
		cumulative = cumulative.Add(t.CashFlow)
		out[i] = cumulative
	}
	return out
}

// MaxDrawdown computes the worst peak-to-trough drop of the cumulative cash
// flow curve. Trades must be in chronological order. Zero for an empty
// sequence.
func MaxDrawdown(trades []domain.TradeRecord) decimal.Decimal {
	cumulative := decimal.Zero
	peak := decimal.Zero
	maxDrawdown := decimal.Zero

	for _, t := range trades {
		cumulative = cumulative.Add(t.CashFlow)
		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		drawdown := peak.Sub(cumulative)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}
