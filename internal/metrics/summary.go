package metrics

import (
	"errors"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// Summary errors.
var (
	ErrNoInvestedCapital = errors.New("roi undefined: no invested capital")
)

var hundred = decimal.NewFromInt(100)

// Summarize computes the summary scalars from a completed trade sequence.
// Pure function, no state between calls; the arithmetic is the same decimal
// arithmetic that produced the cash flows, so no resummation rounding is
// introduced.
//
// Returns ErrNoInvestedCapital when the sequence contains no BUY cash flow:
// ROI is undefined then and must not silently become infinity. Both
// simulator variants always open with a BUY, so a caller can only hit this
// with a trade slice produced elsewhere.
func Summarize(trades []domain.TradeRecord) (*domain.SummaryMetrics, error) {
	totalPL := decimal.Zero
	invested := decimal.Zero

	for _, t := range trades {
		totalPL = totalPL.Add(t.CashFlow)
		if t.Action == domain.ActionBuy {
			invested = invested.Sub(t.CashFlow)
		}
	}

	if invested.IsZero() {
		return nil, ErrNoInvestedCapital
	}

	return &domain.SummaryMetrics{
		TotalProfitLoss: totalPL,
		InvestedCapital: invested,
		ROIPct:          totalPL.Div(invested).Mul(hundred),
	}, nil
}
