package simulator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// MomentumReversalStrategy buys a fixed lot on the first day and on every
// down day, holds on up days, and liquidates everything on the last day.
// The same rule engine serves the full history and any date-restricted
// window; restricting the window is the loader's job.
type MomentumReversalStrategy struct {
	LotSize decimal.Decimal
}

// NewMomentumReversalStrategy creates a new MomentumReversalStrategy.
func NewMomentumReversalStrategy(lotSize decimal.Decimal) *MomentumReversalStrategy {
	return &MomentumReversalStrategy{LotSize: lotSize}
}

// ID returns the strategy identifier including parameters.
func (s *MomentumReversalStrategy) ID() string {
	return fmt.Sprintf("%s_lot%s", domain.StrategyTypeMomentumReversal, s.LotSize)
}

// Run folds momentumStep over the series. One record per point, single
// pass, O(1) state beyond the output.
func (s *MomentumReversalStrategy) Run(series []domain.PricePoint) ([]domain.TradeRecord, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	st := newState()
	records := make([]domain.TradeRecord, 0, len(series))
	for i, pt := range series {
		var rec domain.TradeRecord
		st, rec = momentumStep(st, pt, i == len(series)-1, s.LotSize)
		records = append(records, rec)
	}
	return records, nil
}

// momentumStep is the per-day transition function. Rules in strict priority:
//
//  1. first day: BUY one lot
//  2. last day: SELL all accumulated shares
//  3. close below previous close: BUY one lot
//  4. otherwise: HOLD (covers up days and the equal-price day, which
//     resolves to an explicit HOLD rather than an unset record)
//
// A single-point series hits rule 1, not rule 2: the first-day check wins.
func momentumStep(st State, pt domain.PricePoint, last bool, lot decimal.Decimal) (State, domain.TradeRecord) {
	rec := domain.TradeRecord{
		Date:     pt.Date,
		CashFlow: decimal.Zero,
	}

	switch {
	case st.PrevClose == nil:
		rec.Action = domain.ActionBuy
		rec.CashFlow = pt.Close.Mul(lot).Neg()
		st.Shares = st.Shares.Add(lot)

	case last:
		rec.Action = domain.ActionSell
		rec.CashFlow = pt.Close.Mul(st.Shares)
		// Liquidation proceeds are reported without zeroing Shares: the
		// record is terminal and the state dies with the run, so the
		// reported holdings stay consistent with the penultimate day.

	case st.downDay(pt.Close):
		rec.Action = domain.ActionBuy
		rec.CashFlow = pt.Close.Mul(lot).Neg()
		st.Shares = st.Shares.Add(lot)

	default:
		rec.Action = domain.ActionHold
	}

	rec.SharesHeld = st.Shares
	return st.advance(pt.Close), rec
}

// Ensure MomentumReversalStrategy implements Strategy
var _ Strategy = (*MomentumReversalStrategy)(nil)
