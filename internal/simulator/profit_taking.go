package simulator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// ProfitTakingStrategy extends the momentum rules with a running average
// cost basis. Whenever the close reaches ProfitMargin times the average
// cost, half of the holdings are liquidated; a BUY that immediately follows
// a SELL halves the remaining position and basis before adding the new lot,
// modelling capital reallocation after a partial exit. This deliberately
// trades lower total return for realized gains along the way.
type ProfitTakingStrategy struct {
	LotSize      decimal.Decimal
	ProfitMargin decimal.Decimal
}

// NewProfitTakingStrategy creates a new ProfitTakingStrategy.
func NewProfitTakingStrategy(lotSize, profitMargin decimal.Decimal) *ProfitTakingStrategy {
	return &ProfitTakingStrategy{
		LotSize:      lotSize,
		ProfitMargin: profitMargin,
	}
}

// ID returns the strategy identifier including parameters.
func (s *ProfitTakingStrategy) ID() string {
	return fmt.Sprintf("%s_lot%s_margin%s", domain.StrategyTypeProfitTaking, s.LotSize, s.ProfitMargin)
}

// Run folds profitTakingStep over the series.
func (s *ProfitTakingStrategy) Run(series []domain.PricePoint) ([]domain.TradeRecord, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	st := newState()
	records := make([]domain.TradeRecord, 0, len(series))
	for i, pt := range series {
		var rec domain.TradeRecord
		st, rec = profitTakingStep(st, pt, i == len(series)-1, s.LotSize, s.ProfitMargin)
		records = append(records, rec)
	}
	return records, nil
}

// profitTakingStep is the per-day transition function. Rules in strict
// priority:
//
//  1. holdings exist and close >= averageCost * margin: SELL half
//  2. last day: SELL everything, reset shares and basis
//  3. first day or down day: BUY one lot, halving position and basis first
//     when the last recorded action was a SELL
//  4. otherwise: HOLD
//
// Rule 1 outranks the last-day rule, so a profit-taking exit on the final
// day sells half, not all. HOLD days leave LastAction untouched; only a BUY
// or SELL rewrites it.
func profitTakingStep(st State, pt domain.PricePoint, last bool, lot, margin decimal.Decimal) (State, domain.TradeRecord) {
	rec := domain.TradeRecord{
		Date:     pt.Date,
		CashFlow: decimal.Zero,
	}

	avg := st.averageCost()
	threshold := avg.Mul(margin)
	profitHit := st.Shares.IsPositive() && pt.Close.GreaterThanOrEqual(threshold)

	switch {
	case profitHit:
		toSell := st.Shares.Div(two)
		rec.Action = domain.ActionSell
		rec.CashFlow = pt.Close.Mul(toSell)
		st.CostBasis = st.CostBasis.Sub(avg.Mul(toSell))
		st.Shares = st.Shares.Sub(toSell)
		st.LastAction = domain.ActionSell

	case last:
		rec.Action = domain.ActionSell
		rec.CashFlow = pt.Close.Mul(st.Shares)
		st.Shares = decimal.Zero
		st.CostBasis = decimal.Zero
		st.LastAction = domain.ActionSell

	case st.PrevClose == nil || st.downDay(pt.Close):
		rec.Action = domain.ActionBuy
		rec.CashFlow = pt.Close.Mul(lot).Neg()
		if st.LastAction == domain.ActionSell {
			st.Shares = st.Shares.Div(two).Add(lot)
			st.CostBasis = st.CostBasis.Div(two).Add(pt.Close.Mul(lot))
		} else {
			st.Shares = st.Shares.Add(lot)
			st.CostBasis = st.CostBasis.Add(pt.Close.Mul(lot))
		}
		st.LastAction = domain.ActionBuy

	default:
		rec.Action = domain.ActionHold
	}

	rec.SharesHeld = st.Shares
	return st.advance(pt.Close), rec
}

// Ensure ProfitTakingStrategy implements Strategy
var _ Strategy = (*ProfitTakingStrategy)(nil)
