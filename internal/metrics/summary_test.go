package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/simulator"
)

func makeSeries(prices []float64) []domain.PricePoint {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	result := make([]domain.PricePoint, len(prices))
	for i, p := range prices {
		result[i] = domain.PricePoint{
			Symbol: "amd.us",
			Date:   start.AddDate(0, 0, i),
			Close:  decimal.NewFromFloat(p),
		}
	}
	return result
}

func TestSummarize_WorkedScenario(t *testing.T) {
	// Base strategy over [10, 9, 11, 8] with lot 100:
	// total P/L = -1000 - 900 + 0 + 1600 = -300
	// invested  = 1900, roi = -15.79% (rounded)
	strat := simulator.NewMomentumReversalStrategy(decimal.NewFromInt(100))
	trades, err := strat.Run(makeSeries([]float64{10, 9, 11, 8}))
	require.NoError(t, err)

	summary, err := Summarize(trades)
	require.NoError(t, err)

	assert.Equal(t, "-300", summary.TotalProfitLoss.String())
	assert.Equal(t, "1900", summary.InvestedCapital.String())
	assert.Equal(t, "-15.79", summary.ROIPct.StringFixed(2))
}

func TestSummarize_MatchesDirectRecomputation(t *testing.T) {
	// Recompute both scalars from the trade records, independent of the
	// summary implementation.
	strat := simulator.NewProfitTakingStrategy(decimal.NewFromInt(100), decimal.NewFromFloat(1.2))
	trades, err := strat.Run(makeSeries([]float64{10, 9, 20, 18, 17, 25}))
	require.NoError(t, err)

	wantPL := decimal.Zero
	wantInvested := decimal.Zero
	for _, tr := range trades {
		wantPL = wantPL.Add(tr.CashFlow)
		if tr.Action == domain.ActionBuy {
			wantInvested = wantInvested.Sub(tr.CashFlow)
		}
	}

	summary, err := Summarize(trades)
	require.NoError(t, err)

	assert.True(t, summary.TotalProfitLoss.Equal(wantPL),
		"total P/L %s != recomputed %s", summary.TotalProfitLoss, wantPL)
	assert.True(t, summary.InvestedCapital.Equal(wantInvested),
		"invested %s != recomputed %s", summary.InvestedCapital, wantInvested)
}

func TestSummarize_NoInvestedCapital(t *testing.T) {
	// A sequence with no BUY records cannot come out of either simulator
	// variant (the first day always buys), so construct one by hand.
	trades := []domain.TradeRecord{
		{Date: time.Now(), Action: domain.ActionHold, CashFlow: decimal.Zero},
		{Date: time.Now(), Action: domain.ActionSell, CashFlow: decimal.NewFromInt(500)},
	}

	_, err := Summarize(trades)
	assert.ErrorIs(t, err, ErrNoInvestedCapital)
}

func TestSummarize_EmptyTrades(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoInvestedCapital)
}
