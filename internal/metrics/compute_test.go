package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"equity-strategy-lab/internal/domain"
)

func tradesWithCashFlows(flows []int64) []domain.TradeRecord {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	result := make([]domain.TradeRecord, len(flows))
	for i, f := range flows {
		action := domain.ActionHold
		switch {
		case f < 0:
			action = domain.ActionBuy
		case f > 0:
			action = domain.ActionSell
		}
		result[i] = domain.TradeRecord{
			Date:     start.AddDate(0, 0, i),
			Action:   action,
			CashFlow: decimal.NewFromInt(f),
		}
	}
	return result
}

func TestCountActions(t *testing.T) {
	counts := CountActions(tradesWithCashFlows([]int64{-100, -50, 0, 0, 200}))

	assert.Equal(t, 2, counts.Buys)
	assert.Equal(t, 1, counts.Sells)
	assert.Equal(t, 2, counts.Holds)
}

func TestCumulativeCashFlow(t *testing.T) {
	cum := CumulativeCashFlow(tradesWithCashFlows([]int64{-100, 50, -25, 200}))

	want := []string{"-100", "-50", "-75", "125"}
	assert.Len(t, cum, len(want))
	for i, w := range want {
		assert.Equal(t, w, cum[i].String(), "index %d", i)
	}
}

func TestMaxDrawdown(t *testing.T) {
	cases := []struct {
		name  string
		flows []int64
		want  string
	}{
		{"empty", nil, "0"},
		{"monotonic gains", []int64{10, 20, 30}, "0"},
		{"single drop", []int64{100, -40, 60}, "40"},
		{"peak then trough", []int64{100, 50, -120, -80, 300}, "200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MaxDrawdown(tradesWithCashFlows(tc.flows))
			assert.Equal(t, tc.want, got.String())
		})
	}
}
