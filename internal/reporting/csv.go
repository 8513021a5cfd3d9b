package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders the strategy comparison rows as a CSV string.
func RenderCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("strategy_id,trade_count,buys,sells,holds,")
	sb.WriteString("total_profit_loss,invested_capital,roi_pct,max_drawdown\n")

	for _, row := range r.StrategyRows {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d,%s,%s,%s,%s\n",
			row.StrategyID,
			row.TradeCount,
			row.Buys,
			row.Sells,
			row.Holds,
			row.TotalProfitLoss.String(),
			row.InvestedCapital.String(),
			row.ROIPct.String(),
			row.MaxDrawdown.String(),
		))
	}

	return sb.String()
}
