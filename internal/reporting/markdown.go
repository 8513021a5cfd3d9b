package reporting

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the report as a Markdown document.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Strategy Report: %s\n\n", r.Symbol))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("Window: %s\n\n", formatWindow(r.Window)))

	sb.WriteString("## Strategy Comparison\n\n")
	if len(r.StrategyRows) == 0 {
		sb.WriteString("No completed runs.\n\n")
	} else {
		sb.WriteString("| Strategy | Days | Buys | Sells | Holds | P/L | Invested | ROI % | Max Drawdown |\n")
		sb.WriteString("|---|---|---|---|---|---|---|---|---|\n")
		for _, row := range r.StrategyRows {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %s | %s | %s | %s |\n",
				row.StrategyID,
				row.TradeCount,
				row.Buys,
				row.Sells,
				row.Holds,
				row.TotalProfitLoss.StringFixed(2),
				row.InvestedCapital.StringFixed(2),
				row.ROIPct.StringFixed(2),
				row.MaxDrawdown.StringFixed(2),
			))
		}
		sb.WriteString("\n")
	}

	if r.Pricing != nil {
		sb.WriteString("## Single-Factor Model\n\n")
		sb.WriteString(fmt.Sprintf("Observations: %d\n\n", r.Pricing.N))
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|---|---|\n")
		sb.WriteString(fmt.Sprintf("| Alpha (daily) | %.6f |\n", r.Pricing.Alpha))
		sb.WriteString(fmt.Sprintf("| Alpha (annualized) | %.4f |\n", r.Pricing.AlphaAnnualized))
		sb.WriteString(fmt.Sprintf("| Beta | %.4f |\n", r.Pricing.Beta))
		sb.WriteString(fmt.Sprintf("| R² | %.4f |\n", r.Pricing.RSquared))
		sb.WriteString(fmt.Sprintf("| Residual std dev | %.6f |\n", r.Pricing.ResidualStdDev))
		sb.WriteString("\n")
	}

	return sb.String()
}
