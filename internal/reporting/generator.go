package reporting

import (
	"sort"
	"time"

	"equity-strategy-lab/internal/backtest"
	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/metrics"
	"equity-strategy-lab/internal/pricing"
)

// BuildReport assembles the comparison report from completed backtest
// results. Results are assumed to share the symbol and window; the first
// result supplies both.
func BuildReport(results []backtest.RunResult, fit *pricing.ModelFit) *Report {
	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Pricing:     fit,
	}
	if len(results) > 0 {
		report.Symbol = results[0].Run.Symbol
		report.Window = results[0].Run.Window
	}

	for _, res := range results {
		counts := metrics.CountActions(res.Trades)
		report.StrategyRows = append(report.StrategyRows, StrategyRow{
			StrategyID:      res.Run.StrategyID,
			TradeCount:      res.Run.TradeCount,
			Buys:            counts.Buys,
			Sells:           counts.Sells,
			Holds:           counts.Holds,
			TotalProfitLoss: res.Run.Summary.TotalProfitLoss,
			InvestedCapital: res.Run.Summary.InvestedCapital,
			ROIPct:          res.Run.Summary.ROIPct,
			MaxDrawdown:     metrics.MaxDrawdown(res.Trades),
		})
	}

	sort.Slice(report.StrategyRows, func(i, j int) bool {
		return report.StrategyRows[i].StrategyID < report.StrategyRows[j].StrategyID
	})

	return report
}

// formatWindow renders a date window for display.
func formatWindow(w domain.DateWindow) string {
	const layout = "2006-01-02"
	switch {
	case w.IsOpen():
		return "full history"
	case w.Start.IsZero():
		return "through " + w.End.Format(layout)
	case w.End.IsZero():
		return "from " + w.Start.Format(layout)
	default:
		return w.Start.Format(layout) + " to " + w.End.Format(layout)
	}
}
