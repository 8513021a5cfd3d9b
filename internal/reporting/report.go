package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
	"equity-strategy-lab/internal/pricing"
)

// Report represents the strategy comparison report for one symbol.
type Report struct {
	GeneratedAt time.Time
	Symbol      string
	Window      domain.DateWindow

	// StrategyRows are sorted by strategy_id.
	StrategyRows []StrategyRow

	// Pricing is the single-factor model section, nil when the market
	// series was unavailable.
	Pricing *pricing.ModelFit
}

// StrategyRow represents one strategy's line in the comparison table.
type StrategyRow struct {
	StrategyID      string
	TradeCount      int
	Buys            int
	Sells           int
	Holds           int
	TotalProfitLoss decimal.Decimal
	InvestedCapital decimal.Decimal
	ROIPct          decimal.Decimal
	MaxDrawdown     decimal.Decimal
}
