package domain

import "github.com/shopspring/decimal"

// StrategyConfig represents strategy configuration parameters.
// Lot size and profit margin are always passed per call, never read from
// process-wide state.
type StrategyConfig struct {
	StrategyType string // "MOMENTUM_REVERSAL" | "PROFIT_TAKING"

	// LotSize is the fixed number of shares bought per BUY action.
	LotSize decimal.Decimal

	// ProfitMargin is the multiplier over average cost that triggers a
	// partial liquidation. PROFIT_TAKING only, must be > 1.
	ProfitMargin decimal.Decimal
}

// Strategy type constants.
const (
	StrategyTypeMomentumReversal = "MOMENTUM_REVERSAL"
	StrategyTypeProfitTaking     = "PROFIT_TAKING"
)

// Default configuration values.
var (
	DefaultLotSize      = decimal.NewFromInt(100)
	DefaultProfitMargin = decimal.New(12, -1) // 1.2, i.e. 20% above average cost
)
