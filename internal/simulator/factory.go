package simulator

import (
	"errors"

	"github.com/shopspring/decimal"

	"equity-strategy-lab/internal/domain"
)

// Factory errors
var (
	ErrUnknownStrategyType = errors.New("unknown strategy type")
	ErrInvalidLotSize      = errors.New("lot size must be positive")
	ErrInvalidProfitMargin = errors.New("profit margin must be greater than 1")
)

var one = decimal.NewFromInt(1)

// FromConfig creates a Strategy from domain.StrategyConfig.
// A zero LotSize or ProfitMargin falls back to the domain default;
// anything else invalid yields a sentinel error.
func FromConfig(cfg domain.StrategyConfig) (Strategy, error) {
	lot := cfg.LotSize
	if lot.IsZero() {
		lot = domain.DefaultLotSize
	}
	if !lot.IsPositive() {
		return nil, ErrInvalidLotSize
	}

	switch cfg.StrategyType {
	case domain.StrategyTypeMomentumReversal:
		return NewMomentumReversalStrategy(lot), nil

	case domain.StrategyTypeProfitTaking:
		margin := cfg.ProfitMargin
		if margin.IsZero() {
			margin = domain.DefaultProfitMargin
		}
		if margin.LessThanOrEqual(one) {
			return nil, ErrInvalidProfitMargin
		}
		return NewProfitTakingStrategy(lot, margin), nil

	default:
		return nil, ErrUnknownStrategyType
	}
}
