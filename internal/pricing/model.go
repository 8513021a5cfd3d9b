package pricing

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"equity-strategy-lab/internal/domain"
)

// Pricing errors.
var (
	ErrInsufficientData = errors.New("need at least 3 aligned observations")
)

// TradingDaysPerYear is used to annualize the daily intercept.
const TradingDaysPerYear = 252

// ModelFit holds the single-factor regression of daily stock excess returns
// on market excess returns.
type ModelFit struct {
	Alpha           float64 // daily intercept
	AlphaAnnualized float64 // Alpha * 252
	Beta            float64 // slope on the market factor
	RSquared        float64
	ResidualStdDev  float64 // sample residual standard deviation (n-2 df)
	N               int     // aligned observations used
}

// Fit regresses stock excess returns on market excess returns with OLS.
// The three series are joined on date; only dates present in all of them
// contribute. A nil riskFree series means a zero risk-free rate.
func Fit(stock, market, riskFree []domain.ReturnPoint) (*ModelFit, error) {
	xs, ys := alignExcessReturns(stock, market, riskFree)
	n := len(xs)
	if n < 3 {
		return nil, ErrInsufficientData
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	estimates := make([]float64, n)
	sumSqResid := 0.0
	for i, x := range xs {
		estimates[i] = alpha + beta*x
		resid := ys[i] - estimates[i]
		sumSqResid += resid * resid
	}

	return &ModelFit{
		Alpha:           alpha,
		AlphaAnnualized: alpha * TradingDaysPerYear,
		Beta:            beta,
		RSquared:        stat.RSquaredFrom(estimates, ys, nil),
		ResidualStdDev:  math.Sqrt(sumSqResid / float64(n-2)),
		N:               n,
	}, nil
}

// alignExcessReturns joins the series on date and returns market excess
// returns (x) paired with stock excess returns (y), in stock-series order.
func alignExcessReturns(stock, market, riskFree []domain.ReturnPoint) (xs, ys []float64) {
	marketByDate := make(map[int64]float64, len(market))
	for _, p := range market {
		marketByDate[dateKey(p.Date)] = p.Return
	}

	rfByDate := make(map[int64]float64, len(riskFree))
	for _, p := range riskFree {
		rfByDate[dateKey(p.Date)] = p.Return
	}

	for _, p := range stock {
		key := dateKey(p.Date)
		m, ok := marketByDate[key]
		if !ok {
			continue
		}
		rf := 0.0
		if len(riskFree) > 0 {
			rf, ok = rfByDate[key]
			if !ok {
				continue
			}
		}
		xs = append(xs, m-rf)
		ys = append(ys, p.Return-rf)
	}
	return xs, ys
}

func dateKey(t time.Time) int64 {
	return t.UTC().Truncate(24 * time.Hour).Unix()
}
