package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quantora/fxcore/fxerr"
)

// DeltaHedge returns the spot notional that neutralizes an option book's
// delta: -sum(notional * delta) over the positions.
func DeltaHedge(positions []OptionPosition) (float64, error) {
	if len(positions) == 0 {
		return 0, fxerr.Validationf("DeltaHedge", "no positions supplied")
	}
	var total float64
	for _, p := range positions {
		total += p.Notional * p.Delta
	}
	return -total, nil
}

// OptimalHedge builds the OLS minimum-variance hedge of a spot exposure
// with a hedge instrument: ratio = Cov(spot, hedge)/Var(hedge),
// effectiveness = R-squared, residual risk = the per-period return
// volatility the hedge leaves behind.
func OptimalHedge(spotReturns, hedgeReturns []float64, exposure float64) (HedgeResult, error) {
	if len(spotReturns) != len(hedgeReturns) {
		return HedgeResult{}, fxerr.Validationf("OptimalHedge", "series differ in length: %d vs %d", len(spotReturns), len(hedgeReturns))
	}
	if len(spotReturns) < 2 {
		return HedgeResult{}, fxerr.Validationf("OptimalHedge", "need at least 2 observations, got %d", len(spotReturns))
	}

	hedgeVar := stat.Variance(hedgeReturns, nil)
	if hedgeVar == 0 {
		return HedgeResult{}, fxerr.Validationf("OptimalHedge", "hedge instrument variance is zero")
	}

	ratio := stat.Covariance(spotReturns, hedgeReturns, nil) / hedgeVar

	corr, err := Pearson(spotReturns, hedgeReturns)
	if err != nil {
		return HedgeResult{}, err
	}

	spotVar := stat.Variance(spotReturns, nil)
	residualVar := spotVar - ratio*ratio*hedgeVar
	if residualVar < 0 {
		residualVar = 0
	}

	return HedgeResult{
		HedgeRatio:    ratio,
		HedgeNotional: -ratio * exposure,
		Effectiveness: corr * corr,
		ResidualRisk:  math.Sqrt(residualVar),
	}, nil
}

// Effectiveness returns the hedge-effectiveness R-squared between spot and
// hedged-portfolio returns.
func Effectiveness(spotReturns, hedgedReturns []float64) (float64, error) {
	corr, err := Pearson(spotReturns, hedgedReturns)
	if err != nil {
		return 0, err
	}
	return corr * corr, nil
}

// PortfolioHedge neutralizes each currency exposure with a unit-ratio
// directional hedge: the hedge notional is the exposure negated.
//
// This is deliberately not the quadratic minimum-variance program over the
// exposures' covariance matrix; each exposure is offset one-for-one
// regardless of cross-currency correlation.
func PortfolioHedge(exposures []Exposure) ([]HedgeLine, error) {
	if len(exposures) == 0 {
		return nil, fxerr.Validationf("PortfolioHedge", "no exposures supplied")
	}

	out := make([]HedgeLine, 0, len(exposures))
	for _, e := range exposures {
		ratio := 1.0
		if e.Amount < 0 {
			ratio = -1.0
		}
		out = append(out, HedgeLine{
			Currency:      e.Currency,
			Exposure:      e.Amount,
			HedgeRatio:    ratio,
			HedgeNotional: -e.Amount,
		})
	}
	return out, nil
}

// GammaRebalance computes the trade that restores a target delta after a
// spot move, accounting for the delta drift gamma produces:
//
//	deltaChange = gamma * spotMove
//	trade = targetDelta - (currentDelta + deltaChange)
func GammaRebalance(currentDelta, gamma, spotMove, targetDelta float64) RebalanceResult {
	deltaChange := gamma * spotMove
	projected := currentDelta + deltaChange
	return RebalanceResult{
		DeltaChange:    deltaChange,
		ProjectedDelta: projected,
		TradeAmount:    targetDelta - projected,
	}
}
