package option

import (
	"math"

	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/utils"
)

// Implied-volatility solver defaults.
const (
	// DefaultIVTolerance is the absolute premium error at which the solver
	// accepts a volatility.
	DefaultIVTolerance = 1e-4
	// DefaultIVMaxIter caps the Newton-Raphson iteration count.
	DefaultIVMaxIter = 100
	// IVSeed is the starting volatility when the option carries none.
	IVSeed = 0.20
	// VolFloor and VolCeiling clamp each Newton step.
	VolFloor   = 0.001
	VolCeiling = 2.0

	// vegaEpsilon guards the Newton step against a vanishing derivative.
	vegaEpsilon = 1e-10
)

// IVParams are the inputs to ImpliedVol. Tolerance and MaxIterations are
// optional; zero values select the defaults.
type IVParams struct {
	// MarketPrice is the observed premium to invert.
	MarketPrice float64
	// Tolerance is the absolute premium error to converge to.
	Tolerance float64
	// MaxIterations caps the solver.
	MaxIterations int
}

// IVResult is the output of ImpliedVol.
type IVResult struct {
	// Vol is the implied volatility as an annualized decimal.
	Vol float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

// ImpliedVol solves for the volatility that reprices the option at the
// observed market premium, by Newton-Raphson on the Garman–Kohlhagen
// premium with vega as the derivative:
//
//	sigma <- sigma - (price(sigma) - marketPrice) / (vega(sigma) * 100)
//
// Each step is clamped to [VolFloor, VolCeiling]. The solver is seeded at
// the option's current volatility, or IVSeed when unset. It fails with a
// convergence error when the iteration budget is exhausted, and with a
// validation error when vega underflows (the Newton step would blow up).
func ImpliedVol(o Option, params IVParams) (IVResult, error) {
	if params.MarketPrice <= 0 {
		return IVResult{}, fxerr.Validationf("ImpliedVol", "market price must be positive, got %g", params.MarketPrice)
	}
	if o.Strike <= 0 || o.Spot <= 0 || o.TimeToExpiry <= 0 {
		return IVResult{}, fxerr.Validationf("ImpliedVol", "strike, spot and expiry must be positive")
	}

	tol := params.Tolerance
	if tol == 0 {
		tol = DefaultIVTolerance
	}
	if tol < 0 {
		return IVResult{}, fxerr.Validationf("ImpliedVol", "tolerance must be positive, got %g", tol)
	}
	maxIter := params.MaxIterations
	if maxIter == 0 {
		maxIter = DefaultIVMaxIter
	}
	if maxIter < 0 {
		return IVResult{}, fxerr.Validationf("ImpliedVol", "max iterations must be positive, got %d", maxIter)
	}

	sigma := o.Volatility
	if sigma <= 0 {
		sigma = IVSeed
	}
	sigma = utils.Clamp(sigma, VolFloor, VolCeiling)

	trial := o
	for iter := 0; iter < maxIter; iter++ {
		trial.Volatility = sigma

		price, err := Premium(trial)
		if err != nil {
			return IVResult{}, err
		}
		diff := price - params.MarketPrice
		if math.Abs(diff) < tol {
			return IVResult{Vol: sigma, Iterations: iter + 1}, nil
		}

		greeks, err := ComputeGreeks(trial)
		if err != nil {
			return IVResult{}, err
		}
		// Vega is quoted per 1% vol; the Newton derivative needs per-unit.
		vega := greeks.Vega * 100
		if math.Abs(vega) < vegaEpsilon {
			return IVResult{}, fxerr.Validationf("ImpliedVol", "vega underflow (%g) at sigma=%g", vega, sigma)
		}

		sigma = utils.Clamp(sigma-diff/vega, VolFloor, VolCeiling)
	}

	return IVResult{}, fxerr.Convergencef("ImpliedVol", "did not converge after %d iterations (last sigma=%g)", maxIter, sigma)
}
