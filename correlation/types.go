package correlation

import (
	"gonum.org/v1/gonum/mat"

	"github.com/quantora/fxcore/currency"
)

// Matrix is a labelled correlation matrix: symmetric, unit diagonal, built
// pairwise over the input return series.
type Matrix struct {
	labels []string
	sym    *mat.SymDense
}

// Labels returns the series labels in matrix order.
func (m Matrix) Labels() []string { return m.labels }

// Len returns the matrix dimension.
func (m Matrix) Len() int { return len(m.labels) }

// At returns the correlation between series i and j.
func (m Matrix) At(i, j int) float64 { return m.sym.At(i, j) }

// Sym exposes the underlying symmetric matrix for quadratic-form consumers.
func (m Matrix) Sym() *mat.SymDense { return m.sym }

// Index returns the position of a label, or -1.
func (m Matrix) Index(label string) int {
	for i, l := range m.labels {
		if l == label {
			return i
		}
	}
	return -1
}

// OptionPosition is the per-position input to DeltaHedge: a signed
// notional and the position's delta.
type OptionPosition struct {
	Notional float64
	Delta    float64
}

// HedgeResult is the outcome of an OLS hedge construction.
type HedgeResult struct {
	// HedgeRatio is the OLS slope Cov(spot, hedge)/Var(hedge).
	HedgeRatio float64
	// HedgeNotional is the signed notional of the offsetting hedge trade.
	HedgeNotional float64
	// Effectiveness is the R-squared between spot and hedge returns, in
	// [0, 1].
	Effectiveness float64
	// ResidualRisk is the unhedged return volatility left after the hedge,
	// per period.
	ResidualRisk float64
}

// Exposure is one currency exposure of a portfolio.
type Exposure struct {
	Currency currency.Code
	Amount   float64
}

// HedgeLine is the per-exposure output of the portfolio hedge.
type HedgeLine struct {
	Currency      currency.Code
	Exposure      float64
	HedgeRatio    float64
	HedgeNotional float64
}

// RebalanceResult is the outcome of a gamma-aware delta rebalance.
type RebalanceResult struct {
	// DeltaChange is the delta drift produced by the spot move,
	// gamma * spotMove.
	DeltaChange float64
	// ProjectedDelta is the pre-trade delta after the move.
	ProjectedDelta float64
	// TradeAmount is the delta to trade to restore the target.
	TradeAmount float64
}
