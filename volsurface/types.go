package volsurface

import (
	"time"

	"github.com/quantora/fxcore/currency"
)

// Point is one (strike, tenor) node of a surface. Delta is the signed
// proxy delta of the node (+0.25 call wing, -0.25 put wing, 0 ATM).
type Point struct {
	Strike     float64
	TenorYears float64
	Volatility float64
	Delta      float64
}

// TenorQuote is one market pillar: ATM volatility with the 25-delta
// risk-reversal and butterfly for a tenor. All values are annualized
// decimals.
type TenorQuote struct {
	TenorYears float64
	ATMVol     float64
	RR25       float64
	BF25       float64
}

// Surface is a parametric implied-volatility surface built from ATM/RR/BF
// pillars. The tenor maps are keyed by tenor in years.
type Surface struct {
	Pair          currency.Pair
	Points        []Point
	ATMVols       map[float64]float64
	RiskReversals map[float64]float64
	Butterflies   map[float64]float64
	Timestamp     time.Time
}

// Smile is the three-point 25-delta smile at one tenor.
type Smile struct {
	Put25  float64
	ATM    float64
	Call25 float64
}
