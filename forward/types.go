package forward

import (
	"time"

	"github.com/quantora/fxcore/currency"
)

// Points is a forward-point adjustment in price terms. It is a distinct
// type from raw float64 so points cannot be confused with an outright rate
// or a pip count.
type Points float64

// Quote is a priced outright forward.
type Quote struct {
	Pair           currency.Pair
	SpotRate       float64
	Points         Points
	Outright       float64
	TenorDays      int
	SettlementDate time.Time
	DomesticRate   float64
	ForeignRate    float64
}

// SwapQuote is a priced FX swap: a near leg exchanged against a far leg.
type SwapQuote struct {
	Pair           currency.Pair
	SpotRate       float64
	NearRate       float64
	FarRate        float64
	SwapPoints     Points
	NearTenorDays  int
	FarTenorDays   int
	NearSettlement time.Time
	FarSettlement  time.Time
	DomesticRate   float64
	ForeignRate    float64
}

// YieldLeg selects which rate ImpliedYield solves for.
type YieldLeg int

const (
	// DomesticYield solves for the quote-currency rate.
	DomesticYield YieldLeg = iota
	// ForeignYield solves for the base-currency rate.
	ForeignYield
)
