package cross

import "github.com/quantora/fxcore/currency"

// Opportunity is one detected triangular-arbitrage cycle.
type Opportunity struct {
	// A, B, C are the cycle currencies in scan order.
	A, B, C currency.Code

	// Synthetic is the A/C rate implied by chaining A/B and B/C.
	Synthetic float64

	// Market is the quoted A/C rate.
	Market float64

	// ProfitPct is the synthetic-vs-market gap as a percentage of market.
	ProfitPct float64
}

// ConversionPath is the outcome of an optimal-path search: the currency
// route taken, the final amount after half-spread costs, and the total
// cost versus a frictionless conversion, in target-currency units.
type ConversionPath struct {
	Route       []currency.Code
	FinalAmount float64
	TotalCost   float64
}
