package basket

import "github.com/quantora/fxcore/currency"

// Component is one weighted constituent of a currency basket.
type Component struct {
	Currency currency.Code
	Weight   float64
}

// Basket is a weighted currency basket valued against a base currency.
type Basket struct {
	Name               string
	Components         []Component
	BaseCurrency       currency.Code
	RebalanceFrequency string
}

// RebalanceTrade is one notional adjustment produced by Rebalance.
type RebalanceTrade struct {
	Currency currency.Code
	// Amount is target minus current notional; positive buys, negative
	// sells.
	Amount float64
}

// AttributionEntry is one component's contribution to basket performance.
type AttributionEntry struct {
	Currency currency.Code
	Weight   float64
	Return   float64
	// Contribution is weight * return.
	Contribution float64
	// PctOfTotal is the contribution as a percentage of the basket return.
	PctOfTotal float64
}

// CarryTrade is a funded position in a rate differential.
type CarryTrade struct {
	FundingCurrency currency.Code
	TargetCurrency  currency.Code
	FundingRate     float64
	TargetRate      float64
	SpotRate        float64
	Leverage        float64
}

// CarryRank is one entry of a carry ranking.
type CarryRank struct {
	Trade CarryTrade
	// Differential is the raw target-minus-funding rate spread.
	Differential float64
	// Score is the ranking key: the differential, divided by the target
	// currency's volatility when risk-adjusted.
	Score float64
	// Rank is the dense 1..n rank, best first.
	Rank int
}
