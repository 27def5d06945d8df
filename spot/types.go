package spot

import (
	"time"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
)

// Pips is a spread expressed in pips. It is a distinct type from raw
// float64 so a pip count cannot be confused with a price or rate.
type Pips float64

// Quote is a two-way spot quote. Mid and Spread are derived by NewQuote and
// never settable independently.
type Quote struct {
	Pair      currency.Pair
	Bid       float64
	Ask       float64
	Mid       float64
	Spread    float64
	Timestamp time.Time
	Source    string

	// LiquidityDepth is the size available at the quoted prices, in base
	// currency units. Zero means unknown.
	LiquidityDepth float64
}

// QuoteParams are the inputs to NewQuote.
type QuoteParams struct {
	Pair           currency.Pair
	Bid            float64
	Ask            float64
	Timestamp      time.Time
	Source         string
	LiquidityDepth float64
}

// NewQuote validates a two-way price and derives mid and spread.
func NewQuote(params QuoteParams) (Quote, error) {
	if params.Bid <= 0 || params.Ask <= 0 {
		return Quote{}, fxerr.Validationf("NewQuote", "bid and ask must be positive, got bid=%g ask=%g", params.Bid, params.Ask)
	}
	if params.Bid > params.Ask {
		return Quote{}, fxerr.Validationf("NewQuote", "bid %g exceeds ask %g", params.Bid, params.Ask)
	}
	return Quote{
		Pair:           params.Pair,
		Bid:            params.Bid,
		Ask:            params.Ask,
		Mid:            (params.Bid + params.Ask) / 2,
		Spread:         params.Ask - params.Bid,
		Timestamp:      params.Timestamp,
		Source:         params.Source,
		LiquidityDepth: params.LiquidityDepth,
	}, nil
}

// Source is a quoting venue with its execution characteristics.
type Source struct {
	Name  string
	Quote Quote

	// Reliability is the venue's fill reliability in [0,1].
	Reliability float64

	// LatencyMS is the venue's round-trip latency in milliseconds.
	LatencyMS float64
}

// Side is the direction of a prospective trade.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "sell"
	}
	return "buy"
}
