// Package cross derives cross-currency rates by triangulation, detects
// triangular-arbitrage opportunities, builds synthetic pairs, computes the
// cross-currency basis, and searches for the cheapest conversion path.
package cross

import (
	"math"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/forward"
	"github.com/quantora/fxcore/fxerr"
)

const (
	// DefaultArbThresholdPct is the minimum absolute profit, in percent,
	// for a triangle to be reported as an opportunity.
	DefaultArbThresholdPct = 0.1

	// DefaultHalfSpreadCost is the fractional half-spread haircut applied
	// per conversion leg in the optimal-path search.
	DefaultHalfSpreadCost = 0.0005
)

// pivot is the intermediate currency of the two-hop conversion path.
var pivot = currency.Code("USD")

// CrossRate triangulates the rate for a target pair from two quoted pairs
// that share one currency. Either orientation of either leg is accepted;
// there is a data error if the pairs share no currency or cannot reach the
// target's currencies.
func CrossRate(rate1, rate2 float64, pair1, pair2, target currency.Pair) (float64, error) {
	if rate1 <= 0 || rate2 <= 0 {
		return 0, fxerr.Validationf("CrossRate", "rates must be positive, got %g and %g", rate1, rate2)
	}

	table := currency.NewRateTable()
	table.Set(pair1.Base, pair1.Quote, rate1)
	table.Set(pair2.Base, pair2.Quote, rate2)

	common, ok := commonCurrency(pair1, pair2)
	if !ok {
		return 0, fxerr.DataErrf("CrossRate", "%s and %s share no currency", pair1.Symbol, pair2.Symbol)
	}

	// target.Base -> common -> target.Quote, accepting stored or inverted
	// orientation on each leg.
	leg1, err := table.Lookup(target.Base, common)
	if err != nil {
		return 0, fxerr.DataErrf("CrossRate", "no chain from %s to %s via %s", target.Base, target.Quote, common)
	}
	leg2, err := table.Lookup(common, target.Quote)
	if err != nil {
		return 0, fxerr.DataErrf("CrossRate", "no chain from %s to %s via %s", target.Base, target.Quote, common)
	}
	return leg1 * leg2, nil
}

func commonCurrency(p1, p2 currency.Pair) (currency.Code, bool) {
	for _, a := range []currency.Code{p1.Base, p1.Quote} {
		if a == p2.Base || a == p2.Quote {
			return a, true
		}
	}
	return "", false
}

// CheckTriangle tests a single currency triangle: the synthetic cross
// rate12/rate23 against the quoted market rate. thresholdPct of zero selects
// DefaultArbThresholdPct.
func CheckTriangle(rate12, rate23, market, thresholdPct float64) (Opportunity, bool, error) {
	if rate12 <= 0 || rate23 <= 0 || market <= 0 {
		return Opportunity{}, false, fxerr.Validationf("CheckTriangle", "rates must be positive, got %g, %g, %g", rate12, rate23, market)
	}
	if thresholdPct < 0 {
		return Opportunity{}, false, fxerr.Validationf("CheckTriangle", "threshold must be non-negative, got %g", thresholdPct)
	}
	if thresholdPct == 0 {
		thresholdPct = DefaultArbThresholdPct
	}

	synthetic := rate12 / rate23
	profitPct := (synthetic - market) / market * 100
	op := Opportunity{Synthetic: synthetic, Market: market, ProfitPct: profitPct}
	return op, math.Abs(profitPct) > thresholdPct, nil
}

// ScanTriangles enumerates every ordered triple of distinct currencies in
// the table and reports each one whose synthetic cross diverges from the
// quoted market rate by more than thresholdPct. Triples with an
// unresolvable leg are skipped, not errors. The scan is O(n^3) in the
// number of currencies.
func ScanTriangles(rates currency.RateTable, thresholdPct float64) ([]Opportunity, error) {
	if len(rates) == 0 {
		return nil, fxerr.Validationf("ScanTriangles", "empty rate table")
	}
	if thresholdPct < 0 {
		return nil, fxerr.Validationf("ScanTriangles", "threshold must be non-negative, got %g", thresholdPct)
	}
	if thresholdPct == 0 {
		thresholdPct = DefaultArbThresholdPct
	}

	codes := rates.Currencies()
	var out []Opportunity
	for _, a := range codes {
		for _, b := range codes {
			if b == a {
				continue
			}
			rab, err := rates.Lookup(a, b)
			if err != nil {
				continue
			}
			for _, c := range codes {
				if c == a || c == b {
					continue
				}
				rbc, err := rates.Lookup(b, c)
				if err != nil {
					continue
				}
				market, err := rates.Lookup(a, c)
				if err != nil {
					continue
				}

				synthetic := rab * rbc
				profitPct := (synthetic - market) / market * 100
				if math.Abs(profitPct) > thresholdPct {
					out = append(out, Opportunity{
						A: a, B: b, C: c,
						Synthetic: synthetic,
						Market:    market,
						ProfitPct: profitPct,
					})
				}
			}
		}
	}
	return out, nil
}

// SyntheticPair prices base/quote through an intermediate currency,
// accepting either stored orientation for each leg.
func SyntheticPair(through, base, quote currency.Code, rates currency.RateTable) (float64, error) {
	if base == quote {
		return 0, fxerr.Validationf("SyntheticPair", "base and quote must differ: %s", base)
	}

	leg1, err := rates.Lookup(base, through)
	if err != nil {
		return 0, fxerr.DataErrf("SyntheticPair", "no %s/%s leg in either orientation", base, through)
	}
	leg2, err := rates.Lookup(through, quote)
	if err != nil {
		return 0, fxerr.DataErrf("SyntheticPair", "no %s/%s leg in either orientation", through, quote)
	}
	return leg1 * leg2, nil
}

// Basis returns the cross-currency basis in basis points: the gap between
// the quoted forward and the parity-implied forward, as a fraction of spot.
func Basis(actualForward, spotRate, domesticRate, foreignRate float64, tenorDays int) (float64, error) {
	if actualForward <= 0 {
		return 0, fxerr.Validationf("Basis", "forward rate must be positive, got %g", actualForward)
	}
	pts, err := forward.FwdPoints(spotRate, domesticRate, foreignRate, tenorDays)
	if err != nil {
		return 0, err
	}
	theoretical := spotRate + float64(pts)
	return (actualForward - theoretical) / spotRate * 10000, nil
}

// OptimalPath compares a direct conversion with a two-hop conversion via
// USD, each leg losing a half-spread haircut, and returns whichever yields
// the larger final amount. This is a greedy two-path comparison, not a
// shortest-path search. halfSpread of zero selects DefaultHalfSpreadCost.
func OptimalPath(from, to currency.Code, rates currency.RateTable, amount, halfSpread float64) (ConversionPath, error) {
	if from == to {
		return ConversionPath{}, fxerr.Validationf("OptimalPath", "from and to must differ: %s", from)
	}
	if amount <= 0 {
		return ConversionPath{}, fxerr.Validationf("OptimalPath", "amount must be positive, got %g", amount)
	}
	if halfSpread < 0 {
		return ConversionPath{}, fxerr.Validationf("OptimalPath", "half spread must be non-negative, got %g", halfSpread)
	}
	if halfSpread == 0 {
		halfSpread = DefaultHalfSpreadCost
	}

	var best *ConversionPath

	if direct, err := rates.Lookup(from, to); err == nil {
		gross := amount * direct
		final := gross * (1 - halfSpread)
		best = &ConversionPath{
			Route:       []currency.Code{from, to},
			FinalAmount: final,
			TotalCost:   gross - final,
		}
	}

	if from != pivot && to != pivot {
		leg1, err1 := rates.Lookup(from, pivot)
		leg2, err2 := rates.Lookup(pivot, to)
		if err1 == nil && err2 == nil {
			gross := amount * leg1 * leg2
			final := amount * leg1 * (1 - halfSpread) * leg2 * (1 - halfSpread)
			path := ConversionPath{
				Route:       []currency.Code{from, pivot, to},
				FinalAmount: final,
				TotalCost:   gross - final,
			}
			if best == nil || path.FinalAmount > best.FinalAmount {
				best = &path
			}
		}
	}

	if best == nil {
		return ConversionPath{}, fxerr.DataErrf("OptimalPath", "no conversion path from %s to %s", from, to)
	}
	return *best, nil
}
