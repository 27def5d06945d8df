// Package aggregate combines quotes from multiple venues into a single
// rate (mean, median, liquidity-weighted, or quality-scored "best") and
// runs windowed VWAP/TWAP and preference-weighted best-execution selection
// over them.
package aggregate

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/spot"
	"github.com/quantora/fxcore/utils"
)

// Method selects the aggregation rule.
type Method int

const (
	// MethodMean is the arithmetic mean of the source mids, the default.
	MethodMean Method = iota
	// MethodMedian averages the two middle mids for even-length inputs.
	MethodMedian
	// MethodLiquidityWeighted weights each mid by the source's liquidity
	// depth, defaulting unknown depths to 1.
	MethodLiquidityWeighted
	// MethodBest returns the mid of the highest-quality source, scored on
	// reliability, latency, and tightness of spread.
	MethodBest
)

// Quality-score weights for MethodBest.
const (
	bestReliabilityWeight = 0.5
	bestLatencyWeight     = 0.3
	bestSpreadWeight      = 0.2
)

// Preferences are the explicit best-execution weights across price,
// liquidity, and speed. They must sum to one within 0.001.
type Preferences struct {
	Price     float64
	Liquidity float64
	Speed     float64
}

// Selection is the winning source of a best-execution search with its
// composite score.
type Selection struct {
	Source spot.Source
	Score  float64
}

// Aggregate combines the sources' mid rates with the chosen method.
func Aggregate(sources []spot.Source, method Method) (float64, error) {
	if len(sources) == 0 {
		return 0, fxerr.Validationf("Aggregate", "no sources supplied")
	}

	switch method {
	case MethodMean:
		mids := make([]float64, len(sources))
		for i, s := range sources {
			mids[i] = s.Quote.Mid
		}
		return stat.Mean(mids, nil), nil

	case MethodMedian:
		mids := make([]float64, len(sources))
		for i, s := range sources {
			mids[i] = s.Quote.Mid
		}
		sort.Float64s(mids)
		n := len(mids)
		if n%2 == 1 {
			return mids[n/2], nil
		}
		return (mids[n/2-1] + mids[n/2]) / 2, nil

	case MethodLiquidityWeighted:
		var sum, weight float64
		for _, s := range sources {
			w := s.Quote.LiquidityDepth
			if w <= 0 {
				w = 1
			}
			sum += s.Quote.Mid * w
			weight += w
		}
		return sum / weight, nil

	case MethodBest:
		best := -1
		bestScore := math.Inf(-1)
		minSpread := math.Inf(1)
		for _, s := range sources {
			if s.Quote.Spread < minSpread {
				minSpread = s.Quote.Spread
			}
		}
		for i, s := range sources {
			score := bestReliabilityWeight*s.Reliability +
				bestLatencyWeight/(1+s.LatencyMS/100) +
				bestSpreadWeight*spreadTightness(minSpread, s.Quote.Spread)
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		return sources[best].Quote.Mid, nil

	default:
		return 0, fxerr.Validationf("Aggregate", "unknown method %d", method)
	}
}

// spreadTightness scores a source's spread against the tightest one on
// offer: 1 for the tightest, shrinking toward 0 as the spread widens.
func spreadTightness(minSpread, spread float64) float64 {
	if spread <= 0 {
		return 1
	}
	if minSpread <= 0 {
		return 0
	}
	return minSpread / spread
}

// WindowVWAP computes the volume-weighted average over the quotes falling
// inside [start, end], pairing each kept quote with its volume.
func WindowVWAP(quotes []spot.Quote, volumes []float64, start, end time.Time) (float64, error) {
	if len(quotes) != len(volumes) {
		return 0, fxerr.Validationf("WindowVWAP", "quotes and volumes differ in length: %d vs %d", len(quotes), len(volumes))
	}
	if !start.Before(end) {
		return 0, fxerr.Validationf("WindowVWAP", "start must precede end")
	}

	var kept []spot.Quote
	var keptVol []float64
	for i, q := range quotes {
		if !q.Timestamp.Before(start) && !q.Timestamp.After(end) {
			kept = append(kept, q)
			keptVol = append(keptVol, volumes[i])
		}
	}
	if len(kept) == 0 {
		return 0, fxerr.DataErrf("WindowVWAP", "no quotes in window [%s, %s]", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return spot.VWAP(kept, keptVol)
}

// WindowTWAP computes the time-weighted average over [start, end]; it is
// the spot TWAP, which already windows its input.
func WindowTWAP(quotes []spot.Quote, start, end time.Time) (float64, error) {
	return spot.TWAP(quotes, start, end)
}

// BestExecution picks the venue maximizing the preference-weighted
// composite of price, liquidity coverage, and speed, and returns it with
// its score. Price is scored relative to the best available level for the
// side, liquidity as the fraction of the order the venue can absorb.
func BestExecution(sources []spot.Source, side spot.Side, orderSize float64, prefs Preferences) (Selection, error) {
	if len(sources) == 0 {
		return Selection{}, fxerr.Validationf("BestExecution", "no sources supplied")
	}
	if orderSize <= 0 {
		return Selection{}, fxerr.Validationf("BestExecution", "order size must be positive, got %g", orderSize)
	}
	if sum := prefs.Price + prefs.Liquidity + prefs.Speed; math.Abs(sum-1) > 0.001 {
		return Selection{}, fxerr.Validationf("BestExecution", "preference weights sum to %g, expected 1", sum)
	}
	if prefs.Price < 0 || prefs.Liquidity < 0 || prefs.Speed < 0 {
		return Selection{}, fxerr.Validationf("BestExecution", "preference weights must be non-negative")
	}

	bestAsk := math.Inf(1)
	bestBid := 0.0
	for _, s := range sources {
		if s.Quote.Bid <= 0 || s.Quote.Ask <= 0 {
			return Selection{}, fxerr.Validationf("BestExecution", "source %q has no price: bid=%g ask=%g", s.Name, s.Quote.Bid, s.Quote.Ask)
		}
		if s.Quote.Ask < bestAsk {
			bestAsk = s.Quote.Ask
		}
		if s.Quote.Bid > bestBid {
			bestBid = s.Quote.Bid
		}
	}

	best := -1
	bestScore := math.Inf(-1)
	for i, s := range sources {
		var priceScore float64
		if side == spot.Buy {
			priceScore = bestAsk / s.Quote.Ask
		} else {
			priceScore = s.Quote.Bid / bestBid
		}

		liquidityScore := 0.0
		if s.Quote.LiquidityDepth > 0 {
			liquidityScore = utils.Clamp(s.Quote.LiquidityDepth/orderSize, 0, 1)
		}
		speedScore := 1 / (1 + s.LatencyMS/100)

		score := prefs.Price*priceScore + prefs.Liquidity*liquidityScore + prefs.Speed*speedScore
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return Selection{Source: sources[best], Score: bestScore}, nil
}
