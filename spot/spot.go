// Package spot prices FX spot instruments: mid and spread computation,
// liquidity-adjusted pricing, volume- and time-weighted averages, and
// best-execution venue selection.
package spot

import (
	"sort"
	"time"

	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/utils"
)

// DefaultImpactFactor is the linear market-impact coefficient applied when a
// caller does not supply one.
const DefaultImpactFactor = 0.005

// Best-execution score weights: reliability, liquidity coverage, speed.
const (
	bestExecReliabilityWeight = 0.4
	bestExecLiquidityWeight   = 0.3
	bestExecSpeedWeight       = 0.3
)

// Mid returns the arithmetic mid of a two-way price.
func Mid(bid, ask float64) (float64, error) {
	if bid <= 0 || ask <= 0 {
		return 0, fxerr.Validationf("Mid", "bid and ask must be positive, got bid=%g ask=%g", bid, ask)
	}
	if bid > ask {
		return 0, fxerr.Validationf("Mid", "bid %g exceeds ask %g", bid, ask)
	}
	return (bid + ask) / 2, nil
}

// SpreadInPips converts a bid/ask spread to pips for the pair's pip size.
func SpreadInPips(bid, ask, pipSize float64) (Pips, error) {
	if bid <= 0 || ask <= 0 {
		return 0, fxerr.Validationf("SpreadInPips", "bid and ask must be positive, got bid=%g ask=%g", bid, ask)
	}
	if bid > ask {
		return 0, fxerr.Validationf("SpreadInPips", "bid %g exceeds ask %g", bid, ask)
	}
	if pipSize <= 0 {
		return 0, fxerr.Validationf("SpreadInPips", "pip size must be positive, got %g", pipSize)
	}
	return Pips((ask - bid) / pipSize), nil
}

// LiquidityAdjusted returns the mid price adjusted for the market impact of
// an order of the given size, using a linear impact model:
//
//	mid * (1 + impactFactor * orderSize / liquidityDepth)
//
// Quotes without a known liquidity depth are returned at mid. An
// impactFactor of zero selects DefaultImpactFactor.
func LiquidityAdjusted(q Quote, orderSize, impactFactor float64) (float64, error) {
	if orderSize < 0 {
		return 0, fxerr.Validationf("LiquidityAdjusted", "order size must be non-negative, got %g", orderSize)
	}
	if impactFactor < 0 {
		return 0, fxerr.Validationf("LiquidityAdjusted", "impact factor must be non-negative, got %g", impactFactor)
	}
	if impactFactor == 0 {
		impactFactor = DefaultImpactFactor
	}
	if q.LiquidityDepth <= 0 {
		return q.Mid, nil
	}
	return q.Mid * (1 + impactFactor*orderSize/q.LiquidityDepth), nil
}

// VWAP returns the volume-weighted average of the quotes' mids.
func VWAP(quotes []Quote, volumes []float64) (float64, error) {
	if len(quotes) == 0 {
		return 0, fxerr.Validationf("VWAP", "no quotes supplied")
	}
	if len(quotes) != len(volumes) {
		return 0, fxerr.Validationf("VWAP", "quotes and volumes differ in length: %d vs %d", len(quotes), len(volumes))
	}

	var sum, totalVol float64
	for i, q := range quotes {
		if volumes[i] < 0 {
			return 0, fxerr.Validationf("VWAP", "volume must be non-negative, got %g", volumes[i])
		}
		sum += q.Mid * volumes[i]
		totalVol += volumes[i]
	}
	if totalVol == 0 {
		return 0, fxerr.Validationf("VWAP", "total volume is zero")
	}
	return sum / totalVol, nil
}

// TWAP returns the time-weighted average mid over quotes inside
// [start, end]. Each quote is weighted by the duration until the next quote
// in the window, the last one by the duration until end.
func TWAP(quotes []Quote, start, end time.Time) (float64, error) {
	if !start.Before(end) {
		return 0, fxerr.Validationf("TWAP", "start must precede end")
	}

	inWindow := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if !q.Timestamp.Before(start) && !q.Timestamp.After(end) {
			inWindow = append(inWindow, q)
		}
	}
	if len(inWindow) == 0 {
		return 0, fxerr.DataErrf("TWAP", "no quotes in window [%s, %s]", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	sort.Slice(inWindow, func(i, j int) bool {
		return inWindow[i].Timestamp.Before(inWindow[j].Timestamp)
	})

	var sum, totalWeight float64
	for i, q := range inWindow {
		var until time.Time
		if i < len(inWindow)-1 {
			until = inWindow[i+1].Timestamp
		} else {
			until = end
		}
		w := utils.Days(q.Timestamp, until)
		sum += q.Mid * w
		totalWeight += w
	}
	if totalWeight == 0 {
		// All quotes share one timestamp equal to end; fall back to a plain
		// average of the window.
		for _, q := range inWindow {
			sum += q.Mid
		}
		return sum / float64(len(inWindow)), nil
	}
	return sum / totalWeight, nil
}

// executionScore is the venue quality score before price adjustment:
// reliability, liquidity coverage of the order size, and speed.
func executionScore(s Source, orderSize float64) float64 {
	liquidity := 0.0
	if s.Quote.LiquidityDepth > 0 {
		liquidity = utils.Clamp(orderSize/s.Quote.LiquidityDepth, 0, 1)
	}
	speed := 1 / (1 + s.LatencyMS/100)
	return s.Reliability*bestExecReliabilityWeight +
		liquidity*bestExecLiquidityWeight +
		speed*bestExecSpeedWeight
}

// BestExecution selects the venue with the best effective terms for an
// order: quality score divided by ask for buys (cheaper wins), multiplied
// by bid for sells (richer wins).
func BestExecution(sources []Source, side Side, orderSize float64) (Source, error) {
	if len(sources) == 0 {
		return Source{}, fxerr.Validationf("BestExecution", "no sources supplied")
	}
	if orderSize <= 0 {
		return Source{}, fxerr.Validationf("BestExecution", "order size must be positive, got %g", orderSize)
	}

	best := -1
	bestScore := 0.0
	for i, s := range sources {
		if s.Reliability < 0 || s.Reliability > 1 {
			return Source{}, fxerr.Validationf("BestExecution", "source %q reliability %g outside [0,1]", s.Name, s.Reliability)
		}
		if s.Quote.Bid <= 0 || s.Quote.Ask <= 0 {
			return Source{}, fxerr.Validationf("BestExecution", "source %q has no price: bid=%g ask=%g", s.Name, s.Quote.Bid, s.Quote.Ask)
		}
		score := executionScore(s, orderSize)
		switch side {
		case Buy:
			score /= s.Quote.Ask
		case Sell:
			score *= s.Quote.Bid
		}
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return sources[best], nil
}
