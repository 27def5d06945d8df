package basket

import (
	"math"
	"sort"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/utils"
)

// scoreTieTolerance is the gap below which two carry scores share a rank.
const scoreTieTolerance = 1e-12

// CarryReturn returns the holding-period return of a carry trade as a
// fraction of the unlevered notional:
//
//	((targetRate - fundingRate) * T + spotChangePct) * leverage
//
// spotChangePct is the realized spot appreciation of the target currency
// over the period, as a fraction; pass zero for a pure-carry view.
func CarryReturn(ct CarryTrade, holdingDays int, spotChangePct float64) (float64, error) {
	if holdingDays <= 0 {
		return 0, fxerr.Validationf("CarryReturn", "holding period must be positive, got %d days", holdingDays)
	}
	if ct.Leverage <= 0 {
		return 0, fxerr.Validationf("CarryReturn", "leverage must be positive, got %g", ct.Leverage)
	}
	t := utils.YearFraction(float64(holdingDays))
	return ((ct.TargetRate-ct.FundingRate)*t + spotChangePct) * ct.Leverage, nil
}

// FundingCost returns the interest cost of borrowing notional at the
// funding rate for the holding period.
func FundingCost(notional, fundingRate float64, holdingDays int) (float64, error) {
	if notional <= 0 {
		return 0, fxerr.Validationf("FundingCost", "notional must be positive, got %g", notional)
	}
	if holdingDays <= 0 {
		return 0, fxerr.Validationf("FundingCost", "holding period must be positive, got %d days", holdingDays)
	}
	return notional * fundingRate * utils.YearFraction(float64(holdingDays)), nil
}

// RollYield returns the annualized yield from rolling a forward position to
// spot: positive when the forward trades at a discount to spot (the roll
// gains as the forward converges upward).
func RollYield(spotRate, forwardRate float64, tenorDays int) (float64, error) {
	if spotRate <= 0 || forwardRate <= 0 {
		return 0, fxerr.Validationf("RollYield", "spot and forward rates must be positive, got spot=%g forward=%g", spotRate, forwardRate)
	}
	if tenorDays <= 0 {
		return 0, fxerr.Validationf("RollYield", "tenor must be positive, got %d days", tenorDays)
	}
	return (spotRate - forwardRate) / forwardRate / utils.YearFraction(float64(tenorDays)), nil
}

// RankCarry orders carry trades best-first by rate differential, or by the
// Sharpe-like differential/volatility score when riskAdjusted is set.
// Ranks are dense (ties share a rank). Risk adjustment needs a volatility
// per target currency.
func RankCarry(trades []CarryTrade, vols map[currency.Code]float64, riskAdjusted bool) ([]CarryRank, error) {
	if len(trades) == 0 {
		return nil, fxerr.Validationf("RankCarry", "no trades supplied")
	}

	out := make([]CarryRank, 0, len(trades))
	for _, ct := range trades {
		diff := ct.TargetRate - ct.FundingRate
		score := diff
		if riskAdjusted {
			vol, ok := vols[ct.TargetCurrency]
			if !ok {
				return nil, fxerr.DataErrf("RankCarry", "no volatility supplied for %s", ct.TargetCurrency)
			}
			if vol <= 0 {
				return nil, fxerr.Validationf("RankCarry", "volatility for %s must be positive, got %g", ct.TargetCurrency, vol)
			}
			score = diff / vol
		}
		out = append(out, CarryRank{Trade: ct, Differential: diff, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	// Scores that differ only in the last float bits are ties, so the
	// comparison carries a tolerance; exact equality would split pairs like
	// 0.05-0.01 and 0.06-0.02 into separate ranks.
	rank := 0
	for i := range out {
		if i == 0 || math.Abs(out[i].Score-out[i-1].Score) > scoreTieTolerance {
			rank++
		}
		out[i].Rank = rank
	}
	return out, nil
}
