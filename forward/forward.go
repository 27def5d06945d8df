// Package forward prices FX outright forwards and swaps from covered
// interest-rate parity: forward points, outrights, implied yields,
// premium/discount, near/far swap legs, and the tom-next and spot-next
// rolls.
//
// Rates are simple annualized decimals; tenors are calendar days converted
// to years on ACT/365. The domestic rate is the quote-currency rate, the
// foreign rate the base-currency rate, per FX convention.
package forward

import (
	"time"

	"github.com/quantora/fxcore/calendar"
	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/utils"
)

// FwdPoints computes interest-rate-parity forward points:
//
//	points = spot * (1 + rd*T) / (1 + rf*T) - spot,  T = tenorDays/365
func FwdPoints(spotRate, domesticRate, foreignRate float64, tenorDays int) (Points, error) {
	if spotRate <= 0 {
		return 0, fxerr.Validationf("FwdPoints", "spot rate must be positive, got %g", spotRate)
	}
	if tenorDays <= 0 {
		return 0, fxerr.Validationf("FwdPoints", "tenor must be positive, got %d days", tenorDays)
	}
	t := utils.YearFraction(float64(tenorDays))
	forward := spotRate * (1 + domesticRate*t) / (1 + foreignRate*t)
	return Points(forward - spotRate), nil
}

// Outright returns the outright forward rate, spot plus points.
func Outright(spotRate float64, points Points) (float64, error) {
	if spotRate <= 0 {
		return 0, fxerr.Validationf("Outright", "spot rate must be positive, got %g", spotRate)
	}
	return spotRate + float64(points), nil
}

// ImpliedYield inverts the parity identity for whichever rate is unknown.
// knownRate is the other leg's rate: the foreign rate when solving
// DomesticYield, the domestic rate when solving ForeignYield.
func ImpliedYield(forwardRate, spotRate, knownRate float64, tenorDays int, leg YieldLeg) (float64, error) {
	if spotRate <= 0 || forwardRate <= 0 {
		return 0, fxerr.Validationf("ImpliedYield", "spot and forward rates must be positive, got spot=%g forward=%g", spotRate, forwardRate)
	}
	if tenorDays <= 0 {
		return 0, fxerr.Validationf("ImpliedYield", "tenor must be positive, got %d days", tenorDays)
	}
	t := utils.YearFraction(float64(tenorDays))
	switch leg {
	case DomesticYield:
		// F/S = (1+rd*T)/(1+rf*T), rf known.
		return (forwardRate/spotRate*(1+knownRate*t) - 1) / t, nil
	case ForeignYield:
		// 1+rf*T = S/F * (1+rd*T), rd known.
		return (spotRate/forwardRate*(1+knownRate*t) - 1) / t, nil
	default:
		return 0, fxerr.Validationf("ImpliedYield", "unknown yield leg %d", leg)
	}
}

// PremiumDiscount returns the forward premium (positive) or discount
// (negative) as a percentage of spot.
func PremiumDiscount(forwardRate, spotRate float64) (float64, error) {
	if spotRate <= 0 || forwardRate <= 0 {
		return 0, fxerr.Validationf("PremiumDiscount", "spot and forward rates must be positive, got spot=%g forward=%g", spotRate, forwardRate)
	}
	return (forwardRate - spotRate) / spotRate * 100, nil
}

// SwapPoints returns forward points between two tenors: the far outright
// minus the near outright. The near tenor may be zero (a leg settling at
// spot), the far tenor must exceed it.
func SwapPoints(spotRate, domesticRate, foreignRate float64, nearDays, farDays int) (Points, error) {
	if spotRate <= 0 {
		return 0, fxerr.Validationf("SwapPoints", "spot rate must be positive, got %g", spotRate)
	}
	if nearDays < 0 {
		return 0, fxerr.Validationf("SwapPoints", "near tenor must be non-negative, got %d days", nearDays)
	}
	if farDays <= nearDays {
		return 0, fxerr.Validationf("SwapPoints", "far tenor %d must exceed near tenor %d", farDays, nearDays)
	}

	var nearPts Points
	if nearDays > 0 {
		var err error
		nearPts, err = FwdPoints(spotRate, domesticRate, foreignRate, nearDays)
		if err != nil {
			return 0, err
		}
	}
	farPts, err := FwdPoints(spotRate, domesticRate, foreignRate, farDays)
	if err != nil {
		return 0, err
	}
	return farPts - nearPts, nil
}

// TomNext returns the points to roll a position from tomorrow to the next
// day (a one-day swap starting today).
func TomNext(spotRate, domesticRate, foreignRate float64) (Points, error) {
	return SwapPoints(spotRate, domesticRate, foreignRate, 0, 1)
}

// SpotNext returns the points to roll a position from spot (T+2) to the
// following day (T+3).
func SpotNext(spotRate, domesticRate, foreignRate float64) (Points, error) {
	return SwapPoints(spotRate, domesticRate, foreignRate, 2, 3)
}

// SwapImpliedRate backs the domestic rate out of observed near and far
// outrights over the swap period, given the foreign rate:
//
//	farRate/nearRate = (1 + rd*dT) / (1 + rf*dT),  dT = (far-near)/365
func SwapImpliedRate(nearRate, farRate, foreignRate float64, nearDays, farDays int) (float64, error) {
	if nearRate <= 0 || farRate <= 0 {
		return 0, fxerr.Validationf("SwapImpliedRate", "near and far rates must be positive, got near=%g far=%g", nearRate, farRate)
	}
	if nearDays < 0 || farDays <= nearDays {
		return 0, fxerr.Validationf("SwapImpliedRate", "invalid tenors near=%d far=%d", nearDays, farDays)
	}
	dt := utils.YearFraction(float64(farDays - nearDays))
	return (farRate/nearRate*(1+foreignRate*dt) - 1) / dt, nil
}

// NewQuote prices a full outright forward quote. TradeDate is optional;
// when set, the settlement date is resolved as spot (T+2) plus the tenor,
// rolled off weekends.
func NewQuote(pair currency.Pair, spotRate, domesticRate, foreignRate float64, tenorDays int, tradeDate time.Time) (Quote, error) {
	pts, err := FwdPoints(spotRate, domesticRate, foreignRate, tenorDays)
	if err != nil {
		return Quote{}, err
	}
	outright, err := Outright(spotRate, pts)
	if err != nil {
		return Quote{}, err
	}

	var settlement time.Time
	if !tradeDate.IsZero() {
		settlement = calendar.SettlementDate(tradeDate, tenorDays)
	}

	return Quote{
		Pair:           pair,
		SpotRate:       spotRate,
		Points:         pts,
		Outright:       outright,
		TenorDays:      tenorDays,
		SettlementDate: settlement,
		DomesticRate:   domesticRate,
		ForeignRate:    foreignRate,
	}, nil
}

// NewSwapQuote prices both legs of an FX swap: near leg at spot plus near
// points, far leg at the near rate plus the swap points.
func NewSwapQuote(pair currency.Pair, spotRate, domesticRate, foreignRate float64, nearDays, farDays int, tradeDate time.Time) (SwapQuote, error) {
	swapPts, err := SwapPoints(spotRate, domesticRate, foreignRate, nearDays, farDays)
	if err != nil {
		return SwapQuote{}, err
	}

	var nearPts Points
	if nearDays > 0 {
		nearPts, err = FwdPoints(spotRate, domesticRate, foreignRate, nearDays)
		if err != nil {
			return SwapQuote{}, err
		}
	}
	nearRate := spotRate + float64(nearPts)
	farRate := nearRate + float64(swapPts)

	var nearSettle, farSettle time.Time
	if !tradeDate.IsZero() {
		nearSettle = calendar.SettlementDate(tradeDate, nearDays)
		farSettle = calendar.SettlementDate(tradeDate, farDays)
	}

	return SwapQuote{
		Pair:           pair,
		SpotRate:       spotRate,
		NearRate:       nearRate,
		FarRate:        farRate,
		SwapPoints:     swapPts,
		NearTenorDays:  nearDays,
		FarTenorDays:   farDays,
		NearSettlement: nearSettle,
		FarSettlement:  farSettle,
		DomesticRate:   domesticRate,
		ForeignRate:    foreignRate,
	}, nil
}
