// Package volsurface builds and queries parametric FX implied-volatility
// surfaces from ATM / 25-delta risk-reversal / 25-delta butterfly market
// quotes.
//
// The surface is deliberately parametric rather than strike-exact: each
// tenor pillar is expanded to three nodes at relative strikes (spot for
// ATM, spot*1.05 as the 25-delta-call proxy, spot*0.95 as the
// 25-delta-put proxy) using the standard smile identities
//
//	vol(25dC) = ATM + 0.5*RR + BF
//	vol(25dP) = ATM - 0.5*RR + BF
package volsurface

import (
	"math"
	"sort"
	"time"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/utils"
)

// TenorTolerance is the tenor match window, in years, for selecting surface
// points during strike interpolation.
const TenorTolerance = 0.01

// Call- and put-wing strike proxies relative to spot.
const (
	callWingStrikeRatio = 1.05
	putWingStrikeRatio  = 0.95
)

// SurfaceParams are the inputs to NewSurface.
type SurfaceParams struct {
	Pair      currency.Pair
	Spot      float64
	Quotes    []TenorQuote
	Timestamp time.Time
}

// NewSurface builds a surface from market pillars, emitting three points
// per tenor.
func NewSurface(params SurfaceParams) (Surface, error) {
	if params.Spot <= 0 {
		return Surface{}, fxerr.Validationf("NewSurface", "spot must be positive, got %g", params.Spot)
	}
	if len(params.Quotes) == 0 {
		return Surface{}, fxerr.Validationf("NewSurface", "at least one tenor quote is required")
	}

	s := Surface{
		Pair:          params.Pair,
		ATMVols:       make(map[float64]float64, len(params.Quotes)),
		RiskReversals: make(map[float64]float64, len(params.Quotes)),
		Butterflies:   make(map[float64]float64, len(params.Quotes)),
		Timestamp:     params.Timestamp,
	}

	for _, q := range params.Quotes {
		if q.TenorYears <= 0 {
			return Surface{}, fxerr.Validationf("NewSurface", "tenor must be positive, got %g", q.TenorYears)
		}
		if q.ATMVol <= 0 {
			return Surface{}, fxerr.Validationf("NewSurface", "ATM vol must be positive at tenor %g, got %g", q.TenorYears, q.ATMVol)
		}
		if _, dup := s.ATMVols[q.TenorYears]; dup {
			return Surface{}, fxerr.Validationf("NewSurface", "duplicate tenor %g", q.TenorYears)
		}

		vol25c := q.ATMVol + 0.5*q.RR25 + q.BF25
		vol25p := q.ATMVol - 0.5*q.RR25 + q.BF25

		s.ATMVols[q.TenorYears] = q.ATMVol
		s.RiskReversals[q.TenorYears] = q.RR25
		s.Butterflies[q.TenorYears] = q.BF25
		s.Points = append(s.Points,
			Point{Strike: params.Spot, TenorYears: q.TenorYears, Volatility: q.ATMVol},
			Point{Strike: params.Spot * callWingStrikeRatio, TenorYears: q.TenorYears, Volatility: vol25c, Delta: 0.25},
			Point{Strike: params.Spot * putWingStrikeRatio, TenorYears: q.TenorYears, Volatility: vol25p, Delta: -0.25},
		)
	}
	return s, nil
}

// tenorCurveValue interpolates a tenor-keyed map linearly, flat beyond the
// first and last pillars.
func tenorCurveValue(op string, m map[float64]float64, tenorYears float64) (float64, error) {
	if len(m) == 0 {
		return 0, fxerr.DataErrf(op, "no pillars on the tenor curve")
	}
	if v, ok := m[tenorYears]; ok {
		return v, nil
	}
	tenors := utils.SortedKeys(m)
	if len(tenors) == 1 {
		return m[tenors[0]], nil
	}
	if tenorYears <= tenors[0] {
		return m[tenors[0]], nil
	}
	if tenorYears >= tenors[len(tenors)-1] {
		return m[tenors[len(tenors)-1]], nil
	}
	t1, t2 := utils.AdjacentValues(tenorYears, tenors)
	return utils.Lerp(tenorYears, t1, m[t1], t2, m[t2]), nil
}

// VolAt interpolates the surface at a (strike, tenor) query. Points within
// TenorTolerance of the tenor are interpolated linearly across strike, flat
// outside the strike range. With fewer than two matching points the query
// degrades to the ATM tenor curve.
func VolAt(s Surface, strike, tenorYears float64) (float64, error) {
	if strike <= 0 {
		return 0, fxerr.Validationf("VolAt", "strike must be positive, got %g", strike)
	}
	if tenorYears <= 0 {
		return 0, fxerr.Validationf("VolAt", "tenor must be positive, got %g", tenorYears)
	}

	var matches []Point
	for _, p := range s.Points {
		if math.Abs(p.TenorYears-tenorYears) <= TenorTolerance {
			matches = append(matches, p)
		}
	}

	if len(matches) < 2 {
		return ATMVol(s, tenorYears)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Strike < matches[j].Strike })

	if strike <= matches[0].Strike {
		return matches[0].Volatility, nil
	}
	if strike >= matches[len(matches)-1].Strike {
		return matches[len(matches)-1].Volatility, nil
	}
	for i := 1; i < len(matches); i++ {
		if strike <= matches[i].Strike {
			lo, hi := matches[i-1], matches[i]
			return utils.Lerp(strike, lo.Strike, lo.Volatility, hi.Strike, hi.Volatility), nil
		}
	}
	return matches[len(matches)-1].Volatility, nil
}

// ATMVol interpolates the ATM volatility term structure at a tenor.
func ATMVol(s Surface, tenorYears float64) (float64, error) {
	if tenorYears <= 0 {
		return 0, fxerr.Validationf("ATMVol", "tenor must be positive, got %g", tenorYears)
	}
	return tenorCurveValue("ATMVol", s.ATMVols, tenorYears)
}

// RiskReversal25 interpolates the 25-delta risk-reversal term structure.
func RiskReversal25(s Surface, tenorYears float64) (float64, error) {
	if tenorYears <= 0 {
		return 0, fxerr.Validationf("RiskReversal25", "tenor must be positive, got %g", tenorYears)
	}
	return tenorCurveValue("RiskReversal25", s.RiskReversals, tenorYears)
}

// Butterfly25 interpolates the 25-delta butterfly term structure.
func Butterfly25(s Surface, tenorYears float64) (float64, error) {
	if tenorYears <= 0 {
		return 0, fxerr.Validationf("Butterfly25", "tenor must be positive, got %g", tenorYears)
	}
	return tenorCurveValue("Butterfly25", s.Butterflies, tenorYears)
}

// SmileAt reconstructs the 25-delta smile at a tenor from the interpolated
// ATM, risk-reversal, and butterfly curves.
func SmileAt(s Surface, tenorYears float64) (Smile, error) {
	atm, err := ATMVol(s, tenorYears)
	if err != nil {
		return Smile{}, err
	}
	rr, err := RiskReversal25(s, tenorYears)
	if err != nil {
		return Smile{}, err
	}
	bf, err := Butterfly25(s, tenorYears)
	if err != nil {
		return Smile{}, err
	}
	return Smile{
		Put25:  atm - 0.5*rr + bf,
		ATM:    atm,
		Call25: atm + 0.5*rr + bf,
	}, nil
}
