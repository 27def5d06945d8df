package volsurface_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/volsurface"
)

const spot = 1.1850

func testSurface(t *testing.T) volsurface.Surface {
	t.Helper()
	s, err := volsurface.NewSurface(volsurface.SurfaceParams{
		Pair: currency.MustPair("EUR", "USD"),
		Spot: spot,
		Quotes: []volsurface.TenorQuote{
			{TenorYears: 0.25, ATMVol: 0.08, RR25: -0.010, BF25: 0.003},
			{TenorYears: 1.00, ATMVol: 0.10, RR25: -0.014, BF25: 0.004},
		},
		Timestamp: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return s
}

func TestNewSurface(t *testing.T) {
	t.Parallel()

	s := testSurface(t)
	assert.Len(t, s.Points, 6, "three points per tenor pillar")

	// The 3M call wing carries ATM + RR/2 + BF.
	var callWing *volsurface.Point
	for i := range s.Points {
		p := &s.Points[i]
		if p.TenorYears == 0.25 && p.Delta == 0.25 {
			callWing = p
		}
	}
	require.NotNil(t, callWing)
	assert.InDelta(t, 0.08+0.5*(-0.010)+0.003, callWing.Volatility, 1e-12)
	assert.InDelta(t, spot*1.05, callWing.Strike, 1e-12)

	t.Run("rejects bad pillars", func(t *testing.T) {
		t.Parallel()
		_, err := volsurface.NewSurface(volsurface.SurfaceParams{Spot: 0})
		assert.True(t, fxerr.IsValidation(err))

		_, err = volsurface.NewSurface(volsurface.SurfaceParams{
			Spot:   spot,
			Quotes: []volsurface.TenorQuote{{TenorYears: 0.25, ATMVol: 0}},
		})
		assert.True(t, fxerr.IsValidation(err))

		_, err = volsurface.NewSurface(volsurface.SurfaceParams{
			Spot: spot,
			Quotes: []volsurface.TenorQuote{
				{TenorYears: 0.25, ATMVol: 0.08},
				{TenorYears: 0.25, ATMVol: 0.09},
			},
		})
		assert.True(t, fxerr.IsValidation(err), "duplicate tenors are rejected")
	})
}

func TestATMVolTenorInterpolation(t *testing.T) {
	t.Parallel()

	s := testSurface(t)

	// Midway in log of nothing fancy: plain linear between 0.25y and 1y.
	vol, err := volsurface.ATMVol(s, 0.625)
	require.NoError(t, err)
	assert.InDelta(t, 0.09, vol, 1e-12)

	// Flat beyond the ends.
	vol, err = volsurface.ATMVol(s, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.08, vol, 1e-12)

	vol, err = volsurface.ATMVol(s, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, vol, 1e-12)

	_, err = volsurface.ATMVol(s, 0)
	assert.True(t, fxerr.IsValidation(err))

	_, err = volsurface.ATMVol(volsurface.Surface{}, 0.5)
	assert.True(t, fxerr.IsData(err), "empty curve is a data error")
}

func TestVolAtStrikeInterpolation(t *testing.T) {
	t.Parallel()

	s := testSurface(t)

	atm := 0.08
	call25 := 0.08 + 0.5*(-0.010) + 0.003
	put25 := 0.08 - 0.5*(-0.010) + 0.003

	t.Run("exact nodes", func(t *testing.T) {
		t.Parallel()
		vol, err := volsurface.VolAt(s, spot, 0.25)
		require.NoError(t, err)
		assert.InDelta(t, atm, vol, 1e-12)
	})

	t.Run("between ATM and call wing", func(t *testing.T) {
		t.Parallel()
		mid := (spot + spot*1.05) / 2
		vol, err := volsurface.VolAt(s, mid, 0.25)
		require.NoError(t, err)
		assert.InDelta(t, (atm+call25)/2, vol, 1e-12)
	})

	t.Run("flat outside strike range", func(t *testing.T) {
		t.Parallel()
		vol, err := volsurface.VolAt(s, spot*1.50, 0.25)
		require.NoError(t, err)
		assert.InDelta(t, call25, vol, 1e-12)

		vol, err = volsurface.VolAt(s, spot*0.50, 0.25)
		require.NoError(t, err)
		assert.InDelta(t, put25, vol, 1e-12)
	})

	t.Run("tenor fallback to ATM curve", func(t *testing.T) {
		t.Parallel()
		// 0.5y matches no pillar within the 0.01y window, so the query
		// degrades to the ATM term structure.
		vol, err := volsurface.VolAt(s, spot*1.02, 0.5)
		require.NoError(t, err)
		want, err := volsurface.ATMVol(s, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, want, vol, 1e-12)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		_, err := volsurface.VolAt(s, 0, 0.25)
		assert.True(t, fxerr.IsValidation(err))
		_, err = volsurface.VolAt(s, spot, -1)
		assert.True(t, fxerr.IsValidation(err))
	})
}

func TestSmileAndRRBFQueries(t *testing.T) {
	t.Parallel()

	s := testSurface(t)

	rr, err := volsurface.RiskReversal25(s, 0.625)
	require.NoError(t, err)
	assert.InDelta(t, -0.012, rr, 1e-12, "RR interpolates linearly across tenor")

	bf, err := volsurface.Butterfly25(s, 0.625)
	require.NoError(t, err)
	assert.InDelta(t, 0.0035, bf, 1e-12)

	smile, err := volsurface.SmileAt(s, 0.625)
	require.NoError(t, err)
	assert.InDelta(t, 0.09, smile.ATM, 1e-12)
	assert.InDelta(t, 0.09+0.5*(-0.012)+0.0035, smile.Call25, 1e-12)
	assert.InDelta(t, 0.09-0.5*(-0.012)+0.0035, smile.Put25, 1e-12)
	assert.Greater(t, smile.Put25, smile.Call25, "negative RR skews the put wing rich")
}
