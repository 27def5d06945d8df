package correlation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/fxcore/correlation"
	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
)

func TestDeltaHedge(t *testing.T) {
	t.Parallel()

	book := []correlation.OptionPosition{
		{Notional: 1_000_000, Delta: 0.55},
		{Notional: 2_000_000, Delta: -0.30},
		{Notional: 500_000, Delta: 0.10},
	}

	hedge, err := correlation.DeltaHedge(book)
	require.NoError(t, err)
	assert.InDelta(t, -(1_000_000*0.55+2_000_000*-0.30+500_000*0.10), hedge, 1e-9)

	_, err = correlation.DeltaHedge(nil)
	assert.True(t, fxerr.IsValidation(err))
}

func TestOptimalHedge(t *testing.T) {
	t.Parallel()

	spotR := []float64{0.010, -0.020, 0.015, 0.007, -0.011, 0.004}

	t.Run("perfect hedge instrument", func(t *testing.T) {
		t.Parallel()
		// Hedge returns are exactly twice spot returns: ratio 0.5, R²=1,
		// no residual risk.
		hedgeR := make([]float64, len(spotR))
		for i, v := range spotR {
			hedgeR[i] = 2 * v
		}

		res, err := correlation.OptimalHedge(spotR, hedgeR, 10_000_000)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, res.HedgeRatio, 1e-12)
		assert.InDelta(t, -5_000_000, res.HedgeNotional, 1e-6)
		assert.InDelta(t, 1.0, res.Effectiveness, 1e-12)
		assert.InDelta(t, 0.0, res.ResidualRisk, 1e-12)
	})

	t.Run("imperfect hedge leaves residual risk", func(t *testing.T) {
		t.Parallel()
		hedgeR := []float64{0.009, -0.014, 0.010, 0.012, -0.008, 0.001}
		res, err := correlation.OptimalHedge(spotR, hedgeR, 1_000_000)
		require.NoError(t, err)
		assert.Greater(t, res.Effectiveness, 0.0)
		assert.Less(t, res.Effectiveness, 1.0)
		assert.Positive(t, res.ResidualRisk)
	})

	t.Run("flat hedge instrument is rejected", func(t *testing.T) {
		t.Parallel()
		flat := []float64{0, 0, 0, 0, 0, 0}
		_, err := correlation.OptimalHedge(spotR, flat, 1_000_000)
		assert.True(t, fxerr.IsValidation(err))
	})
}

func TestEffectiveness(t *testing.T) {
	t.Parallel()

	spotR := []float64{0.010, -0.020, 0.015, 0.007, -0.011}
	inverse := make([]float64, len(spotR))
	for i, v := range spotR {
		inverse[i] = -v
	}

	r2, err := correlation.Effectiveness(spotR, inverse)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-12, "perfectly inverse hedge is fully effective")

	// A bad input surfaces the correlation error as-is: still matchable on
	// kind, with a single operation prefix.
	_, err = correlation.Effectiveness(spotR, inverse[:3])
	require.Error(t, err)
	assert.True(t, fxerr.IsValidation(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Pearson:"), "got %q", err)
}

func TestPortfolioHedge(t *testing.T) {
	t.Parallel()

	// The portfolio hedge is the documented per-exposure unit-ratio rule,
	// not a covariance-aware optimizer; these assertions pin that
	// simplification down.
	exposures := []correlation.Exposure{
		{Currency: currency.MustCode("EUR"), Amount: 5_000_000},
		{Currency: currency.MustCode("JPY"), Amount: -300_000_000},
	}

	lines, err := correlation.PortfolioHedge(exposures)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.InDelta(t, -5_000_000, lines[0].HedgeNotional, 1e-9)
	assert.InDelta(t, 1.0, lines[0].HedgeRatio, 1e-12)
	assert.InDelta(t, 300_000_000, lines[1].HedgeNotional, 1e-9)
	assert.InDelta(t, -1.0, lines[1].HedgeRatio, 1e-12)

	_, err = correlation.PortfolioHedge(nil)
	assert.True(t, fxerr.IsValidation(err))
}

func TestGammaRebalance(t *testing.T) {
	t.Parallel()

	res := correlation.GammaRebalance(0.40, 2.5, 0.02, 0)
	assert.InDelta(t, 0.05, res.DeltaChange, 1e-12)
	assert.InDelta(t, 0.45, res.ProjectedDelta, 1e-12)
	assert.InDelta(t, -0.45, res.TradeAmount, 1e-12, "sell the drifted delta to return to flat")

	// A move against the position shrinks the trade.
	res = correlation.GammaRebalance(0.40, 2.5, -0.02, 0.40)
	assert.InDelta(t, 0.05, res.TradeAmount, 1e-12)
}
