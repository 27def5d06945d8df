package spot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/spot"
)

var eurusd = currency.MustPair("EUR", "USD")

func mustQuote(t *testing.T, bid, ask float64, ts time.Time, depth float64) spot.Quote {
	t.Helper()
	q, err := spot.NewQuote(spot.QuoteParams{
		Pair:           eurusd,
		Bid:            bid,
		Ask:            ask,
		Timestamp:      ts,
		Source:         "test",
		LiquidityDepth: depth,
	})
	require.NoError(t, err)
	return q
}

func TestMid(t *testing.T) {
	t.Parallel()

	mid, err := spot.Mid(1.1850, 1.1852)
	require.NoError(t, err)
	assert.InDelta(t, 1.1851, mid, 1e-12)

	_, err = spot.Mid(1.1852, 1.1850)
	assert.True(t, fxerr.IsValidation(err), "bid above ask must be rejected")

	_, err = spot.Mid(0, 1.1850)
	assert.True(t, fxerr.IsValidation(err))

	_, err = spot.Mid(1.1850, -1)
	assert.True(t, fxerr.IsValidation(err))
}

func TestSpreadInPips(t *testing.T) {
	t.Parallel()

	pips, err := spot.SpreadInPips(1.1850, 1.1852, 0.0001)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, float64(pips), 1e-9)

	// JPY-style pip.
	pips, err = spot.SpreadInPips(155.10, 155.13, 0.01)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, float64(pips), 1e-9)

	_, err = spot.SpreadInPips(1.1850, 1.1852, 0)
	assert.True(t, fxerr.IsValidation(err))
}

func TestNewQuoteDerivesMidAndSpread(t *testing.T) {
	t.Parallel()

	q := mustQuote(t, 1.2500, 1.2504, time.Now(), 0)
	assert.InDelta(t, 1.2502, q.Mid, 1e-12)
	assert.InDelta(t, 0.0004, q.Spread, 1e-12)

	_, err := spot.NewQuote(spot.QuoteParams{Pair: eurusd, Bid: 1.2, Ask: 1.1})
	assert.True(t, fxerr.IsValidation(err))
}

func TestLiquidityAdjusted(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("no depth returns mid", func(t *testing.T) {
		t.Parallel()
		q := mustQuote(t, 1.1850, 1.1852, now, 0)
		px, err := spot.LiquidityAdjusted(q, 5_000_000, 0)
		require.NoError(t, err)
		assert.InDelta(t, q.Mid, px, 1e-12)
	})

	t.Run("linear impact in order size", func(t *testing.T) {
		t.Parallel()
		q := mustQuote(t, 1.1850, 1.1852, now, 10_000_000)
		px, err := spot.LiquidityAdjusted(q, 5_000_000, 0)
		require.NoError(t, err)
		want := q.Mid * (1 + spot.DefaultImpactFactor*0.5)
		assert.InDelta(t, want, px, 1e-12)

		// Doubling the order doubles the impact.
		px2, err := spot.LiquidityAdjusted(q, 10_000_000, 0)
		require.NoError(t, err)
		assert.Greater(t, px2, px)
		assert.InDelta(t, q.Mid*(1+spot.DefaultImpactFactor), px2, 1e-12)
	})

	t.Run("custom impact factor", func(t *testing.T) {
		t.Parallel()
		q := mustQuote(t, 1.1850, 1.1852, now, 1_000_000)
		px, err := spot.LiquidityAdjusted(q, 1_000_000, 0.01)
		require.NoError(t, err)
		assert.InDelta(t, q.Mid*1.01, px, 1e-12)
	})
}

func TestVWAP(t *testing.T) {
	t.Parallel()

	now := time.Now()
	quotes := []spot.Quote{
		mustQuote(t, 1.1000, 1.1002, now, 0),
		mustQuote(t, 1.1010, 1.1012, now, 0),
		mustQuote(t, 1.1020, 1.1022, now, 0),
	}

	vwap, err := spot.VWAP(quotes, []float64{1, 2, 1})
	require.NoError(t, err)
	want := (1.1001*1 + 1.1011*2 + 1.1021*1) / 4
	assert.InDelta(t, want, vwap, 1e-12)

	_, err = spot.VWAP(quotes, []float64{1, 2})
	assert.True(t, fxerr.IsValidation(err), "length mismatch must be rejected")

	_, err = spot.VWAP(quotes, []float64{0, 0, 0})
	assert.True(t, fxerr.IsValidation(err), "zero total volume must be rejected")
}

func TestTWAP(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	quotes := []spot.Quote{
		// Out of window, must be ignored.
		mustQuote(t, 2.0000, 2.0002, start.Add(-time.Hour), 0),
		// In window: first quote holds for 1h, second for 2h.
		mustQuote(t, 1.1000, 1.1002, start, 0),
		mustQuote(t, 1.1030, 1.1032, start.Add(time.Hour), 0),
	}

	twap, err := spot.TWAP(quotes, start, end)
	require.NoError(t, err)
	want := (1.1001*1 + 1.1031*2) / 3
	assert.InDelta(t, want, twap, 1e-9)

	_, err = spot.TWAP(quotes, end, end.Add(time.Hour))
	assert.True(t, fxerr.IsData(err), "empty window is a data error")

	_, err = spot.TWAP(quotes, end, start)
	assert.True(t, fxerr.IsValidation(err))
}

func TestBestExecution(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cheap := spot.Source{
		Name:        "cheap",
		Quote:       mustQuote(t, 1.1848, 1.1850, now, 10_000_000),
		Reliability: 0.9,
		LatencyMS:   50,
	}
	rich := spot.Source{
		Name:        "rich",
		Quote:       mustQuote(t, 1.1851, 1.1854, now, 10_000_000),
		Reliability: 0.9,
		LatencyMS:   50,
	}

	buy, err := spot.BestExecution([]spot.Source{cheap, rich}, spot.Buy, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, "cheap", buy.Name, "buys prefer the lower ask")

	sell, err := spot.BestExecution([]spot.Source{cheap, rich}, spot.Sell, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, "rich", sell.Name, "sells prefer the higher bid")

	_, err = spot.BestExecution(nil, spot.Buy, 1_000_000)
	assert.True(t, fxerr.IsValidation(err))

	bad := cheap
	bad.Reliability = 1.5
	_, err = spot.BestExecution([]spot.Source{bad}, spot.Buy, 1_000_000)
	assert.True(t, fxerr.IsValidation(err))

	// A source with no price must be rejected, not win a buy on a zero ask.
	unpriced := spot.Source{Name: "unpriced", Reliability: 0.9, LatencyMS: 10}
	_, err = spot.BestExecution([]spot.Source{cheap, unpriced}, spot.Buy, 1_000_000)
	assert.True(t, fxerr.IsValidation(err))
}
