package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/fxcore/aggregate"
	"github.com/quantora/fxcore/currency"
	"github.com/quantora/fxcore/fxerr"
	"github.com/quantora/fxcore/spot"
)

var eurusd = currency.MustPair("EUR", "USD")

func source(t *testing.T, name string, bid, ask, depth, reliability, latency float64) spot.Source {
	t.Helper()
	q, err := spot.NewQuote(spot.QuoteParams{
		Pair:           eurusd,
		Bid:            bid,
		Ask:            ask,
		Timestamp:      time.Now(),
		Source:         name,
		LiquidityDepth: depth,
	})
	require.NoError(t, err)
	return spot.Source{Name: name, Quote: q, Reliability: reliability, LatencyMS: latency}
}

func testSources(t *testing.T) []spot.Source {
	t.Helper()
	return []spot.Source{
		source(t, "a", 1.1848, 1.1850, 10_000_000, 0.95, 20),
		source(t, "b", 1.1849, 1.1853, 5_000_000, 0.80, 5),
		source(t, "c", 1.1846, 1.1850, 0, 0.99, 200),
		source(t, "d", 1.1850, 1.1852, 20_000_000, 0.90, 50),
	}
}

func TestAggregateMean(t *testing.T) {
	t.Parallel()

	srcs := testSources(t)
	got, err := aggregate.Aggregate(srcs, aggregate.MethodMean)
	require.NoError(t, err)

	var want float64
	for _, s := range srcs {
		want += s.Quote.Mid
	}
	want /= float64(len(srcs))
	assert.InDelta(t, want, got, 1e-12)

	_, err = aggregate.Aggregate(nil, aggregate.MethodMean)
	assert.True(t, fxerr.IsValidation(err))
}

func TestAggregateMedian(t *testing.T) {
	t.Parallel()

	srcs := testSources(t)

	t.Run("even count averages the middle pair", func(t *testing.T) {
		t.Parallel()
		got, err := aggregate.Aggregate(srcs, aggregate.MethodMedian)
		require.NoError(t, err)

		// Mids sorted: 1.1848, 1.1849, 1.1851, 1.1851.
		want := (1.1849 + 1.1851) / 2
		assert.InDelta(t, want, got, 1e-9)
	})

	t.Run("odd count takes the middle", func(t *testing.T) {
		t.Parallel()
		got, err := aggregate.Aggregate(srcs[:3], aggregate.MethodMedian)
		require.NoError(t, err)
		assert.InDelta(t, 1.1849, got, 1e-9)
	})
}

func TestAggregateLiquidityWeighted(t *testing.T) {
	t.Parallel()

	srcs := testSources(t)
	got, err := aggregate.Aggregate(srcs, aggregate.MethodLiquidityWeighted)
	require.NoError(t, err)

	// Unknown depth defaults to weight 1.
	var sum, weight float64
	for _, s := range srcs {
		w := s.Quote.LiquidityDepth
		if w <= 0 {
			w = 1
		}
		sum += s.Quote.Mid * w
		weight += w
	}
	assert.InDelta(t, sum/weight, got, 1e-12)
}

func TestAggregateBest(t *testing.T) {
	t.Parallel()

	// Source "a": high reliability, low latency, tight spread. Must win
	// over "c" (higher reliability, but slow and wide).
	srcs := testSources(t)
	got, err := aggregate.Aggregate(srcs, aggregate.MethodBest)
	require.NoError(t, err)
	assert.InDelta(t, srcs[0].Quote.Mid, got, 1e-12)
}

func TestWindowVWAP(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	mk := func(bid, ask float64, at time.Time) spot.Quote {
		q, err := spot.NewQuote(spot.QuoteParams{Pair: eurusd, Bid: bid, Ask: ask, Timestamp: at})
		require.NoError(t, err)
		return q
	}

	quotes := []spot.Quote{
		mk(1.1000, 1.1002, start.Add(-time.Hour)), // outside
		mk(1.1010, 1.1012, start.Add(10*time.Minute)),
		mk(1.1020, 1.1022, start.Add(20*time.Minute)),
	}
	volumes := []float64{99, 1, 3}

	got, err := aggregate.WindowVWAP(quotes, volumes, start, start.Add(time.Hour))
	require.NoError(t, err)
	want := (1.1011*1 + 1.1021*3) / 4
	assert.InDelta(t, want, got, 1e-12)

	_, err = aggregate.WindowVWAP(quotes, volumes, start.Add(2*time.Hour), start.Add(3*time.Hour))
	assert.True(t, fxerr.IsData(err))

	_, err = aggregate.WindowVWAP(quotes, volumes[:2], start, start.Add(time.Hour))
	assert.True(t, fxerr.IsValidation(err))
}

func TestBestExecutionPreferences(t *testing.T) {
	t.Parallel()

	srcs := testSources(t)

	t.Run("price-dominant buy takes the cheapest ask", func(t *testing.T) {
		t.Parallel()
		sel, err := aggregate.BestExecution(srcs, spot.Buy, 1_000_000, aggregate.Preferences{Price: 1})
		require.NoError(t, err)
		// "a" and "c" share the 1.1850 best ask; "a" has depth, "c" none,
		// but at pure price preference the first best wins.
		assert.InDelta(t, 1.1850, sel.Source.Quote.Ask, 1e-12)
		assert.InDelta(t, 1.0, sel.Score, 1e-12)
	})

	t.Run("liquidity preference favours deep venues", func(t *testing.T) {
		t.Parallel()
		sel, err := aggregate.BestExecution(srcs, spot.Buy, 15_000_000, aggregate.Preferences{Liquidity: 1})
		require.NoError(t, err)
		assert.Equal(t, "d", sel.Source.Name)
	})

	t.Run("speed preference favours low latency", func(t *testing.T) {
		t.Parallel()
		sel, err := aggregate.BestExecution(srcs, spot.Sell, 1_000_000, aggregate.Preferences{Speed: 1})
		require.NoError(t, err)
		assert.Equal(t, "b", sel.Source.Name)
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		t.Parallel()
		_, err := aggregate.BestExecution(srcs, spot.Buy, 1_000_000, aggregate.Preferences{Price: 0.5, Speed: 0.3})
		assert.True(t, fxerr.IsValidation(err))
	})

	t.Run("unpriced source is rejected", func(t *testing.T) {
		t.Parallel()
		// A zero-value quote would score priceScore = bestAsk/0 = +Inf on a
		// buy and silently win.
		withUnpriced := append(append([]spot.Source{}, srcs...), spot.Source{Name: "unpriced", Reliability: 0.9})
		_, err := aggregate.BestExecution(withUnpriced, spot.Buy, 1_000_000, aggregate.Preferences{Price: 1})
		assert.True(t, fxerr.IsValidation(err))
	})
}
