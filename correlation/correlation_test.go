package correlation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantora/fxcore/correlation"
	"github.com/quantora/fxcore/fxerr"
)

func TestPearson(t *testing.T) {
	t.Parallel()

	x := []float64{0.01, -0.02, 0.015, 0.007, -0.011}

	t.Run("self correlation is one", func(t *testing.T) {
		t.Parallel()
		c, err := correlation.Pearson(x, x)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, c, 1e-12)
	})

	t.Run("perfect inverse is minus one", func(t *testing.T) {
		t.Parallel()
		y := make([]float64, len(x))
		for i, v := range x {
			y[i] = -2 * v
		}
		c, err := correlation.Pearson(x, y)
		require.NoError(t, err)
		assert.InDelta(t, -1.0, c, 1e-12)
	})

	t.Run("zero variance correlates at zero", func(t *testing.T) {
		t.Parallel()
		flat := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
		c, err := correlation.Pearson(x, flat)
		require.NoError(t, err)
		assert.Zero(t, c)
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := correlation.Pearson(x, x[:3])
		assert.True(t, fxerr.IsValidation(err))
	})
}

func TestNewMatrix(t *testing.T) {
	t.Parallel()

	labels := []string{"EUR", "GBP", "JPY"}
	series := [][]float64{
		{0.010, -0.020, 0.015, 0.007, -0.011},
		{0.008, -0.015, 0.012, 0.009, -0.010},
		{-0.004, 0.006, -0.009, 0.001, 0.003},
	}

	m, err := correlation.NewMatrix(labels, series)
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	for i := 0; i < m.Len(); i++ {
		assert.InDelta(t, 1.0, m.At(i, i), 1e-12, "unit diagonal")
		for j := 0; j < m.Len(); j++ {
			assert.InDelta(t, m.At(j, i), m.At(i, j), 1e-12, "symmetry")
			assert.GreaterOrEqual(t, m.At(i, j), -1.0)
			assert.LessOrEqual(t, m.At(i, j), 1.0)
		}
	}

	assert.Equal(t, 1, m.Index("GBP"))
	assert.Equal(t, -1, m.Index("CHF"))

	_, err = correlation.NewMatrix(labels, series[:2])
	assert.True(t, fxerr.IsValidation(err))

	_, err = correlation.NewMatrix(labels, [][]float64{series[0], series[1], series[2][:3]})
	assert.True(t, fxerr.IsValidation(err), "ragged series are rejected")
}

func TestRolling(t *testing.T) {
	t.Parallel()

	x := []float64{0.01, -0.02, 0.015, 0.007, -0.011, 0.004}
	y := []float64{0.008, -0.015, 0.012, 0.009, -0.010, 0.002}

	rc, err := correlation.Rolling(x, y, 3)
	require.NoError(t, err)
	assert.Len(t, rc, 4)

	// First window must equal the direct Pearson over it.
	first, err := correlation.Pearson(x[:3], y[:3])
	require.NoError(t, err)
	assert.InDelta(t, first, rc[0], 1e-12)

	_, err = correlation.Rolling(x, y, 1)
	assert.True(t, fxerr.IsValidation(err))

	_, err = correlation.Rolling(x, y, 7)
	assert.True(t, fxerr.IsValidation(err))
}

func TestRegimeChanges(t *testing.T) {
	t.Parallel()

	rolling := []float64{0.9, 0.88, 0.91, 0.2, 0.25, 0.85}

	idx, err := correlation.RegimeChanges(rolling, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, idx, "default 0.3 threshold flags both breaks")

	idx, err = correlation.RegimeChanges(rolling, 0.8)
	require.NoError(t, err)
	assert.Empty(t, idx)

	_, err = correlation.RegimeChanges(rolling, -0.1)
	assert.True(t, fxerr.IsValidation(err))
}

func TestBeta(t *testing.T) {
	t.Parallel()

	bench := []float64{0.010, -0.020, 0.015, 0.007, -0.011}

	t.Run("scaled series has that beta", func(t *testing.T) {
		t.Parallel()
		ccy := make([]float64, len(bench))
		for i, v := range bench {
			ccy[i] = 1.5 * v
		}
		b, err := correlation.Beta(ccy, bench)
		require.NoError(t, err)
		assert.InDelta(t, 1.5, b, 1e-12)
	})

	t.Run("flat benchmark is rejected", func(t *testing.T) {
		t.Parallel()
		flat := []float64{0.1, 0.1, 0.1, 0.1, 0.1}
		_, err := correlation.Beta(bench, flat)
		assert.True(t, fxerr.IsValidation(err))
	})
}
