// Package correlation computes currency co-movement analytics (Pearson
// correlation, correlation matrices, rolling correlation, regime-change
// detection, currency beta) and the hedging constructions built on them.
package correlation

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/quantora/fxcore/fxerr"
)

// DefaultRegimeThreshold is the rolling-correlation jump that flags a
// regime change when the caller does not supply one.
const DefaultRegimeThreshold = 0.3

// Pearson returns the Pearson correlation of two equal-length return
// series. A series with zero variance correlates at zero rather than NaN.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fxerr.Validationf("Pearson", "series differ in length: %d vs %d", len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fxerr.Validationf("Pearson", "need at least 2 observations, got %d", len(x))
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, nil
	}
	return stat.Correlation(x, y, nil), nil
}

// NewMatrix computes the pairwise correlation matrix of the labelled
// series. All series must share one length.
func NewMatrix(labels []string, series [][]float64) (Matrix, error) {
	if len(labels) == 0 || len(labels) != len(series) {
		return Matrix{}, fxerr.Validationf("NewMatrix", "labels and series must match, got %d labels and %d series", len(labels), len(series))
	}
	n := len(series[0])
	for i, s := range series {
		if len(s) != n {
			return Matrix{}, fxerr.Validationf("NewMatrix", "series %q has length %d, expected %d", labels[i], len(s), n)
		}
	}
	if n < 2 {
		return Matrix{}, fxerr.Validationf("NewMatrix", "need at least 2 observations, got %d", n)
	}

	sym := mat.NewSymDense(len(series), nil)
	for i := range series {
		sym.SetSym(i, i, 1)
		for j := i + 1; j < len(series); j++ {
			c, err := Pearson(series[i], series[j])
			if err != nil {
				return Matrix{}, err
			}
			sym.SetSym(i, j, c)
		}
	}

	out := make([]string, len(labels))
	copy(out, labels)
	return Matrix{labels: out, sym: sym}, nil
}

// Rolling slides a fixed window over two series and returns the
// correlation of each window. The output has len(x)-window+1 entries.
func Rolling(x, y []float64, window int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fxerr.Validationf("Rolling", "series differ in length: %d vs %d", len(x), len(y))
	}
	if window <= 1 {
		return nil, fxerr.Validationf("Rolling", "window must exceed 1, got %d", window)
	}
	if window > len(x) {
		return nil, fxerr.Validationf("Rolling", "window %d exceeds series length %d", window, len(x))
	}

	out := make([]float64, 0, len(x)-window+1)
	for i := 0; i+window <= len(x); i++ {
		c, err := Pearson(x[i:i+window], y[i:i+window])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// RegimeChanges flags the indices of a rolling-correlation series where
// successive values jump by more than threshold. A threshold of zero
// selects DefaultRegimeThreshold.
func RegimeChanges(rolling []float64, threshold float64) ([]int, error) {
	if threshold < 0 {
		return nil, fxerr.Validationf("RegimeChanges", "threshold must be non-negative, got %g", threshold)
	}
	if threshold == 0 {
		threshold = DefaultRegimeThreshold
	}

	var out []int
	for i := 1; i < len(rolling); i++ {
		if math.Abs(rolling[i]-rolling[i-1]) > threshold {
			out = append(out, i)
		}
	}
	return out, nil
}

// Beta returns the currency's sensitivity to a benchmark,
// Cov(currency, benchmark) / Var(benchmark).
func Beta(currencyReturns, benchmarkReturns []float64) (float64, error) {
	if len(currencyReturns) != len(benchmarkReturns) {
		return 0, fxerr.Validationf("Beta", "series differ in length: %d vs %d", len(currencyReturns), len(benchmarkReturns))
	}
	if len(currencyReturns) < 2 {
		return 0, fxerr.Validationf("Beta", "need at least 2 observations, got %d", len(currencyReturns))
	}
	benchVar := stat.Variance(benchmarkReturns, nil)
	if benchVar == 0 {
		return 0, fxerr.Validationf("Beta", "benchmark variance is zero")
	}
	return stat.Covariance(currencyReturns, benchmarkReturns, nil) / benchVar, nil
}
