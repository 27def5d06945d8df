package utils

import (
	"math"
	"sort"
	"time"
)

// Days returns the day count in calendar days between two dates.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// YearFraction converts a tenor in calendar days to years on the ACT/365
// basis used throughout the engine.
func YearFraction(tenorDays float64) float64 {
	return tenorDays / 365.0
}

// SortedKeys returns the keys of a tenor-keyed map in ascending order.
func SortedKeys(m map[float64]float64) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// AdjacentValues returns the two values from a sorted slice that bracket
// target. If target is outside the range, the nearest boundary pair is
// returned, supporting flat or linear extrapolation by the caller.
//
// It assumes vals is sorted ascending and has at least two elements.
func AdjacentValues(target float64, vals []float64) (float64, float64) {
	if len(vals) < 2 {
		panic("AdjacentValues: need at least 2 values")
	}

	// First index with vals[i] >= target.
	i := sort.SearchFloat64s(vals, target)

	if i <= 0 {
		return vals[0], vals[1]
	}
	if i >= len(vals) {
		return vals[len(vals)-2], vals[len(vals)-1]
	}
	return vals[i-1], vals[i]
}

// Lerp linearly interpolates between (x1,y1) and (x2,y2) at x. When the
// abscissae coincide it returns y1, avoiding a zero division.
func Lerp(x, x1, y1, x2, y2 float64) float64 {
	if x2 == x1 {
		return y1
	}
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
