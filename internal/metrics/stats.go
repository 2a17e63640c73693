package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

func mean(xs []float64) Float {
	if len(xs) == 0 {
		return None[float64]()
	}
	return Some(stat.Mean(xs, nil))
}

// sampleStd is the standard deviation with n-1 degrees of freedom.
func sampleStd(xs []float64) Float {
	if len(xs) < 2 {
		return None[float64]()
	}
	return Some(stat.StdDev(xs, nil))
}

// pearson returns the correlation coefficient of two equally long samples.
// Undefined for fewer than two pairs or when either sample is constant.
func pearson(xs, ys []float64) Float {
	if len(xs) < 2 || len(xs) != len(ys) || constant(xs) || constant(ys) {
		return None[float64]()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return None[float64]()
	}
	return Some(math.Max(-1, math.Min(1, r)))
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func pctChange(from, to float64) Float {
	if from <= 0 {
		return None[float64]()
	}
	return Some(100 * (to - from) / from)
}
