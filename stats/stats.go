// Package stats holds the pure estimators the fair value models are built
// from: exponential smoothing, population dispersion and a one-step linear
// trend projection. All functions tolerate short or empty inputs and never
// error; degenerate cases return the documented fallbacks.
package stats

import "math"

// StdDevFallback is returned by StdDev when fewer than two observations
// exist, so downstream ratios never divide by zero.
const StdDevFallback = 1.0

// EWMA computes an exponentially weighted average over prices, oldest
// first. The running average is seeded with the first price. Returns 0 for
// an empty slice. alpha must be in (0, 1]; larger values react faster.
func EWMA(prices []float64, alpha float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	avg := prices[0]
	for _, p := range prices[1:] {
		avg = alpha*p + (1-alpha)*avg
	}
	return avg
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

// StdDev returns the population standard deviation of prices, or
// StdDevFallback when fewer than two observations exist.
func StdDev(prices []float64) float64 {
	if len(prices) < 2 {
		return StdDevFallback
	}
	mean := Mean(prices)
	sumSq := 0.0
	for _, p := range prices {
		d := p - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(prices)))
}

// Linreg fits an ordinary least-squares line through (0, prices[0]) ..
// (n-1, prices[n-1]) and returns the projected value one step ahead at
// index n, along with the fitted slope. n=0 yields (0, 0); n=1 yields the
// single observation with zero slope.
func Linreg(prices []float64) (next, slope float64) {
	n := len(prices)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return prices[0], 0
	}
	meanX := float64(n-1) / 2
	meanY := Mean(prices)
	num, den := 0.0, 0.0
	for i, y := range prices {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den != 0 {
		slope = num / den
	}
	intercept := meanY - slope*meanX
	return intercept + slope*float64(n), slope
}
