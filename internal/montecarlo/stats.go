package montecarlo

import (
	"math"
	"sort"
)

// =============================================================================
// Statistical utilities
// =============================================================================

// Percentile reads the q-quantile (0 <= q <= 1) from an ascending-sorted
// slice using nearest-rank selection: index = floor((count-1) * q).
func Percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	idx := int(math.Floor(float64(len(sorted)-1) * q))
	return sorted[idx]
}

// SortedCopy returns an ascending-sorted copy of values
func SortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// Mean computes the arithmetic mean
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Min returns the smallest value (0 for an empty slice)
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// DrawdownSeries derives a running-drawdown series from a price path in a
// single forward pass tracking the running maximum. Every entry is <= 0 and
// entry 0 is always 0.
func DrawdownSeries(prices []float64) []float64 {
	dd := make([]float64, len(prices))
	if len(prices) == 0 {
		return dd
	}

	peak := prices[0]
	for t, p := range prices {
		if p > peak {
			peak = p
		}
		dd[t] = (p - peak) / peak
	}
	return dd
}

// Sanitize maps NaN and ±Inf to 0 so degenerate parameter combinations
// never leak non-finite values into the JSON response.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// RoundTo rounds x to d decimal places
func RoundTo(x float64, d int) float64 {
	if d < 0 {
		d = 0
	}
	pow := math.Pow(10, float64(d))
	return math.Round(x*pow) / pow
}

// RoundSlice sanitizes and rounds every value to d decimal places
func RoundSlice(values []float64, d int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = RoundTo(Sanitize(v), d)
	}
	return out
}

// columnPercentiles extracts the cross-path q-quantile series from a
// [path][time] matrix: one sorted column per time index.
func columnPercentiles(matrix [][]float64, steps int, qs []float64) [][]float64 {
	out := make([][]float64, len(qs))
	for i := range out {
		out[i] = make([]float64, steps+1)
	}

	column := make([]float64, len(matrix))
	for t := 0; t <= steps; t++ {
		for p, row := range matrix {
			column[p] = row[t]
		}
		sort.Float64s(column)
		for i, q := range qs {
			out[i][t] = Percentile(column, q)
		}
	}
	return out
}
