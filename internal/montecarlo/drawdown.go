package montecarlo

import (
	"math"
	"time"
)

// DrawdownSimulator generates independent GBM price paths, reduces each
// to its running-drawdown curve, and extracts cross-path percentile bands.
type DrawdownSimulator struct {
	src NormalSource
}

// NewDrawdownSimulator creates a simulator over an injected normal source
func NewDrawdownSimulator(src NormalSource) *DrawdownSimulator {
	return &DrawdownSimulator{src: src}
}

// Run executes one simulation.
// params must already be validated; Run itself never fails for finite input.
func (s *DrawdownSimulator) Run(params DrawdownParams) *DrawdownResult {
	steps := int(math.Round(params.Years * float64(params.Frequency)))
	dt := 1.0 / float64(params.Frequency)

	// Per-step GBM coefficients, net of the expense drag
	muNet := params.ExpectedReturn - params.ExpenseRatio
	driftStep := (muNet - 0.5*params.Volatility*params.Volatility) * dt
	sigmaStep := params.Volatility * math.Sqrt(dt)

	// Generate paths and their drawdown curves.
	// Both matrices are transient: discarded once the bands are extracted.
	prices := make([][]float64, params.NumSims)
	drawdowns := make([][]float64, params.NumSims)
	maxDDPerPath := make([]float64, params.NumSims)

	for i := 0; i < params.NumSims; i++ {
		path := s.generatePath(steps, driftStep, sigmaStep)
		dd := DrawdownSeries(path)

		prices[i] = path
		drawdowns[i] = dd
		maxDDPerPath[i] = Min(dd)
	}

	bands := columnPercentiles(drawdowns, steps, []float64{0.10, 0.25, 0.50, 0.75, 0.90})

	d := params.Decimals
	result := &DrawdownResult{
		Percentiles: DrawdownBands{
			P10: RoundSlice(bands[0], d),
			P25: RoundSlice(bands[1], d),
			P50: RoundSlice(bands[2], d),
			P75: RoundSlice(bands[3], d),
			P90: RoundSlice(bands[4], d),
		},
	}

	// Summary: the median band's deepest point is kept as the headline
	// number; per-path percentiles sit alongside it.
	sortedMaxDD := SortedCopy(maxDDPerPath)
	result.Summary = DrawdownSummary{
		MedianMaxDrawdown:    Min(result.Percentiles.P50),
		P10MaxDrawdown:       RoundTo(Sanitize(Percentile(sortedMaxDD, 0.10)), d),
		P90MaxDrawdown:       RoundTo(Sanitize(Percentile(sortedMaxDD, 0.90)), d),
		MedianRecoveryMonths: medianPathRecovery(prices, steps),
	}

	start := params.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	result.Labels = PeriodLabels(start, steps, params.Frequency)

	return result
}

// generatePath produces one normalized price path of length steps+1 with
// path[0] = 1.0 and multiplicative GBM steps.
func (s *DrawdownSimulator) generatePath(steps int, driftStep, sigmaStep float64) []float64 {
	path := make([]float64, steps+1)
	path[0] = 1.0
	for t := 1; t <= steps; t++ {
		z := s.src.Norm()
		path[t] = path[t-1] * math.Exp(driftStep+sigmaStep*z)
	}
	return path
}

// medianPathRecovery measures, on the cross-path median price path, how many
// periods the deepest trough takes to regain its prior running peak.
// Returns 0 when there is no trough or the path never recovers in-horizon.
func medianPathRecovery(prices [][]float64, steps int) int {
	medPath := columnPercentiles(prices, steps, []float64{0.50})[0]

	peak := medPath[0]
	troughIdx := 0
	troughDD := 0.0
	peakAtTrough := peak

	for t, p := range medPath {
		if p > peak {
			peak = p
		}
		if dd := (p - peak) / peak; dd < troughDD {
			troughDD = dd
			troughIdx = t
			peakAtTrough = peak
		}
	}

	for j := troughIdx; j < len(medPath); j++ {
		if medPath[j] >= peakAtTrough {
			return j - troughIdx
		}
	}
	return 0
}
