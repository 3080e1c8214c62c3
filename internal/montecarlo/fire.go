package montecarlo

import (
	"math"
	"time"
)

// FireSimulator runs the two-phase FIRE wealth simulation: inflation-indexed
// contributions while accumulating, inflation-indexed withdrawals once
// retired, with the wealth floor at zero.
type FireSimulator struct {
	src NormalSource
}

// NewFireSimulator creates a simulator over an injected normal source
func NewFireSimulator(src NormalSource) *FireSimulator {
	return &FireSimulator{src: src}
}

// Run executes one simulation. params must already be validated.
func (s *FireSimulator) Run(params FireParams) *FireResult {
	stepsAccum := params.YearsToRetire * params.Frequency
	stepsRet := params.YearsInRetirement * params.Frequency
	steps := stepsAccum + stepsRet
	dt := 1.0 / float64(params.Frequency)

	// Net flows per period: contributions then withdrawals, each bumped by
	// inflation once every simulated year
	flows := make([]float64, steps)

	monthly := params.MonthlyDisposable
	for m := 0; m < stepsAccum; m++ {
		flows[m] = monthly
		if (m+1)%params.Frequency == 0 {
			monthly *= 1.0 + params.Inflation
		}
	}

	spend := params.MonthlyDrawdown
	for m := stepsAccum; m < steps; m++ {
		flows[m] = -spend
		if (m+1-stepsAccum)%params.Frequency == 0 {
			spend *= 1.0 + params.Inflation
		}
	}

	// Phase-specific GBM drift, shared shock scale
	sigmaStep := params.Volatility * math.Sqrt(dt)
	driftAccum := (params.ExpectedReturnAccum - params.ExpenseRatio - 0.5*params.Volatility*params.Volatility) * dt
	driftRet := (params.ExpectedReturnRet - params.ExpenseRatio - 0.5*params.Volatility*params.Volatility) * dt

	wealth := make([][]float64, params.NumSims)
	lastingMonths := make([]float64, params.NumSims)

	for i := 0; i < params.NumSims; i++ {
		path := make([]float64, steps+1)
		path[0] = params.InitialBalance

		for t := 1; t <= steps; t++ {
			drift := driftAccum
			if t > stepsAccum {
				drift = driftRet
			}
			z := s.src.Norm()
			w := path[t-1]*math.Exp(drift+sigmaStep*z) + flows[t-1]
			if w < 0 {
				w = 0
			}
			path[t] = w
		}

		wealth[i] = path
		lastingMonths[i] = float64(depletionMonths(path, stepsAccum, stepsRet))
	}

	bands := columnPercentiles(wealth, steps, []float64{0.10, 0.25, 0.50, 0.75, 0.90})

	d := params.Decimals
	result := &FireResult{
		Percentiles: FireBands{
			P10: RoundSlice(bands[0], d),
			P25: RoundSlice(bands[1], d),
			P50: RoundSlice(bands[2], d),
			P75: RoundSlice(bands[3], d),
			P90: RoundSlice(bands[4], d),
		},
	}

	// Terminal statistics and retirement survival
	survivors := 0
	terminal := make([]float64, params.NumSims)
	for i, path := range wealth {
		terminal[i] = path[steps]
		if terminal[i] > 0 {
			survivors++
		}
	}
	sortedTerminal := SortedCopy(terminal)
	sortedLasting := SortedCopy(lastingMonths)

	result.Summary = FireSummary{
		MedianTerminal:       RoundTo(Sanitize(Percentile(sortedTerminal, 0.50)), d),
		ProbNonzeroEnd:       RoundTo(float64(survivors)/float64(params.NumSims), d),
		MedianLastingMonths:  int(Percentile(sortedLasting, 0.50)),
		RetirementStartIndex: stepsAccum,
	}

	start := params.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	result.Labels = PeriodLabels(start, steps, params.Frequency)

	return result
}

// depletionMonths finds how many retirement periods a path lasts: the first
// zero-wealth index after retirement starts, or the full retirement span if
// the money never runs out.
func depletionMonths(path []float64, stepsAccum, stepsRet int) int {
	for t := stepsAccum + 1; t < len(path); t++ {
		if path[t] <= 0 {
			return t - stepsAccum
		}
	}
	return stepsRet
}
