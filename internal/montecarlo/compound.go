package montecarlo

import (
	"fmt"
	"math"
)

// CompoundSimulator runs wealth accumulation paths: GBM growth factors with
// per-period contributions that grow yearly.
type CompoundSimulator struct {
	src NormalSource
}

// NewCompoundSimulator creates a simulator over an injected normal source
func NewCompoundSimulator(src NormalSource) *CompoundSimulator {
	return &CompoundSimulator{src: src}
}

// Run executes one simulation. params must already be validated.
func (s *CompoundSimulator) Run(params CompoundParams) *CompoundResult {
	steps := params.Years * params.Frequency
	dt := 1.0 / float64(params.Frequency)

	muNet := params.ExpectedReturn - params.ExpenseRatio
	driftStep := (muNet - 0.5*params.Volatility*params.Volatility) * dt
	sigmaStep := params.Volatility * math.Sqrt(dt)

	// Per-period contribution schedule, bumped once per simulated year
	contrib := make([]float64, steps)
	for y := 0; y < params.Years; y++ {
		perPeriod := params.AnnualContribution * math.Pow(1+params.ContributionGrowth, float64(y)) / float64(params.Frequency)
		for m := 0; m < params.Frequency; m++ {
			contrib[y*params.Frequency+m] = perPeriod
		}
	}

	// Wealth paths: growth on previous wealth, contribution added at the
	// end of each period
	wealth := make([][]float64, params.NumSims)
	for i := range wealth {
		path := make([]float64, steps+1)
		path[0] = params.Initial
		for t := 1; t <= steps; t++ {
			z := s.src.Norm()
			path[t] = path[t-1]*math.Exp(driftStep+sigmaStep*z) + contrib[t-1]
		}
		wealth[i] = path
	}

	bands := columnPercentiles(wealth, steps, []float64{0.10, 0.25, 0.50, 0.75, 0.90})

	// Real (inflation-adjusted) median series for reporting
	p50Real := make([]float64, steps+1)
	for t := 0; t <= steps; t++ {
		deflator := math.Pow(1+params.Inflation, float64(t)*dt)
		p50Real[t] = Sanitize(bands[2][t] / deflator)
	}

	result := &CompoundResult{
		Times: periodIndices(steps),
		Percentiles: CompoundBands{
			P10:     sanitizeSlice(bands[0]),
			P25:     sanitizeSlice(bands[1]),
			P50:     sanitizeSlice(bands[2]),
			P75:     sanitizeSlice(bands[3]),
			P90:     sanitizeSlice(bands[4]),
			P50Real: p50Real,
		},
	}

	// Terminal wealth statistics
	final := make([]float64, params.NumSims)
	for i, path := range wealth {
		final[i] = path[steps]
	}
	sortedFinal := SortedCopy(final)

	result.Summary = CompoundSummary{
		ExpectedFinal: Sanitize(Mean(final)),
		MedianFinal:   Sanitize(Percentile(sortedFinal, 0.50)),
		P10Final:      Sanitize(Percentile(sortedFinal, 0.10)),
		P90Final:      Sanitize(Percentile(sortedFinal, 0.90)),
	}
	if params.Target > 0 {
		hits := 0
		for _, f := range final {
			if f >= params.Target {
				hits++
			}
		}
		prob := float64(hits) / float64(params.NumSims)
		result.Summary.ProbHitTarget = &prob
	}

	totalContrib := 0.0
	for _, c := range contrib {
		totalContrib += c
	}
	result.Insights = CompoundInsights{
		MedianCAGR:        Sanitize(medianBandCAGR(result.Percentiles.P50, params.Frequency)),
		MedianMaxDrawdown: Sanitize(medianBandMaxDrawdown(result.Percentiles.P50)),
		TotalContrib:      totalContrib,
		RealMedianFinal:   p50Real[steps],
	}

	result.Suggestions = s.suggest(params, result.Summary.MedianFinal)

	return result
}

// medianBandMaxDrawdown computes max drawdown on the median band, guarding
// the denominator against non-positive running peaks (balance can start at 0)
// and skipping the t=0 point.
func medianBandMaxDrawdown(median []float64) float64 {
	if len(median) < 2 {
		return 0
	}

	maxDD := math.Inf(1)
	peak := median[0]
	for t, v := range median {
		if v > peak {
			peak = v
		}
		den := peak
		if den <= 0 {
			den = 1.0
		}
		if t == 0 {
			continue
		}
		if dd := (v - peak) / den; dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// medianBandCAGR derives the compound annual growth rate of the median band,
// anchored at its first positive point to avoid a zero baseline.
func medianBandCAGR(median []float64, frequency int) float64 {
	last := median[len(median)-1]
	if last <= 0 {
		return 0
	}

	posIdx := -1
	for i, v := range median {
		if v > 0 {
			posIdx = i
			break
		}
	}
	if posIdx < 0 {
		return 0
	}

	yearsElapsed := float64(len(median)-1-posIdx) / float64(frequency)
	return math.Pow(last/median[posIdx], 1/math.Max(yearsElapsed, 1e-9)) - 1
}

// suggest emits simple heuristic nudges based on the run outcome
func (s *CompoundSimulator) suggest(params CompoundParams, medianFinal float64) []string {
	suggestions := []string{}

	if params.Target > 0 {
		ratio := params.Target / (medianFinal + 1e-9)
		if ratio > 1.05 {
			suggestions = append(suggestions, fmt.Sprintf(
				"Increase annual contributions by ~%.0f%% (or raise yearly growth above %.1f%%).",
				(ratio-1)*100, params.ContributionGrowth*100))
		} else if ratio < 0.9 {
			suggestions = append(suggestions,
				"You appear on track at median case; consider lowering risk or locking gains later.")
		}
	}
	if params.ExpenseRatio > 0.002 {
		suggestions = append(suggestions,
			"Your expense ratio looks high; consider a lower-cost index fund (<0.10%).")
	}
	if params.Volatility > 0.22 {
		suggestions = append(suggestions,
			"Volatility is high; a diversified mix could smooth drawdowns.")
	}

	return suggestions
}

// SolveContribution answers /suggestions with growing-annuity math: the
// year-1 contribution needed to hit a target, approximating the risky return
// by its expectation.
func SolveContribution(params SuggestionParams) *SuggestionResult {
	r := params.ExpectedReturn - params.ExpenseRatio
	g := params.ContributionGrowth
	n := float64(params.HorizonYears)

	var annuityFactor float64
	if math.Abs(r-g) < 1e-6 {
		annuityFactor = n * math.Pow(1+r, n-1)
	} else {
		annuityFactor = (math.Pow(1+r, n) - math.Pow(1+g, n)) / (r - g)
	}

	needed := (params.Target - params.Initial*math.Pow(1+r, n)) / math.Max(annuityFactor, 1e-9)
	if needed < 0 {
		needed = 0
	}

	return &SuggestionResult{
		Year1ContributionNeeded: Sanitize(needed),
		IncreaseOverCurrent:     Sanitize(needed - params.CurrentAnnualContribution),
		Note:                    "This uses expected-return math; Monte Carlo will vary.",
	}
}

func periodIndices(steps int) []int {
	times := make([]int, steps+1)
	for t := range times {
		times[t] = t
	}
	return times
}

func sanitizeSlice(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Sanitize(v)
	}
	return out
}
