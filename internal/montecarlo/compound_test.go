package montecarlo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundRun_Shape(t *testing.T) {
	params := DefaultCompoundParams()
	params.Years = 5
	params.NumSims = 60
	params.Seed = 42

	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	wantLen := 5*12 + 1
	require.Len(t, result.Times, wantLen)
	require.Len(t, result.Percentiles.P10, wantLen)
	require.Len(t, result.Percentiles.P50, wantLen)
	require.Len(t, result.Percentiles.P90, wantLen)
	require.Len(t, result.Percentiles.P50Real, wantLen)

	assert.Equal(t, 0, result.Times[0])
	assert.Equal(t, wantLen-1, result.Times[wantLen-1])
}

func TestCompoundRun_BandOrdering(t *testing.T) {
	params := DefaultCompoundParams()
	params.Years = 10
	params.NumSims = 150
	params.Seed = 9

	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	for t0 := range result.Percentiles.P10 {
		assert.LessOrEqual(t, result.Percentiles.P10[t0], result.Percentiles.P25[t0])
		assert.LessOrEqual(t, result.Percentiles.P25[t0], result.Percentiles.P50[t0])
		assert.LessOrEqual(t, result.Percentiles.P50[t0], result.Percentiles.P75[t0])
		assert.LessOrEqual(t, result.Percentiles.P75[t0], result.Percentiles.P90[t0])
	}

	// real dollars never exceed nominal for positive inflation
	for t0 := 1; t0 < len(result.Percentiles.P50); t0++ {
		assert.LessOrEqual(t, result.Percentiles.P50Real[t0], result.Percentiles.P50[t0])
	}
}

func TestCompoundRun_DeterministicGrowth(t *testing.T) {
	// zero volatility and a zero contribution reduces to pure compounding
	params := DefaultCompoundParams()
	params.Initial = 1000
	params.AnnualContribution = 0
	params.Years = 1
	params.NumSims = 1
	params.Volatility = 0
	params.ExpectedReturn = 0.12
	params.Inflation = 0
	params.Seed = 1

	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	want := 1000 * math.Exp(0.12)
	assert.InDelta(t, want, result.Percentiles.P50[12], 1e-9)
	assert.InDelta(t, want, result.Summary.MedianFinal, 1e-9)
	assert.Zero(t, result.Insights.MedianMaxDrawdown)
	assert.InDelta(t, math.Exp(0.12)-1, result.Insights.MedianCAGR, 1e-9)
}

func TestCompoundRun_ContributionSchedule(t *testing.T) {
	params := DefaultCompoundParams()
	params.AnnualContribution = 1200
	params.ContributionGrowth = 0.10
	params.Years = 2
	params.NumSims = 5
	params.Volatility = 0
	params.ExpectedReturn = 0
	params.ExpenseRatio = 0
	params.Seed = 2

	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	// year 1: 1200, year 2: 1320
	assert.InDelta(t, 1200+1320, result.Insights.TotalContrib, 1e-9)
	// flat returns: terminal wealth is exactly the contributions
	assert.InDelta(t, 2520, result.Summary.MedianFinal, 1e-9)
}

func TestCompoundRun_TargetProbability(t *testing.T) {
	params := DefaultCompoundParams()
	params.Years = 3
	params.NumSims = 80
	params.Seed = 4

	// absurdly low target: every path hits it
	params.Target = 1
	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	require.NotNil(t, result.Summary.ProbHitTarget)
	assert.Equal(t, 1.0, *result.Summary.ProbHitTarget)

	// no target: field omitted
	params.Target = 0
	result = NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	assert.Nil(t, result.Summary.ProbHitTarget)
}

func TestCompoundRun_Suggestions(t *testing.T) {
	params := DefaultCompoundParams()
	params.Years = 2
	params.NumSims = 30
	params.Seed = 6
	params.ExpenseRatio = 0.01 // high fees
	params.Volatility = 0.30   // high volatility

	result := NewCompoundSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Len(t, result.Suggestions, 2)
	assert.Contains(t, result.Suggestions[0], "expense ratio")
	assert.Contains(t, result.Suggestions[1], "Volatility is high")
}

func TestSolveContribution(t *testing.T) {
	params := DefaultSuggestionParams()
	params.Target = 1_000_000
	params.HorizonYears = 20

	result := SolveContribution(params)

	assert.Greater(t, result.Year1ContributionNeeded, 0.0)
	assert.InDelta(t, result.Year1ContributionNeeded-params.CurrentAnnualContribution,
		result.IncreaseOverCurrent, 1e-9)
	assert.NotEmpty(t, result.Note)
}

func TestSolveContribution_AlreadyFunded(t *testing.T) {
	params := DefaultSuggestionParams()
	params.Target = 1000
	params.Initial = 1_000_000
	params.HorizonYears = 10

	result := SolveContribution(params)

	// initial balance alone covers the target; no contribution needed
	assert.Zero(t, result.Year1ContributionNeeded)
	assert.Equal(t, -params.CurrentAnnualContribution, result.IncreaseOverCurrent)
}

func TestSolveContribution_RateEqualsGrowth(t *testing.T) {
	params := DefaultSuggestionParams()
	params.Target = 100000
	params.ExpectedReturn = 0.03
	params.ExpenseRatio = 0
	params.ContributionGrowth = 0.03
	params.HorizonYears = 10

	result := SolveContribution(params)

	// degenerate annuity branch: factor = n*(1+r)^(n-1)
	factor := 10 * math.Pow(1.03, 9)
	assert.InDelta(t, 100000/factor, result.Year1ContributionNeeded, 1e-6)
}

func TestSuggestionParamsValidate(t *testing.T) {
	params := DefaultSuggestionParams()
	assert.Error(t, params.Validate(), "missing target must fail")

	params.Target = 500000
	assert.NoError(t, params.Validate())

	params.HorizonYears = 0
	assert.Error(t, params.Validate())
}
