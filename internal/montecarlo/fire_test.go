package montecarlo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireRun_Shape(t *testing.T) {
	params := DefaultFireParams()
	params.YearsToRetire = 2
	params.YearsInRetirement = 3
	params.NumSims = 40
	params.Seed = 42

	result := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	wantLen := (2+3)*12 + 1
	require.Len(t, result.Labels, wantLen)
	require.Len(t, result.Percentiles.P10, wantLen)
	require.Len(t, result.Percentiles.P50, wantLen)
	require.Len(t, result.Percentiles.P90, wantLen)

	assert.Equal(t, 2*12, result.Summary.RetirementStartIndex)
}

func TestFireRun_BandOrderingAndFloor(t *testing.T) {
	params := DefaultFireParams()
	params.YearsToRetire = 5
	params.YearsInRetirement = 10
	params.NumSims = 100
	params.Seed = 8

	result := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	for t0 := range result.Percentiles.P10 {
		assert.LessOrEqual(t, result.Percentiles.P10[t0], result.Percentiles.P50[t0])
		assert.LessOrEqual(t, result.Percentiles.P50[t0], result.Percentiles.P90[t0])
		// wealth never goes negative
		assert.GreaterOrEqual(t, result.Percentiles.P10[t0], 0.0)
	}

	assert.GreaterOrEqual(t, result.Summary.ProbNonzeroEnd, 0.0)
	assert.LessOrEqual(t, result.Summary.ProbNonzeroEnd, 1.0)
}

func TestFireRun_DepletionWithNoSavings(t *testing.T) {
	// nothing saved, nothing invested: retirement depletes immediately
	params := DefaultFireParams()
	params.InitialBalance = 0
	params.MonthlyDisposable = 0
	params.YearsToRetire = 1
	params.YearsInRetirement = 2
	params.NumSims = 20
	params.Volatility = 0
	params.Seed = 3

	result := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Zero(t, result.Summary.MedianTerminal)
	assert.Zero(t, result.Summary.ProbNonzeroEnd)
	assert.Equal(t, 1, result.Summary.MedianLastingMonths)
}

func TestFireRun_GenerousSavingsSurvive(t *testing.T) {
	// huge balance, tiny spending: every path survives retirement
	params := DefaultFireParams()
	params.InitialBalance = 10_000_000
	params.MonthlyDisposable = 1000
	params.MonthlyDrawdown = 100
	params.YearsToRetire = 1
	params.YearsInRetirement = 2
	params.NumSims = 50
	params.Seed = 14

	result := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, 1.0, result.Summary.ProbNonzeroEnd)
	assert.Equal(t, 2*12, result.Summary.MedianLastingMonths)
	assert.Greater(t, result.Summary.MedianTerminal, 0.0)
}

func TestFireRun_SeedReproducibility(t *testing.T) {
	params := DefaultFireParams()
	params.YearsToRetire = 2
	params.YearsInRetirement = 2
	params.NumSims = 60
	params.Seed = 777
	params.StartDate = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	second := NewFireSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, first, second)
}

func TestFireParamsValidate(t *testing.T) {
	params := DefaultFireParams()
	assert.NoError(t, params.Validate(20000, 100))

	params.YearsInRetirement = 0
	assert.Error(t, params.Validate(20000, 100))

	params = DefaultFireParams()
	params.YearsToRetire = 60
	params.YearsInRetirement = 60
	assert.Error(t, params.Validate(20000, 100), "total horizon above cap")

	params = DefaultFireParams()
	params.NumSims = 0
	assert.Error(t, params.Validate(20000, 100))
}
