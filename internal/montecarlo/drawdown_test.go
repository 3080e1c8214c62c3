package montecarlo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawdownRun_SeriesShape(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 5
	params.NumSims = 50
	params.Seed = 42

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	wantLen := 5*12 + 1
	require.Len(t, result.Labels, wantLen)
	require.Len(t, result.Percentiles.P10, wantLen)
	require.Len(t, result.Percentiles.P25, wantLen)
	require.Len(t, result.Percentiles.P50, wantLen)
	require.Len(t, result.Percentiles.P75, wantLen)
	require.Len(t, result.Percentiles.P90, wantLen)
}

func TestDrawdownRun_DefaultParams(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Seed = 1
	params.NumSims = 100 // keep the default-shaped run fast

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	// 30 years x 12 + 1 entries per series
	assert.Len(t, result.Labels, 361)
	assert.Len(t, result.Percentiles.P50, 361)

	// all labels are valid ISO dates, first one is today
	for _, label := range result.Labels {
		_, err := time.Parse("2006-01-02", label)
		require.NoError(t, err, "label %q is not a valid date", label)
	}
	assert.Equal(t, time.Now().Format("2006-01-02"), result.Labels[0])
}

func TestDrawdownRun_BandInvariants(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 10
	params.NumSims = 200
	params.Seed = 7

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	bands := [][]float64{
		result.Percentiles.P10,
		result.Percentiles.P25,
		result.Percentiles.P50,
		result.Percentiles.P75,
		result.Percentiles.P90,
	}

	for t0 := range result.Percentiles.P10 {
		// drawdowns are never positive, and t=0 is always 0
		for _, band := range bands {
			assert.LessOrEqual(t, band[t0], 0.0)
		}
		if t0 == 0 {
			for _, band := range bands {
				assert.Zero(t, band[0])
			}
		}

		// non-decreasing in q at each fixed t
		for i := 1; i < len(bands); i++ {
			assert.LessOrEqual(t, bands[i-1][t0], bands[i][t0],
				"band ordering violated at t=%d", t0)
		}
	}
}

func TestDrawdownRun_SummaryMatchesMedianBand(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 8
	params.NumSims = 300
	params.Seed = 99

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, Min(result.Percentiles.P50), result.Summary.MedianMaxDrawdown,
		"median_max_drawdown must equal the median band minimum exactly")

	// per-path percentiles bracket the distribution
	assert.LessOrEqual(t, result.Summary.P10MaxDrawdown, result.Summary.P90MaxDrawdown)
	assert.LessOrEqual(t, result.Summary.P90MaxDrawdown, 0.0)
	assert.GreaterOrEqual(t, result.Summary.MedianRecoveryMonths, 0)
}

func TestDrawdownRun_ZeroVolatilityIsDriftOnly(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 1
	params.NumSims = 1
	params.Volatility = 0
	params.Seed = 5

	// positive net drift: the path only rises, drawdown stays 0
	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	for t0, v := range result.Percentiles.P50 {
		assert.Zero(t, v, "expected zero drawdown at t=%d", t0)
	}
	assert.Zero(t, result.Summary.MedianMaxDrawdown)

	// negative net drift: monotonically non-increasing toward one trough
	params.ExpectedReturn = -0.05
	result = NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	prev := 0.0
	for t0, v := range result.Percentiles.P50 {
		assert.LessOrEqual(t, v, prev, "drawdown must not recover at t=%d", t0)
		prev = v
	}
	assert.Less(t, result.Summary.MedianMaxDrawdown, 0.0)
}

func TestDrawdownRun_SinglePathBandsCollapse(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 2
	params.NumSims = 1
	params.Seed = 11

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, result.Percentiles.P50, result.Percentiles.P10)
	assert.Equal(t, result.Percentiles.P50, result.Percentiles.P90)
	assert.Equal(t, result.Percentiles.P50, result.Percentiles.P25)
	assert.Equal(t, result.Percentiles.P50, result.Percentiles.P75)
}

func TestDrawdownRun_SeedReproducibility(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 3
	params.NumSims = 100
	params.Seed = 12345
	params.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)
	second := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, first, second, "seeded runs must be bit-identical")
}

func TestDrawdownRun_CustomStartDateAndDecimals(t *testing.T) {
	params := DefaultDrawdownParams()
	params.Years = 1
	params.NumSims = 10
	params.Seed = 3
	params.Decimals = 1
	params.StartDate = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	result := NewDrawdownSimulator(NewBoxMullerSource(params.Seed)).Run(params)

	assert.Equal(t, "2025-01-31", result.Labels[0])
	// Jan 31 + 1 month clamps to Feb 28
	assert.Equal(t, "2025-02-28", result.Labels[1])

	for _, v := range result.Percentiles.P50 {
		assert.Equal(t, RoundTo(v, 1), v, "values must be rounded to 1 decimal")
	}
}

func TestDrawdownParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DrawdownParams)
		wantErr bool
	}{
		{"defaults valid", func(p *DrawdownParams) {}, false},
		{"zero years", func(p *DrawdownParams) { p.Years = 0 }, true},
		{"negative years", func(p *DrawdownParams) { p.Years = -1 }, true},
		{"zero frequency", func(p *DrawdownParams) { p.Frequency = 0 }, true},
		{"zero sims", func(p *DrawdownParams) { p.NumSims = 0 }, true},
		{"too many sims", func(p *DrawdownParams) { p.NumSims = 50000 }, true},
		{"too many years", func(p *DrawdownParams) { p.Years = 500 }, true},
		{"negative volatility", func(p *DrawdownParams) { p.Volatility = -0.1 }, true},
		{"nan return", func(p *DrawdownParams) { p.ExpectedReturn = nan() }, true},
		{"inf volatility", func(p *DrawdownParams) { p.Volatility = inf() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultDrawdownParams()
			tt.mutate(&params)

			err := params.Validate(20000, 100)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
