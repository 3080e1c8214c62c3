package montecarlo

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// Drawdown
// =============================================================================

// DrawdownParams configures one drawdown simulation run.
// All fields carry documented defaults; the API boundary merges missing
// request fields into DefaultDrawdownParams before calling the simulator.
type DrawdownParams struct {
	Years          float64   `json:"years"`           // horizon in years (default 30)
	Frequency      int       `json:"frequency"`       // periods per year (default 12)
	NumSims        int       `json:"n_sims"`          // independent paths (default 2000)
	ExpectedReturn float64   `json:"expected_return"` // annual drift (default 0.07)
	Volatility     float64   `json:"volatility"`      // annual stddev (default 0.18)
	ExpenseRatio   float64   `json:"expense_ratio"`   // annual fee drag (default 0.001)
	StartDate      time.Time `json:"start_date"`      // label start (zero = today)
	Decimals       int       `json:"decimals"`        // rounding places (default 3)
	Seed           int64     `json:"seed"`            // 0 = time-based
}

// DefaultDrawdownParams returns the documented per-field defaults
func DefaultDrawdownParams() DrawdownParams {
	return DrawdownParams{
		Years:          30,
		Frequency:      12,
		NumSims:        2000,
		ExpectedReturn: 0.07,
		Volatility:     0.18,
		ExpenseRatio:   0.001,
		Decimals:       3,
		Seed:           0,
	}
}

// Validate rejects non-finite and out-of-range parameters.
// maxSims/maxYears come from config and cap per-request work.
func (p DrawdownParams) Validate(maxSims, maxYears int) error {
	if err := checkFinite(map[string]float64{
		"years":           p.Years,
		"expected_return": p.ExpectedReturn,
		"volatility":      p.Volatility,
		"expense_ratio":   p.ExpenseRatio,
	}); err != nil {
		return err
	}

	if p.Years <= 0 {
		return fmt.Errorf("years must be > 0, got %v", p.Years)
	}
	if float64(maxYears) > 0 && p.Years > float64(maxYears) {
		return fmt.Errorf("years must be <= %d, got %v", maxYears, p.Years)
	}
	if p.Frequency < 1 {
		return fmt.Errorf("frequency must be >= 1, got %d", p.Frequency)
	}
	if p.NumSims < 1 {
		return fmt.Errorf("n_sims must be >= 1, got %d", p.NumSims)
	}
	if maxSims > 0 && p.NumSims > maxSims {
		return fmt.Errorf("n_sims must be <= %d, got %d", maxSims, p.NumSims)
	}
	if p.Volatility < 0 {
		return fmt.Errorf("volatility must be >= 0, got %v", p.Volatility)
	}

	return nil
}

// DrawdownBands holds the cross-path percentile series of the drawdown
// distribution, each of length T+1
type DrawdownBands struct {
	P10 []float64 `json:"p10"`
	P25 []float64 `json:"p25"`
	P50 []float64 `json:"p50"`
	P75 []float64 `json:"p75"`
	P90 []float64 `json:"p90"`
}

// DrawdownSummary aggregates one run.
// MedianMaxDrawdown is deliberately the minimum of the median band, not the
// median of per-path maxima; the band definition is kept for chart
// compatibility while P10/P90MaxDrawdown carry the per-path view.
type DrawdownSummary struct {
	MedianMaxDrawdown    float64 `json:"median_max_drawdown"`
	P10MaxDrawdown       float64 `json:"p10_max_drawdown"`
	P90MaxDrawdown       float64 `json:"p90_max_drawdown"`
	MedianRecoveryMonths int     `json:"median_recovery_months"`
}

// DrawdownResult is the /drawdown response body
type DrawdownResult struct {
	Labels      []string        `json:"labels"`
	Percentiles DrawdownBands   `json:"percentiles"`
	Summary     DrawdownSummary `json:"summary"`
}

// =============================================================================
// Compound growth (/simulate)
// =============================================================================

// CompoundParams configures one wealth accumulation run
type CompoundParams struct {
	Initial            float64 `json:"initial"`             // starting balance (default 0)
	AnnualContribution float64 `json:"annual_contribution"` // first-year contribution (default 6000)
	ContributionGrowth float64 `json:"contribution_growth"` // yearly growth of contributions (default 0.03)
	Years              int     `json:"years"`               // default 30
	NumSims            int     `json:"n_sims"`              // default 100
	ExpectedReturn     float64 `json:"expected_return"`     // default 0.07
	Volatility         float64 `json:"volatility"`          // default 0.18
	ExpenseRatio       float64 `json:"expense_ratio"`       // default 0
	Inflation          float64 `json:"inflation"`           // default 0.02
	Target             float64 `json:"target"`              // optional wealth target (0 = unset)
	Frequency          int     `json:"frequency"`           // default 12
	Seed               int64   `json:"seed"`                // 0 = time-based
}

// DefaultCompoundParams returns the documented per-field defaults
func DefaultCompoundParams() CompoundParams {
	return CompoundParams{
		Initial:            0,
		AnnualContribution: 6000,
		ContributionGrowth: 0.03,
		Years:              30,
		NumSims:            100,
		ExpectedReturn:     0.07,
		Volatility:         0.18,
		ExpenseRatio:       0,
		Inflation:          0.02,
		Frequency:          12,
	}
}

// Validate rejects non-finite and out-of-range parameters
func (p CompoundParams) Validate(maxSims, maxYears int) error {
	if err := checkFinite(map[string]float64{
		"initial":             p.Initial,
		"annual_contribution": p.AnnualContribution,
		"contribution_growth": p.ContributionGrowth,
		"expected_return":     p.ExpectedReturn,
		"volatility":          p.Volatility,
		"expense_ratio":       p.ExpenseRatio,
		"inflation":           p.Inflation,
		"target":              p.Target,
	}); err != nil {
		return err
	}

	if p.Years < 1 {
		return fmt.Errorf("years must be >= 1, got %d", p.Years)
	}
	if maxYears > 0 && p.Years > maxYears {
		return fmt.Errorf("years must be <= %d, got %d", maxYears, p.Years)
	}
	if p.Frequency < 1 {
		return fmt.Errorf("frequency must be >= 1, got %d", p.Frequency)
	}
	if p.NumSims < 1 {
		return fmt.Errorf("n_sims must be >= 1, got %d", p.NumSims)
	}
	if maxSims > 0 && p.NumSims > maxSims {
		return fmt.Errorf("n_sims must be <= %d, got %d", maxSims, p.NumSims)
	}
	if p.Volatility < 0 {
		return fmt.Errorf("volatility must be >= 0, got %v", p.Volatility)
	}
	if p.Initial < 0 || p.AnnualContribution < 0 || p.Target < 0 {
		return fmt.Errorf("initial, annual_contribution and target must be >= 0")
	}

	return nil
}

// CompoundBands holds nominal percentile series plus the real-dollar median
type CompoundBands struct {
	P10     []float64 `json:"p10"`
	P25     []float64 `json:"p25"`
	P50     []float64 `json:"p50"`
	P75     []float64 `json:"p75"`
	P90     []float64 `json:"p90"`
	P50Real []float64 `json:"p50_real"`
}

// CompoundSummary holds terminal wealth statistics
type CompoundSummary struct {
	ExpectedFinal float64  `json:"expected_final"`
	MedianFinal   float64  `json:"median_final"`
	P10Final      float64  `json:"p10_final"`
	P90Final      float64  `json:"p90_final"`
	ProbHitTarget *float64 `json:"prob_hit_target,omitempty"` // only when a target is set
}

// CompoundInsights holds derived analytics on the median band
type CompoundInsights struct {
	MedianCAGR        float64 `json:"median_cagr"`
	MedianMaxDrawdown float64 `json:"median_max_drawdown"`
	TotalContrib      float64 `json:"total_contrib"`
	RealMedianFinal   float64 `json:"real_median_final"`
}

// CompoundResult is the /simulate response body.
// Times are plain period indices, not dates; the original chart front end
// for this endpoint labels the x-axis itself.
type CompoundResult struct {
	Times       []int            `json:"times"`
	Percentiles CompoundBands    `json:"percentiles"`
	Summary     CompoundSummary  `json:"summary"`
	Insights    CompoundInsights `json:"insights"`
	Suggestions []string         `json:"suggestions"`
}

// =============================================================================
// FIRE (/fire)
// =============================================================================

// FireParams configures one two-phase retirement run
type FireParams struct {
	InitialBalance      float64   `json:"initial_balance"`       // default 0
	MonthlyDisposable   float64   `json:"monthly_disposable"`    // invested during accumulation (default 500)
	MonthlyDrawdown     float64   `json:"monthly_drawdown"`      // spent during retirement (default 2500)
	YearsToRetire       int       `json:"years_to_retire"`       // default 20
	YearsInRetirement   int       `json:"years_in_retirement"`   // default 30
	ExpectedReturnAccum float64   `json:"expected_return_accum"` // default 0.07
	ExpectedReturnRet   float64   `json:"expected_return_ret"`   // default 0.05
	Volatility          float64   `json:"volatility"`            // default 0.18
	Inflation           float64   `json:"inflation"`             // default 0.02
	ExpenseRatio        float64   `json:"expense_ratio"`         // default 0.001
	NumSims             int       `json:"n_sims"`                // default 2000
	Frequency           int       `json:"frequency"`             // default 12
	StartDate           time.Time `json:"start_date"`            // zero = today
	Decimals            int       `json:"decimals"`              // default 1
	Seed                int64     `json:"seed"`                  // 0 = time-based
}

// DefaultFireParams returns the documented per-field defaults
func DefaultFireParams() FireParams {
	return FireParams{
		MonthlyDisposable:   500,
		MonthlyDrawdown:     2500,
		YearsToRetire:       20,
		YearsInRetirement:   30,
		ExpectedReturnAccum: 0.07,
		ExpectedReturnRet:   0.05,
		Volatility:          0.18,
		Inflation:           0.02,
		ExpenseRatio:        0.001,
		NumSims:             2000,
		Frequency:           12,
		Decimals:            1,
	}
}

// Validate rejects non-finite and out-of-range parameters
func (p FireParams) Validate(maxSims, maxYears int) error {
	if err := checkFinite(map[string]float64{
		"initial_balance":       p.InitialBalance,
		"monthly_disposable":    p.MonthlyDisposable,
		"monthly_drawdown":      p.MonthlyDrawdown,
		"expected_return_accum": p.ExpectedReturnAccum,
		"expected_return_ret":   p.ExpectedReturnRet,
		"volatility":            p.Volatility,
		"inflation":             p.Inflation,
		"expense_ratio":         p.ExpenseRatio,
	}); err != nil {
		return err
	}

	if p.YearsToRetire < 0 {
		return fmt.Errorf("years_to_retire must be >= 0, got %d", p.YearsToRetire)
	}
	if p.YearsInRetirement < 1 {
		return fmt.Errorf("years_in_retirement must be >= 1, got %d", p.YearsInRetirement)
	}
	if maxYears > 0 && p.YearsToRetire+p.YearsInRetirement > maxYears {
		return fmt.Errorf("total horizon must be <= %d years, got %d", maxYears, p.YearsToRetire+p.YearsInRetirement)
	}
	if p.Frequency < 1 {
		return fmt.Errorf("frequency must be >= 1, got %d", p.Frequency)
	}
	if p.NumSims < 1 {
		return fmt.Errorf("n_sims must be >= 1, got %d", p.NumSims)
	}
	if maxSims > 0 && p.NumSims > maxSims {
		return fmt.Errorf("n_sims must be <= %d, got %d", maxSims, p.NumSims)
	}
	if p.Volatility < 0 {
		return fmt.Errorf("volatility must be >= 0, got %v", p.Volatility)
	}

	return nil
}

// FireBands holds the cross-path wealth percentile series
type FireBands struct {
	P10 []float64 `json:"p10"`
	P25 []float64 `json:"p25"`
	P50 []float64 `json:"p50"`
	P75 []float64 `json:"p75"`
	P90 []float64 `json:"p90"`
}

// FireSummary aggregates retirement outcomes
type FireSummary struct {
	MedianTerminal       float64 `json:"median_terminal"`
	ProbNonzeroEnd       float64 `json:"prob_nonzero_end"`
	MedianLastingMonths  int     `json:"median_lasting_months"`
	RetirementStartIndex int     `json:"retirement_start_index"` // vertical marker for the chart
}

// FireResult is the /fire response body
type FireResult struct {
	Labels      []string    `json:"labels"`
	Percentiles FireBands   `json:"percentiles"`
	Summary     FireSummary `json:"summary"`
}

// =============================================================================
// Contribution suggestions (/suggestions)
// =============================================================================

// SuggestionParams configures the closed-form contribution solver
type SuggestionParams struct {
	Target                    float64 `json:"target"`                      // required
	HorizonYears              int     `json:"horizon_years"`               // default 20
	ExpectedReturn            float64 `json:"expected_return"`             // default 0.07
	Volatility                float64 `json:"volatility"`                  // default 0.18
	ExpenseRatio              float64 `json:"expense_ratio"`               // default 0.001
	Initial                   float64 `json:"initial"`                     // default 0
	CurrentAnnualContribution float64 `json:"current_annual_contribution"` // default 6000
	ContributionGrowth        float64 `json:"contribution_growth"`         // default 0.03
}

// DefaultSuggestionParams returns the documented per-field defaults
func DefaultSuggestionParams() SuggestionParams {
	return SuggestionParams{
		HorizonYears:              20,
		ExpectedReturn:            0.07,
		Volatility:                0.18,
		ExpenseRatio:              0.001,
		CurrentAnnualContribution: 6000,
		ContributionGrowth:        0.03,
	}
}

// Validate rejects non-finite and out-of-range parameters
func (p SuggestionParams) Validate() error {
	if err := checkFinite(map[string]float64{
		"target":                      p.Target,
		"expected_return":             p.ExpectedReturn,
		"volatility":                  p.Volatility,
		"expense_ratio":               p.ExpenseRatio,
		"initial":                     p.Initial,
		"current_annual_contribution": p.CurrentAnnualContribution,
		"contribution_growth":         p.ContributionGrowth,
	}); err != nil {
		return err
	}

	if p.Target <= 0 {
		return fmt.Errorf("target must be > 0, got %v", p.Target)
	}
	if p.HorizonYears < 1 {
		return fmt.Errorf("horizon_years must be >= 1, got %d", p.HorizonYears)
	}

	return nil
}

// SuggestionResult is the /suggestions response body
type SuggestionResult struct {
	Year1ContributionNeeded float64 `json:"year1_contribution_needed"`
	IncreaseOverCurrent     float64 `json:"increase_over_current"`
	Note                    string  `json:"note"`
}

// =============================================================================
// Shared validation helper
// =============================================================================

func checkFinite(fields map[string]float64) error {
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}
	return nil
}
