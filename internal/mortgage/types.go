package mortgage

import (
	"fmt"
	"math"
	"time"
)

// ExtraPayment is a one-off lump sum at a year/month offset from the start
// (year 0, month 0 = the first month).
type ExtraPayment struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"` // 0-based month offset within the year
	Amount float64 `json:"amount"`
}

// Params configures one amortization run
type Params struct {
	Principal          float64        `json:"principal"`           // default 350000
	TermYears          int            `json:"term_years"`          // default 25
	FixedYears         int            `json:"fixed_years"`         // default 5
	FixedRate          float64        `json:"fixed_rate"`          // APR during the fixed phase (default 0.04)
	VariableRate       float64        `json:"variable_rate"`       // APR after (default 0.055)
	MonthlyOverpayment float64        `json:"monthly_overpayment"` // default 0
	ExtraPayments      []ExtraPayment `json:"extra_payments"`
	StartDate          time.Time      `json:"start_date"` // zero = today
	RecalcOnRateChange bool           `json:"recalc_on_rate_change"`
	Decimals           int            `json:"decimals"` // default 1
}

// DefaultParams returns the documented per-field defaults
func DefaultParams() Params {
	return Params{
		Principal:          350_000,
		TermYears:          25,
		FixedYears:         5,
		FixedRate:          0.04,
		VariableRate:       0.055,
		RecalcOnRateChange: true,
		Decimals:           1,
	}
}

// Validate rejects non-finite and out-of-range parameters
func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"principal":           p.Principal,
		"fixed_rate":          p.FixedRate,
		"variable_rate":       p.VariableRate,
		"monthly_overpayment": p.MonthlyOverpayment,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}

	if p.Principal <= 0 {
		return fmt.Errorf("principal must be > 0, got %v", p.Principal)
	}
	if p.TermYears < 1 {
		return fmt.Errorf("term_years must be >= 1, got %d", p.TermYears)
	}
	if p.FixedYears < 0 || p.FixedYears > p.TermYears {
		return fmt.Errorf("fixed_years must be within 0..term_years, got %d", p.FixedYears)
	}
	if p.MonthlyOverpayment < 0 {
		return fmt.Errorf("monthly_overpayment must be >= 0, got %v", p.MonthlyOverpayment)
	}
	for i, ep := range p.ExtraPayments {
		if math.IsNaN(ep.Amount) || math.IsInf(ep.Amount, 0) || ep.Amount < 0 {
			return fmt.Errorf("extra_payments[%d].amount must be finite and >= 0", i)
		}
	}

	return nil
}

// Summary aggregates one run against its baseline
type Summary struct {
	PayoffMonths          int     `json:"payoff_months"`
	PayoffDate            string  `json:"payoff_date"`
	BaselinePayoffMonths  int     `json:"baseline_payoff_months"`
	BaselinePayoffDate    string  `json:"baseline_payoff_date"`
	TotalInterest         float64 `json:"total_interest"`
	BaselineTotalInterest float64 `json:"baseline_total_interest"`
	InterestSaved         float64 `json:"interest_saved"`
	MonthsSaved           int     `json:"months_saved"`
	EndingBalance         float64 `json:"ending_balance"`
	IsBalloon             bool    `json:"is_balloon"`
	FixedMonths           int     `json:"fixed_months"`
}

// Result is the /mortgage response body
type Result struct {
	Labels          []string  `json:"labels"`
	Balance         []float64 `json:"balance"`
	BaselineBalance []float64 `json:"baseline_balance"`
	SchedulePayment []float64 `json:"schedule_payment"` // scheduled annuity only
	TotalPayment    []float64 `json:"total_payment"`    // scheduled + overpay + lumps
	Interest        []float64 `json:"interest"`
	Principal       []float64 `json:"principal"`
	Summary         Summary   `json:"summary"`
}
