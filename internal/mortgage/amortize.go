// Package mortgage implements deterministic amortization schedules with a
// fixed-to-variable rate phase, regular overpayments and lump-sum extras,
// compared against a no-overpayment baseline.
package mortgage

import (
	"math"
	"time"

	"github.com/wonny/finsim/backend/internal/montecarlo"
)

// Pmt computes the monthly annuity payment for a per-month rate i over n
// months on the given balance. Degenerate rates fall back to straight-line.
func Pmt(balance, i float64, n int) float64 {
	if n <= 0 {
		return balance
	}
	if math.Abs(i) < 1e-12 {
		return balance / float64(n)
	}
	return balance * i / (1.0 - math.Pow(1.0+i, float64(-n)))
}

// schedule holds one amortization run; series lengths track the months
// actually simulated (early payoff stops the run).
type schedule struct {
	balances      []float64 // length months+1
	scheduledPmt  []float64 // per-month series
	totalPmt      []float64
	interest      []float64
	principalPaid []float64
}

// amortize walks the loan month by month. When recalcOnChange is set, the
// scheduled payment is recomputed over the remaining term at the
// fixed-to-variable switch.
func amortize(principal float64, termMonths, fixedMonths int, fixedRate, variableRate,
	monthlyOverpay float64, extras map[int]float64, recalcOnChange bool) schedule {

	bal := principal
	iFixed := fixedRate / 12.0
	iVar := variableRate / 12.0

	s := schedule{balances: []float64{bal}}

	monthsLeft := termMonths
	pmt := Pmt(bal, iFixed, monthsLeft)

	for m := 1; m <= termMonths; m++ {
		rate := iFixed
		if m > fixedMonths {
			rate = iVar
		}

		if recalcOnChange && m == fixedMonths+1 {
			monthsLeft = termMonths - (m - 1)
			pmt = Pmt(bal, rate, monthsLeft)
		}

		interest := bal * rate
		payTotal := pmt + monthlyOverpay + extras[m]

		newBal := bal + interest - payTotal

		// principal actually paid; negative on a shortfall month
		principalActual := payTotal - interest

		// clamp sub-cent noise so an on-schedule payoff reads as zero
		if math.Abs(newBal) < 0.01 {
			newBal = 0
		}

		s.balances = append(s.balances, newBal)
		s.scheduledPmt = append(s.scheduledPmt, pmt)
		s.totalPmt = append(s.totalPmt, payTotal)
		s.interest = append(s.interest, interest)
		s.principalPaid = append(s.principalPaid, principalActual)

		bal = newBal
		if bal <= 0 {
			break
		}
	}

	return s
}

// Run produces the full /mortgage result: the overpayment scenario, the
// baseline, date labels and the savings summary.
func Run(params Params) *Result {
	termMonths := params.TermYears * 12
	fixedMonths := params.FixedYears * 12

	extras := map[int]float64{}
	for _, ep := range params.ExtraPayments {
		idx := ep.Year*12 + ep.Month + 1
		if idx >= 1 && idx <= termMonths {
			extras[idx] += ep.Amount
		}
	}

	main := amortize(params.Principal, termMonths, fixedMonths, params.FixedRate,
		params.VariableRate, params.MonthlyOverpayment, extras, params.RecalcOnRateChange)

	baseline := amortize(params.Principal, termMonths, fixedMonths, params.FixedRate,
		params.VariableRate, 0, nil, params.RecalcOnRateChange)

	// Labels cover the longer of the two runs (usually the baseline)
	length := len(main.balances)
	if len(baseline.balances) > length {
		length = len(baseline.balances)
	}

	start := params.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	labels := make([]string, length)
	for m := 0; m < length; m++ {
		labels[m] = montecarlo.AddMonths(start, m).Format("2006-01-02")
	}

	d := params.Decimals
	result := &Result{
		Labels:          labels,
		Balance:         montecarlo.RoundSlice(pad(main.balances, length), d),
		BaselineBalance: montecarlo.RoundSlice(pad(baseline.balances, length), d),
		// monthly series get a 0 prefix to align with the label axis
		SchedulePayment: montecarlo.RoundSlice(prefixZero(pad(main.scheduledPmt, length-1)), d),
		TotalPayment:    montecarlo.RoundSlice(prefixZero(pad(main.totalPmt, length-1)), d),
		Interest:        montecarlo.RoundSlice(prefixZero(pad(main.interest, length-1)), d),
		Principal:       montecarlo.RoundSlice(prefixZero(pad(main.principalPaid, length-1)), d),
	}

	payoff := payoffMonth(main.balances)
	basePayoff := payoffMonth(baseline.balances)

	totalInterest := sum(main.interest)
	baselineInterest := sum(baseline.interest)
	interestSaved := baselineInterest - totalInterest
	if interestSaved < 0 {
		interestSaved = 0
	}
	monthsSaved := basePayoff - payoff
	if monthsSaved < 0 {
		monthsSaved = 0
	}

	endingBalance := main.balances[len(main.balances)-1]

	result.Summary = Summary{
		PayoffMonths:          payoff,
		PayoffDate:            montecarlo.AddMonths(start, payoff).Format("2006-01-02"),
		BaselinePayoffMonths:  basePayoff,
		BaselinePayoffDate:    montecarlo.AddMonths(start, basePayoff).Format("2006-01-02"),
		TotalInterest:         montecarlo.RoundTo(totalInterest, d),
		BaselineTotalInterest: montecarlo.RoundTo(baselineInterest, d),
		InterestSaved:         montecarlo.RoundTo(interestSaved, d),
		MonthsSaved:           monthsSaved,
		EndingBalance:         montecarlo.RoundTo(endingBalance, d),
		IsBalloon:             endingBalance > 0,
		FixedMonths:           fixedMonths,
	}

	return result
}

// payoffMonth finds the first index where the balance reaches zero, or the
// final index for a loan that never pays off in-term
func payoffMonth(balances []float64) int {
	for i, v := range balances {
		if v <= 0 {
			return i
		}
	}
	return len(balances) - 1
}

// pad extends a series to length by repeating its last value (charting
// alignment), or truncates a longer one
func pad(series []float64, length int) []float64 {
	if length < 0 {
		length = 0
	}
	if len(series) >= length {
		return series[:length]
	}
	out := make([]float64, length)
	copy(out, series)
	var last float64
	if len(series) > 0 {
		last = series[len(series)-1]
	}
	for i := len(series); i < length; i++ {
		out[i] = last
	}
	return out
}

func prefixZero(series []float64) []float64 {
	return append([]float64{0}, series...)
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
