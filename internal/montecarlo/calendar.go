package montecarlo

import (
	"math"
	"time"
)

// dateLayout is the wire format for period labels
const dateLayout = "2006-01-02"

// AddMonths advances a date by whole months, clamping the day to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func AddMonths(d time.Time, months int) time.Time {
	y := d.Year() + (int(d.Month())-1+months)/12
	m := time.Month((int(d.Month())-1+months)%12 + 1)

	day := d.Day()
	if last := daysInMonth(y, m); day > last {
		day = last
	}

	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodLabels produces steps+1 ISO YYYY-MM-DD labels starting at start,
// each step advancing one period's worth of months (12/frequency), with
// cumulative rounding when frequency does not divide 12.
func PeriodLabels(start time.Time, steps, frequency int) []string {
	labels := make([]string, steps+1)
	for t := 0; t <= steps; t++ {
		labels[t] = AddMonths(start, monthsForStep(t, frequency)).Format(dateLayout)
	}
	return labels
}

func monthsForStep(step, frequency int) int {
	if frequency <= 0 {
		return step
	}
	if 12%frequency == 0 {
		return step * (12 / frequency)
	}
	return int(math.Round(float64(step) * 12.0 / float64(frequency)))
}
