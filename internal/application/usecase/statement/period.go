// Package statement contains the credit-card statement (fatura) engine:
// cycle computation, aggregation, status classification, historical
// scanning and installment anticipation.
package statement

import "time"

// CyclePeriod holds the date boundaries of one billing cycle.
// CycleEnd is the closing date; the charge window is [CycleStart, CycleEnd].
type CyclePeriod struct {
	CycleStart time.Time
	CycleEnd   time.Time
	DueDate    time.Time
}

// ComputeCyclePeriod maps (year, month, closingDay, dueDay) to the cycle
// boundaries of that month's statement:
//
//   - CycleEnd is the last instant of closingDay in (year, month).
//   - CycleStart is the first instant of the day after the previous month's
//     closing day.
//   - DueDate falls in (year, month) when dueDay > closingDay, otherwise in
//     the following month.
//
// Day values beyond the month's actual length clamp to the month's last day,
// so a card closing on the 31st closes on Feb 29 in a leap-year February.
// Pure and deterministic; day-range validation belongs to the caller.
func ComputeCyclePeriod(year int, month time.Month, closingDay, dueDay int) CyclePeriod {
	closing := dayInMonth(year, month, closingDay)
	cycleEnd := endOfDay(closing)

	// Step months from the first of the month: AddDate on a clamped closing
	// date normalizes day overflow (Feb 31 becomes Mar 2) and would push the
	// neighbor month one further over short months.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	prev := firstOfMonth.AddDate(0, -1, 0)
	prevClosing := dayInMonth(prev.Year(), prev.Month(), closingDay)
	cycleStart := startOfDay(prevClosing.AddDate(0, 0, 1))

	var due time.Time
	if dueDay > closingDay {
		due = dayInMonth(year, month, dueDay)
	} else {
		next := firstOfMonth.AddDate(0, 1, 0)
		due = dayInMonth(next.Year(), next.Month(), dueDay)
	}

	return CyclePeriod{
		CycleStart: cycleStart,
		CycleEnd:   cycleEnd,
		DueDate:    endOfDay(due),
	}
}

// dayInMonth returns day-of-month in (year, month), clamped to the month's
// last day.
func dayInMonth(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
