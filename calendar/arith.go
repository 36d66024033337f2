package calendar

// Date arithmetic over an arbitrary Provider. All functions are pure; a nil
// provider makes them no-ops (the input comes back unchanged, queries report
// zero) so callers never have to guard against a missing calendar.

// DayOfYear returns the 1-indexed day of the year for a date.
func DayOfYear(p Provider, d Date) int {
	if p == nil {
		return d.Day
	}
	doy := d.Day
	for m := 0; m < d.Month && m < p.MonthCount(); m++ {
		doy += p.DaysInMonth(m, d.Year)
	}
	return doy
}

// DaysBetween returns the whole-day distance from start to end; negative
// when end precedes start.
func DaysBetween(p Provider, start, end Date) int {
	if p == nil {
		return 0
	}
	delta := p.ComponentsToLinearTime(end.DayOnly()) - p.ComponentsToLinearTime(start.DayOnly())
	return int(delta / SecondsPerDay)
}

// MonthsBetween returns the month-index distance from start to end.
func MonthsBetween(p Provider, start, end Date) int {
	if p == nil {
		return 0
	}
	return (end.Year-start.Year)*p.MonthCount() + (end.Month - start.Month)
}

// DayOfWeek returns the 0-indexed weekday of a date, or -1 for days that
// sit outside the week cycle (intercalary months).
//
// Months pinned to a fixed starting weekday are positioned directly from
// that offset; everything else is derived from the absolute day count since
// the epoch, discounting every non-week-counting day accrued before the
// date.
func DayOfWeek(p Provider, d Date) int {
	if p == nil {
		return 0
	}
	weekLen := p.WeekLength()
	if weekLen < 1 {
		return 0
	}
	if p.IsIntercalary(d.Month) {
		return -1
	}
	if fixed, ok := p.MonthFixedWeekday(d.Month).Get(); ok {
		return mod(fixed+d.Day-1, weekLen)
	}
	absDays := int(p.ComponentsToLinearTime(d.DayOnly()) / SecondsPerDay)
	nonCounting := p.NonCountingDaysBeforeYear(d.Year) + p.NonCountingDaysBefore(d)
	return mod(absDays-nonCounting+p.FirstWeekday(), weekLen)
}

// AddDays advances a date by n days (backward for negative n), preserving
// the time of day.
func AddDays(p Provider, d Date, n int) Date {
	if p == nil || n == 0 {
		return d
	}
	t := p.ComponentsToLinearTime(d.DayOnly()) + int64(n)*SecondsPerDay
	out := p.LinearTimeToComponents(t)
	out.Hour, out.Minute = d.Hour, d.Minute
	return out
}

// AddMonths advances a date by n months, carrying across year boundaries
// and clamping the day into the destination month.
func AddMonths(p Provider, d Date, n int) Date {
	if p == nil || n == 0 {
		return d
	}
	monthCount := p.MonthCount()
	if monthCount < 1 {
		return d
	}
	total := d.Month + n
	d.Year += floorDiv(total, monthCount)
	d.Month = mod(total, monthCount)
	return clampDay(p, d)
}

// AddYears advances a date by n years, clamping the day (a leap day rolls
// back to the last day of the shorter month).
func AddYears(p Provider, d Date, n int) Date {
	if p == nil || n == 0 {
		return d
	}
	d.Year += n
	return clampDay(p, d)
}

func clampDay(p Provider, d Date) Date {
	if max := p.DaysInMonth(d.Month, d.Year); d.Day > max {
		d.Day = max
	}
	if d.Day < 1 {
		d.Day = 1
	}
	return d
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
