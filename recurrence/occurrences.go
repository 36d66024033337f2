package recurrence

import (
	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// OccurrencesInRange enumerates a rule's occurrences within [from, to] in
// ascending order. maxOccurrences below 1 means the engine default. Every
// path is additionally bounded by the engine's iteration ceiling, so a
// misconfigured rule returns what it has instead of hanging.
func (e *Engine) OccurrencesInRange(rule Rule, from, to calendar.Date, maxOccurrences int) []calendar.Date {
	if e.cal == nil || calendar.CompareDays(from, to) > 0 {
		return nil
	}
	if maxOccurrences < 1 {
		maxOccurrences = e.config.DefaultMaxOccurrences
	}

	if link, ok := rule.Linked.Get(); ok {
		return e.linkedOccurrences(rule, link, from, to, maxOccurrences)
	}

	switch rep := rule.Repeat.(type) {
	case nil, Never:
		if e.inRange(rule.Start, from, to) && e.IsMatch(rule, rule.Start.DayOnly()) {
			return []calendar.Date{rule.Start}
		}
		return nil
	case Random:
		if rule.RandomCache != nil {
			return e.cachedRandomOccurrences(rule, from, to, maxOccurrences)
		}
		return e.scanDays(rule, from, to, maxOccurrences)
	case Moon, ByRange, Seasonal:
		return e.scanDays(rule, from, to, maxOccurrences)
	case WeekOfMonth:
		return e.weekOfMonthOccurrences(rule, rep, from, to, maxOccurrences)
	case Daily:
		return e.stepDayOccurrences(rule, rule.interval(), from, to, maxOccurrences)
	case Weekly:
		weekLen := e.cal.WeekLength()
		if weekLen < 1 {
			return nil
		}
		return e.stepDayOccurrences(rule, rule.interval()*weekLen, from, to, maxOccurrences)
	case Monthly:
		return e.stepUnitOccurrences(rule, calendar.AddMonths, calendar.MonthsBetween, from, to, maxOccurrences)
	case Yearly:
		return e.stepUnitOccurrences(rule, calendar.AddYears, yearsBetween, from, to, maxOccurrences)
	default:
		return nil
	}
}

func (e *Engine) inRange(d, from, to calendar.Date) bool {
	return calendar.CompareDays(d, from) >= 0 && calendar.CompareDays(d, to) <= 0
}

// scanDays walks the range day by day re-testing IsMatch. Used by the
// types whose occurrences have no cheaper stride.
func (e *Engine) scanDays(rule Rule, from, to calendar.Date, max int) []calendar.Date {
	cur := from.DayOnly()
	if calendar.CompareDays(rule.Start, cur) > 0 {
		cur = rule.Start.DayOnly()
	}
	var out []calendar.Date
	for iter := 0; iter < e.config.MaxIterations; iter++ {
		if calendar.CompareDays(cur, to) > 0 {
			return out
		}
		if e.IsMatch(rule, cur) {
			out = append(out, withTimeOf(cur, rule.Start))
			if len(out) >= max {
				return out
			}
		}
		cur = calendar.AddDays(e.cal, cur, 1)
	}
	e.logger.Warn("day scan hit iteration cap", "cap", e.config.MaxIterations)
	return out
}

// stepDayOccurrences advances by a fixed day stride from the rule start
// (daily and weekly rules).
func (e *Engine) stepDayOccurrences(rule Rule, stride int, from, to calendar.Date, max int) []calendar.Date {
	if stride < 1 {
		stride = 1
	}
	k := ceilDiv(calendar.DaysBetween(e.cal, rule.Start, from), stride)
	var out []calendar.Date
	for iter := 0; iter < e.config.MaxIterations; iter++ {
		cur := calendar.AddDays(e.cal, rule.Start, (k+iter)*stride)
		if calendar.CompareDays(cur, to) > 0 {
			return out
		}
		if e.IsMatch(rule, cur.DayOnly()) {
			out = append(out, cur)
			if len(out) >= max {
				return out
			}
		}
	}
	e.logger.Warn("stride scan hit iteration cap", "cap", e.config.MaxIterations)
	return out
}

// stepUnitOccurrences advances month-wise or year-wise. Each candidate is
// re-derived from the rule start so day clamping never compounds (a rule
// anchored on the 31st keeps reaching for the 31st).
func (e *Engine) stepUnitOccurrences(
	rule Rule,
	add func(calendar.Provider, calendar.Date, int) calendar.Date,
	between func(calendar.Provider, calendar.Date, calendar.Date) int,
	from, to calendar.Date,
	max int,
) []calendar.Date {
	interval := rule.interval()
	k := ceilDiv(between(e.cal, rule.Start, from), interval)
	if k < 0 {
		k = 0
	}
	var out []calendar.Date
	for iter := 0; iter < e.config.MaxIterations; iter++ {
		cur := add(e.cal, rule.Start, (k+iter)*interval)
		if calendar.CompareDays(cur, to) > 0 {
			return out
		}
		if calendar.CompareDays(cur, from) >= 0 && e.IsMatch(rule, cur.DayOnly()) {
			out = append(out, cur)
			if len(out) >= max {
				return out
			}
		}
	}
	e.logger.Warn("stride scan hit iteration cap", "cap", e.config.MaxIterations)
	return out
}

// weekOfMonthOccurrences steps month by month, computing the exact
// ordinal weekday per month instead of scanning days.
func (e *Engine) weekOfMonthOccurrences(rule Rule, rep WeekOfMonth, from, to calendar.Date, max int) []calendar.Date {
	interval := rule.interval()
	monthStart := calendar.Date{Year: rule.Start.Year, Month: rule.Start.Month, Day: 1}
	k := ceilDiv(calendar.MonthsBetween(e.cal, monthStart, calendar.Date{Year: from.Year, Month: from.Month, Day: 1}), interval)
	if k < 0 {
		k = 0
	}
	var out []calendar.Date
	for iter := 0; iter < e.config.MaxIterations; iter++ {
		base := calendar.AddMonths(e.cal, monthStart, (k+iter)*interval)
		if calendar.CompareDays(base, to) > 0 {
			return out
		}
		day, ok := e.ordinalWeekdayDay(rule, rep, base.Month, base.Year)
		if !ok {
			continue
		}
		cur := calendar.Date{Year: base.Year, Month: base.Month, Day: day}
		if e.inRange(cur, from, to) && e.IsMatch(rule, cur) {
			out = append(out, withTimeOf(cur, rule.Start))
			if len(out) >= max {
				return out
			}
		}
	}
	e.logger.Warn("month scan hit iteration cap", "cap", e.config.MaxIterations)
	return out
}

// ordinalWeekdayDay returns the day of month holding the rule's ordinal
// weekday ("2nd Tuesday"), or ok=false when the month has no such day.
func (e *Engine) ordinalWeekdayDay(rule Rule, rep WeekOfMonth, month, year int) (int, bool) {
	weekLen := e.cal.WeekLength()
	if weekLen < 1 || rep.WeekNumber == 0 {
		return 0, false
	}
	weekday := rep.Weekday.OrElse(calendar.DayOfWeek(e.cal, rule.Start))
	daysInMonth := e.cal.DaysInMonth(month, year)

	if rep.WeekNumber > 0 {
		first := -1
		for day := 1; day <= weekLen && day <= daysInMonth; day++ {
			if calendar.DayOfWeek(e.cal, calendar.Date{Year: year, Month: month, Day: day}) == weekday {
				first = day
				break
			}
		}
		if first < 0 {
			return 0, false
		}
		day := first + (rep.WeekNumber-1)*weekLen
		if day > daysInMonth {
			return 0, false
		}
		return day, true
	}

	last := -1
	for day := daysInMonth; day > daysInMonth-weekLen && day >= 1; day-- {
		if calendar.DayOfWeek(e.cal, calendar.Date{Year: year, Month: month, Day: day}) == weekday {
			last = day
			break
		}
	}
	if last < 0 {
		return 0, false
	}
	day := last + (rep.WeekNumber+1)*weekLen
	if day < 1 {
		return 0, false
	}
	return day, true
}

// linkedOccurrences enumerates the linked rule over an offset-shifted
// window and re-shifts the results into this rule's timeline.
func (e *Engine) linkedOccurrences(rule Rule, link LinkedEvent, from, to calendar.Date, max int) []calendar.Date {
	if e.resolver == nil {
		return nil
	}
	base, ok := e.resolver.ResolveRule(link.ID)
	if !ok {
		e.logger.Debug("linked rule not resolvable", "id", link.ID)
		return nil
	}
	base.Linked = mo.None[LinkedEvent]()
	baseFrom := calendar.AddDays(e.cal, from.DayOnly(), -link.Offset)
	baseTo := calendar.AddDays(e.cal, to.DayOnly(), -link.Offset)
	var out []calendar.Date
	for _, occ := range e.OccurrencesInRange(base, baseFrom, baseTo, max) {
		shifted := calendar.AddDays(e.cal, occ, link.Offset)
		if !e.inRange(shifted, from, to) || !e.withinBounds(rule, shifted) {
			continue
		}
		out = append(out, shifted)
		if len(out) >= max {
			break
		}
	}
	return out
}

// cachedRandomOccurrences filters a precomputed chronological cache to the
// range. The lifetime cap applies to the cache prefix before the range
// filter, so capped rules stop matching past their Nth cached occurrence.
func (e *Engine) cachedRandomOccurrences(rule Rule, from, to calendar.Date, max int) []calendar.Date {
	occ := rule.RandomCache.Occurrences
	if limit, ok := rule.MaxOccurrences.Get(); ok && len(occ) > limit {
		occ = occ[:limit]
	}
	var out []calendar.Date
	for _, d := range occ {
		if !e.inRange(d, from, to) {
			continue
		}
		out = append(out, d)
		if len(out) >= max {
			break
		}
	}
	return out
}

// CountOccurrences returns which occurrence number (1-based) the last
// match on or before the given date is. The four plain frequencies and
// weekOfMonth are counted arithmetically; everything else enumerates.
func (e *Engine) CountOccurrences(rule Rule, through calendar.Date) int {
	if e.cal == nil || calendar.CompareDays(through, rule.Start) < 0 {
		return 0
	}
	if rule.Linked.IsPresent() {
		return e.countByEnumeration(rule, through)
	}
	interval := rule.interval()
	switch rep := rule.Repeat.(type) {
	case Daily:
		return calendar.DaysBetween(e.cal, rule.Start, through)/interval + 1
	case Weekly:
		weekLen := e.cal.WeekLength()
		if weekLen < 1 {
			return 0
		}
		weeks := calendar.DaysBetween(e.cal, rule.Start, through) / weekLen
		return weeks/interval + 1
	case Monthly:
		months := calendar.MonthsBetween(e.cal, rule.Start, through)
		n := months / interval
		if months%interval == 0 &&
			through.Day < min(rule.Start.Day, e.cal.DaysInMonth(through.Month, through.Year)) {
			n--
		}
		if n < 0 {
			return 0
		}
		return n + 1
	case Yearly:
		years := through.Year - rule.Start.Year
		n := years / interval
		if years%interval == 0 {
			if through.Month < rule.Start.Month ||
				(through.Month == rule.Start.Month &&
					through.Day < min(rule.Start.Day, e.cal.DaysInMonth(through.Month, through.Year))) {
				n--
			}
		}
		if n < 0 {
			return 0
		}
		return n + 1
	case WeekOfMonth:
		months := calendar.MonthsBetween(e.cal, rule.Start, through)
		n := months / interval
		if months%interval == 0 {
			if day, ok := e.ordinalWeekdayDay(rule, rep, through.Month, through.Year); !ok || through.Day < day {
				n--
			}
		}
		if n < 0 {
			return 0
		}
		return n + 1
	case Random:
		if rule.RandomCache != nil {
			count := 0
			for _, d := range rule.RandomCache.Occurrences {
				if calendar.CompareDays(d, through) <= 0 {
					count++
				}
			}
			return count
		}
		return e.countByEnumeration(rule, through)
	default:
		return e.countByEnumeration(rule, through)
	}
}

func (e *Engine) countByEnumeration(rule Rule, through calendar.Date) int {
	uncapped := rule
	uncapped.MaxOccurrences = mo.None[int]()
	return len(e.OccurrencesInRange(uncapped, rule.Start, through, e.config.MaxIterations))
}

// withTimeOf keeps the enumerated day but carries the rule start's time of
// day, so every enumeration strategy reports occurrences the same way.
func withTimeOf(d, start calendar.Date) calendar.Date {
	d.Hour, d.Minute = start.Hour, start.Minute
	return d
}

// yearsBetween mirrors calendar.MonthsBetween for the yearly stride.
func yearsBetween(_ calendar.Provider, start, end calendar.Date) int {
	return end.Year - start.Year
}

// ceilDiv is integer division rounding up, floored at zero.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
