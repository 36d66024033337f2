package recurrence

import (
	"fmt"
	"strings"

	"github.com/tamsinv/libalmanac/calendar"
)

// calendarNamer is optionally implemented by providers that can name
// their weekdays, months and seasons (Definition does). Descriptions fall
// back to numeric indexes without it.
type calendarNamer interface {
	WeekdayName(i int) string
	MonthName(i int) string
	SeasonName(i int) string
}

// Describe renders a human-readable summary of a rule, e.g. "Every 2
// weeks", "2nd Tuesday of every month" or "3 days after \"Harvest
// Festival\"", suffixed with the occurrence cap and horizon when set.
func (e *Engine) Describe(rule Rule) string {
	var b strings.Builder
	b.WriteString(e.describeCore(rule))
	if limit, ok := rule.MaxOccurrences.Get(); ok {
		fmt.Fprintf(&b, ", up to %d times", limit)
	}
	if until, ok := rule.Until.Get(); ok {
		fmt.Fprintf(&b, ", until %d-%02d-%02d", until.Year, until.Month+1, until.Day)
	}
	return b.String()
}

func (e *Engine) describeCore(rule Rule) string {
	if link, ok := rule.Linked.Get(); ok {
		return e.describeLinked(link)
	}

	interval := rule.interval()
	switch rep := rule.Repeat.(type) {
	case nil, Never:
		return "Does not repeat"
	case Daily:
		return every(interval, "day", "days")
	case Weekly:
		return every(interval, "week", "weeks")
	case Monthly:
		return every(interval, "month", "months")
	case Yearly:
		return every(interval, "year", "years")
	case WeekOfMonth:
		return e.describeWeekOfMonth(rule, rep, interval)
	case Seasonal:
		return e.describeSeasonal(rep)
	case ByRange:
		return e.describeRange(rep)
	case Random:
		return describeRandom(rep)
	case Moon:
		return e.describeMoon(rule)
	default:
		return "Does not repeat"
	}
}

func every(interval int, singular, plural string) string {
	if interval == 1 {
		return "Every " + singular
	}
	return fmt.Sprintf("Every %d %s", interval, plural)
}

func (e *Engine) describeLinked(link LinkedEvent) string {
	name := "linked event"
	if namer, ok := e.resolver.(Namer); ok {
		if n, found := namer.RuleName(link.ID); found {
			name = n
		}
	}
	switch {
	case link.Offset > 0:
		return fmt.Sprintf("%d %s after %q", link.Offset, pluralDays(link.Offset), name)
	case link.Offset < 0:
		return fmt.Sprintf("%d %s before %q", -link.Offset, pluralDays(-link.Offset), name)
	default:
		return fmt.Sprintf("Same day as %q", name)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func (e *Engine) describeWeekOfMonth(rule Rule, rep WeekOfMonth, interval int) string {
	weekday := rep.Weekday.OrElse(calendar.DayOfWeek(e.cal, rule.Start))
	name := fmt.Sprintf("weekday %d", weekday)
	if namer, ok := e.cal.(calendarNamer); ok {
		if n := namer.WeekdayName(weekday); n != "" {
			name = n
		}
	}
	var ord string
	switch {
	case rep.WeekNumber == -1:
		ord = "Last"
	case rep.WeekNumber < -1:
		ord = ordinal(-rep.WeekNumber) + "-to-last"
	default:
		ord = ordinal(rep.WeekNumber)
	}
	if interval == 1 {
		return fmt.Sprintf("%s %s of every month", ord, name)
	}
	return fmt.Sprintf("%s %s of every %d months", ord, name, interval)
}

func (e *Engine) describeSeasonal(rep Seasonal) string {
	name := fmt.Sprintf("season %d", rep.Season)
	if namer, ok := e.cal.(calendarNamer); ok {
		if n := namer.SeasonName(rep.Season); n != "" {
			name = n
		}
	}
	switch rep.Trigger {
	case TriggerFirstDay:
		return "First day of " + name
	case TriggerLastDay:
		return "Last day of " + name
	default:
		return "Every day during " + name
	}
}

func (e *Engine) describeRange(rep ByRange) string {
	day := describeBit(rep.Day, "Every day", "Day", "Days")
	month := "of every month"
	if !rep.Month.IsWildcard() {
		if exact, ok := rep.Month.Exact.Get(); ok {
			name := fmt.Sprintf("month %d", exact+1)
			if namer, ok := e.cal.(calendarNamer); ok {
				if n := namer.MonthName(exact); n != "" {
					name = n
				}
			}
			month = "of " + name
		} else {
			month = "of " + strings.ToLower(describeBit(rep.Month, "every month", "month", "months"))
		}
	}
	year := "every year"
	if !rep.Year.IsWildcard() {
		year = "in " + strings.ToLower(describeBit(rep.Year, "every year", "year", "years"))
	}
	return fmt.Sprintf("%s %s %s", day, month, year)
}

func describeBit(b RangeBit, wildcard, singular, plural string) string {
	if exact, ok := b.Exact.Get(); ok {
		return fmt.Sprintf("%s %d", singular, exact)
	}
	min, hasMin := b.Min.Get()
	max, hasMax := b.Max.Get()
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s %d-%d", plural, min, max)
	case hasMin:
		return fmt.Sprintf("%s %d and up", plural, min)
	case hasMax:
		return fmt.Sprintf("%s up to %d", plural, max)
	default:
		return wildcard
	}
}

func describeRandom(rep Random) string {
	unit := "day"
	switch rep.CheckInterval {
	case CheckWeekly:
		unit = "week"
	case CheckMonthly:
		unit = "month"
	}
	return fmt.Sprintf("%g%% chance each %s", rep.Probability, unit)
}

func (e *Engine) describeMoon(rule Rule) string {
	if len(rule.MoonConditions) == 0 {
		return "On moon phases"
	}
	moons := e.cal.Moons()
	var parts []string
	for _, mc := range rule.MoonConditions {
		if mc.Moon < 0 || mc.Moon >= len(moons) {
			continue
		}
		moon := moons[mc.Moon]
		phase := phaseNameAt(moon, mc.PhaseStart)
		if phase == "" {
			parts = append(parts, fmt.Sprintf("%s phases %.2f-%.2f", moon.Name, mc.PhaseStart, mc.PhaseEnd))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", moon.Name, phase))
		}
	}
	if len(parts) == 0 {
		return "On moon phases"
	}
	return "When " + strings.Join(parts, " or ")
}

func phaseNameAt(moon calendar.Moon, pos float64) string {
	name := ""
	for _, phase := range moon.Phases {
		if pos >= phase.Start {
			name = phase.Name
		}
	}
	return name
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
