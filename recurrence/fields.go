package recurrence

import (
	"math"

	"github.com/tamsinv/libalmanac/calendar"
)

// Field names a derived date fact the condition evaluator can resolve.
type Field string

const (
	FieldYear                 Field = "year"
	FieldMonth                Field = "month"
	FieldDay                  Field = "day"
	FieldDayOfYear            Field = "dayOfYear"
	FieldDaysRemainingInMonth Field = "daysRemainingInMonth"
	FieldWeekday              Field = "weekday" // 1-indexed
	FieldWeekOfMonth          Field = "weekOfMonth"
	FieldWeekOfYear           Field = "weekOfYear"
	FieldWeekCount            Field = "weekCount" // weeks since the epoch
	FieldSeason               Field = "season"
	FieldSeasonPercent        Field = "seasonPercent" // 0-100
	FieldSeasonDay            Field = "seasonDay"
	FieldMoonPhase            Field = "moonPhase" // cycle position in [0,1)
	FieldMoonPhaseIndex       Field = "moonPhaseIndex"
	FieldMoonPhaseCountMonth  Field = "moonPhaseCountMonth"
	FieldMoonPhaseCountYear   Field = "moonPhaseCountYear"
	FieldEra                  Field = "era"
	FieldEraYear              Field = "eraYear"
	FieldCycle                Field = "cycle"
	FieldIntercalary          Field = "intercalary"
	FieldIsSpringEquinox      Field = "isSpringEquinox"
	FieldIsSummerSolstice     Field = "isSummerSolstice"
	FieldIsAutumnEquinox      Field = "isAutumnEquinox"
	FieldIsWinterSolstice     Field = "isWinterSolstice"
)

// FieldValue resolves a field for a date. ok is false when the field is
// unknown or the calendar lacks the feature it refers to (no such moon,
// season outside every range, and so on).
func FieldValue(p calendar.Provider, f Field, index int, d calendar.Date) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch f {
	case FieldYear:
		return float64(d.Year), true
	case FieldMonth:
		return float64(d.Month), true
	case FieldDay:
		return float64(d.Day), true
	case FieldDayOfYear:
		return float64(calendar.DayOfYear(p, d)), true
	case FieldDaysRemainingInMonth:
		return float64(p.DaysInMonth(d.Month, d.Year) - d.Day), true
	case FieldWeekday:
		wd := calendar.DayOfWeek(p, d)
		if wd < 0 {
			return 0, false
		}
		return float64(wd + 1), true
	case FieldWeekOfMonth:
		if p.WeekLength() < 1 {
			return 0, false
		}
		return float64((d.Day-1)/p.WeekLength() + 1), true
	case FieldWeekOfYear:
		if p.WeekLength() < 1 {
			return 0, false
		}
		return float64((calendar.DayOfYear(p, d)-1)/p.WeekLength() + 1), true
	case FieldWeekCount:
		if p.WeekLength() < 1 {
			return 0, false
		}
		absDays := int(p.ComponentsToLinearTime(d.DayOnly()) / calendar.SecondsPerDay)
		return float64(floorDiv(absDays, p.WeekLength()) + 1), true
	case FieldSeason:
		idx, ok := seasonIndexOf(p, d)
		return float64(idx), ok
	case FieldSeasonPercent:
		idx, ok := seasonIndexOf(p, d)
		if !ok {
			return 0, false
		}
		into, length := seasonPosition(p, p.Seasons()[idx], d)
		if length <= 1 {
			return 0, true
		}
		return float64(into) / float64(length-1) * 100, true
	case FieldSeasonDay:
		idx, ok := seasonIndexOf(p, d)
		if !ok {
			return 0, false
		}
		into, _ := seasonPosition(p, p.Seasons()[idx], d)
		return float64(into + 1), true
	case FieldMoonPhase:
		pos, ok := moonPhasePosition(p, index, d)
		return pos, ok
	case FieldMoonPhaseIndex:
		bucket, ok := moonPhaseBucket(p, index, d)
		return float64(bucket), ok
	case FieldMoonPhaseCountMonth:
		return moonPhaseCount(p, index, d, calendar.Date{Year: d.Year, Month: d.Month, Day: 1})
	case FieldMoonPhaseCountYear:
		return moonPhaseCount(p, index, d, calendar.Date{Year: d.Year, Month: 0, Day: 1})
	case FieldEra:
		idx, ok := eraIndexOf(p, d.Year)
		return float64(idx), ok
	case FieldEraYear:
		idx, ok := eraIndexOf(p, d.Year)
		if !ok {
			return 0, false
		}
		return float64(d.Year - p.Eras()[idx].Start + 1), true
	case FieldCycle:
		v, ok := cycleValue(p, index, d)
		return float64(v), ok
	case FieldIntercalary:
		if p.IsIntercalary(d.Month) {
			return 1, true
		}
		return 0, true
	case FieldIsSpringEquinox:
		return seasonMidpointFlag(p, 0, d)
	case FieldIsSummerSolstice:
		return seasonMidpointFlag(p, 1, d)
	case FieldIsAutumnEquinox:
		return seasonMidpointFlag(p, 2, d)
	case FieldIsWinterSolstice:
		return seasonMidpointFlag(p, 3, d)
	default:
		return 0, false
	}
}

// seasonContains is wrap-aware range containment for a day of the year.
func seasonContains(s calendar.Season, doy int) bool {
	if s.Start <= s.End {
		return doy >= s.Start && doy <= s.End
	}
	return doy >= s.Start || doy <= s.End
}

// seasonIndexOf returns the first season containing the date's day of
// year.
func seasonIndexOf(p calendar.Provider, d calendar.Date) (int, bool) {
	doy := calendar.DayOfYear(p, d)
	for i, s := range p.Seasons() {
		if seasonContains(s, doy) {
			return i, true
		}
	}
	return 0, false
}

// seasonPosition returns the 0-indexed day within the season and the
// season's total length, unwrapping ranges that cross the year boundary.
func seasonPosition(p calendar.Provider, s calendar.Season, d calendar.Date) (into, length int) {
	doy := calendar.DayOfYear(p, d)
	diy := p.DaysInYear(d.Year)
	if s.Start <= s.End {
		return doy - s.Start, s.End - s.Start + 1
	}
	length = diy - s.Start + 1 + s.End
	if doy >= s.Start {
		into = doy - s.Start
	} else {
		into = diy - s.Start + doy
	}
	return into, length
}

// seasonMidpointFlag reports 1 when the date is the midpoint day of the
// season at the given index; equinoxes and solstices are defined as the
// midpoints of seasons 0 through 3.
func seasonMidpointFlag(p calendar.Provider, seasonIdx int, d calendar.Date) (float64, bool) {
	seasons := p.Seasons()
	if seasonIdx >= len(seasons) {
		return 0, false
	}
	s := seasons[seasonIdx]
	doy := calendar.DayOfYear(p, d)
	diy := p.DaysInYear(d.Year)
	var length int
	if s.Start <= s.End {
		length = s.End - s.Start + 1
	} else {
		length = diy - s.Start + 1 + s.End
	}
	mid := (s.Start-1+length/2)%diy + 1
	if doy == mid {
		return 1, true
	}
	return 0, true
}

// moonPhasePosition returns the cycle position in [0,1) of the indexed
// moon on a date.
func moonPhasePosition(p calendar.Provider, index int, d calendar.Date) (float64, bool) {
	moons := p.Moons()
	if index < 0 || index >= len(moons) {
		return 0, false
	}
	moon := moons[index]
	if moon.CycleLength <= 0 {
		return 0, false
	}
	daysSinceRef := calendar.DaysBetween(p, moon.Reference, d)
	pos := math.Mod(float64(daysSinceRef)+moon.CycleAdjust, moon.CycleLength)
	if pos < 0 {
		pos += moon.CycleLength
	}
	return pos / moon.CycleLength, true
}

// moonPhaseBucket returns the 0-indexed phase the indexed moon is in on a
// date.
func moonPhaseBucket(p calendar.Provider, index int, d calendar.Date) (int, bool) {
	pos, ok := moonPhasePosition(p, index, d)
	if !ok {
		return 0, false
	}
	phases := p.Moons()[index].Phases
	if len(phases) == 0 {
		return 0, false
	}
	bucket := 0
	for i, phase := range phases {
		if pos >= phase.Start {
			bucket = i
		}
	}
	return bucket, true
}

// moonPhaseCount returns which occurrence of the date's phase the date is,
// counted day by day from the given origin.
func moonPhaseCount(p calendar.Provider, index int, d, origin calendar.Date) (float64, bool) {
	target, ok := moonPhaseBucket(p, index, d)
	if !ok {
		return 0, false
	}
	count := 0
	prev := -1
	for cur := origin; calendar.CompareDays(cur, d) <= 0; cur = calendar.AddDays(p, cur, 1) {
		bucket, ok := moonPhaseBucket(p, index, cur)
		if ok && bucket == target && bucket != prev {
			count++
		}
		if ok {
			prev = bucket
		}
	}
	return float64(count), true
}

// eraIndexOf returns the most recent era containing a year.
func eraIndexOf(p calendar.Provider, year int) (int, bool) {
	eras := p.Eras()
	for i := len(eras) - 1; i >= 0; i-- {
		e := eras[i]
		if year < e.Start {
			continue
		}
		if end, ok := e.End.Get(); ok && year > end {
			continue
		}
		return i, true
	}
	return 0, false
}

// cycleValue returns the indexed cycle's value for a date.
func cycleValue(p calendar.Provider, index int, d calendar.Date) (int, bool) {
	cycles := p.Cycles()
	if index < 0 || index >= len(cycles) {
		return 0, false
	}
	cyc := cycles[index]
	if cyc.Length < 1 {
		return 0, false
	}
	var basis int
	switch cyc.BasedOn {
	case calendar.CycleByEraYear:
		idx, ok := eraIndexOf(p, d.Year)
		if !ok {
			return 0, false
		}
		basis = d.Year - p.Eras()[idx].Start + 1
	case calendar.CycleByMonth:
		basis = d.Month
	case calendar.CycleByDay:
		basis = d.Day
	case calendar.CycleByDayOfYear:
		basis = calendar.DayOfYear(p, d)
	case calendar.CycleByAbsoluteDay:
		basis = int(p.ComponentsToLinearTime(d.DayOnly()) / calendar.SecondsPerDay)
	default: // year
		basis = d.Year
	}
	return ((basis-cyc.Offset)%cyc.Length + cyc.Length) % cyc.Length, true
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
