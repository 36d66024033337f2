package calendar

import (
	"fmt"

	"github.com/samber/mo"
)

// Month is one month of a Definition. DaysLeap, when positive, replaces
// Days in leap years. Intercalary months sit outside the week cycle.
// FixedWeekday pins the weekday the month always starts on.
type Month struct {
	Name         string
	Days         int
	DaysLeap     int
	Intercalary  bool
	FixedWeekday mo.Option[int]
}

// Definition is a declarative calendar description and the standard
// Provider implementation. The zero value is not usable; populate the
// fields (or load from YAML) and call Validate.
type Definition struct {
	Name        string
	Months      []Month
	WeekDays    []string
	FirstDay    int // weekday index of the epoch day
	Leap        LeapRule
	SeasonList  []Season
	MoonList    []Moon
	EraList     []Era
	CycleList   []Cycle
	HasYearZero bool
}

// Validate checks the structural invariants the engine relies on.
func (c *Definition) Validate() error {
	if len(c.Months) == 0 {
		return fmt.Errorf("calendar %q: no months", c.Name)
	}
	for i, m := range c.Months {
		if m.Days < 1 {
			return fmt.Errorf("calendar %q: month %d (%s) has %d days", c.Name, i, m.Name, m.Days)
		}
		if fixed, ok := m.FixedWeekday.Get(); ok && (fixed < 0 || fixed >= len(c.WeekDays)) {
			return fmt.Errorf("calendar %q: month %d (%s) fixed weekday %d out of range", c.Name, i, m.Name, fixed)
		}
	}
	if len(c.WeekDays) == 0 {
		return fmt.Errorf("calendar %q: no weekdays", c.Name)
	}
	for i, moon := range c.MoonList {
		if moon.CycleLength <= 0 {
			return fmt.Errorf("calendar %q: moon %d (%s) cycle length %g", c.Name, i, moon.Name, moon.CycleLength)
		}
		prev := -1.0
		for j, phase := range moon.Phases {
			if j == 0 && phase.Start != 0 {
				return fmt.Errorf("calendar %q: moon %s phases must start at 0", c.Name, moon.Name)
			}
			if phase.Start <= prev || phase.Start >= 1 {
				return fmt.Errorf("calendar %q: moon %s phase %d (%s) start %g out of order", c.Name, moon.Name, j, phase.Name, phase.Start)
			}
			prev = phase.Start
		}
	}
	for i, cyc := range c.CycleList {
		if cyc.Length < 1 {
			return fmt.Errorf("calendar %q: cycle %d (%s) length %d", c.Name, i, cyc.Name, cyc.Length)
		}
	}
	return nil
}

func (c *Definition) MonthCount() int { return len(c.Months) }

func (c *Definition) DaysInMonth(month, year int) int {
	if month < 0 || month >= len(c.Months) {
		return 0
	}
	m := c.Months[month]
	if m.DaysLeap > 0 && IsLeapYear(c.Leap, year, c.HasYearZero) {
		return m.DaysLeap
	}
	return m.Days
}

func (c *Definition) DaysInYear(year int) int {
	total := 0
	for m := range c.Months {
		total += c.DaysInMonth(m, year)
	}
	return total
}

func (c *Definition) WeekLength() int   { return len(c.WeekDays) }
func (c *Definition) FirstWeekday() int { return c.FirstDay }

func (c *Definition) MonthFixedWeekday(month int) mo.Option[int] {
	if month < 0 || month >= len(c.Months) {
		return mo.None[int]()
	}
	return c.Months[month].FixedWeekday
}

func (c *Definition) IsIntercalary(month int) bool {
	if month < 0 || month >= len(c.Months) {
		return false
	}
	return c.Months[month].Intercalary
}

// epochYear is the first year of the linear timeline: year 0 when the
// calendar has one, year 1 otherwise.
func (c *Definition) epochYear() int {
	if c.HasYearZero {
		return 0
	}
	return 1
}

// stepYear moves one year forward or backward, skipping the absent year 0.
func (c *Definition) stepYear(year, dir int) int {
	year += dir
	if year == 0 && !c.HasYearZero {
		year += dir
	}
	return year
}

func (c *Definition) ComponentsToLinearTime(d Date) int64 {
	days := int64(0)
	for y := c.epochYear(); y < d.Year; y = c.stepYear(y, 1) {
		days += int64(c.DaysInYear(y))
	}
	for y := c.epochYear(); y > d.Year; {
		y = c.stepYear(y, -1)
		days -= int64(c.DaysInYear(y))
	}
	days += int64(DayOfYear(c, d) - 1)
	return days*SecondsPerDay + int64(d.Hour)*3600 + int64(d.Minute)*60
}

func (c *Definition) LinearTimeToComponents(t int64) Date {
	days := t / SecondsPerDay
	rem := t - days*SecondsPerDay
	if rem < 0 {
		days--
		rem += SecondsPerDay
	}

	year := c.epochYear()
	for days < 0 {
		year = c.stepYear(year, -1)
		days += int64(c.DaysInYear(year))
	}
	for days >= int64(c.DaysInYear(year)) {
		days -= int64(c.DaysInYear(year))
		year = c.stepYear(year, 1)
	}

	month := 0
	for month < len(c.Months)-1 && days >= int64(c.DaysInMonth(month, year)) {
		days -= int64(c.DaysInMonth(month, year))
		month++
	}
	return Date{
		Year:   year,
		Month:  month,
		Day:    int(days) + 1,
		Hour:   int(rem / 3600),
		Minute: int(rem % 3600 / 60),
	}
}

func (c *Definition) NonCountingDaysBefore(d Date) int {
	total := 0
	for m := 0; m < d.Month && m < len(c.Months); m++ {
		if c.Months[m].Intercalary {
			total += c.DaysInMonth(m, d.Year)
		}
	}
	if c.IsIntercalary(d.Month) {
		total += d.Day - 1
	}
	return total
}

func (c *Definition) NonCountingDaysBeforeYear(year int) int {
	if !c.hasIntercalaryMonths() {
		return 0
	}
	total := 0
	for y := c.epochYear(); y < year; y = c.stepYear(y, 1) {
		total += c.nonCountingDaysInYear(y)
	}
	for y := c.epochYear(); y > year; {
		y = c.stepYear(y, -1)
		total -= c.nonCountingDaysInYear(y)
	}
	return total
}

func (c *Definition) hasIntercalaryMonths() bool {
	for _, m := range c.Months {
		if m.Intercalary {
			return true
		}
	}
	return false
}

func (c *Definition) nonCountingDaysInYear(year int) int {
	total := 0
	for m, month := range c.Months {
		if month.Intercalary {
			total += c.DaysInMonth(m, year)
		}
	}
	return total
}

func (c *Definition) Seasons() []Season    { return c.SeasonList }
func (c *Definition) Moons() []Moon        { return c.MoonList }
func (c *Definition) Eras() []Era          { return c.EraList }
func (c *Definition) Cycles() []Cycle      { return c.CycleList }
func (c *Definition) LeapRule() LeapRule   { return c.Leap }
func (c *Definition) YearZeroExists() bool { return c.HasYearZero }

// WeekdayName returns the name of a weekday index, or "" when out of range.
func (c *Definition) WeekdayName(i int) string {
	if i < 0 || i >= len(c.WeekDays) {
		return ""
	}
	return c.WeekDays[i]
}

// MonthName returns the name of a month index, or "" when out of range.
func (c *Definition) MonthName(i int) string {
	if i < 0 || i >= len(c.Months) {
		return ""
	}
	return c.Months[i].Name
}

// SeasonName returns the name of a season index, or "" when out of range.
func (c *Definition) SeasonName(i int) string {
	if i < 0 || i >= len(c.SeasonList) {
		return ""
	}
	return c.SeasonList[i].Name
}
