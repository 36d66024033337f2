package calendar

import "github.com/samber/mo"

// Provider exposes the shape of a calendar to the date arithmetic and
// recurrence code. Implementations must be read-only for the duration of a
// call; Definition is the standard implementation.
type Provider interface {
	// MonthCount returns the number of months in a year.
	MonthCount() int
	// DaysInMonth returns the day count of a month in a given year,
	// accounting for leap years.
	DaysInMonth(month, year int) int
	// DaysInYear returns the total day count of a year.
	DaysInYear(year int) int
	// WeekLength returns the number of named weekdays.
	WeekLength() int
	// FirstWeekday returns the weekday index of the epoch day.
	FirstWeekday() int
	// MonthFixedWeekday returns the weekday a month always starts on, if
	// the calendar pins one.
	MonthFixedWeekday(month int) mo.Option[int]
	// IsIntercalary reports whether a month sits outside the week cycle.
	IsIntercalary(month int) bool

	// ComponentsToLinearTime converts a date to seconds since the
	// calendar epoch (day 1 of month 0 of the first year).
	ComponentsToLinearTime(d Date) int64
	// LinearTimeToComponents is the inverse of ComponentsToLinearTime.
	LinearTimeToComponents(t int64) Date

	// NonCountingDaysBefore returns how many days strictly before d in
	// d's year do not advance the weekday counter.
	NonCountingDaysBefore(d Date) int
	// NonCountingDaysBeforeYear returns how many non-week-counting days
	// occur in all years strictly before the given year, counted from the
	// epoch (negative for years before it).
	NonCountingDaysBeforeYear(year int) int

	Seasons() []Season
	Moons() []Moon
	Eras() []Era
	Cycles() []Cycle
	LeapRule() LeapRule
	// YearZeroExists reports whether the calendar has a year 0 between
	// years -1 and 1.
	YearZeroExists() bool
}

// Season is a named day-of-year range. Start and End are 1-indexed days of
// the year; Start > End means the season wraps across the year boundary.
type Season struct {
	Name  string
	Start int
	End   int
}

// MoonPhase is one named slice of a moon's cycle. Start is the position in
// [0,1) where the phase begins; phases are ordered and contiguous.
type MoonPhase struct {
	Name  string
	Start float64
}

// Moon describes one moon of the calendar's world.
type Moon struct {
	Name        string
	CycleLength float64 // cycle length in days
	CycleAdjust float64 // fractional day adjustment applied to the cycle position
	Reference   Date    // a date on which the cycle position was 0
	Phases      []MoonPhase
}

// Era is a named span of years. End is absent for the current era.
type Era struct {
	Name  string
	Start int
	End   mo.Option[int]
}

// CycleBasis selects the date dimension a numeric cycle advances with.
type CycleBasis string

const (
	CycleByYear        CycleBasis = "year"
	CycleByEraYear     CycleBasis = "eraYear"
	CycleByMonth       CycleBasis = "month"
	CycleByDay         CycleBasis = "day"
	CycleByDayOfYear   CycleBasis = "dayOfYear"
	CycleByAbsoluteDay CycleBasis = "absoluteDay"
)

// Cycle is a repeating numeric sequence (e.g. a zodiac of years).
type Cycle struct {
	Name    string
	Length  int
	Offset  int
	BasedOn CycleBasis
	Entries []string
}

// LeapKind tags the leap-year rule variants.
type LeapKind string

const (
	LeapNone      LeapKind = "none"
	LeapSimple    LeapKind = "simple"
	LeapGregorian LeapKind = "gregorian"
	LeapCustom    LeapKind = "custom"
)

// LeapRule configures leap-year determination. Interval and Start apply to
// the simple kind; Pattern and Start apply to the custom kind.
type LeapRule struct {
	Kind     LeapKind
	Interval int
	Start    int
	Pattern  string
}
