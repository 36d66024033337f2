package calendar

import "fmt"

// SecondsPerDay is the length of a day in linear time, regardless of the
// calendar's week or month shape.
const SecondsPerDay int64 = 86400

// Date identifies a day, and optionally a time of day, in an arbitrary
// calendar. Month is 0-indexed into the calendar's month list; Day is
// 1-indexed within the month.
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

func (d Date) String() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d", d.Year, d.Month+1, d.Day, d.Hour, d.Minute)
}

// DayOnly strips the time-of-day components.
func (d Date) DayOnly() Date {
	return Date{Year: d.Year, Month: d.Month, Day: d.Day}
}

// CompareDates orders two dates including their time of day, returning
// -1, 0 or 1.
func CompareDates(a, b Date) int {
	if c := CompareDays(a, b); c != 0 {
		return c
	}
	if c := cmp(a.Hour, b.Hour); c != 0 {
		return c
	}
	return cmp(a.Minute, b.Minute)
}

// CompareDays orders two dates by day, ignoring the time of day.
func CompareDays(a, b Date) int {
	if c := cmp(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp(a.Day, b.Day)
}

// IsSameDay reports whether two dates fall on the same calendar day.
func IsSameDay(a, b Date) bool {
	return CompareDays(a, b) == 0
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
