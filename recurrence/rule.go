package recurrence

import (
	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// Repeat selects a recurrence strategy. The set is closed: the engine
// switches exhaustively over the concrete types below, so an unknown
// strategy can only be a nil Repeat, which never matches beyond the start
// date.
type Repeat interface {
	isRepeat()
}

// Never fires on the start date only.
type Never struct{}

// Daily fires every Rule.Interval days.
type Daily struct{}

// Weekly fires on the start date's weekday every Rule.Interval weeks.
type Weekly struct{}

// Monthly fires on the start date's day-of-month every Rule.Interval
// months, clamping into shorter months.
type Monthly struct{}

// Yearly fires on the start date's month and day every Rule.Interval
// years, clamping leap days.
type Yearly struct{}

// WeekOfMonth fires on an ordinal weekday of the month ("2nd Tuesday").
// A negative WeekNumber counts from the end of the month (-1 = last).
type WeekOfMonth struct {
	Weekday    mo.Option[int] // defaults to the start date's weekday
	WeekNumber int
}

// SeasonTrigger narrows a Seasonal rule within its season.
type SeasonTrigger string

const (
	TriggerFirstDay SeasonTrigger = "firstDay"
	TriggerLastDay  SeasonTrigger = "lastDay"
	TriggerEntire   SeasonTrigger = "entire"
)

// Seasonal fires on days of the configured season.
type Seasonal struct {
	Season  int
	Trigger SeasonTrigger
}

// RangeBit constrains one date field: any value, an exact value, or an
// inclusive interval with either bound open. The zero value is a wildcard.
type RangeBit struct {
	Exact mo.Option[int]
	Min   mo.Option[int]
	Max   mo.Option[int]
}

// Exactly constrains a field to a single value.
func Exactly(v int) RangeBit { return RangeBit{Exact: mo.Some(v)} }

// Between constrains a field to an inclusive interval.
func Between(min, max int) RangeBit {
	return RangeBit{Min: mo.Some(min), Max: mo.Some(max)}
}

// AtLeast constrains a field to an open-ended lower-bounded interval.
func AtLeast(min int) RangeBit { return RangeBit{Min: mo.Some(min)} }

// AtMost constrains a field to an open-ended upper-bounded interval.
func AtMost(max int) RangeBit { return RangeBit{Max: mo.Some(max)} }

// Matches reports whether a field value satisfies the constraint.
func (b RangeBit) Matches(v int) bool {
	if exact, ok := b.Exact.Get(); ok {
		return v == exact
	}
	if min, ok := b.Min.Get(); ok && v < min {
		return false
	}
	if max, ok := b.Max.Get(); ok && v > max {
		return false
	}
	return true
}

// IsWildcard reports whether the constraint accepts every value.
func (b RangeBit) IsWildcard() bool {
	return b.Exact.IsAbsent() && b.Min.IsAbsent() && b.Max.IsAbsent()
}

// ByRange fires on every date whose year, month and day all satisfy their
// constraints.
type ByRange struct {
	Year  RangeBit
	Month RangeBit
	Day   RangeBit
}

// CheckInterval gates how often a Random rule rolls.
type CheckInterval string

const (
	CheckDaily   CheckInterval = "daily"
	CheckWeekly  CheckInterval = "weekly"
	CheckMonthly CheckInterval = "monthly"
)

// Random fires pseudo-randomly with the given percent probability per
// check. The roll is a pure function of seed, year and day-of-year, so
// every caller sees the same occurrences.
type Random struct {
	Seed          int64
	Probability   float64 // 0-100
	CheckInterval CheckInterval
}

// Moon fires whenever any of the rule's MoonConditions holds.
type Moon struct{}

func (Never) isRepeat()       {}
func (Daily) isRepeat()       {}
func (Weekly) isRepeat()      {}
func (Monthly) isRepeat()     {}
func (Yearly) isRepeat()      {}
func (WeekOfMonth) isRepeat() {}
func (Seasonal) isRepeat()    {}
func (ByRange) isRepeat()     {}
func (Random) isRepeat()      {}
func (Moon) isRepeat()        {}

// MoonCondition is a phase window for one moon. PhaseStart > PhaseEnd
// means the window wraps across the 0/1 boundary.
type MoonCondition struct {
	Moon       int
	PhaseStart float64
	PhaseEnd   float64
}

// LinkedEvent derives occurrences from another rule's occurrences, shifted
// by Offset days. When present it overrides the rule's own Repeat.
type LinkedEvent struct {
	ID     uuid.UUID
	Offset int
}

// Rule is a complete recurrence configuration. It is plain value data; the
// engine never mutates it.
type Rule struct {
	Start calendar.Date
	// End, when different from Start, makes the rule a multi-day span
	// rather than a recurrence.
	End    mo.Option[calendar.Date]
	Repeat Repeat
	// Interval is the every-Nth-unit stride; values below 1 mean 1.
	Interval int
	// Until is the recurrence horizon (inclusive).
	Until mo.Option[calendar.Date]
	// MaxOccurrences caps the rule's total lifetime occurrences.
	MaxOccurrences mo.Option[int]
	// MoonConditions is the matcher for Moon rules and an AND pre-filter
	// for every other repeat type.
	MoonConditions []MoonCondition
	// Conditions is a generic AND post-filter.
	Conditions []Condition
	Linked     mo.Option[LinkedEvent]
	// RandomCache, when set, replaces live evaluation of a Random rule.
	// The caller owns regeneration; see NeedsRegeneration.
	RandomCache *RandomCache
}

func (r Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// Resolver looks up rules by identifier for linked events.
type Resolver interface {
	ResolveRule(id uuid.UUID) (Rule, bool)
}

// Namer is optionally implemented by resolvers that can name rules, used
// when describing linked events.
type Namer interface {
	RuleName(id uuid.UUID) (string, bool)
}
