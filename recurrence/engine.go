package recurrence

import (
	"io"
	"log/slog"

	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// EngineConfig holds tuning knobs for the recurrence engine.
type EngineConfig struct {
	// MaxIterations is the hard ceiling on every enumeration loop,
	// independent of caller-supplied limits, so a misconfigured rule
	// cannot hang the caller.
	MaxIterations int
	// DefaultMaxOccurrences caps OccurrencesInRange when the caller
	// passes no limit.
	DefaultMaxOccurrences int
	// Logger receives diagnostics (iteration cap hits, unresolvable
	// linked rules). Results never depend on it.
	Logger *slog.Logger
}

// DefaultEngineConfig provides the documented limits.
var DefaultEngineConfig = EngineConfig{
	MaxIterations:         10000,
	DefaultMaxOccurrences: 100,
}

// Engine answers "does this rule occur on this date" and "list this
// rule's occurrences" against a calendar. It holds no mutable state; a
// single Engine may be shared by concurrent callers as long as the
// provider stays read-only.
type Engine struct {
	cal      calendar.Provider
	resolver Resolver
	config   EngineConfig
	logger   *slog.Logger
}

// NewEngine creates an engine with the default configuration. The
// resolver may be nil when no rule uses linked events.
func NewEngine(cal calendar.Provider, resolver Resolver) *Engine {
	return NewEngineWithConfig(cal, resolver, DefaultEngineConfig)
}

// NewEngineWithConfig creates an engine with a custom configuration.
func NewEngineWithConfig(cal calendar.Provider, resolver Resolver, config EngineConfig) *Engine {
	if config.MaxIterations < 1 {
		config.MaxIterations = DefaultEngineConfig.MaxIterations
	}
	if config.DefaultMaxOccurrences < 1 {
		config.DefaultMaxOccurrences = DefaultEngineConfig.DefaultMaxOccurrences
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cal: cal, resolver: resolver, config: config, logger: logger}
}

// Calendar returns the provider the engine evaluates against.
func (e *Engine) Calendar() calendar.Provider { return e.cal }

// IsMatch reports whether a rule occurs on the target date.
//
// The precedence is pinned: a linked event overrides everything and
// bypasses the moon/condition pre-filters of its own rule; Random and
// Moon rules match on their own terms; for every other type the moon
// conditions act as a mandatory pre-filter, the occurrence cap and the
// generic conditions as post-filters.
func (e *Engine) IsMatch(rule Rule, target calendar.Date) bool {
	if e.cal == nil {
		return false
	}

	if link, ok := rule.Linked.Get(); ok {
		return e.matchesLinked(rule, link, target)
	}

	switch rep := rule.Repeat.(type) {
	case Random:
		return e.matchesRandomRule(rule, rep, target)
	case Moon:
		return e.matchesMoonRule(rule, target)
	}

	if len(rule.MoonConditions) > 0 && !e.moonConditionsMatch(rule.MoonConditions, target) {
		return false
	}

	if rule.Repeat == nil {
		return calendar.IsSameDay(rule.Start, target) &&
			EvaluateConditions(e.cal, rule.Conditions, target)
	}
	if _, never := rule.Repeat.(Never); never {
		return calendar.IsSameDay(rule.Start, target) &&
			EvaluateConditions(e.cal, rule.Conditions, target)
	}

	if !e.withinBounds(rule, target) {
		return false
	}

	// A distinct end date makes the rule a multi-day span, not a
	// recurrence.
	if end, ok := rule.End.Get(); ok && !calendar.IsSameDay(end, rule.Start) {
		if calendar.CompareDays(target, end) > 0 {
			return false
		}
		return e.passesOccurrenceCap(rule, target) &&
			EvaluateConditions(e.cal, rule.Conditions, target)
	}

	var matched bool
	switch rep := rule.Repeat.(type) {
	case Daily:
		matched = e.matchesDaily(rule, target)
	case Weekly:
		matched = e.matchesWeekly(rule, target)
	case Monthly:
		matched = e.matchesMonthly(rule, target)
	case Yearly:
		matched = e.matchesYearly(rule, target)
	case ByRange:
		matched = rep.Year.Matches(target.Year) &&
			rep.Month.Matches(target.Month) &&
			rep.Day.Matches(target.Day)
	case WeekOfMonth:
		matched = e.matchesWeekOfMonth(rule, rep, target)
	case Seasonal:
		matched = e.matchesSeasonal(rep, target)
	}
	if !matched {
		return false
	}
	return e.passesOccurrenceCap(rule, target) &&
		EvaluateConditions(e.cal, rule.Conditions, target)
}

// withinBounds checks the rule's start date and recurrence horizon.
func (e *Engine) withinBounds(rule Rule, target calendar.Date) bool {
	if calendar.CompareDays(target, rule.Start) < 0 {
		return false
	}
	if until, ok := rule.Until.Get(); ok && calendar.CompareDays(target, until) > 0 {
		return false
	}
	return true
}

func (e *Engine) matchesDaily(rule Rule, target calendar.Date) bool {
	delta := calendar.DaysBetween(e.cal, rule.Start, target)
	return delta >= 0 && delta%rule.interval() == 0
}

func (e *Engine) matchesWeekly(rule Rule, target calendar.Date) bool {
	weekLen := e.cal.WeekLength()
	if weekLen < 1 {
		return false
	}
	wd := calendar.DayOfWeek(e.cal, target)
	if wd < 0 || wd != calendar.DayOfWeek(e.cal, rule.Start) {
		return false
	}
	delta := calendar.DaysBetween(e.cal, rule.Start, target)
	return delta >= 0 && (delta/weekLen)%rule.interval() == 0
}

func (e *Engine) matchesMonthly(rule Rule, target calendar.Date) bool {
	months := calendar.MonthsBetween(e.cal, rule.Start, target)
	if months < 0 || months%rule.interval() != 0 {
		return false
	}
	return target.Day == min(rule.Start.Day, e.cal.DaysInMonth(target.Month, target.Year))
}

func (e *Engine) matchesYearly(rule Rule, target calendar.Date) bool {
	years := target.Year - rule.Start.Year
	if years < 0 || years%rule.interval() != 0 || target.Month != rule.Start.Month {
		return false
	}
	return target.Day == min(rule.Start.Day, e.cal.DaysInMonth(target.Month, target.Year))
}

func (e *Engine) matchesWeekOfMonth(rule Rule, rep WeekOfMonth, target calendar.Date) bool {
	weekLen := e.cal.WeekLength()
	if weekLen < 1 || rep.WeekNumber == 0 {
		return false
	}
	weekday := rep.Weekday.OrElse(calendar.DayOfWeek(e.cal, rule.Start))
	wd := calendar.DayOfWeek(e.cal, target)
	if wd < 0 || wd != weekday {
		return false
	}
	months := calendar.MonthsBetween(e.cal, rule.Start, target)
	if months%rule.interval() != 0 {
		return false
	}
	if rep.WeekNumber > 0 {
		return (target.Day-1)/weekLen+1 == rep.WeekNumber
	}
	fromEnd := (e.cal.DaysInMonth(target.Month, target.Year)-target.Day)/weekLen + 1
	return rep.WeekNumber == -fromEnd
}

func (e *Engine) matchesSeasonal(rep Seasonal, target calendar.Date) bool {
	seasons := e.cal.Seasons()
	if rep.Season < 0 || rep.Season >= len(seasons) {
		return false
	}
	s := seasons[rep.Season]
	doy := calendar.DayOfYear(e.cal, target)
	if !seasonContains(s, doy) {
		return false
	}
	switch rep.Trigger {
	case TriggerFirstDay:
		return doy == s.Start
	case TriggerLastDay:
		return doy == s.End
	default:
		return true
	}
}

func (e *Engine) matchesRandomRule(rule Rule, cfg Random, target calendar.Date) bool {
	if !e.withinBounds(rule, target) {
		return false
	}
	if cache := rule.RandomCache; cache != nil {
		return cache.Contains(target) && e.passesOccurrenceCap(rule, target)
	}
	return MatchesRandom(e.cal, cfg, target, rule.Start) &&
		e.passesOccurrenceCap(rule, target)
}

func (e *Engine) matchesMoonRule(rule Rule, target calendar.Date) bool {
	if len(rule.MoonConditions) == 0 {
		return false
	}
	if !e.withinBounds(rule, target) {
		return false
	}
	return e.moonConditionsMatch(rule.MoonConditions, target) &&
		e.passesOccurrenceCap(rule, target)
}

// moonConditionsMatch reports whether any phase window contains the
// date's phase position for its moon.
func (e *Engine) moonConditionsMatch(conds []MoonCondition, target calendar.Date) bool {
	for _, mc := range conds {
		pos, ok := moonPhasePosition(e.cal, mc.Moon, target)
		if !ok {
			continue
		}
		if phaseWindowContains(mc, pos) {
			return true
		}
	}
	return false
}

// phaseWindowContains is wrap-aware containment over the [0,1) phase
// circle.
func phaseWindowContains(mc MoonCondition, pos float64) bool {
	if mc.PhaseStart <= mc.PhaseEnd {
		return pos >= mc.PhaseStart && pos <= mc.PhaseEnd
	}
	return pos >= mc.PhaseStart || pos <= mc.PhaseEnd
}

func (e *Engine) matchesLinked(rule Rule, link LinkedEvent, target calendar.Date) bool {
	if e.resolver == nil {
		return false
	}
	if !e.withinBounds(rule, target) {
		return false
	}
	base, ok := e.resolver.ResolveRule(link.ID)
	if !ok {
		e.logger.Debug("linked rule not resolvable", "id", link.ID)
		return false
	}
	// Clearing the nested link breaks resolver cycles structurally.
	base.Linked = mo.None[LinkedEvent]()
	shifted := calendar.AddDays(e.cal, target, -link.Offset)
	return e.IsMatch(base, shifted)
}

// passesOccurrenceCap enforces MaxOccurrences: the occurrence landing on
// target must be within the rule's lifetime cap.
func (e *Engine) passesOccurrenceCap(rule Rule, target calendar.Date) bool {
	limit, ok := rule.MaxOccurrences.Get()
	if !ok {
		return true
	}
	uncapped := rule
	uncapped.MaxOccurrences = mo.None[int]()
	return e.CountOccurrences(uncapped, target) <= limit
}
