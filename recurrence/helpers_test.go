package recurrence

import (
	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// newPlain builds a regular fantasy calendar: twelve 30-day months, a
// seven-day week with the epoch on Sunday, no leap years. The moon
// cycle equals the month length, so phase expectations stay easy to
// read.
func newPlain() *calendar.Definition {
	months := make([]calendar.Month, 12)
	for i := range months {
		months[i] = calendar.Month{Name: monthNames[i], Days: 30}
	}
	return &calendar.Definition{
		Name:     "Plain",
		Months:   months,
		WeekDays: []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		SeasonList: []calendar.Season{
			{Name: "Verdance", Start: 31, End: 120},
			{Name: "Highsun", Start: 121, End: 210},
			{Name: "Fading", Start: 211, End: 300},
			{Name: "Deepcold", Start: 301, End: 30},
		},
		MoonList: []calendar.Moon{
			{
				Name:        "Pale Lady",
				CycleLength: 30,
				Reference:   calendar.Date{Year: 1, Month: 0, Day: 1},
				Phases: []calendar.MoonPhase{
					{Name: "New Moon", Start: 0},
					{Name: "First Quarter", Start: 0.25},
					{Name: "Full Moon", Start: 0.5},
					{Name: "Last Quarter", Start: 0.75},
				},
			},
		},
		EraList: []calendar.Era{
			{Name: "Founding", Start: 1, End: mo.Some(999)},
			{Name: "Concord", Start: 1000},
		},
		CycleList: []calendar.Cycle{
			{Name: "Zodiac", Length: 12, BasedOn: calendar.CycleByYear},
		},
	}
}

var monthNames = []string{
	"Firstmoon", "Snowmelt", "Seedfall", "Rainwash", "Brightsun", "Highsun",
	"Harvestwane", "Goldleaf", "Redleaf", "Frostveil", "Deepnight", "Yearsend",
}

// memoryResolver is a map-backed Resolver and Namer for linked-event
// tests.
type memoryResolver struct {
	rules map[uuid.UUID]Rule
	names map[uuid.UUID]string
}

func newMemoryResolver() *memoryResolver {
	return &memoryResolver{
		rules: make(map[uuid.UUID]Rule),
		names: make(map[uuid.UUID]string),
	}
}

func (r *memoryResolver) add(name string, rule Rule) uuid.UUID {
	id := uuid.New()
	r.rules[id] = rule
	r.names[id] = name
	return id
}

func (r *memoryResolver) ResolveRule(id uuid.UUID) (Rule, bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

func (r *memoryResolver) RuleName(id uuid.UUID) (string, bool) {
	name, ok := r.names[id]
	return name, ok
}

func date(year, month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}
