package recurrence

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	resolver := newMemoryResolver()
	festivalID := resolver.add("Harvest Festival", Rule{
		Start:  date(1, 7, 1),
		Repeat: Yearly{},
	})
	e := NewEngine(newPlain(), resolver)

	cases := []struct {
		name string
		rule Rule
	}{
		{"daily", Rule{Start: date(1, 0, 1), Repeat: Daily{}}},
		{"daily-interval-until", Rule{
			Start:    date(2025, 0, 1),
			Repeat:   Daily{},
			Interval: 2,
			Until:    mo.Some(date(2025, 0, 10)),
		}},
		{"weekly", Rule{Start: date(1, 0, 1), Repeat: Weekly{}, Interval: 2}},
		{"monthly", Rule{Start: date(1, 0, 1), Repeat: Monthly{}}},
		{"yearly", Rule{Start: date(1, 0, 1), Repeat: Yearly{}, Interval: 10}},
		{"week-of-month", Rule{
			Start:  date(1, 0, 1),
			Repeat: WeekOfMonth{Weekday: mo.Some(2), WeekNumber: 2},
		}},
		{"week-of-month-last", Rule{
			Start:  date(1, 0, 1),
			Repeat: WeekOfMonth{Weekday: mo.Some(2), WeekNumber: -1},
		}},
		{"week-of-month-second-to-last", Rule{
			Start:  date(1, 0, 1),
			Repeat: WeekOfMonth{Weekday: mo.Some(5), WeekNumber: -2},
		}},
		{"seasonal-entire", Rule{Start: date(1, 0, 1), Repeat: Seasonal{Season: 1, Trigger: TriggerEntire}}},
		{"seasonal-first", Rule{Start: date(1, 0, 1), Repeat: Seasonal{Season: 0, Trigger: TriggerFirstDay}}},
		{"random", Rule{Start: date(1, 0, 1), Repeat: Random{Probability: 15}}},
		{"random-weekly", Rule{Start: date(1, 0, 1), Repeat: Random{Probability: 40, CheckInterval: CheckWeekly}}},
		{"by-range", Rule{
			Start:  date(1, 0, 1),
			Repeat: ByRange{Month: Exactly(4), Day: Between(10, 20)},
		}},
		{"linked-after", Rule{
			Start:  date(1, 0, 1),
			Linked: mo.Some(LinkedEvent{ID: festivalID, Offset: 3}),
		}},
		{"linked-before", Rule{
			Start:  date(1, 0, 1),
			Linked: mo.Some(LinkedEvent{ID: festivalID, Offset: -1}),
		}},
		{"linked-same", Rule{
			Start:  date(1, 0, 1),
			Linked: mo.Some(LinkedEvent{ID: festivalID}),
		}},
		{"linked-unknown", Rule{
			Start:  date(1, 0, 1),
			Linked: mo.Some(LinkedEvent{ID: uuid.Nil, Offset: 2}),
		}},
		{"never-capped", Rule{
			Start:          date(1, 0, 1),
			Repeat:         Never{},
			MaxOccurrences: mo.Some(5),
		}},
		{"moon", Rule{
			Start:          date(1, 0, 1),
			Repeat:         Moon{},
			MoonConditions: []MoonCondition{{Moon: 0, PhaseStart: 0.5, PhaseEnd: 0.5}},
		}},
	}

	var buf bytes.Buffer
	for _, tc := range cases {
		fmt.Fprintf(&buf, "%s: %s\n", tc.name, e.Describe(tc.rule))
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata"))
	g.Assert(t, "descriptions", buf.Bytes())
}

func TestDescribe_WeekdayFallback(t *testing.T) {
	e := NewEngine(newPlain(), nil)
	rule := Rule{
		Start:  date(1, 0, 1),
		Repeat: WeekOfMonth{Weekday: mo.Some(9), WeekNumber: 1},
	}
	assert.Equal(t, "1st weekday 9 of every month", e.Describe(rule))
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, "1st", ordinal(1))
	assert.Equal(t, "2nd", ordinal(2))
	assert.Equal(t, "3rd", ordinal(3))
	assert.Equal(t, "4th", ordinal(4))
	assert.Equal(t, "11th", ordinal(11))
	assert.Equal(t, "12th", ordinal(12))
	assert.Equal(t, "13th", ordinal(13))
	assert.Equal(t, "21st", ordinal(21))
	assert.Equal(t, "22nd", ordinal(22))
}
