package ics

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinv/libalmanac/calendar"
	"github.com/tamsinv/libalmanac/recurrence"
)

// gregorianConverter maps proleptic Gregorian dates onto civil time.
// Years before 1 have no mapping.
type gregorianConverter struct{}

func (gregorianConverter) ToTime(d calendar.Date) (time.Time, bool) {
	if d.Year < 1 {
		return time.Time{}, false
	}
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, d.Hour, d.Minute, 0, 0, time.UTC), true
}

func newGregorianEngine() *recurrence.Engine {
	return recurrence.NewEngine(calendar.NewGregorian(), nil)
}

func date(year, month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func TestExport_RecurringEvent(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{
		Start:    date(2025, 0, 1),
		Repeat:   recurrence.Daily{},
		Interval: 2,
	}

	cal, err := Export(e, rule, "Standup", date(2025, 0, 1), date(2025, 11, 31), gregorianConverter{}, Options{UID: "standup"})
	require.NoError(t, err)
	require.Len(t, cal.Children, 1)

	event := cal.Children[0]
	assert.Equal(t, ical.CompEvent, event.Name)
	assert.Equal(t, "standup", event.Props.Get(ical.PropUID).Value)
	assert.Equal(t, "Standup", event.Props.Get(ical.PropSummary).Value)
	assert.Equal(t, "20250101T000000Z", event.Props.Get(ical.PropDateTimeStart).Value)

	rr := event.Props.Get(ical.PropRecurrenceRule)
	require.NotNil(t, rr)
	assert.Contains(t, rr.Value, "FREQ=DAILY")
	assert.Contains(t, rr.Value, "INTERVAL=2")

	prodID := cal.Props.Get(ical.PropProductID)
	require.NotNil(t, prodID)
	assert.Contains(t, prodID.Value, "libalmanac")
}

func TestExport_RecurringEventCountAndDuration(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{
		Start:          date(2025, 0, 1),
		Repeat:         recurrence.Weekly{},
		MaxOccurrences: mo.Some(5),
	}

	cal, err := Export(e, rule, "Sync", date(2025, 0, 1), date(2025, 11, 31), gregorianConverter{}, Options{
		Duration: 2 * time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, cal.Children, 1)

	event := cal.Children[0]
	assert.Contains(t, event.Props.Get(ical.PropRecurrenceRule).Value, "COUNT=5")
	assert.Equal(t, "20250101T020000Z", event.Props.Get(ical.PropDateTimeEnd).Value)
}

func TestExport_ExpandsFilteredRules(t *testing.T) {
	e := newGregorianEngine()
	// An ordinal-weekday rule has no direct RRULE mapping here, so it is
	// expanded occurrence by occurrence.
	rule := recurrence.Rule{
		Start:  date(2025, 0, 1),
		Repeat: recurrence.WeekOfMonth{Weekday: mo.Some(2), WeekNumber: 2},
	}

	cal, err := Export(e, rule, "Board meeting", date(2025, 0, 1), date(2025, 2, 31), gregorianConverter{}, Options{UID: "board"})
	require.NoError(t, err)
	require.Len(t, cal.Children, 3)

	// 2nd Tuesdays of early 2025.
	assert.Equal(t, "20250114T000000Z", cal.Children[0].Props.Get(ical.PropDateTimeStart).Value)
	assert.Equal(t, "20250211T000000Z", cal.Children[1].Props.Get(ical.PropDateTimeStart).Value)
	assert.Equal(t, "20250311T000000Z", cal.Children[2].Props.Get(ical.PropDateTimeStart).Value)

	// Expanded events carry distinct derived UIDs.
	assert.Equal(t, "board-0", cal.Children[0].Props.Get(ical.PropUID).Value)
	assert.Equal(t, "board-1", cal.Children[1].Props.Get(ical.PropUID).Value)
	assert.Nil(t, cal.Children[0].Props.Get(ical.PropRecurrenceRule))
}

func TestExport_ConditionsForceExpansion(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{
		Start:      date(2025, 0, 1),
		Repeat:     recurrence.Daily{},
		Conditions: []recurrence.Condition{{Field: recurrence.FieldDay, Op: recurrence.OpEq, Value: 1}},
	}

	cal, err := Export(e, rule, "Monthly kickoff", date(2025, 0, 1), date(2025, 3, 30), gregorianConverter{}, Options{})
	require.NoError(t, err)
	assert.Len(t, cal.Children, 4) // the 1st of Jan through Apr
	for _, child := range cal.Children {
		assert.Nil(t, child.Props.Get(ical.PropRecurrenceRule))
	}
}

func TestExport_SkipsUnmappableDates(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{Start: date(0, 5, 10), Repeat: recurrence.Never{}}

	cal, err := Export(e, rule, "Prehistory", date(0, 0, 1), date(0, 11, 31), gregorianConverter{}, Options{})
	require.NoError(t, err)
	assert.Empty(t, cal.Children)
}

func TestExport_UnmappableRecurringStart(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{Start: date(0, 0, 1), Repeat: recurrence.Daily{}}

	_, err := Export(e, rule, "x", date(0, 0, 1), date(0, 11, 31), gregorianConverter{}, Options{})
	assert.Error(t, err)
}

func TestExport_RequiresEngineAndConverter(t *testing.T) {
	rule := recurrence.Rule{Start: date(2025, 0, 1), Repeat: recurrence.Daily{}}

	_, err := Export(nil, rule, "x", date(2025, 0, 1), date(2025, 0, 2), gregorianConverter{}, Options{})
	assert.Error(t, err)

	_, err = Export(newGregorianEngine(), rule, "x", date(2025, 0, 1), date(2025, 0, 2), nil, Options{})
	assert.Error(t, err)
}

func TestMarshalXCal(t *testing.T) {
	e := newGregorianEngine()
	rule := recurrence.Rule{
		Start:    date(2025, 0, 1),
		Repeat:   recurrence.Daily{},
		Interval: 2,
	}
	cal, err := Export(e, rule, "Standup", date(2025, 0, 1), date(2025, 11, 31), gregorianConverter{}, Options{UID: "standup"})
	require.NoError(t, err)

	out, err := MarshalXCal(cal)
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, `<icalendar xmlns="urn:ietf:params:xml:ns:icalendar-2.0">`)
	assert.Contains(t, xml, "<vcalendar>")
	assert.Contains(t, xml, "<vevent>")
	assert.Contains(t, xml, "<freq>DAILY</freq>")
	assert.Contains(t, xml, "<interval>2</interval>")
	assert.Contains(t, xml, "<date-time>2025-01-01T00:00:00Z</date-time>")
	assert.Contains(t, xml, "<summary>")
}

func TestMarshalXCal_NilCalendar(t *testing.T) {
	_, err := MarshalXCal(nil)
	assert.Error(t, err)
}
