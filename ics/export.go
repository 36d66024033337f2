// Package ics projects recurrence occurrences onto the real-world
// timeline as iCalendar data, for handing to calendar clients or CalDAV
// stores. The projection needs a caller-supplied Converter because an
// arbitrary calendar has no inherent mapping to civil time.
package ics

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/tamsinv/libalmanac/calendar"
	"github.com/tamsinv/libalmanac/recurrence"
)

// Converter maps calendar dates onto civil time. ok is false for dates
// with no real-world equivalent, which are skipped during export.
type Converter interface {
	ToTime(d calendar.Date) (t time.Time, ok bool)
}

// Options tunes an export.
type Options struct {
	// ProductID overrides the PRODID property.
	ProductID string
	// UID seeds event UIDs; a random UUID is used when empty.
	UID string
	// Duration is the length of each exported event.
	Duration time.Duration
	// Max caps the number of expanded occurrences (engine default when
	// zero).
	Max int
}

// Export renders a rule as a VCALENDAR. Rules that translate directly to
// an RRULE (the four plain frequencies without filters) become a single
// recurring VEVENT; everything else is expanded into one VEVENT per
// occurrence within [from, to].
func Export(e *recurrence.Engine, rule recurrence.Rule, summary string, from, to calendar.Date, conv Converter, opts Options) (*ical.Calendar, error) {
	if e == nil || conv == nil {
		return nil, fmt.Errorf("ics: engine and converter are required")
	}

	cal := ical.NewCalendar()
	prodID := opts.ProductID
	if prodID == "" {
		prodID = "-//libalmanac//Recurrence Export//EN"
	}
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	if freq, ok := rruleFrequency(e, rule); ok {
		event, err := recurringEvent(e, rule, summary, freq, conv, opts)
		if err != nil {
			return nil, err
		}
		cal.Children = append(cal.Children, event.Component)
		return cal, nil
	}

	uid := opts.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	for i, occ := range e.OccurrencesInRange(rule, from, to, opts.Max) {
		start, ok := conv.ToTime(occ)
		if !ok {
			continue
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d", uid, i))
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetDateTime(ical.PropDateTimeStamp, start)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		if opts.Duration > 0 {
			event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(opts.Duration))
		}
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}

// rruleFrequency reports whether a rule maps losslessly to a single
// RRULE. Conditions, moon filters, links, spans and caches all force the
// expansion path; weekly rules additionally need a seven-day week.
func rruleFrequency(e *recurrence.Engine, rule recurrence.Rule) (rrule.Frequency, bool) {
	if len(rule.Conditions) > 0 || len(rule.MoonConditions) > 0 ||
		rule.Linked.IsPresent() || rule.RandomCache != nil {
		return 0, false
	}
	if end, ok := rule.End.Get(); ok && !calendar.IsSameDay(end, rule.Start) {
		return 0, false
	}
	switch rule.Repeat.(type) {
	case recurrence.Daily:
		return rrule.DAILY, true
	case recurrence.Weekly:
		if p := e.Calendar(); p == nil || p.WeekLength() != 7 {
			return 0, false
		}
		return rrule.WEEKLY, true
	case recurrence.Monthly:
		return rrule.MONTHLY, true
	case recurrence.Yearly:
		return rrule.YEARLY, true
	default:
		return 0, false
	}
}

func recurringEvent(e *recurrence.Engine, rule recurrence.Rule, summary string, freq rrule.Frequency, conv Converter, opts Options) (*ical.Event, error) {
	start, ok := conv.ToTime(rule.Start)
	if !ok {
		return nil, fmt.Errorf("ics: rule start %v has no real-world equivalent", rule.Start)
	}

	ropt := rrule.ROption{Freq: freq, Dtstart: start}
	if rule.Interval > 1 {
		ropt.Interval = rule.Interval
	}
	if until, has := rule.Until.Get(); has {
		t, ok := conv.ToTime(until)
		if !ok {
			return nil, fmt.Errorf("ics: rule horizon %v has no real-world equivalent", until)
		}
		ropt.Until = t
	}
	if limit, has := rule.MaxOccurrences.Get(); has {
		ropt.Count = limit
	}
	r, err := rrule.NewRRule(ropt)
	if err != nil {
		return nil, fmt.Errorf("ics: failed to build RRULE: %w", err)
	}

	uid := opts.UID
	if uid == "" {
		uid = uuid.NewString()
	}
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetDateTime(ical.PropDateTimeStamp, start)
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	if opts.Duration > 0 {
		event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(opts.Duration))
	}
	event.Props.SetText(ical.PropRecurrenceRule, r.String())
	return event, nil
}
