/*
Package calendar models arbitrary (possibly non-Gregorian) calendars and
provides pure date arithmetic over them.

A calendar is described declaratively by a Definition: its months (with
per-month day counts, leap-year day counts, intercalary flags and pinned
starting weekdays), its week, its leap-year rule, and its seasons, moons,
eras and numeric cycles. Definitions can be built in code, or loaded from
YAML with LoadDefinition.

Consumers that already have their own calendar representation can instead
implement the Provider interface directly; every arithmetic function and
the recurrence engine only ever talk to Provider.

Dates are plain Date values. Arithmetic functions (AddDays, DayOfWeek,
DaysBetween, ...) take the Provider as an explicit argument and are pure:
the same inputs always produce the same outputs, and a nil provider makes
them no-ops rather than errors.
*/
package calendar
