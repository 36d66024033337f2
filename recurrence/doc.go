/*
Package recurrence decides whether a recurring event falls on a given
date and enumerates its occurrences, for any calendar.Provider.

A Rule pairs a start date with a Repeat strategy (daily through moon
phases), an optional stride, horizon and lifetime cap, and optional
moon-phase and generic-condition filters. Rules are plain immutable
values; the Engine evaluates them without side effects, so concurrent
callers can share one Engine freely.

Linked events (rules derived from another rule's occurrences, shifted by
a day offset) resolve through a caller-supplied Resolver. Random rules
are deterministic: the roll is a pure hash of seed, year and day of year,
optionally replaced by a caller-owned precomputed RandomCache.

The engine never raises on bad input. Malformed rules simply never
match, and every enumeration loop is bounded by a hard iteration ceiling
so misconfigured rules cannot hang their caller.
*/
package recurrence
