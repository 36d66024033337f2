package recurrence

import (
	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// RandomCache is a precomputed, chronologically ordered occurrence list
// for a Random rule. The caller owns it: the engine reads it when present
// on a rule but never creates or mutates one behind the caller's back.
type RandomCache struct {
	Occurrences []calendar.Date
	// Through is the last date the cache covers.
	Through calendar.Date
}

// Contains reports whether the cache holds an occurrence on the given
// day.
func (c *RandomCache) Contains(d calendar.Date) bool {
	for _, occ := range c.Occurrences {
		if calendar.IsSameDay(occ, d) {
			return true
		}
	}
	return false
}

// NeedsRegeneration reports whether a cache must be rebuilt before
// answering queries up to asOf. A nil cache always needs one.
func NeedsRegeneration(cache *RandomCache, asOf calendar.Date) bool {
	return cache == nil || calendar.CompareDays(cache.Through, asOf) < 0
}

// GenerateRandomCache evaluates a Random rule live from its start date
// through the given horizon and returns the resulting cache. The rule's
// own cache and occurrence cap are ignored during generation; the cap is
// re-applied at query time against the cached list.
func (e *Engine) GenerateRandomCache(rule Rule, through calendar.Date) *RandomCache {
	fresh := rule
	fresh.RandomCache = nil
	fresh.MaxOccurrences = mo.None[int]()
	occ := e.OccurrencesInRange(fresh, rule.Start, through, e.config.MaxIterations)
	return &RandomCache{Occurrences: occ, Through: through}
}
