package recurrence

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinv/libalmanac/calendar"
)

func TestRandomCacheContains(t *testing.T) {
	cache := &RandomCache{
		Occurrences: []calendar.Date{date(1, 0, 2), date(1, 0, 5)},
		Through:     date(1, 0, 30),
	}
	assert.True(t, cache.Contains(date(1, 0, 5)))
	assert.True(t, cache.Contains(calendar.Date{Year: 1, Month: 0, Day: 5, Hour: 9}))
	assert.False(t, cache.Contains(date(1, 0, 3)))
}

func TestNeedsRegeneration(t *testing.T) {
	assert.True(t, NeedsRegeneration(nil, date(1, 0, 1)))

	cache := &RandomCache{Through: date(1, 5, 30)}
	assert.False(t, NeedsRegeneration(cache, date(1, 5, 30)))
	assert.False(t, NeedsRegeneration(cache, date(1, 3, 1)))
	assert.True(t, NeedsRegeneration(cache, date(1, 6, 1)))
}

func TestGenerateRandomCache_MatchesLiveEvaluation(t *testing.T) {
	e := NewEngine(newPlain(), nil)
	rule := Rule{Start: date(1, 0, 1), Repeat: Random{Seed: 21, Probability: 35}}
	through := date(1, 3, 30)

	cache := e.GenerateRandomCache(rule, through)
	require.NotNil(t, cache)
	assert.Equal(t, through, cache.Through)

	live := e.OccurrencesInRange(rule, rule.Start, through, e.config.MaxIterations)
	assert.Equal(t, live, cache.Occurrences)

	// Regenerating yields the identical list.
	again := e.GenerateRandomCache(rule, through)
	assert.Equal(t, cache.Occurrences, again.Occurrences)
}

func TestGenerateRandomCache_IgnoresCapAndOldCache(t *testing.T) {
	e := NewEngine(newPlain(), nil)
	rule := Rule{
		Start:          date(1, 0, 1),
		Repeat:         Random{Seed: 21, Probability: 35},
		MaxOccurrences: mo.Some(1),
		RandomCache: &RandomCache{
			Occurrences: []calendar.Date{date(1, 0, 1)},
			Through:     date(1, 0, 1),
		},
	}

	cache := e.GenerateRandomCache(rule, date(1, 3, 30))
	// Generation evaluates live, past the stale cache and the cap.
	assert.Greater(t, len(cache.Occurrences), 1)

	// Queries against the fresh cache still honor the cap.
	rule.RandomCache = cache
	got := e.OccurrencesInRange(rule, date(1, 0, 1), date(1, 3, 30), 0)
	assert.Len(t, got, 1)
}
