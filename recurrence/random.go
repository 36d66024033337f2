package recurrence

import "github.com/tamsinv/libalmanac/calendar"

// MatchesRandom evaluates a Random configuration against a date. The
// result is a pure function of the arguments: two callers evaluating the
// same rule against the same date always agree.
func MatchesRandom(p calendar.Provider, cfg Random, target, start calendar.Date) bool {
	if cfg.Probability <= 0 {
		return false
	}
	switch cfg.CheckInterval {
	case CheckWeekly:
		wd := calendar.DayOfWeek(p, target)
		if wd < 0 || wd != calendar.DayOfWeek(p, start) {
			return false
		}
	case CheckMonthly:
		if target.Day != start.Day {
			return false
		}
	}
	if cfg.Probability >= 100 {
		return true
	}
	roll := seededRandom(cfg.Seed, target.Year, calendar.DayOfYear(p, target))
	return roll < cfg.Probability
}

// seededRandom hashes (seed, year, dayOfYear) into [0,100) with a
// linear-congruential mix. The constants are frozen: cached occurrence
// lists persist across processes and must replay identically.
func seededRandom(seed int64, year, dayOfYear int) float64 {
	x := uint64(seed)
	x ^= uint64(int64(year)) * 0x9e3779b97f4a7c15
	x ^= uint64(int64(dayOfYear)) * 0xc2b2ae3d27d4eb4f
	x = x*6364136223846793005 + 1442695040888963407
	x ^= x >> 33
	x = x*6364136223846793005 + 1442695040888963407
	x ^= x >> 29
	return float64(x%10000000) / 100000
}
