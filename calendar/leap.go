package calendar

import (
	"strconv"
	"strings"
)

// IntervalSpec is one parsed term of a leap-year pattern. A term votes on a
// year: allow when the year is divisible by Interval (relative to Offset),
// deny instead when Subtracts is set, abstain otherwise.
type IntervalSpec struct {
	Interval     int
	Subtracts    bool
	IgnoreOffset bool
	Offset       int
}

// Pattern term markers: "!" makes a term subtract (deny on divisibility),
// "+" makes it ignore the rule's start offset. The Gregorian rule is
// therefore "400,!100,4".
const (
	subtractMarker     = "!"
	ignoreOffsetMarker = "+"
)

// ParseInterval parses a single pattern term. The offset is normalized to
// the term's own interval. Malformed or non-positive terms report ok=false.
func ParseInterval(term string, offset int) (spec IntervalSpec, ok bool) {
	term = strings.TrimSpace(term)
	for {
		switch {
		case strings.HasPrefix(term, subtractMarker):
			spec.Subtracts = true
			term = term[len(subtractMarker):]
		case strings.HasPrefix(term, ignoreOffsetMarker):
			spec.IgnoreOffset = true
			term = term[len(ignoreOffsetMarker):]
		default:
			n, err := strconv.Atoi(term)
			if err != nil || n < 1 {
				return IntervalSpec{}, false
			}
			spec.Interval = n
			if !spec.IgnoreOffset {
				spec.Offset = mod(offset, n)
			}
			return spec, true
		}
	}
}

// ParsePattern parses a comma-separated interval pattern, dropping terms
// that do not parse.
func ParsePattern(pattern string, offset int) []IntervalSpec {
	var specs []IntervalSpec
	for _, term := range strings.Split(pattern, ",") {
		if spec, ok := ParseInterval(term, offset); ok {
			specs = append(specs, spec)
		}
	}
	return specs
}

// voteOnYear returns +1 (allow), -1 (deny) or 0 (abstain) for a year.
func (s IntervalSpec) voteOnYear(year int, yearZeroExists bool) int {
	// Skip the absent year 0 so that e.g. 1 BCE sits one interval step
	// before 1 CE.
	if !yearZeroExists && year < 0 {
		year++
	}
	// An interval of 1 fires every year regardless of offset.
	divisible := s.Interval == 1 || mod(year-s.Offset, s.Interval) == 0
	switch {
	case !divisible:
		return 0
	case s.Subtracts:
		return -1
	default:
		return 1
	}
}

// gregorianPattern encodes divisible-by-400 allows, divisible-by-100
// denies, divisible-by-4 allows.
const gregorianPattern = "400,!100,4"

// IsLeapYear decides whether a year is a leap year under a rule. Every
// pattern term votes and the year is leap iff the vote sum is positive.
func IsLeapYear(rule LeapRule, year int, yearZeroExists bool) bool {
	var specs []IntervalSpec
	switch rule.Kind {
	case LeapGregorian:
		specs = ParsePattern(gregorianPattern, 0)
	case LeapSimple:
		if spec, ok := ParseInterval(strconv.Itoa(rule.Interval), rule.Start); ok {
			specs = []IntervalSpec{spec}
		}
	case LeapCustom:
		specs = ParsePattern(rule.Pattern, rule.Start)
	default:
		return false
	}

	sum := 0
	for _, spec := range specs {
		sum += spec.voteOnYear(year, yearZeroExists)
	}
	return sum > 0
}

// mod is the positive remainder of a/b.
func mod(a, b int) int {
	return ((a % b) + b) % b
}
