package recurrence

import (
	"math"

	"github.com/samber/mo"

	"github.com/tamsinv/libalmanac/calendar"
)

// Op is a condition comparison operator.
type Op string

const (
	OpEq  Op = "=="
	OpNe  Op = "!="
	OpGe  Op = ">="
	OpLe  Op = "<="
	OpGt  Op = ">"
	OpLt  Op = "<"
	OpMod Op = "%"
)

// Condition tests one derived date fact. Offset applies to the % operator:
// (value - Offset) mod Value == 0. Value2, when set with ==, turns the test
// into inclusive betweenness. Index selects which moon, cycle or season the
// field refers to.
type Condition struct {
	Field  Field
	Op     Op
	Value  float64
	Value2 mo.Option[float64]
	Offset float64
	Index  int
}

// EvaluateConditions ANDs a condition list over a date. An empty list is
// vacuously true.
func EvaluateConditions(p calendar.Provider, conds []Condition, d calendar.Date) bool {
	for _, c := range conds {
		if !EvaluateCondition(p, c, d) {
			return false
		}
	}
	return true
}

// EvaluateCondition tests a single condition. An unresolvable field is
// false under every operator.
func EvaluateCondition(p calendar.Provider, c Condition, d calendar.Date) bool {
	v, ok := FieldValue(p, c.Field, c.Index, d)
	if !ok {
		return false
	}
	switch c.Op {
	case OpEq:
		if v2, has := c.Value2.Get(); has {
			return v >= c.Value && v <= v2
		}
		return v == c.Value
	case OpNe:
		return v != c.Value
	case OpGe:
		return v >= c.Value
	case OpLe:
		return v <= c.Value
	case OpGt:
		return v > c.Value
	case OpLt:
		return v < c.Value
	case OpMod:
		if c.Value == 0 {
			return false
		}
		return math.Mod(math.Mod(v-c.Offset, c.Value)+c.Value, c.Value) == 0
	default:
		return false
	}
}
