package calendar

import (
	"strings"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Definition) {},
		},
		{
			name:    "no months",
			mutate:  func(d *Definition) { d.Months = nil },
			wantErr: "no months",
		},
		{
			name:    "zero-day month",
			mutate:  func(d *Definition) { d.Months[1].Days = 0 },
			wantErr: "has 0 days",
		},
		{
			name:    "no weekdays",
			mutate:  func(d *Definition) { d.WeekDays = nil },
			wantErr: "no weekdays",
		},
		{
			name:    "fixed weekday out of range",
			mutate:  func(d *Definition) { d.Months[0].FixedWeekday = mo.Some(7) },
			wantErr: "out of range",
		},
		{
			name:    "moon with zero cycle",
			mutate:  func(d *Definition) { d.MoonList[0].CycleLength = 0 },
			wantErr: "cycle length",
		},
		{
			name:    "moon phases not starting at zero",
			mutate:  func(d *Definition) { d.MoonList[0].Phases[0].Start = 0.1 },
			wantErr: "must start at 0",
		},
		{
			name:    "zero-length cycle",
			mutate:  func(d *Definition) { d.CycleList[0].Length = 0 },
			wantErr: "length 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := newHarptos()
			tt.mutate(def)
			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDaysInMonth_LeapAware(t *testing.T) {
	g := NewGregorian()
	assert.Equal(t, 29, g.DaysInMonth(1, 2024))
	assert.Equal(t, 28, g.DaysInMonth(1, 2023))
	assert.Equal(t, 31, g.DaysInMonth(0, 2024))
	assert.Equal(t, 0, g.DaysInMonth(12, 2024))

	assert.Equal(t, 366, g.DaysInYear(2024))
	assert.Equal(t, 365, g.DaysInYear(2023))
}

const harptosYAML = `
name: Harptos
weekdays: [First, Second, Third, Fourth, Fifth, Sixth, Seventh, Eighth, Ninth, Tenth]
yearZero: false
leapYear:
  kind: simple
  interval: 4
months:
  - {name: Hammer, days: 30}
  - {name: Midwinter, days: 1, intercalary: true}
  - {name: Alturiak, days: 30}
seasons:
  - {name: Winter, start: 352, end: 75}
moons:
  - name: Selune
    cycleLength: 30
    reference: {year: 1, month: 0, day: 1}
    phases:
      - {name: New Moon, start: 0}
      - {name: Full Moon, start: 0.5}
eras:
  - {name: Present Age, start: 1, end: 1357}
  - {name: Era of Upheaval, start: 1358}
cycles:
  - {name: Roll of Years, length: 12, basedOn: year, entries: []}
`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition([]byte(harptosYAML))
	require.NoError(t, err)

	assert.Equal(t, "Harptos", def.Name)
	assert.Equal(t, 3, def.MonthCount())
	assert.Equal(t, 10, def.WeekLength())
	assert.True(t, def.IsIntercalary(1))
	assert.Equal(t, LeapSimple, def.LeapRule().Kind)
	assert.False(t, def.YearZeroExists())

	require.Len(t, def.Eras(), 2)
	end, ok := def.Eras()[0].End.Get()
	require.True(t, ok)
	assert.Equal(t, 1357, end)
	assert.True(t, def.Eras()[1].End.IsAbsent())

	require.Len(t, def.Moons(), 1)
	assert.Equal(t, 30.0, def.Moons()[0].CycleLength)
	assert.Equal(t, "Full Moon", def.Moons()[0].Phases[1].Name)
}

func TestParseDefinition_RejectsUnknownFields(t *testing.T) {
	_, err := ParseDefinition([]byte("name: X\nbogus: true\nweekdays: [A]\nmonths: [{name: M, days: 1}]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestParseDefinition_ValidatesResult(t *testing.T) {
	_, err := ParseDefinition([]byte("name: X\nweekdays: [A]\nmonths: [{name: M, days: 0}]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days")
}

func TestLoadDefinition(t *testing.T) {
	def, err := LoadDefinition(strings.NewReader(harptosYAML))
	require.NoError(t, err)
	assert.Equal(t, "Harptos", def.Name)
}

func TestDefinitionNames(t *testing.T) {
	g := NewGregorian()
	assert.Equal(t, "Tuesday", g.WeekdayName(2))
	assert.Equal(t, "June", g.MonthName(5))
	assert.Equal(t, "Summer", g.SeasonName(1))
	assert.Equal(t, "", g.WeekdayName(7))
	assert.Equal(t, "", g.MonthName(-1))
	assert.Equal(t, "", g.SeasonName(9))
}
