package calendar

import (
	"bytes"
	"fmt"
	"io"

	"github.com/samber/mo"
	"gopkg.in/yaml.v3"
)

// YAML decoding goes through plain DTO structs (pointers for optional
// fields) and converts into the mo.Option-carrying Definition, so the
// wire shape stays decoupled from the in-memory one.

type definitionYAML struct {
	Name     string          `yaml:"name"`
	Months   []monthYAML     `yaml:"months"`
	WeekDays []string        `yaml:"weekdays"`
	FirstDay int             `yaml:"firstWeekday"`
	Leap     *leapRuleYAML   `yaml:"leapYear"`
	Seasons  []seasonYAML    `yaml:"seasons"`
	Moons    []moonYAML      `yaml:"moons"`
	Eras     []eraYAML       `yaml:"eras"`
	Cycles   []cycleYAML     `yaml:"cycles"`
	YearZero bool            `yaml:"yearZero"`
}

type monthYAML struct {
	Name         string `yaml:"name"`
	Days         int    `yaml:"days"`
	DaysLeap     int    `yaml:"daysLeap"`
	Intercalary  bool   `yaml:"intercalary"`
	FixedWeekday *int   `yaml:"fixedWeekday"`
}

type leapRuleYAML struct {
	Kind     string `yaml:"kind"`
	Interval int    `yaml:"interval"`
	Start    int    `yaml:"start"`
	Pattern  string `yaml:"pattern"`
}

type seasonYAML struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

type moonYAML struct {
	Name        string      `yaml:"name"`
	CycleLength float64     `yaml:"cycleLength"`
	CycleAdjust float64     `yaml:"cycleAdjust"`
	Reference   dateYAML    `yaml:"reference"`
	Phases      []phaseYAML `yaml:"phases"`
}

type phaseYAML struct {
	Name  string  `yaml:"name"`
	Start float64 `yaml:"start"`
}

type dateYAML struct {
	Year  int `yaml:"year"`
	Month int `yaml:"month"`
	Day   int `yaml:"day"`
}

type eraYAML struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	End   *int   `yaml:"end"`
}

type cycleYAML struct {
	Name    string   `yaml:"name"`
	Length  int      `yaml:"length"`
	Offset  int      `yaml:"offset"`
	BasedOn string   `yaml:"basedOn"`
	Entries []string `yaml:"entries"`
}

// ParseDefinition decodes a YAML calendar definition and validates it.
// Unknown fields are rejected.
func ParseDefinition(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var raw definitionYAML
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode calendar definition: %w", err)
	}
	def := raw.toDefinition()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadDefinition reads a YAML calendar definition from r.
func LoadDefinition(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar definition: %w", err)
	}
	return ParseDefinition(data)
}

func (raw definitionYAML) toDefinition() *Definition {
	def := &Definition{
		Name:        raw.Name,
		WeekDays:    raw.WeekDays,
		FirstDay:    raw.FirstDay,
		HasYearZero: raw.YearZero,
	}
	for _, m := range raw.Months {
		month := Month{
			Name:        m.Name,
			Days:        m.Days,
			DaysLeap:    m.DaysLeap,
			Intercalary: m.Intercalary,
		}
		if m.FixedWeekday != nil {
			month.FixedWeekday = mo.Some(*m.FixedWeekday)
		}
		def.Months = append(def.Months, month)
	}
	if raw.Leap != nil {
		def.Leap = LeapRule{
			Kind:     LeapKind(raw.Leap.Kind),
			Interval: raw.Leap.Interval,
			Start:    raw.Leap.Start,
			Pattern:  raw.Leap.Pattern,
		}
	} else {
		def.Leap = LeapRule{Kind: LeapNone}
	}
	for _, s := range raw.Seasons {
		def.SeasonList = append(def.SeasonList, Season(s))
	}
	for _, m := range raw.Moons {
		moon := Moon{
			Name:        m.Name,
			CycleLength: m.CycleLength,
			CycleAdjust: m.CycleAdjust,
			Reference:   Date{Year: m.Reference.Year, Month: m.Reference.Month, Day: m.Reference.Day},
		}
		for _, ph := range m.Phases {
			moon.Phases = append(moon.Phases, MoonPhase(ph))
		}
		def.MoonList = append(def.MoonList, moon)
	}
	for _, e := range raw.Eras {
		era := Era{Name: e.Name, Start: e.Start}
		if e.End != nil {
			era.End = mo.Some(*e.End)
		}
		def.EraList = append(def.EraList, era)
	}
	for _, cyc := range raw.Cycles {
		def.CycleList = append(def.CycleList, Cycle{
			Name:    cyc.Name,
			Length:  cyc.Length,
			Offset:  cyc.Offset,
			BasedOn: CycleBasis(cyc.BasedOn),
			Entries: cyc.Entries,
		})
	}
	return def
}
