package calendar

// NewGregorian returns a Definition of the proleptic Gregorian calendar
// (no year zero, weeks starting on Sunday). Mostly useful for tests and
// for projecting rules onto the real-world timeline.
func NewGregorian() *Definition {
	return &Definition{
		Name: "Gregorian",
		Months: []Month{
			{Name: "January", Days: 31},
			{Name: "February", Days: 28, DaysLeap: 29},
			{Name: "March", Days: 31},
			{Name: "April", Days: 30},
			{Name: "May", Days: 31},
			{Name: "June", Days: 30},
			{Name: "July", Days: 31},
			{Name: "August", Days: 31},
			{Name: "September", Days: 30},
			{Name: "October", Days: 31},
			{Name: "November", Days: 30},
			{Name: "December", Days: 31},
		},
		WeekDays: []string{
			"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
		},
		// 1 January of year 1 was a Monday in the proleptic Gregorian
		// calendar.
		FirstDay: 1,
		Leap:     LeapRule{Kind: LeapGregorian},
		SeasonList: []Season{
			{Name: "Spring", Start: 79, End: 171},
			{Name: "Summer", Start: 172, End: 265},
			{Name: "Autumn", Start: 266, End: 354},
			{Name: "Winter", Start: 355, End: 78},
		},
	}
}
