package models

import "time"

// Season is a sprout's duration class.
type Season string

const (
	SeasonOneWeek     Season = "1w"
	SeasonTwoWeeks    Season = "2w"
	SeasonOneMonth    Season = "1m"
	SeasonThreeMonths Season = "3m"
	SeasonSixMonths   Season = "6m"
	SeasonOneYear     Season = "1y"
)

// Seasons lists all duration classes, shortest first.
func Seasons() []Season {
	return []Season{
		SeasonOneWeek,
		SeasonTwoWeeks,
		SeasonOneMonth,
		SeasonThreeMonths,
		SeasonSixMonths,
		SeasonOneYear,
	}
}

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	switch s {
	case SeasonOneWeek, SeasonTwoWeeks, SeasonOneMonth,
		SeasonThreeMonths, SeasonSixMonths, SeasonOneYear:
		return true
	}
	return false
}

// Label returns the human-readable form of the season.
func (s Season) Label() string {
	switch s {
	case SeasonOneWeek:
		return "1 week"
	case SeasonTwoWeeks:
		return "2 weeks"
	case SeasonOneMonth:
		return "1 month"
	case SeasonThreeMonths:
		return "3 months"
	case SeasonSixMonths:
		return "6 months"
	case SeasonOneYear:
		return "1 year"
	}
	return string(s)
}

// EndDate derives a sprout's end date from its activation time. Week
// seasons add whole days; month and year seasons follow the calendar.
// The result is anchored to noon UTC so the displayed date never shifts
// with the activation's time of day.
func (s Season) EndDate(activated time.Time) time.Time {
	t := activated.UTC()
	var end time.Time
	switch s {
	case SeasonOneWeek:
		end = t.AddDate(0, 0, 7)
	case SeasonTwoWeeks:
		end = t.AddDate(0, 0, 14)
	case SeasonOneMonth:
		end = t.AddDate(0, 1, 0)
	case SeasonThreeMonths:
		end = t.AddDate(0, 3, 0)
	case SeasonSixMonths:
		end = t.AddDate(0, 6, 0)
	case SeasonOneYear:
		end = t.AddDate(1, 0, 0)
	default:
		end = t
	}
	return time.Date(end.Year(), end.Month(), end.Day(), 12, 0, 0, 0, time.UTC)
}

// Environment is a sprout's commitment class. Harsher environments cost
// more soil to plant in.
type Environment string

const (
	EnvFertile Environment = "fertile"
	EnvFirm    Environment = "firm"
	EnvBarren  Environment = "barren"
)

// Environments lists all commitment classes, gentlest first.
func Environments() []Environment {
	return []Environment{EnvFertile, EnvFirm, EnvBarren}
}

// Valid reports whether e is a known environment.
func (e Environment) Valid() bool {
	switch e {
	case EnvFertile, EnvFirm, EnvBarren:
		return true
	}
	return false
}
