package ledger

import "time"

// WeekStart returns the Monday 00:00 UTC boundary of the calendar week
// containing t. The same boundary governs sun replenishment and the
// once-per-week reflection gate.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	// time.Weekday numbers Sunday as 0; shift so Monday is day 0.
	days := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -days)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
