package ledger

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/models"
)

// sunScheduleExpr is the weekly replenishment boundary: Monday midnight.
// Evaluated in UTC, matching WeekStart.
const sunScheduleExpr = "0 0 * * MON"

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ReplenishSun resets the sun balance to capacity when a weekly boundary
// has passed since the last reset. It is idempotent within a week, so
// callers may run it opportunistically on every startup.
func (l *Ledger) ReplenishSun() (bool, error) {
	sched, err := cronParser.Parse(sunScheduleExpr)
	if err != nil {
		return false, fmt.Errorf("ledger: parse sun schedule: %w", err)
	}

	now := l.now().UTC()
	replenished := false
	err = l.db.Transaction(func(tx *gorm.DB) error {
		ls, err := state(tx)
		if err != nil {
			return err
		}
		// Due when the first boundary after the last reset is behind us.
		next := sched.Next(ls.LastSunReset.UTC())
		if next.After(now) {
			return nil
		}
		updates := map[string]interface{}{
			"sun_available":  ls.SunCapacity,
			"last_sun_reset": WeekStart(now),
		}
		if err := tx.Model(&models.LedgerState{}).
			Where("id = ?", models.LedgerRowID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("ledger: replenish sun: %w", err)
		}
		replenished = true
		return nil
	})
	return replenished, err
}
