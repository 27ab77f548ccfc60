// Package ledger tracks the garden's two resource budgets: soil, spent
// when grafting sprouts, and sun, spent on weekly reflections.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/models"
)

// ErrInsufficientSoil is returned when a soil spend exceeds the available balance.
var ErrInsufficientSoil = errors.New("ledger: insufficient soil")

// ErrInsufficientSun is returned when no sun remains for a reflection.
var ErrInsufficientSun = errors.New("ledger: insufficient sun")

// Ledger provides balance and spend operations over the persisted
// LedgerState row. The clock is injectable for tests.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a Ledger over the given database using the wall clock.
func New(db *gorm.DB) *Ledger {
	return NewWithClock(db, time.Now)
}

// NewWithClock returns a Ledger with an injected clock.
func NewWithClock(db *gorm.DB, now func() time.Time) *Ledger {
	return &Ledger{db: db, now: now}
}

// state loads the singleton ledger row.
func state(db *gorm.DB) (*models.LedgerState, error) {
	var ls models.LedgerState
	if err := db.First(&ls, models.LedgerRowID).Error; err != nil {
		return nil, fmt.Errorf("ledger: load state: %w", err)
	}
	return &ls, nil
}

// AvailableSoil returns the spendable soil balance.
func (l *Ledger) AvailableSoil() (int, error) {
	ls, err := state(l.db)
	if err != nil {
		return 0, err
	}
	return ls.SoilAvailable, nil
}

// AvailableSun returns the remaining sun for this week.
func (l *Ledger) AvailableSun() (int, error) {
	ls, err := state(l.db)
	if err != nil {
		return 0, err
	}
	return ls.SunAvailable, nil
}

// SunCapacity returns the weekly sun allowance.
func (l *Ledger) SunCapacity() (int, error) {
	ls, err := state(l.db)
	if err != nil {
		return 0, err
	}
	return ls.SunCapacity, nil
}

// CanAfford reports whether the soil balance covers the given cost.
func (l *Ledger) CanAfford(cost int) (bool, error) {
	avail, err := l.AvailableSoil()
	if err != nil {
		return false, err
	}
	return cost <= avail, nil
}

// CanAffordSun reports whether at least one sun remains.
func (l *Ledger) CanAffordSun() (bool, error) {
	avail, err := l.AvailableSun()
	if err != nil {
		return false, err
	}
	return avail >= 1, nil
}

// SpendSoil decrements the soil balance by cost. The balance is
// re-checked inside the transaction so a re-entrant spend cannot drive
// it negative; on shortfall nothing changes and ErrInsufficientSoil is
// returned.
func (l *Ledger) SpendSoil(cost int) error {
	if cost < 0 {
		return fmt.Errorf("ledger: spend soil: negative cost %d", cost)
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		return SpendSoilTx(tx, cost)
	})
}

// SpendSoilTx performs the check-and-spend as one unit inside an open
// transaction, for operations that bundle a soil spend with other writes.
func SpendSoilTx(tx *gorm.DB, cost int) error {
	ls, err := state(tx)
	if err != nil {
		return err
	}
	if cost > ls.SoilAvailable {
		return ErrInsufficientSoil
	}
	updates := map[string]interface{}{
		"soil_available": ls.SoilAvailable - cost,
		"soil_spent":     ls.SoilSpent + cost,
	}
	if err := tx.Model(&models.LedgerState{}).
		Where("id = ?", models.LedgerRowID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("ledger: spend soil: %w", err)
	}
	return nil
}

// SpendSun decrements the sun balance by the unit reflection cost of 1.
// This is independent of the weekly reflection gate, which callers must
// check separately.
func (l *Ledger) SpendSun() error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		return SpendSunTx(tx)
	})
}

// SpendSunTx performs the sun check-and-spend inside an open transaction.
func SpendSunTx(tx *gorm.DB) error {
	ls, err := state(tx)
	if err != nil {
		return err
	}
	if ls.SunAvailable < 1 {
		return ErrInsufficientSun
	}
	if err := tx.Model(&models.LedgerState{}).
		Where("id = ?", models.LedgerRowID).
		Update("sun_available", ls.SunAvailable-1).Error; err != nil {
		return fmt.Errorf("ledger: spend sun: %w", err)
	}
	return nil
}

// GrantSoil credits the soil balance. Soil has no automatic cadence;
// grants are the deliberate way the planting budget is replenished.
func (l *Ledger) GrantSoil(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("ledger: grant soil: amount must be positive, got %d", amount)
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		ls, err := state(tx)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.LedgerState{}).
			Where("id = ?", models.LedgerRowID).
			Update("soil_available", ls.SoilAvailable+amount).Error; err != nil {
			return fmt.Errorf("ledger: grant soil: %w", err)
		}
		return nil
	})
}
