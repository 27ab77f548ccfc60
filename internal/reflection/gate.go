// Package reflection enforces the weekly reflection ("shine") rules for
// twigs: at most one reflection per twig per calendar week, each costing
// one sun.
package reflection

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
)

// ErrWeeklyLimit is returned when a twig was already reflected on this
// calendar week, regardless of the remaining sun balance.
var ErrWeeklyLimit = errors.New("reflection: weekly limit reached")

// ErrEmptyContent is returned for blank reflection text.
var ErrEmptyContent = errors.New("reflection: content must not be empty")

// ErrTwigNotFound is returned when the named twig does not exist.
var ErrTwigNotFound = errors.New("reflection: twig not found")

// Gate arbitrates reflection spends. The clock is injectable for tests.
type Gate struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGate returns a Gate using the wall clock.
func NewGate(gdb *gorm.DB) *Gate {
	return NewGateWithClock(gdb, time.Now)
}

// NewGateWithClock returns a Gate with an injected clock.
func NewGateWithClock(gdb *gorm.DB, now func() time.Time) *Gate {
	return &Gate{db: gdb, now: now}
}

// WasReflectedThisWeek reports whether the twig already has a reflection
// entry stamped within the current Monday-anchored UTC week.
func (g *Gate) WasReflectedThisWeek(twigID string) (bool, error) {
	return wasReflectedThisWeek(g.db, twigID, g.now())
}

func wasReflectedThisWeek(tx *gorm.DB, twigID string, now time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Reflection{}).
		Where("twig_id = ? AND created_at >= ?", twigID, ledger.WeekStart(now)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("reflection: scan week for twig %s: %w", twigID, err)
	}
	return count > 0, nil
}

// Record appends one reflection entry to the twig and spends one sun.
// The weekly gate is checked before sun affordability; the two checks
// are independent. Entry and spend commit together or not at all.
func (g *Gate) Record(twigID, content, prompt string) (*models.Reflection, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var created *models.Reflection
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Twig{}).Where("id = ?", twigID).Count(&count).Error; err != nil {
			return fmt.Errorf("reflection: look up twig %s: %w", twigID, err)
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ErrTwigNotFound, twigID)
		}

		now := g.now()
		reflected, err := wasReflectedThisWeek(tx, twigID, now)
		if err != nil {
			return err
		}
		if reflected {
			return ErrWeeklyLimit
		}

		if err := ledger.SpendSunTx(tx); err != nil {
			return err
		}

		r := models.Reflection{
			TwigID:    twigID,
			Content:   content,
			Prompt:    prompt,
			CreatedAt: now,
		}
		if err := tx.Create(&r).Error; err != nil {
			return fmt.Errorf("reflection: record for twig %s: %w", twigID, err)
		}
		created = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListForTwig returns a twig's reflection entries, oldest first.
func ListForTwig(gdb *gorm.DB, twigID string) ([]models.Reflection, error) {
	var entries []models.Reflection
	if err := gdb.Where("twig_id = ?", twigID).Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("reflection: list for twig %s: %w", twigID, err)
	}
	return entries, nil
}
