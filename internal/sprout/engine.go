// Package sprout owns the goal lifecycle: grafting new sprouts onto
// leaves, watering them, and closing them out as completed or failed.
package sprout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/db"
	"github.com/seedbed/trellis/internal/ledger"
	"github.com/seedbed/trellis/internal/models"
)

// Engine performs lifecycle operations over the persisted garden. The
// clock is injectable for tests.
type Engine struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEngine returns an Engine using the wall clock.
func NewEngine(gdb *gorm.DB) *Engine {
	return NewEngineWithClock(gdb, time.Now)
}

// NewEngineWithClock returns an Engine with an injected clock.
func NewEngineWithClock(gdb *gorm.DB, now func() time.Time) *Engine {
	return &Engine{db: gdb, now: now}
}

// GraftOpts holds parameters for grafting a new sprout. OriginID is
// empty for an initial planting; for a chained graft it names the
// terminal sprout the new one continues from.
type GraftOpts struct {
	TwigName    string
	LeafName    string
	OriginID    string
	Title       string
	Season      models.Season
	Environment models.Environment
}

// Graft validates the request, charges the soil cost, and creates a new
// active sprout on the named leaf. The twig and leaf are created lazily
// if missing. Validation and affordability complete before any write;
// the spend and the insert commit together or not at all. The origin
// sprout is never mutated.
func (e *Engine) Graft(opts GraftOpts) (*models.Sprout, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return nil, invalid("title", "must not be empty")
	}
	if !opts.Season.Valid() {
		return nil, invalid("season", "%q is not a season (1w, 2w, 1m, 3m, 6m, 1y)", string(opts.Season))
	}
	if !opts.Environment.Valid() {
		return nil, invalid("environment", "%q is not an environment (fertile, firm, barren)", string(opts.Environment))
	}
	if strings.TrimSpace(opts.TwigName) == "" {
		return nil, invalid("twig", "must not be empty")
	}
	if strings.TrimSpace(opts.LeafName) == "" {
		return nil, invalid("leaf", "must not be empty")
	}

	cost := ledger.CostOf(opts.Season, opts.Environment)

	var created *models.Sprout
	err := e.db.Transaction(func(tx *gorm.DB) error {
		twig, err := ensureTwig(tx, strings.TrimSpace(opts.TwigName))
		if err != nil {
			return err
		}
		leaf, err := ensureLeaf(tx, twig.ID, strings.TrimSpace(opts.LeafName))
		if err != nil {
			return err
		}

		var originID *string
		if opts.OriginID != "" {
			origin, err := resolveOrigin(tx, twig.ID, leaf.ID, opts.OriginID)
			if err != nil {
				return err
			}
			originID = &origin
		}

		var active int64
		if err := tx.Model(&models.Sprout{}).
			Where("leaf_id = ? AND status = ?", leaf.ID, models.StatusActive).
			Count(&active).Error; err != nil {
			return fmt.Errorf("sprout: check active on leaf %s: %w", leaf.ID, err)
		}
		if active > 0 {
			return invalid("leaf", "%q already has an active sprout", leaf.Name)
		}

		if err := ledger.SpendSoilTx(tx, cost); err != nil {
			return err
		}

		id, err := generateUniqueID(tx)
		if err != nil {
			return err
		}

		now := e.now()
		s := models.Sprout{
			ID:            id,
			LeafID:        leaf.ID,
			TwigID:        twig.ID,
			Title:         title,
			Season:        opts.Season,
			Environment:   opts.Environment,
			Status:        models.StatusActive,
			SoilCost:      cost,
			GraftedFromID: originID,
			CreatedAt:     now,
			ActivatedAt:   now,
			EndsAt:        opts.Season.EndDate(now),
		}
		if err := tx.Create(&s).Error; err != nil {
			return fmt.Errorf("sprout: create: %w", err)
		}
		created = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// resolveOrigin checks that an origin reference names a terminal sprout
// (or the leaf itself) within the same twig, and returns the id to store.
func resolveOrigin(tx *gorm.DB, twigID, leafID, originID string) (string, error) {
	if originID == leafID {
		return originID, nil
	}

	var origin models.Sprout
	err := tx.Where("id = ?", originID).First(&origin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", invalid("origin", "%s does not name a sprout or leaf in this twig", originID)
	}
	if err != nil {
		return "", fmt.Errorf("sprout: resolve origin %s: %w", originID, err)
	}
	if origin.TwigID != twigID {
		return "", invalid("origin", "%s belongs to a different twig", originID)
	}
	if !origin.Terminal() {
		return "", invalid("origin", "%s is still active; only completed or failed sprouts can be grafted from", originID)
	}
	return origin.ID, nil
}

// generateUniqueID generates a sprout ID and retries once on collision.
func generateUniqueID(tx *gorm.DB) (string, error) {
	for range 2 {
		id, err := db.GenerateID("spr")
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Sprout{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return "", fmt.Errorf("sprout: check ID uniqueness: %w", err)
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("sprout: failed to generate unique ID after retries")
}
