package db

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seedbed/trellis/internal/config"
	"github.com/seedbed/trellis/internal/models"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Twig{},
		&models.Leaf{},
		&models.Sprout{},
		&models.Watering{},
		&models.Reflection{},
		&models.LedgerState{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedTwigs upserts Twig rows (and their declared leaves) from configuration.
func SeedTwigs(db *gorm.DB, twigs []config.TwigConfig) error {
	for _, tc := range twigs {
		twig := models.Twig{
			Name:   tc.Name,
			Status: "active",
		}

		var existing models.Twig
		err := db.Where("name = ?", tc.Name).First(&existing).Error
		switch {
		case err == nil:
			twig.ID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			id, idErr := GenerateID("twg")
			if idErr != nil {
				return idErr
			}
			twig.ID = id
		default:
			return fmt.Errorf("db: look up twig %q: %w", tc.Name, err)
		}

		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).Create(&twig)
		if result.Error != nil {
			return fmt.Errorf("db: seed twig %q: %w", tc.Name, result.Error)
		}

		for _, leafName := range tc.Leaves {
			var count int64
			if err := db.Model(&models.Leaf{}).
				Where("twig_id = ? AND name = ?", twig.ID, leafName).
				Count(&count).Error; err != nil {
				return fmt.Errorf("db: look up leaf %q: %w", leafName, err)
			}
			if count > 0 {
				continue
			}
			id, err := GenerateID("leaf")
			if err != nil {
				return err
			}
			leaf := models.Leaf{
				ID:     id,
				TwigID: twig.ID,
				Name:   leafName,
				Status: "active",
			}
			if err := db.Create(&leaf).Error; err != nil {
				return fmt.Errorf("db: seed leaf %q: %w", leafName, err)
			}
		}
	}
	return nil
}

// SeedLedger writes the singleton ledger row if it does not already
// exist. Existing balances are never overwritten by a re-seed.
func SeedLedger(db *gorm.DB, eco config.EconomyConfig, now time.Time) error {
	ls := models.LedgerState{
		ID:            models.LedgerRowID,
		SoilAvailable: eco.StartingSoil,
		SoilSpent:     0,
		SunAvailable:  eco.SunCapacity,
		SunCapacity:   eco.SunCapacity,
		LastSunReset:  now,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ls)
	if result.Error != nil {
		return fmt.Errorf("db: seed ledger: %w", result.Error)
	}
	return nil
}

// GenerateID creates a unique record ID in <prefix>-xxxxx format (5-char hex).
func GenerateID(prefix string) (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("db: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b)[:5], nil
}
