package sprout

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/db"
	"github.com/seedbed/trellis/internal/models"
)

// ensureTwig returns the twig with the given name, creating it when
// missing. Grafting into an undeclared category repairs the tree rather
// than failing on a dangling parent.
func ensureTwig(tx *gorm.DB, name string) (*models.Twig, error) {
	var twig models.Twig
	err := tx.Where("name = ?", name).First(&twig).Error
	if err == nil {
		return &twig, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("sprout: look up twig %q: %w", name, err)
	}

	id, err := db.GenerateID("twg")
	if err != nil {
		return nil, err
	}
	twig = models.Twig{ID: id, Name: name, Status: "active"}
	if err := tx.Create(&twig).Error; err != nil {
		return nil, fmt.Errorf("sprout: create twig %q: %w", name, err)
	}
	return &twig, nil
}

// ensureLeaf returns the named leaf under a twig, creating it when missing.
func ensureLeaf(tx *gorm.DB, twigID, name string) (*models.Leaf, error) {
	var leaf models.Leaf
	err := tx.Where("twig_id = ? AND name = ?", twigID, name).First(&leaf).Error
	if err == nil {
		return &leaf, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("sprout: look up leaf %q: %w", name, err)
	}

	id, err := db.GenerateID("leaf")
	if err != nil {
		return nil, err
	}
	leaf = models.Leaf{ID: id, TwigID: twigID, Name: name, Status: "active"}
	if err := tx.Create(&leaf).Error; err != nil {
		return nil, fmt.Errorf("sprout: create leaf %q: %w", name, err)
	}
	return &leaf, nil
}
