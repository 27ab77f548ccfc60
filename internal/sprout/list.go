package sprout

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/models"
)

// ListFilters holds optional filters for listing sprouts.
type ListFilters struct {
	TwigID string
	LeafID string
	Status string
}

// Get retrieves a sprout by ID with its waterings preloaded.
func Get(gdb *gorm.DB, id string) (*models.Sprout, error) {
	var s models.Sprout
	err := gdb.Preload("Waterings").Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sprout: get %s: %w", id, err)
	}
	return &s, nil
}

// List returns sprouts matching the given filters, oldest first, with
// waterings preloaded.
func List(gdb *gorm.DB, filters ListFilters) ([]models.Sprout, error) {
	q := gdb.Model(&models.Sprout{}).Preload("Waterings")

	if filters.TwigID != "" {
		q = q.Where("twig_id = ?", filters.TwigID)
	}
	if filters.LeafID != "" {
		q = q.Where("leaf_id = ?", filters.LeafID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}

	var sprouts []models.Sprout
	if err := q.Order("created_at ASC").Find(&sprouts).Error; err != nil {
		return nil, fmt.Errorf("sprout: list: %w", err)
	}
	return sprouts, nil
}

// ListTwigs returns all twigs with their leaves preloaded, oldest first.
func ListTwigs(gdb *gorm.DB) ([]models.Twig, error) {
	var twigs []models.Twig
	if err := gdb.Preload("Leaves").Order("created_at ASC").Find(&twigs).Error; err != nil {
		return nil, fmt.Errorf("sprout: list twigs: %w", err)
	}
	return twigs, nil
}

// TwigByName looks up a twig by its unique name.
func TwigByName(gdb *gorm.DB, name string) (*models.Twig, error) {
	var twig models.Twig
	err := gdb.Preload("Leaves").Where("name = ?", name).First(&twig).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: twig %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("sprout: twig %q: %w", name, err)
	}
	return &twig, nil
}

// LeafByName looks up a leaf by twig and leaf name.
func LeafByName(gdb *gorm.DB, twigName, leafName string) (*models.Leaf, error) {
	twig, err := TwigByName(gdb, twigName)
	if err != nil {
		return nil, err
	}
	var leaf models.Leaf
	err = gdb.Where("twig_id = ? AND name = ?", twig.ID, leafName).First(&leaf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: leaf %s/%s", ErrNotFound, twigName, leafName)
	}
	if err != nil {
		return nil, fmt.Errorf("sprout: leaf %q: %w", leafName, err)
	}
	return &leaf, nil
}
