package sprout

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/seedbed/trellis/internal/models"
)

// get loads a sprout by id inside an open transaction.
func get(tx *gorm.DB, id string) (*models.Sprout, error) {
	var s models.Sprout
	err := tx.Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sprout: get %s: %w", id, err)
	}
	return &s, nil
}

// Complete closes an active sprout with an outcome. Result must be in
// 1..5; out-of-range values are rejected, never clamped.
func (e *Engine) Complete(sproutID string, result int, note string) error {
	if result < 1 || result > 5 {
		return invalid("result", "%d is out of range 1..5", result)
	}
	return e.db.Transaction(func(tx *gorm.DB) error {
		s, err := get(tx, sproutID)
		if err != nil {
			return err
		}
		if s.Status != models.StatusActive {
			return invalid("sprout", "%s is already %s", s.ID, s.Status)
		}
		updates := map[string]interface{}{
			"status":       models.StatusCompleted,
			"completed_at": e.now(),
			"result":       result,
			"outcome_note": note,
		}
		if err := tx.Model(&models.Sprout{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("sprout: complete %s: %w", s.ID, err)
		}
		return nil
	})
}

// Fail closes an active sprout without an outcome.
func (e *Engine) Fail(sproutID string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		s, err := get(tx, sproutID)
		if err != nil {
			return err
		}
		if s.Status != models.StatusActive {
			return invalid("sprout", "%s is already %s", s.ID, s.Status)
		}
		updates := map[string]interface{}{
			"status":       models.StatusFailed,
			"completed_at": e.now(),
		}
		if err := tx.Model(&models.Sprout{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("sprout: fail %s: %w", s.ID, err)
		}
		return nil
	})
}

// AddWatering appends a timestamped journal entry to an active sprout.
// Content must be non-empty after trimming.
func (e *Engine) AddWatering(sproutID, content, prompt string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return invalid("content", "must not be empty")
	}
	return e.db.Transaction(func(tx *gorm.DB) error {
		s, err := get(tx, sproutID)
		if err != nil {
			return err
		}
		if s.Status != models.StatusActive {
			return invalid("sprout", "%s is %s; only active sprouts can be watered", s.ID, s.Status)
		}
		w := models.Watering{
			SproutID:  s.ID,
			Content:   content,
			Prompt:    prompt,
			CreatedAt: e.now(),
		}
		if err := tx.Create(&w).Error; err != nil {
			return fmt.Errorf("sprout: water %s: %w", s.ID, err)
		}
		return nil
	})
}
