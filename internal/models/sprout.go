package models

import "time"

// Sprout lifecycle states.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Sprout is a single goal instance growing on a leaf.
type Sprout struct {
	ID          string      `gorm:"primaryKey;size:32"`
	LeafID      string      `gorm:"size:32;index;not null"`
	TwigID      string      `gorm:"size:32;index;not null"`
	Title       string      `gorm:"not null"`
	Season      Season      `gorm:"size:8;not null"`
	Environment Environment `gorm:"size:8;not null"`
	Status      string      `gorm:"size:16;default:active;index"`
	SoilCost    int         `gorm:"not null"`

	// GraftedFromID names the terminal sprout (or the leaf itself, for a
	// first planting) this sprout continues from. Immutable once set.
	GraftedFromID *string `gorm:"size:32"`

	CreatedAt   time.Time
	ActivatedAt time.Time
	EndsAt      time.Time
	CompletedAt *time.Time

	// Outcome, recorded only on completion.
	Result      *int   `gorm:"type:smallint"`
	OutcomeNote string `gorm:"type:text"`

	Waterings []Watering `gorm:"foreignKey:SproutID"`
}

// Terminal reports whether the sprout has left the active state.
func (s *Sprout) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}
