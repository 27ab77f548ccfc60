package models

import "time"

// Watering is a free-form journal entry attached to a sprout.
type Watering struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SproutID  string `gorm:"size:32;index;not null"`
	Content   string `gorm:"type:text;not null"`
	Prompt    string `gorm:"type:text"`
	CreatedAt time.Time
}

// Reflection is a weekly journal entry attached to a twig, gated at one
// per calendar week regardless of remaining sun.
type Reflection struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	TwigID    string `gorm:"size:32;index;not null"`
	Content   string `gorm:"type:text;not null"`
	Prompt    string `gorm:"type:text"`
	CreatedAt time.Time
}
