package models

import "time"

// Twig is a life-facet category, the top-level grouping in the garden.
type Twig struct {
	ID        string `gorm:"primaryKey;size:32"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	Status    string `gorm:"size:16;default:active"`
	CreatedAt time.Time

	Leaves      []Leaf       `gorm:"foreignKey:TwigID"`
	Reflections []Reflection `gorm:"foreignKey:TwigID"`
}

// Leaf is a goal-thread within a twig. Sprouts reference their leaf by
// id rather than being embedded, so the leaf row stays small.
type Leaf struct {
	ID        string `gorm:"primaryKey;size:32"`
	TwigID    string `gorm:"size:32;index;not null"`
	Name      string `gorm:"size:64;not null"`
	Status    string `gorm:"size:16;default:active"`
	CreatedAt time.Time

	Sprouts []Sprout `gorm:"foreignKey:LeafID"`
}
