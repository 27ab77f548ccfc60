package models

import "time"

// LedgerState is the single persisted row holding both resource budgets:
// soil (spent planting sprouts) and sun (spent on weekly reflections).
type LedgerState struct {
	ID            uint `gorm:"primaryKey"`
	SoilAvailable int  `gorm:"not null;default:0"`
	SoilSpent     int  `gorm:"not null;default:0"`
	SunAvailable  int  `gorm:"not null;default:0"`
	SunCapacity   int  `gorm:"not null;default:0"`
	LastSunReset  time.Time
	UpdatedAt     time.Time
}

// LedgerRowID is the fixed primary key of the singleton ledger row.
const LedgerRowID = 1
