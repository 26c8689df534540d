package models

import (
	"github.com/google/uuid"
)

// Season is a fixed, system-wide tagging category. The four rows are seeded by
// migration and are read-only at runtime.
type Season struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:text;not null;uniqueIndex"`
	Icon         string    `gorm:"column:icon;not null"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
}
