package models

import (
	"github.com/google/uuid"
)

// ClothingSeason pairs one clothing item with one season. It has no identity
// beyond the pair and is fully owned by the clothing side: a season-set update
// replaces all pairs for the item rather than diffing them.
type ClothingSeason struct {
	ClothingID uuid.UUID `gorm:"column:clothing_id;type:uuid;primaryKey"`
	SeasonID   uuid.UUID `gorm:"column:season_id;type:uuid;primaryKey"`
	Season     Season    `gorm:"foreignKey:SeasonID"`
}

func (ClothingSeason) TableName() string {
	return "clothing_seasons"
}
