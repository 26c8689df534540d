package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clothing is an owned wardrobe item. The room reference is nullable
// ("unassigned") and seasons attach through the ClothingSeason join entity.
type Clothing struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Name         string           `gorm:"type:text;not null"`
	Description  *string          `gorm:"column:description"`
	Color        *string          `gorm:"column:color"`
	Size         *string          `gorm:"column:size"`
	Brand        *string          `gorm:"column:brand"`
	PurchaseDate *time.Time       `gorm:"column:purchase_date"`
	ImageURL     *string          `gorm:"column:image_url"`
	RoomID       *uuid.UUID       `gorm:"column:room_id;type:uuid;index"`
	Room         *Room            `gorm:"foreignKey:RoomID;constraint:OnDelete:SET NULL"`
	Seasons      []ClothingSeason `gorm:"foreignKey:ClothingID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Clothing) TableName() string {
	return "clothing"
}

func (c *Clothing) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
