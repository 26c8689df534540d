package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a user-defined storage location grouping clothing items. The name is
// unique per owner, not globally.
type Room struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:idx_rooms_user_name,priority:1"`
	Name         string    `gorm:"type:text;not null;uniqueIndex:idx_rooms_user_name,priority:2"`
	Icon         *string   `gorm:"column:icon"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
