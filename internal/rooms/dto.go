package rooms

import (
	"time"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

type RoomDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	Icon         *string   `json:"icon"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateRoomRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Icon         *string `json:"icon" validate:"omitempty,max=100"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0"`
}

// UpdateRoomRequest fields are all optional; a nil field leaves the current
// value in place.
type UpdateRoomRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Icon         *string `json:"icon" validate:"omitempty,max=100"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0"`
}

func ToDTO(m *models.Room) RoomDTO {
	return RoomDTO{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Icon:         m.Icon,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToDTOs(rows []models.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}
