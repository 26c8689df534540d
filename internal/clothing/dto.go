package clothing

import (
	"time"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/internal/rooms"
	"github.com/knagase/wardrobe-api/internal/seasons"
	"github.com/knagase/wardrobe-api/pkg/db/models"
	"github.com/knagase/wardrobe-api/pkg/pagination"
)

// ClothingDTO flattens the item with its room and season tags.
type ClothingDTO struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"userId"`
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	Color        *string             `json:"color"`
	Size         *string             `json:"size"`
	Brand        *string             `json:"brand"`
	PurchaseDate *time.Time          `json:"purchaseDate"`
	ImageURL     *string             `json:"imageUrl"`
	RoomID       *uuid.UUID          `json:"roomId"`
	Room         *rooms.RoomDTO      `json:"room"`
	Seasons      []seasons.SeasonDTO `json:"seasons"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ClothingPageDTO is one page of items plus the filter-wide pagination meta.
type ClothingPageDTO struct {
	Items      []ClothingDTO   `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

type CreateClothingRequest struct {
	Name         string      `json:"name" validate:"required,max=100"`
	Description  *string     `json:"description" validate:"omitempty,max=1000"`
	Color        *string     `json:"color" validate:"omitempty,max=100"`
	Size         *string     `json:"size" validate:"omitempty,max=50"`
	Brand        *string     `json:"brand" validate:"omitempty,max=100"`
	PurchaseDate *time.Time  `json:"purchaseDate"`
	ImageURL     *string     `json:"imageUrl" validate:"omitempty,max=2048"`
	RoomID       *uuid.UUID  `json:"roomId"`
	SeasonIDs    []uuid.UUID `json:"seasonIds"`
}

// UpdateClothingRequest uses Patch fields so a client can clear a value with
// an explicit null while leaving absent fields untouched.
type UpdateClothingRequest struct {
	Name         Patch[string]      `json:"name"`
	Description  Patch[string]      `json:"description"`
	Color        Patch[string]      `json:"color"`
	Size         Patch[string]      `json:"size"`
	Brand        Patch[string]      `json:"brand"`
	PurchaseDate Patch[time.Time]   `json:"purchaseDate"`
	ImageURL     Patch[string]      `json:"imageUrl"`
	RoomID       Patch[uuid.UUID]   `json:"roomId"`
	SeasonIDs    Patch[[]uuid.UUID] `json:"seasonIds"`
}

func ToDTO(m *models.Clothing) ClothingDTO {
	dto := ClothingDTO{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Description:  m.Description,
		Color:        m.Color,
		Size:         m.Size,
		Brand:        m.Brand,
		PurchaseDate: m.PurchaseDate,
		ImageURL:     m.ImageURL,
		RoomID:       m.RoomID,
		Seasons:      make([]seasons.SeasonDTO, 0, len(m.Seasons)),
	}
	dto.CreatedAt = m.CreatedAt
	dto.UpdatedAt = m.UpdatedAt

	if m.Room != nil {
		room := rooms.ToDTO(m.Room)
		dto.Room = &room
	}
	for _, link := range m.Seasons {
		dto.Seasons = append(dto.Seasons, seasons.ToDTO(link.Season))
	}
	return dto
}

func ToDTOs(rows []models.Clothing) []ClothingDTO {
	out := make([]ClothingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i]))
	}
	return out
}
