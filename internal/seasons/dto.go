package seasons

import (
	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

type SeasonDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	DisplayOrder int       `json:"displayOrder"`
}

func ToDTO(m models.Season) SeasonDTO {
	return SeasonDTO{
		ID:           m.ID,
		Name:         m.Name,
		Icon:         m.Icon,
		DisplayOrder: m.DisplayOrder,
	}
}

func ToDTOs(rows []models.Season) []SeasonDTO {
	out := make([]SeasonDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDTO(row))
	}
	return out
}
