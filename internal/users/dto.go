package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/pkg/db/models"
)

// UserDTO is the public shape of a user. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  *string   `json:"username"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest carries the optional profile fields. A nil field means
// "leave unchanged".
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=100"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

func ToDTO(m *models.User) UserDTO {
	return UserDTO{
		ID:        m.ID,
		Email:     m.Email,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
