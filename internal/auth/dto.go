package auth

import (
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"

	"github.com/knagase/wardrobe-api/internal/users"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Username string `json:"username" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse pairs the user's public profile with a fresh token pair. It is
// the shape of register, login, and refresh alike.
type AuthResponse struct {
	User   users.UserDTO     `json:"user"`
	Tokens pkgAuth.TokenPair `json:"tokens"`
}
