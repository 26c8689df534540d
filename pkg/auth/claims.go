package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes the two token classes minted for a login.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// IdentityPayload captures the identity claims carried by both token classes.
type IdentityPayload struct {
	UserID uuid.UUID
	Email  string
}

// IdentityClaims represents the typed JWT issued to clients. Kind marks which
// class the token belongs to, so an access token can never pass refresh
// verification even if both secrets are configured identically.
type IdentityClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}
