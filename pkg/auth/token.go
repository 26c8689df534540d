package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/knagase/wardrobe-api/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// TokenPair bundles the two tokens returned on login, registration, and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MintTokenPair issues an access and a refresh token over the same identity,
// each signed with its own secret and lifetime.
func MintTokenPair(cfg config.JWTConfig, now time.Time, payload IdentityPayload) (TokenPair, error) {
	access, err := mint(cfg.AccessSecret, cfg.Issuer, cfg.AccessTTL(), now, TokenKindAccess, payload)
	if err != nil {
		return TokenPair{}, fmt.Errorf("mint access token: %w", err)
	}
	refresh, err := mint(cfg.RefreshSecret, cfg.Issuer, cfg.RefreshTTL(), now, TokenKindRefresh, payload)
	if err != nil {
		return TokenPair{}, fmt.Errorf("mint refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccessToken validates the JWT against the access secret and returns typed claims.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*IdentityClaims, error) {
	return parse(cfg.AccessSecret, cfg.Issuer, TokenKindAccess, tokenString)
}

// ParseRefreshToken validates the JWT against the refresh secret and returns typed claims.
func ParseRefreshToken(cfg config.JWTConfig, tokenString string) (*IdentityClaims, error) {
	return parse(cfg.RefreshSecret, cfg.Issuer, TokenKindRefresh, tokenString)
}

func mint(secret, issuer string, ttl time.Duration, now time.Time, kind TokenKind, payload IdentityPayload) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwt ttl must be positive")
	}
	if payload.UserID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}

	claims := IdentityClaims{
		UserID: payload.UserID,
		Email:  payload.Email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

func parse(secret, issuer string, kind TokenKind, tokenString string) (*IdentityClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}

	if claims.Kind != kind {
		return nil, fmt.Errorf("token kind mismatch: expected %s", kind)
	}

	return claims, nil
}
