package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/internal/users"
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	"github.com/knagase/wardrobe-api/pkg/config"
	"github.com/knagase/wardrobe-api/pkg/db"
	"github.com/knagase/wardrobe-api/pkg/db/models"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/security"
)

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo *users.Repository
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Now      func() time.Time
}

// Service covers the credential lifecycle: registration, login, and refresh.
// Logout is stateless on the server; clients discard their tokens.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (AuthResponse, error)
}

type service struct {
	userRepo *users.Repository
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.JWT.AccessSecret == "" || params.JWT.RefreshSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "jwt secrets are required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		userRepo: params.UserRepo,
		jwt:      params.JWT,
		password: params.Password,
		now:      now,
	}, nil
}

// Register creates the account and immediately logs the user in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return AuthResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 8 {
		return AuthResponse{}, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
	}
	if exists {
		return AuthResponse{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = &username
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check.
		if db.IsUniqueViolation(err) {
			return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
		}
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.respond(user)
}

// Login verifies credentials. Unknown email and wrong password produce the
// same message so the endpoint does not leak which accounts exist.
func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return AuthResponse{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	return s.respond(user)
}

// Refresh validates the refresh token, re-confirms the account still exists,
// and mints a new pair. Tokens are not rotated server-side; the old refresh
// token stays valid until it expires.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (AuthResponse, error) {
	claims, err := pkgAuth.ParseRefreshToken(s.jwt, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid refresh token")
		}
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	return s.respond(user)
}

func (s *service) respond(user *models.User) (AuthResponse, error) {
	pair, err := pkgAuth.MintTokenPair(s.jwt, s.now(), pkgAuth.IdentityPayload{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return AuthResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint tokens")
	}
	return AuthResponse{
		User:   users.ToDTO(user),
		Tokens: pair,
	}, nil
}
