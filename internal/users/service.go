package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/pkg/db/models"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

// ServiceParams groups dependencies for the user profile service.
type ServiceParams struct {
	UserRepo *Repository
}

// Service exposes profile operations for the authenticated user.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (UserDTO, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (UserDTO, error)
}

type service struct {
	userRepo *Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{userRepo: params.UserRepo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToDTO(user), nil
}

// UpdateProfile applies the provided fields; absent fields stay untouched.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}

	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if trimmed == "" {
			user.Username = nil
		} else {
			user.Username = &trimmed
		}
	}
	if req.AvatarURL != nil {
		trimmed := strings.TrimSpace(*req.AvatarURL)
		if trimmed == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = &trimmed
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	updated, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToDTO(updated), nil
}

// UpdateAvatar points the profile at a freshly uploaded image.
func (s *service) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (UserDTO, error) {
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "avatar url is required")
	}
	return s.UpdateProfile(ctx, userID, UpdateProfileRequest{AvatarURL: &avatarURL})
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
