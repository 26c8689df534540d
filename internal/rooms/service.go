package rooms

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/pkg/db"
	"github.com/knagase/wardrobe-api/pkg/db/models"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
)

// ServiceParams groups dependencies for the rooms service.
type ServiceParams struct {
	RoomRepo *Repository
}

// Service exposes business rules for room management. Every operation is
// scoped to the authenticated owner: a room that exists but belongs to
// someone else is a forbidden access, not a missing one.
type Service interface {
	ListRooms(ctx context.Context, userID uuid.UUID) ([]RoomDTO, error)
	GetRoom(ctx context.Context, userID, roomID uuid.UUID) (RoomDTO, error)
	CreateRoom(ctx context.Context, userID uuid.UUID, req CreateRoomRequest) (RoomDTO, error)
	UpdateRoom(ctx context.Context, userID, roomID uuid.UUID, req UpdateRoomRequest) (RoomDTO, error)
	DeleteRoom(ctx context.Context, userID, roomID uuid.UUID) error
}

type service struct {
	roomRepo *Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.RoomRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room repo is required")
	}
	return &service{roomRepo: params.RoomRepo}, nil
}

func (s *service) ListRooms(ctx context.Context, userID uuid.UUID) ([]RoomDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	rows, err := s.roomRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rooms")
	}
	return ToDTOs(rows), nil
}

func (s *service) GetRoom(ctx context.Context, userID, roomID uuid.UUID) (RoomDTO, error) {
	room, err := s.loadOwnedRoom(ctx, userID, roomID)
	if err != nil {
		return RoomDTO{}, err
	}
	return ToDTO(room), nil
}

func (s *service) CreateRoom(ctx context.Context, userID uuid.UUID, req CreateRoomRequest) (RoomDTO, error) {
	if userID == uuid.Nil {
		return RoomDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return RoomDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "room name is required")
	}

	taken, err := s.roomRepo.ExistsByName(ctx, userID, name, uuid.Nil)
	if err != nil {
		return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check room name")
	}
	if taken {
		return RoomDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "a room with this name already exists")
	}

	room := &models.Room{
		UserID: userID,
		Name:   name,
		Icon:   req.Icon,
	}
	if req.DisplayOrder != nil {
		room.DisplayOrder = *req.DisplayOrder
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		// Concurrent create can slip past the pre-check and hit the unique index.
		if db.IsUniqueViolation(err) {
			return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a room with this name already exists")
		}
		return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create room")
	}
	return ToDTO(room), nil
}

func (s *service) UpdateRoom(ctx context.Context, userID, roomID uuid.UUID, req UpdateRoomRequest) (RoomDTO, error) {
	room, err := s.loadOwnedRoom(ctx, userID, roomID)
	if err != nil {
		return RoomDTO{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return RoomDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "room name cannot be empty")
		}
		if !strings.EqualFold(name, room.Name) {
			taken, err := s.roomRepo.ExistsByName(ctx, userID, name, room.ID)
			if err != nil {
				return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check room name")
			}
			if taken {
				return RoomDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "a room with this name already exists")
			}
		}
		room.Name = name
	}
	if req.Icon != nil {
		icon := strings.TrimSpace(*req.Icon)
		if icon == "" {
			room.Icon = nil
		} else {
			room.Icon = &icon
		}
	}
	if req.DisplayOrder != nil {
		room.DisplayOrder = *req.DisplayOrder
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if db.IsUniqueViolation(err) {
			return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "a room with this name already exists")
		}
		return RoomDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update room")
	}

	updated, err := s.loadOwnedRoom(ctx, userID, roomID)
	if err != nil {
		return RoomDTO{}, err
	}
	return ToDTO(updated), nil
}

func (s *service) DeleteRoom(ctx context.Context, userID, roomID uuid.UUID) error {
	if _, err := s.loadOwnedRoom(ctx, userID, roomID); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete room")
	}
	return nil
}

// loadOwnedRoom resolves existence before ownership: an unknown id is 404,
// a known id owned by someone else is 403.
func (s *service) loadOwnedRoom(ctx context.Context, userID, roomID uuid.UUID) (*models.Room, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	if roomID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room id is required")
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "room not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room")
	}
	if room.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "room belongs to another user")
	}
	return room, nil
}
