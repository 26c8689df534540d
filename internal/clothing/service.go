package clothing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/knagase/wardrobe-api/internal/rooms"
	"github.com/knagase/wardrobe-api/internal/seasons"
	"github.com/knagase/wardrobe-api/pkg/db/models"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/pagination"
)

// ServiceParams groups dependencies for the clothing service.
type ServiceParams struct {
	ClothingRepo *Repository
	RoomRepo     *rooms.Repository
	SeasonRepo   *seasons.Repository
}

// Service exposes business rules for wardrobe items. Every operation is
// scoped to the authenticated owner.
type Service interface {
	ListClothing(ctx context.Context, userID uuid.UUID, filter ListFilter) (ClothingPageDTO, error)
	GetClothing(ctx context.Context, userID, itemID uuid.UUID) (ClothingDTO, error)
	CreateClothing(ctx context.Context, userID uuid.UUID, req CreateClothingRequest) (ClothingDTO, error)
	UpdateClothing(ctx context.Context, userID, itemID uuid.UUID, req UpdateClothingRequest) (ClothingDTO, error)
	DeleteClothing(ctx context.Context, userID, itemID uuid.UUID) (ClothingDTO, error)
}

type service struct {
	clothingRepo *Repository
	roomRepo     *rooms.Repository
	seasonRepo   *seasons.Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.ClothingRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clothing repo is required")
	}
	if params.RoomRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room repo is required")
	}
	if params.SeasonRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "season repo is required")
	}
	return &service{
		clothingRepo: params.ClothingRepo,
		roomRepo:     params.RoomRepo,
		seasonRepo:   params.SeasonRepo,
	}, nil
}

func (s *service) ListClothing(ctx context.Context, userID uuid.UUID, filter ListFilter) (ClothingPageDTO, error) {
	if userID == uuid.Nil {
		return ClothingPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	filter.Page = pagination.Normalize(filter.Page.Page, filter.Page.Limit)

	rows, total, err := s.clothingRepo.List(ctx, userID, filter)
	if err != nil {
		return ClothingPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list clothing")
	}

	return ClothingPageDTO{
		Items:      ToDTOs(rows),
		Pagination: pagination.NewMeta(filter.Page, total),
	}, nil
}

func (s *service) GetClothing(ctx context.Context, userID, itemID uuid.UUID) (ClothingDTO, error) {
	item, err := s.loadOwnedItem(ctx, userID, itemID)
	if err != nil {
		return ClothingDTO{}, err
	}
	return ToDTO(item), nil
}

func (s *service) CreateClothing(ctx context.Context, userID uuid.UUID, req CreateClothingRequest) (ClothingDTO, error) {
	if userID == uuid.Nil {
		return ClothingDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ClothingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "clothing name is required")
	}

	if req.RoomID != nil {
		if err := s.ensureOwnedRoom(ctx, userID, *req.RoomID); err != nil {
			return ClothingDTO{}, err
		}
	}
	seasonIDs, err := s.validSeasonIDs(ctx, req.SeasonIDs)
	if err != nil {
		return ClothingDTO{}, err
	}

	item := &models.Clothing{
		UserID:       userID,
		Name:         name,
		Description:  req.Description,
		Color:        req.Color,
		Size:         req.Size,
		Brand:        req.Brand,
		PurchaseDate: req.PurchaseDate,
		ImageURL:     req.ImageURL,
		RoomID:       req.RoomID,
	}

	if err := s.clothingRepo.Create(ctx, item, seasonIDs); err != nil {
		return ClothingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create clothing")
	}

	created, err := s.clothingRepo.FindByID(ctx, item.ID)
	if err != nil {
		return ClothingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload clothing")
	}
	return ToDTO(created), nil
}

func (s *service) UpdateClothing(ctx context.Context, userID, itemID uuid.UUID, req UpdateClothingRequest) (ClothingDTO, error) {
	item, err := s.loadOwnedItem(ctx, userID, itemID)
	if err != nil {
		return ClothingDTO{}, err
	}

	if req.Name.Set {
		if req.Name.Value == nil {
			return ClothingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "clothing name cannot be cleared")
		}
		name := strings.TrimSpace(*req.Name.Value)
		if name == "" {
			return ClothingDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "clothing name cannot be empty")
		}
		item.Name = name
	}
	applyStringPatch(&item.Description, req.Description)
	applyStringPatch(&item.Color, req.Color)
	applyStringPatch(&item.Size, req.Size)
	applyStringPatch(&item.Brand, req.Brand)
	applyStringPatch(&item.ImageURL, req.ImageURL)
	if req.PurchaseDate.Set {
		item.PurchaseDate = req.PurchaseDate.Value
	}

	if req.RoomID.Set {
		if req.RoomID.Value == nil {
			item.RoomID = nil
		} else {
			if err := s.ensureOwnedRoom(ctx, userID, *req.RoomID.Value); err != nil {
				return ClothingDTO{}, err
			}
			roomID := *req.RoomID.Value
			item.RoomID = &roomID
		}
	}

	replaceSeasons := req.SeasonIDs.Set
	var seasonIDs []uuid.UUID
	if replaceSeasons && req.SeasonIDs.Value != nil {
		seasonIDs, err = s.validSeasonIDs(ctx, *req.SeasonIDs.Value)
		if err != nil {
			return ClothingDTO{}, err
		}
	}

	if err := s.clothingRepo.Update(ctx, item, replaceSeasons, seasonIDs); err != nil {
		return ClothingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update clothing")
	}

	updated, err := s.clothingRepo.FindByID(ctx, itemID)
	if err != nil {
		return ClothingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload clothing")
	}
	return ToDTO(updated), nil
}

// DeleteClothing removes the item and returns its final state so callers can
// release attached resources such as the stored image.
func (s *service) DeleteClothing(ctx context.Context, userID, itemID uuid.UUID) (ClothingDTO, error) {
	item, err := s.loadOwnedItem(ctx, userID, itemID)
	if err != nil {
		return ClothingDTO{}, err
	}
	if err := s.clothingRepo.Delete(ctx, itemID); err != nil {
		return ClothingDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete clothing")
	}
	return ToDTO(item), nil
}

func applyStringPatch(field **string, patch Patch[string]) {
	if !patch.Set {
		return
	}
	if patch.Value == nil {
		*field = nil
		return
	}
	trimmed := strings.TrimSpace(*patch.Value)
	if trimmed == "" {
		*field = nil
		return
	}
	*field = &trimmed
}

// loadOwnedItem resolves existence before ownership: an unknown id is 404,
// a known id owned by someone else is 403.
func (s *service) loadOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Clothing, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clothing id is required")
	}

	item, err := s.clothingRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "clothing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load clothing")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "clothing belongs to another user")
	}
	return item, nil
}

func (s *service) ensureOwnedRoom(ctx context.Context, userID, roomID uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "room not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room")
	}
	if room.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "room belongs to another user")
	}
	return nil
}

func (s *service) validSeasonIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "season id cannot be empty")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	count, err := s.seasonRepo.CountByIDs(ctx, unique)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check seasons")
	}
	if count != int64(len(unique)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more season ids are unknown")
	}
	return unique, nil
}
